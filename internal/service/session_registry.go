package service

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

// SessionRegistry lleva el registro de sesiones vivas. Un token es usable
// solo mientras su marcador exista; la ausencia del marcador revoca el
// token aunque la firma siga siendo válida.
type SessionRegistry interface {
	Activate(ctx context.Context, userID, jti string, ttl time.Duration) error
	IsActive(ctx context.Context, userID, jti string) (bool, error)
	Revoke(ctx context.Context, userID, jti string) error
}

// markerKey arma la clave del marcador con el formato heredado del
// servicio de login: "user_{user_id} || {jti}".
func markerKey(userID, jti string) string {
	return fmt.Sprintf("user_%s || %s", userID, jti)
}

type memorySessionRegistry struct {
	mu    sync.Mutex
	items map[string]time.Time
}

func NewMemorySessionRegistry() SessionRegistry {
	return &memorySessionRegistry{
		items: make(map[string]time.Time),
	}
}

func (s *memorySessionRegistry) Activate(_ context.Context, userID, jti string, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if strings.TrimSpace(jti) == "" {
		return nil
	}
	s.items[markerKey(userID, jti)] = time.Now().UTC().Add(ttl)
	return nil
}

func (s *memorySessionRegistry) IsActive(_ context.Context, userID, jti string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	exp, ok := s.items[markerKey(userID, jti)]
	if !ok {
		return false, nil
	}
	if time.Now().UTC().After(exp) {
		delete(s.items, markerKey(userID, jti))
		return false, nil
	}
	return true, nil
}

func (s *memorySessionRegistry) Revoke(_ context.Context, userID, jti string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.items, markerKey(userID, jti))
	return nil
}

type redisSessionClient interface {
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd
	Exists(ctx context.Context, keys ...string) *redis.IntCmd
	Del(ctx context.Context, keys ...string) *redis.IntCmd
}

type redisSessionRegistry struct {
	client redisSessionClient
}

func NewRedisSessionRegistry(client *redis.Client) SessionRegistry {
	if client == nil {
		return nil
	}
	return &redisSessionRegistry{client: client}
}

func (s *redisSessionRegistry) Activate(ctx context.Context, userID, jti string, ttl time.Duration) error {
	if strings.TrimSpace(jti) == "" {
		return nil
	}
	if ttl <= 0 {
		ttl = time.Minute
	}
	return s.client.Set(ctx, markerKey(userID, jti), "1", ttl).Err()
}

// IsActive es una consulta puntual; no extiende ni refresca el TTL.
func (s *redisSessionRegistry) IsActive(ctx context.Context, userID, jti string) (bool, error) {
	if strings.TrimSpace(jti) == "" {
		return false, nil
	}
	n, err := s.client.Exists(ctx, markerKey(userID, jti)).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (s *redisSessionRegistry) Revoke(ctx context.Context, userID, jti string) error {
	if strings.TrimSpace(jti) == "" {
		return nil
	}
	return s.client.Del(ctx, markerKey(userID, jti)).Err()
}
