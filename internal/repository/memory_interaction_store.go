package repository

import (
	"context"
	"fmt"
	"strconv"
	"sync"

	"podcast-hub/internal/domain"
)

// MemoryInteractionStore replica la semántica del store jsonb en memoria.
// Sirve para tests y para levantar el servicio sin Postgres.
type MemoryInteractionStore struct {
	mu   sync.Mutex
	docs map[int64]domain.InteractionDoc
}

func NewMemoryInteractionStore() *MemoryInteractionStore {
	return &MemoryInteractionStore{
		docs: make(map[int64]domain.InteractionDoc),
	}
}

func (s *MemoryInteractionStore) Get(_ context.Context, channelID int64) (domain.InteractionDoc, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	doc, ok := s.docs[channelID]
	if !ok {
		return nil, false, nil
	}
	// Copia superficial para que el llamador no observe mutaciones
	// posteriores.
	out := make(domain.InteractionDoc, len(doc))
	for k, v := range doc {
		out[k] = v
	}
	return out, true, nil
}

func (s *MemoryInteractionStore) Record(_ context.Context, userID string, channelID, podcastID int64, action domain.ActionType, content string) (Outcome, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	itemKey := strconv.FormatInt(podcastID, 10)
	doc, ok := s.docs[channelID]
	if !ok {
		doc = make(domain.InteractionDoc)
		s.docs[channelID] = doc
	}
	item := doc[itemKey]

	switch action {
	case domain.ActionLike:
		if item.HasReaction(domain.ActionLike, userID) {
			return OutcomeAlreadyExists, nil
		}
		item.Like = append(item.Like, domain.Reaction{UserID: userID})
	case domain.ActionBookMark:
		if item.HasReaction(domain.ActionBookMark, userID) {
			return OutcomeAlreadyExists, nil
		}
		item.BookMark = append(item.BookMark, domain.Reaction{UserID: userID})
	case domain.ActionComment:
		item.Comment = append(item.Comment, domain.Comment{UserID: userID, Content: content})
	default:
		return OutcomeFailed, fmt.Errorf("unknown action_type %q", action)
	}

	doc[itemKey] = item
	return OutcomeRecorded, nil
}

func (s *MemoryInteractionStore) Remove(_ context.Context, userID string, channelID, podcastID int64, action domain.ActionType) (Outcome, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, ok := s.docs[channelID]
	if !ok {
		return OutcomeNotFound, nil
	}
	itemKey := strconv.FormatInt(podcastID, 10)
	item, ok := doc[itemKey]
	if !ok {
		return OutcomeNotFound, nil
	}

	removed := false
	switch action {
	case domain.ActionLike:
		item.Like, removed = filterReactions(item.Like, userID)
	case domain.ActionBookMark:
		item.BookMark, removed = filterReactions(item.BookMark, userID)
	case domain.ActionComment:
		// La remoción por user_id borra todos los comentarios del
		// usuario sobre el item; es el contrato heredado del pull.
		kept := item.Comment[:0:0]
		for _, c := range item.Comment {
			if c.UserID == userID {
				removed = true
				continue
			}
			kept = append(kept, c)
		}
		item.Comment = kept
	default:
		return OutcomeFailed, fmt.Errorf("unknown action_type %q", action)
	}

	if !removed {
		return OutcomeNotFound, nil
	}
	doc[itemKey] = item
	return OutcomeRemoved, nil
}

func filterReactions(entries []domain.Reaction, userID string) ([]domain.Reaction, bool) {
	kept := entries[:0:0]
	removed := false
	for _, e := range entries {
		if e.UserID == userID {
			removed = true
			continue
		}
		kept = append(kept, e)
	}
	return kept, removed
}
