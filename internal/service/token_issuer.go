package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// TokenPair es el par de tokens devuelto al emitir o refrescar.
type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresIn    int64  `json:"expires_in"`
}

var (
	ErrRefreshInvalid = errors.New("refresh token invalid")
	ErrSessionRevoked = errors.New("session revoked or unknown")
)

// TokenIssuer emite pares de tokens y activa sus marcadores de sesión.
// La emisión inicial (login) vive en otro servicio; acá solo se emite a
// partir de un refresh token válido y vivo.
type TokenIssuer struct {
	codec    *TokenCodec
	sessions SessionRegistry
}

func NewTokenIssuer(codec *TokenCodec, sessions SessionRegistry) *TokenIssuer {
	return &TokenIssuer{codec: codec, sessions: sessions}
}

// IssuePair firma un access y un refresh token nuevos y crea el marcador
// de sesión de cada uno con TTL igual a su vida útil.
func (s *TokenIssuer) IssuePair(ctx context.Context, userID string) (TokenPair, error) {
	access, accessClaims, err := s.codec.IssueAccess(userID)
	if err != nil {
		return TokenPair{}, fmt.Errorf("issue access token: %w", err)
	}
	refresh, refreshClaims, err := s.codec.IssueRefresh(userID)
	if err != nil {
		return TokenPair{}, fmt.Errorf("issue refresh token: %w", err)
	}

	if err := s.sessions.Activate(ctx, userID, accessClaims.ID, s.codec.AccessTTL()); err != nil {
		return TokenPair{}, fmt.Errorf("activate access session: %w", err)
	}
	if err := s.sessions.Activate(ctx, userID, refreshClaims.ID, s.codec.RefreshTTL()); err != nil {
		return TokenPair{}, fmt.Errorf("activate refresh session: %w", err)
	}

	return TokenPair{
		AccessToken:  access,
		RefreshToken: refresh,
		ExpiresIn:    int64(s.codec.AccessTTL().Seconds()),
	}, nil
}

// Refresh rota un refresh token: valida firma, tipo y marcador, revoca el
// jti usado y emite un par nuevo. El refresh usado deja de servir aunque
// su firma siga vigente.
func (s *TokenIssuer) Refresh(ctx context.Context, refreshToken string) (TokenPair, error) {
	claims, err := s.codec.Decode(refreshToken)
	if err != nil {
		return TokenPair{}, err
	}
	if claims.TokenType != TokenTypeRefresh {
		return TokenPair{}, ErrRefreshInvalid
	}
	if strings.TrimSpace(claims.UserID) == "" || strings.TrimSpace(claims.ID) == "" {
		return TokenPair{}, ErrRefreshInvalid
	}

	active, err := s.sessions.IsActive(ctx, claims.UserID, claims.ID)
	if err != nil {
		return TokenPair{}, fmt.Errorf("session lookup: %w", err)
	}
	if !active {
		return TokenPair{}, ErrSessionRevoked
	}
	if err := s.sessions.Revoke(ctx, claims.UserID, claims.ID); err != nil {
		return TokenPair{}, fmt.Errorf("revoke refresh session: %w", err)
	}

	return s.IssuePair(ctx, claims.UserID)
}
