package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// AuthScheme es el prefijo esperado en el header Authorization.
const AuthScheme = "Token"

// AuthReason clasifica los rechazos de autenticación.
type AuthReason string

const (
	AuthInvalidScheme    AuthReason = "invalid_scheme"
	AuthExpiredToken     AuthReason = "expired_token"
	AuthInvalidSignature AuthReason = "invalid_signature"
	AuthMalformedToken   AuthReason = "malformed_token"
	AuthMissingIdentity  AuthReason = "missing_identity"
	AuthSessionRevoked   AuthReason = "revoked_or_unknown_session"
)

// AuthError es un rechazo de autenticación con su razón específica. No
// incluye material de firma en el mensaje.
type AuthError struct {
	Reason AuthReason
	err    error
}

func (e *AuthError) Error() string {
	if e.err != nil {
		return fmt.Sprintf("authentication rejected (%s): %v", e.Reason, e.err)
	}
	return fmt.Sprintf("authentication rejected (%s)", e.Reason)
}

func (e *AuthError) Unwrap() error { return e.err }

// ErrNoAuthHeader indica que la request no trae header de autorización.
// No establece identidad; la capa de rutas decide si eso es aceptable.
var ErrNoAuthHeader = errors.New("authorization header missing")

// Identity es la única identidad autenticada que se expone hacia abajo;
// ningún otro claim del token es confiable para la lógica de negocio.
type Identity struct {
	UserID    string
	JTI       string
	TokenType string
}

// TokenAuthenticator compone TokenCodec y SessionRegistry en el contrato
// de autenticación de requests.
type TokenAuthenticator struct {
	codec    *TokenCodec
	sessions SessionRegistry
}

func NewTokenAuthenticator(codec *TokenCodec, sessions SessionRegistry) *TokenAuthenticator {
	return &TokenAuthenticator{codec: codec, sessions: sessions}
}

// Authenticate valida el valor crudo del header Authorization y devuelve
// la identidad del usuario. El orden es fijo: header, esquema, firma,
// identidad, marcador de sesión; el primer paso que falla corta el resto.
func (a *TokenAuthenticator) Authenticate(ctx context.Context, header string) (Identity, error) {
	header = strings.TrimSpace(header)
	if header == "" {
		return Identity{}, ErrNoAuthHeader
	}

	parts := strings.Fields(header)
	if parts[0] != AuthScheme {
		return Identity{}, &AuthError{Reason: AuthInvalidScheme}
	}
	if len(parts) != 2 {
		return Identity{}, &AuthError{Reason: AuthMalformedToken}
	}

	claims, err := a.codec.Decode(parts[1])
	if err != nil {
		switch {
		case errors.Is(err, ErrTokenExpired):
			return Identity{}, &AuthError{Reason: AuthExpiredToken, err: err}
		case errors.Is(err, ErrTokenSignatureInvalid):
			return Identity{}, &AuthError{Reason: AuthInvalidSignature, err: err}
		default:
			return Identity{}, &AuthError{Reason: AuthMalformedToken, err: err}
		}
	}

	if strings.TrimSpace(claims.UserID) == "" {
		return Identity{}, &AuthError{Reason: AuthMissingIdentity}
	}

	active, err := a.sessions.IsActive(ctx, claims.UserID, claims.ID)
	if err != nil {
		return Identity{}, fmt.Errorf("session lookup: %w", err)
	}
	if !active {
		return Identity{}, &AuthError{Reason: AuthSessionRevoked}
	}

	return Identity{
		UserID:    claims.UserID,
		JTI:       claims.ID,
		TokenType: claims.TokenType,
	}, nil
}
