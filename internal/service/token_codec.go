package service

import (
	"errors"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const (
	TokenTypeAccess  = "access"
	TokenTypeRefresh = "refresh"
)

// Claims son los campos firmados dentro de un token emitido por este
// servicio. El jti vive en RegisteredClaims.ID y correlaciona el token con
// su marcador de sesión.
type Claims struct {
	UserID    string `json:"user_id"`
	TokenType string `json:"token_type"`
	jwt.RegisteredClaims
}

var (
	ErrTokenExpired          = errors.New("token expired")
	ErrTokenSignatureInvalid = errors.New("token signature invalid")
	ErrTokenMalformed        = errors.New("token malformed")
)

// TokenCodec firma y verifica claims con una clave simétrica fija por
// configuración. No realiza I/O.
type TokenCodec struct {
	secret     []byte
	accessTTL  time.Duration
	refreshTTL time.Duration
	now        func() time.Time
}

func NewTokenCodec(secret string, accessTTL, refreshTTL time.Duration) *TokenCodec {
	if accessTTL <= 0 {
		accessTTL = 15 * time.Minute
	}
	if refreshTTL <= 0 {
		refreshTTL = 24 * time.Hour
	}
	return &TokenCodec{
		secret:     []byte(secret),
		accessTTL:  accessTTL,
		refreshTTL: refreshTTL,
		now:        func() time.Time { return time.Now().UTC() },
	}
}

func (c *TokenCodec) AccessTTL() time.Duration  { return c.accessTTL }
func (c *TokenCodec) RefreshTTL() time.Duration { return c.refreshTTL }

// Encode serializa y firma los claims con HS256.
func (c *TokenCodec) Encode(claims Claims) (string, error) {
	if len(c.secret) == 0 {
		return "", ErrTokenSignatureInvalid
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(c.secret)
}

// Decode verifica firma y expiración y devuelve los claims. Distingue
// token expirado, firma inválida y cualquier otro problema estructural.
func (c *TokenCodec) Decode(raw string) (Claims, error) {
	if len(c.secret) == 0 {
		return Claims{}, ErrTokenSignatureInvalid
	}
	if strings.TrimSpace(raw) == "" {
		return Claims{}, ErrTokenMalformed
	}
	var claims Claims
	parser := jwt.NewParser(jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	_, err := parser.ParseWithClaims(raw, &claims, func(_ *jwt.Token) (any, error) {
		return c.secret, nil
	})
	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenExpired):
			return Claims{}, ErrTokenExpired
		case errors.Is(err, jwt.ErrTokenSignatureInvalid):
			return Claims{}, ErrTokenSignatureInvalid
		default:
			return Claims{}, ErrTokenMalformed
		}
	}
	return claims, nil
}

// IssueAccess construye y firma un access token con jti nuevo.
func (c *TokenCodec) IssueAccess(userID string) (string, Claims, error) {
	return c.issue(userID, TokenTypeAccess, c.accessTTL)
}

// IssueRefresh construye y firma un refresh token con jti nuevo.
func (c *TokenCodec) IssueRefresh(userID string) (string, Claims, error) {
	return c.issue(userID, TokenTypeRefresh, c.refreshTTL)
}

func (c *TokenCodec) issue(userID, tokenType string, ttl time.Duration) (string, Claims, error) {
	now := c.now()
	claims := Claims{
		UserID:    userID,
		TokenType: tokenType,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	signed, err := c.Encode(claims)
	if err != nil {
		return "", Claims{}, err
	}
	return signed, claims, nil
}
