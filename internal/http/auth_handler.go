package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"podcast-hub/internal/service"
)

// AuthHandler mantiene dependencias para refresh y logout.
type AuthHandler struct {
	logger   *zap.Logger
	issuer   *service.TokenIssuer
	sessions service.SessionRegistry
}

func NewAuthHandler(logger *zap.Logger, issuer *service.TokenIssuer, sessions service.SessionRegistry) *AuthHandler {
	return &AuthHandler{
		logger:   logger,
		issuer:   issuer,
		sessions: sessions,
	}
}

// Refresh maneja POST /auth/refresh: rota el refresh token y devuelve un
// par nuevo.
func (h *AuthHandler) Refresh(c *gin.Context) {
	var req struct {
		RefreshToken string `json:"refresh_token" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "invalid request"})
		return
	}

	pair, err := h.issuer.Refresh(requestContext(c), req.RefreshToken)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrTokenExpired):
			c.JSON(http.StatusBadRequest, gin.H{"detail": "Expired refresh token"})
		case errors.Is(err, service.ErrTokenSignatureInvalid),
			errors.Is(err, service.ErrTokenMalformed),
			errors.Is(err, service.ErrRefreshInvalid):
			c.JSON(http.StatusBadRequest, gin.H{"detail": "Invalid refresh token"})
		case errors.Is(err, service.ErrSessionRevoked):
			c.JSON(http.StatusNotFound, gin.H{"detail": "Invalid token, please login again."})
		default:
			h.logger.Error("refresh failed", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not refresh tokens"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"tokens": pair})
}

// Logout maneja POST /auth/logout: revoca el marcador de sesión del token
// presentado. Es idempotente.
func (h *AuthHandler) Logout(c *gin.Context) {
	identity, ok := GetIdentity(c)
	if !ok {
		c.JSON(http.StatusForbidden, gin.H{"detail": "Authentication required for this API"})
		return
	}

	if err := h.sessions.Revoke(requestContext(c), identity.UserID, identity.JTI); err != nil {
		h.logger.Error("logout failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not revoke session"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "success", "message": "Session revoked."})
}
