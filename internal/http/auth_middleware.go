package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"podcast-hub/internal/service"
)

const identityKey = "auth_identity"

// AuthRequired autentica la request con el TokenAuthenticator y guarda la
// identidad en el contexto. Las rutas públicas simplemente no lo usan.
func AuthRequired(auth *service.TokenAuthenticator) gin.HandlerFunc {
	return func(c *gin.Context) {
		identity, err := auth.Authenticate(c.Request.Context(), c.GetHeader("Authorization"))
		if err != nil {
			status, body := authFailureResponse(err)
			c.JSON(status, body)
			c.Abort()
			return
		}
		c.Set(identityKey, identity)
		c.Next()
	}
}

// authFailureResponse traduce cada razón de rechazo a su status y mensaje
// hacia el cliente. Los mensajes replican los del servicio original.
func authFailureResponse(err error) (int, gin.H) {
	if errors.Is(err, service.ErrNoAuthHeader) {
		return http.StatusUnauthorized, gin.H{"detail": "Authentication required for this API"}
	}
	var authErr *service.AuthError
	if errors.As(err, &authErr) {
		switch authErr.Reason {
		case service.AuthInvalidScheme:
			return http.StatusBadRequest, gin.H{"detail": "Invalid authentication scheme"}
		case service.AuthExpiredToken:
			return http.StatusUnauthorized, gin.H{"detail": "Expired access token"}
		case service.AuthInvalidSignature, service.AuthMalformedToken:
			return http.StatusBadRequest, gin.H{"detail": "Invalid access token"}
		case service.AuthMissingIdentity:
			return http.StatusForbidden, gin.H{"detail": "Authentication required for this API"}
		case service.AuthSessionRevoked:
			return http.StatusNotFound, gin.H{"detail": "Invalid token, please login again."}
		}
	}
	return http.StatusInternalServerError, gin.H{"error": "authentication unavailable"}
}

// GetIdentity obtiene la identidad autenticada desde el contexto.
func GetIdentity(c *gin.Context) (service.Identity, bool) {
	val, ok := c.Get(identityKey)
	if !ok {
		return service.Identity{}, false
	}
	identity, ok := val.(service.Identity)
	return identity, ok
}
