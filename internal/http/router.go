package http

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"podcast-hub/internal/catalog"
)

// NewRouter configura el router de Gin con middlewares y rutas.
func NewRouter(
	logger *zap.Logger,
	podcastH *PodcastHandler,
	authH *AuthHandler,
	authMW gin.HandlerFunc,
) *gin.Engine {
	r := gin.New()

	// Middlewares basicos: correlación, logging, recovery y JSON
	// content-type.
	r.Use(correlationMiddleware(), zapLoggerMiddleware(logger), gin.Recovery(), jsonContentTypeMiddleware())

	r.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "Hello World"})
	})

	api := r.Group("/api")
	api.GET("/channels", podcastH.Channels)
	api.GET("/channels/:channel_id", authMW, podcastH.ChannelItems)
	api.GET("/podcasts/:podcast_id", authMW, podcastH.SingleItem)
	api.POST("/interaction", authMW, podcastH.RecordInteraction)
	api.POST("/remove_interaction", authMW, podcastH.RemoveInteraction)

	auth := r.Group("/auth")
	auth.POST("/refresh", authH.Refresh)
	auth.POST("/logout", authMW, authH.Logout)

	return r
}

// requestContext devuelve el contexto de la request, que ya carga el
// correlation id para los colaboradores externos.
func requestContext(c *gin.Context) context.Context {
	return c.Request.Context()
}

const correlationHeader = "correlation-id"

// correlationMiddleware propaga el correlation id entrante o genera uno
// nuevo, y lo deja en el contexto de la request.
func correlationMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(correlationHeader)
		if id == "" {
			id = uuid.NewString()
		}
		ctx := catalog.WithCorrelationID(c.Request.Context(), id)
		c.Request = c.Request.WithContext(ctx)
		c.Writer.Header().Set(correlationHeader, id)
		c.Next()
	}
}

// zapLoggerMiddleware crea un middleware simple de logging con zap.
func zapLoggerMiddleware(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		latency := time.Since(start)
		logger.Info("request",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", latency),
			zap.String("client_ip", c.ClientIP()),
			zap.String("user_agent", c.Request.UserAgent()),
			zap.String("correlation_id", catalog.CorrelationID(c.Request.Context())),
		)
	}
}

// jsonContentTypeMiddleware fuerza Content-Type: application/json en responses.
func jsonContentTypeMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Content-Type", "application/json")
		c.Next()
	}
}
