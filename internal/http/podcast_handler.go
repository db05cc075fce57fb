package http

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"podcast-hub/internal/catalog"
	"podcast-hub/internal/domain"
	"podcast-hub/internal/repository"
	"podcast-hub/internal/service"
)

// PodcastHandler mantiene dependencias para los endpoints de catálogo e
// interacciones.
type PodcastHandler struct {
	logger *zap.Logger
	agg    *service.AggregationService
	store  repository.InteractionStore
}

func NewPodcastHandler(logger *zap.Logger, agg *service.AggregationService, store repository.InteractionStore) *PodcastHandler {
	return &PodcastHandler{
		logger: logger,
		agg:    agg,
		store:  store,
	}
}

// Channels maneja GET /api/channels: passthrough del catálogo sin merge.
func (h *PodcastHandler) Channels(c *gin.Context) {
	raw, err := h.agg.Channels(requestContext(c))
	if err != nil {
		h.respondCatalogError(c, err)
		return
	}
	c.Data(http.StatusOK, "application/json; charset=utf-8", raw)
}

// ChannelItems maneja GET /api/channels/:channel_id.
func (h *PodcastHandler) ChannelItems(c *gin.Context) {
	channelID, err := strconv.ParseInt(c.Param("channel_id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "invalid channel id"})
		return
	}
	identity, ok := GetIdentity(c)
	if !ok {
		c.JSON(http.StatusForbidden, gin.H{"detail": "Authentication required for this API"})
		return
	}

	view, err := h.agg.ChannelItems(requestContext(c), identity.UserID, channelID)
	if err != nil {
		h.respondCatalogError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

// SingleItem maneja GET /api/podcasts/:podcast_id.
func (h *PodcastHandler) SingleItem(c *gin.Context) {
	podcastID, err := strconv.ParseInt(c.Param("podcast_id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "invalid podcast id"})
		return
	}
	identity, ok := GetIdentity(c)
	if !ok {
		c.JSON(http.StatusForbidden, gin.H{"detail": "Authentication required for this API"})
		return
	}

	item, err := h.agg.SingleItem(requestContext(c), identity.UserID, podcastID)
	if err != nil {
		h.respondCatalogError(c, err)
		return
	}
	c.JSON(http.StatusOK, item)
}

type interactionRequest struct {
	ChannelID  int64             `json:"channel_id" binding:"required"`
	PodcastID  int64             `json:"podcast_id" binding:"required"`
	ActionType domain.ActionType `json:"action_type" binding:"required"`
	Content    string            `json:"content"`
}

// RecordInteraction maneja POST /api/interaction.
func (h *PodcastHandler) RecordInteraction(c *gin.Context) {
	var req interactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid interaction request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"detail": "invalid request"})
		return
	}
	identity, ok := GetIdentity(c)
	if !ok {
		c.JSON(http.StatusForbidden, gin.H{"detail": "Authentication required for this API"})
		return
	}

	outcome, err := h.store.Record(requestContext(c), identity.UserID, req.ChannelID, req.PodcastID, req.ActionType, req.Content)
	if err != nil {
		h.logger.Error("record interaction failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not record interaction"})
		return
	}

	switch outcome {
	case repository.OutcomeRecorded:
		c.JSON(http.StatusOK, gin.H{"status": "success", "message": "Interaction recorded successfully."})
	case repository.OutcomeAlreadyExists:
		c.JSON(http.StatusOK, gin.H{"status": "failure", "message": "Interaction already exists."})
	default:
		c.JSON(http.StatusOK, gin.H{"status": "failure", "message": "Failed to record interaction."})
	}
}

type removeInteractionRequest struct {
	ChannelID  int64             `json:"channel_id" binding:"required"`
	PodcastID  int64             `json:"podcast_id" binding:"required"`
	ActionType domain.ActionType `json:"action_type" binding:"required"`
}

// RemoveInteraction maneja POST /api/remove_interaction.
func (h *PodcastHandler) RemoveInteraction(c *gin.Context) {
	var req removeInteractionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid remove interaction request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"detail": "invalid request"})
		return
	}
	identity, ok := GetIdentity(c)
	if !ok {
		c.JSON(http.StatusForbidden, gin.H{"detail": "Authentication required for this API"})
		return
	}

	outcome, err := h.store.Remove(requestContext(c), identity.UserID, req.ChannelID, req.PodcastID, req.ActionType)
	if err != nil {
		h.logger.Error("remove interaction failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not remove interaction"})
		return
	}

	switch outcome {
	case repository.OutcomeRemoved:
		c.JSON(http.StatusOK, gin.H{"status": "success", "message": "Interaction removed successfully."})
	default:
		c.JSON(http.StatusOK, gin.H{"status": "failure", "message": "Interaction not found."})
	}
}

// respondCatalogError propaga errores del catálogo con su status original
// y trata cualquier otra cosa como falla interna.
func (h *PodcastHandler) respondCatalogError(c *gin.Context, err error) {
	var upstream *catalog.UpstreamError
	if errors.As(err, &upstream) {
		c.JSON(upstream.Status, gin.H{"detail": upstream.Body})
		return
	}
	h.logger.Error("catalog request failed", zap.Error(err))
	c.JSON(http.StatusInternalServerError, gin.H{"error": "upstream catalog unavailable"})
}
