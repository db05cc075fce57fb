package service

import (
	"context"
	"encoding/json"
	"fmt"

	"podcast-hub/internal/catalog"
	"podcast-hub/internal/domain"
	"podcast-hub/internal/repository"
)

// noCommentYet es el marcador literal que reciben los items sin
// comentarios registrados.
const noCommentYet = "no comment yet"

// ChannelView es la respuesta para el listado de items de un canal.
type ChannelView struct {
	ChannelInfo json.RawMessage      `json:"channel_info"`
	Items       []domain.CatalogItem `json:"items"`
}

// AggregationService cruza los payloads del catálogo con el documento de
// interacciones del canal, para un usuario concreto. Es de solo lectura
// sobre ambas fuentes.
type AggregationService struct {
	catalog catalog.Client
	store   repository.InteractionStore
}

func NewAggregationService(catalogClient catalog.Client, store repository.InteractionStore) *AggregationService {
	return &AggregationService{catalog: catalogClient, store: store}
}

// Channels es el passthrough del listado de canales; no hay merge ni
// identidad involucrada.
func (s *AggregationService) Channels(ctx context.Context) (json.RawMessage, error) {
	return s.catalog.Channels(ctx)
}

// ChannelItems trae canal e items del catálogo y anota cada item con
// liked/bookmarked/comments para el usuario. Si el catálogo falla no se
// intenta merge parcial: el error upstream se propaga tal cual.
func (s *AggregationService) ChannelItems(ctx context.Context, userID string, channelID int64) (ChannelView, error) {
	data, err := s.catalog.ChannelItems(ctx, channelID)
	if err != nil {
		return ChannelView{}, err
	}

	doc, _, err := s.store.Get(ctx, channelID)
	if err != nil {
		return ChannelView{}, fmt.Errorf("interaction lookup: %w", err)
	}

	for _, item := range data.Items {
		annotateItem(item, doc, userID)
	}
	return ChannelView{ChannelInfo: data.Channel, Items: data.Items}, nil
}

// SingleItem hace el mismo merge para un item individual; el canal se
// obtiene del propio payload del catálogo.
func (s *AggregationService) SingleItem(ctx context.Context, userID string, podcastID int64) (domain.CatalogItem, error) {
	item, err := s.catalog.SingleItem(ctx, podcastID)
	if err != nil {
		return nil, err
	}

	var doc domain.InteractionDoc
	if channelID, ok := item.ChannelIDKey(); ok {
		doc, _, err = s.store.Get(ctx, channelID)
		if err != nil {
			return nil, fmt.Errorf("interaction lookup: %w", err)
		}
	}

	annotateItem(item, doc, userID)
	return item, nil
}

// annotateItem agrega los campos de interacción sobre el item. Items sin
// entrada en el documento reciben los valores por defecto.
func annotateItem(item domain.CatalogItem, doc domain.InteractionDoc, userID string) {
	var interactions domain.ItemInteractions
	if key, ok := item.ItemKey(); ok && doc != nil {
		interactions = doc[key]
	}

	item["liked"] = interactions.HasReaction(domain.ActionLike, userID)
	item["bookmarked"] = interactions.HasReaction(domain.ActionBookMark, userID)
	if len(interactions.Comment) > 0 {
		item["comments"] = interactions.Comment
	} else {
		item["comments"] = noCommentYet
	}
}
