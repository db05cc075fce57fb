package catalog

import (
	"context"
	"encoding/json"

	"podcast-hub/internal/domain"
)

// MockClient permite tests sin un catálogo real.
type MockClient struct {
	ChannelsResponse     json.RawMessage
	ChannelItemsResponse domain.ChannelItems
	SingleItemResponse   domain.CatalogItem
	Err                  error

	ChannelItemsCalls int
	SingleItemCalls   int
}

func (m *MockClient) Channels(_ context.Context) (json.RawMessage, error) {
	return m.ChannelsResponse, m.Err
}

func (m *MockClient) ChannelItems(_ context.Context, _ int64) (domain.ChannelItems, error) {
	m.ChannelItemsCalls++
	return m.ChannelItemsResponse, m.Err
}

func (m *MockClient) SingleItem(_ context.Context, _ int64) (domain.CatalogItem, error) {
	m.SingleItemCalls++
	return m.SingleItemResponse, m.Err
}
