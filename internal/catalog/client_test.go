package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestHTTPClient_ChannelItems(t *testing.T) {
	var gotPath, gotCorrelation string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotCorrelation = r.Header.Get("correlation-id")
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"channel":{"id":7,"title":"canal"},"items":[{"id":42,"title":"ep42"}]}`))
	}))
	defer server.Close()

	client := NewHTTPClient(server.URL+"/api/channels", server.URL+"/api/podcasts")
	ctx := WithCorrelationID(context.Background(), "corr-1")

	data, err := client.ChannelItems(ctx, 7)
	if err != nil {
		t.Fatalf("channel items: %v", err)
	}
	if gotPath != "/api/channels/7/" {
		t.Fatalf("unexpected path: %q", gotPath)
	}
	if gotCorrelation != "corr-1" {
		t.Fatalf("expected correlation id forwarded, got %q", gotCorrelation)
	}
	if len(data.Items) != 1 {
		t.Fatalf("expected 1 item, got %d", len(data.Items))
	}
	key, ok := data.Items[0].ItemKey()
	if !ok || key != "42" {
		t.Fatalf("expected numeric id preserved as key 42, got %q,%v", key, ok)
	}
}

func TestHTTPClient_SingleItemChannelKey(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/podcasts/42/" {
			t.Errorf("unexpected path: %q", r.URL.Path)
		}
		w.Write([]byte(`{"id":42,"channel":7,"title":"ep42"}`))
	}))
	defer server.Close()

	client := NewHTTPClient(server.URL+"/api/channels", server.URL+"/api/podcasts")

	item, err := client.SingleItem(context.Background(), 42)
	if err != nil {
		t.Fatalf("single item: %v", err)
	}
	channelID, ok := item.ChannelIDKey()
	if !ok || channelID != 7 {
		t.Fatalf("expected channel 7 from payload, got %d,%v", channelID, ok)
	}
}

func TestHTTPClient_ChannelsPassthrough(t *testing.T) {
	payload := `[{"id":7,"title":"canal"}]`
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(payload))
	}))
	defer server.Close()

	client := NewHTTPClient(server.URL+"/api/channels", server.URL+"/api/podcasts")

	raw, err := client.Channels(context.Background())
	if err != nil {
		t.Fatalf("channels: %v", err)
	}
	if string(raw) != payload {
		t.Fatalf("expected raw passthrough, got %s", raw)
	}
}

func TestHTTPClient_UpstreamErrorKeepsStatusAndBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		w.Write([]byte("catalog down"))
	}))
	defer server.Close()

	client := NewHTTPClient(server.URL+"/api/channels", server.URL+"/api/podcasts")

	_, err := client.ChannelItems(context.Background(), 7)
	var upstream *UpstreamError
	if !errors.As(err, &upstream) {
		t.Fatalf("expected UpstreamError, got %v", err)
	}
	if upstream.Status != http.StatusBadGateway || upstream.Body != "catalog down" {
		t.Fatalf("expected original status and body, got %+v", upstream)
	}
}

func TestMockClient_ImplementsClient(t *testing.T) {
	var _ Client = (*MockClient)(nil)
	var _ Client = (*HTTPClient)(nil)

	mock := &MockClient{ChannelsResponse: json.RawMessage(`[]`)}
	raw, err := mock.Channels(context.Background())
	if err != nil || string(raw) != `[]` {
		t.Fatalf("unexpected mock response: %s,%v", raw, err)
	}
}
