package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"podcast-hub/internal/domain"
)

// Client define la interfaz hacia el catálogo externo de canales y
// podcasts. Este servicio solo lo consulta por id; nunca escribe.
type Client interface {
	Channels(ctx context.Context) (json.RawMessage, error)
	ChannelItems(ctx context.Context, channelID int64) (domain.ChannelItems, error)
	SingleItem(ctx context.Context, podcastID int64) (domain.CatalogItem, error)
}

// UpstreamError conserva el status y el cuerpo devueltos por el catálogo
// para que el llamador reciba el contexto original sin traducción.
type UpstreamError struct {
	Status int
	Body   string
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("catalog upstream status %d", e.Status)
}

type correlationKey struct{}

// WithCorrelationID guarda el correlation id de la request en el contexto
// para que el cliente lo reenvíe al catálogo.
func WithCorrelationID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, correlationKey{}, id)
}

// CorrelationID recupera el correlation id del contexto, si existe.
func CorrelationID(ctx context.Context) string {
	id, _ := ctx.Value(correlationKey{}).(string)
	return id
}

// HTTPClient implementa Client contra el servicio de catálogo.
type HTTPClient struct {
	channelListURL string
	podcastURL     string
	client         *http.Client
}

func NewHTTPClient(channelListURL, podcastURL string) *HTTPClient {
	return &HTTPClient{
		channelListURL: strings.TrimRight(channelListURL, "/"),
		podcastURL:     strings.TrimRight(podcastURL, "/"),
		client:         &http.Client{Timeout: 10 * time.Second},
	}
}

func (c *HTTPClient) Channels(ctx context.Context) (json.RawMessage, error) {
	body, err := c.get(ctx, c.channelListURL+"/")
	if err != nil {
		return nil, err
	}
	return json.RawMessage(body), nil
}

func (c *HTTPClient) ChannelItems(ctx context.Context, channelID int64) (domain.ChannelItems, error) {
	body, err := c.get(ctx, fmt.Sprintf("%s/%d/", c.channelListURL, channelID))
	if err != nil {
		return domain.ChannelItems{}, err
	}
	var out domain.ChannelItems
	if err := decode(body, &out); err != nil {
		return domain.ChannelItems{}, fmt.Errorf("decode channel items: %w", err)
	}
	return out, nil
}

func (c *HTTPClient) SingleItem(ctx context.Context, podcastID int64) (domain.CatalogItem, error) {
	body, err := c.get(ctx, fmt.Sprintf("%s/%d/", c.podcastURL, podcastID))
	if err != nil {
		return nil, err
	}
	var out domain.CatalogItem
	if err := decode(body, &out); err != nil {
		return nil, fmt.Errorf("decode podcast item: %w", err)
	}
	return out, nil
}

func (c *HTTPClient) get(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	if id := CorrelationID(ctx); id != "" {
		req.Header.Set("correlation-id", id)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("catalog request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read catalog response: %w", err)
	}
	if resp.StatusCode >= 400 {
		return nil, &UpstreamError{Status: resp.StatusCode, Body: string(body)}
	}
	return body, nil
}

// decode usa json.Number para que los ids numéricos conserven su forma
// textual al cruzarlos con las claves del documento de interacciones.
func decode(body []byte, out any) error {
	dec := json.NewDecoder(strings.NewReader(string(body)))
	dec.UseNumber()
	return dec.Decode(out)
}
