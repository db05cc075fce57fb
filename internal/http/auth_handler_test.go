package http

import (
	"net/http"
	"testing"
)

func TestRefreshRotatesPair(t *testing.T) {
	env := newTestEnv(t)

	pair, err := env.issuer.IssuePair(t.Context(), "u1")
	if err != nil {
		t.Fatalf("issue pair: %v", err)
	}

	rec := env.do(t, http.MethodPost, "/auth/refresh", "", map[string]any{
		"refresh_token": pair.RefreshToken,
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	body := decodeBody(t, rec)
	tokens, ok := body["tokens"].(map[string]any)
	if !ok || tokens["access_token"] == "" || tokens["refresh_token"] == "" {
		t.Fatalf("expected new token pair, got %v", body)
	}

	// El refresh usado queda revocado: la repetición falla.
	rec = env.do(t, http.MethodPost, "/auth/refresh", "", map[string]any{
		"refresh_token": pair.RefreshToken,
	})
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for replayed refresh, got %d", rec.Code)
	}
}

func TestRefreshRejectsAccessToken(t *testing.T) {
	env := newTestEnv(t)

	pair, err := env.issuer.IssuePair(t.Context(), "u1")
	if err != nil {
		t.Fatalf("issue pair: %v", err)
	}

	rec := env.do(t, http.MethodPost, "/auth/refresh", "", map[string]any{
		"refresh_token": pair.AccessToken,
	})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for access token in refresh, got %d", rec.Code)
	}
}

func TestLogoutRevokesSession(t *testing.T) {
	env := newTestEnv(t)
	seedChannelItems(env)
	token := env.accessToken(t, "u1")

	rec := env.do(t, http.MethodPost, "/auth/logout", token, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 on logout, got %d: %s", rec.Code, rec.Body.String())
	}

	// El token deja de servir de inmediato aunque su firma siga vigente.
	rec = env.do(t, http.MethodGet, "/api/channels/7", token, nil)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 after logout, got %d", rec.Code)
	}
}
