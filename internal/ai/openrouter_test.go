package ai

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/applydraft/applydraft/internal/model"
)

func TestOpenRouter_Generate_AttributionHeaders(t *testing.T) {
	var gotHeaders http.Header
	var gotReq chatRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotHeaders = r.Header.Clone()
		json.NewDecoder(r.Body).Decode(&gotReq)
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(okChatBody("routed", 42))
	}))
	defer srv.Close()

	p := NewOpenRouterProvider(srv.URL, srv.Client())
	got, err := p.Generate(context.Background(),
		model.GenerationRequest{Prompt: "hello"},
		cfgWith(model.ProviderOpenRouter, "sk-or-12345678", ""))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if gotHeaders.Get("Authorization") != "Bearer sk-or-12345678" {
		t.Errorf("Authorization = %q", gotHeaders.Get("Authorization"))
	}
	if gotHeaders.Get("HTTP-Referer") == "" {
		t.Error("HTTP-Referer attribution header missing")
	}
	if gotHeaders.Get("X-Title") == "" {
		t.Error("X-Title attribution header missing")
	}
	if gotReq.Model != defaultOpenRouterModel {
		t.Errorf("model = %q, want default %q", gotReq.Model, defaultOpenRouterModel)
	}
	if got.TokensUsed != 42 {
		t.Errorf("TokensUsed = %d", got.TokensUsed)
	}
}

func TestOpenRouter_Available(t *testing.T) {
	p := NewOpenRouterProvider("", http.DefaultClient)
	if p.Available(&EffectiveConfig{Providers: map[model.ProviderID]ProviderSettings{}}) {
		t.Error("Available = true with no key")
	}
	if !p.Available(cfgWith(model.ProviderOpenRouter, "sk-or-12345678", "")) {
		t.Error("Available = false with key present")
	}
}
