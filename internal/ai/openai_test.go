package ai

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/applydraft/applydraft/internal/model"
)

// okChatBody is a minimal well-formed chat-completion response.
func okChatBody(content string, totalTokens int) map[string]any {
	return map[string]any{
		"choices": []map[string]any{
			{"message": map[string]any{"content": content}},
		},
		"usage": map[string]any{"total_tokens": totalTokens},
	}
}

func makeTestServer(t *testing.T, statusCode int, body any) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(statusCode)
		if err := json.NewEncoder(w).Encode(body); err != nil {
			t.Errorf("encode response: %v", err)
		}
	}))
	t.Cleanup(srv.Close)
	return srv
}

func cfgWith(id model.ProviderID, key, modelID string) *EffectiveConfig {
	return &EffectiveConfig{
		Active: id,
		Providers: map[model.ProviderID]ProviderSettings{
			id: {APIKey: key, Model: modelID},
		},
	}
}

func TestOpenAI_Generate_Success(t *testing.T) {
	srv := makeTestServer(t, http.StatusOK, okChatBody("Dear hiring team,", 321))

	p := NewOpenAIProvider(srv.URL, srv.Client())
	got, err := p.Generate(context.Background(),
		model.GenerationRequest{Prompt: "write", SystemPrompt: "be brief"},
		cfgWith(model.ProviderOpenAI, "sk-test-12345678", ""))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Text != "Dear hiring team," {
		t.Errorf("Text = %q", got.Text)
	}
	if got.Provider != model.ProviderOpenAI {
		t.Errorf("Provider = %q", got.Provider)
	}
	if got.Model != defaultOpenAIModel {
		t.Errorf("Model = %q, want default %q", got.Model, defaultOpenAIModel)
	}
	if got.TokensUsed != 321 {
		t.Errorf("TokensUsed = %d, want 321", got.TokensUsed)
	}
}

func TestOpenAI_Generate_SendsAuthAndDefaults(t *testing.T) {
	var gotAuth string
	var gotReq chatRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		if err := json.NewDecoder(r.Body).Decode(&gotReq); err != nil {
			t.Errorf("decode request: %v", err)
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(okChatBody("ok", 0))
	}))
	defer srv.Close()

	p := NewOpenAIProvider(srv.URL, srv.Client())
	_, err := p.Generate(context.Background(),
		model.GenerationRequest{Prompt: "hello", SystemPrompt: "sys"},
		cfgWith(model.ProviderOpenAI, "sk-mykey-12345678", ""))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if gotAuth != "Bearer sk-mykey-12345678" {
		t.Errorf("Authorization = %q", gotAuth)
	}
	if gotReq.Model != defaultOpenAIModel {
		t.Errorf("model = %q, want %q", gotReq.Model, defaultOpenAIModel)
	}
	if gotReq.Temperature != defaultTemperature {
		t.Errorf("temperature = %v, want %v", gotReq.Temperature, defaultTemperature)
	}
	if gotReq.MaxTokens != defaultMaxTokens {
		t.Errorf("max_tokens = %d, want %d", gotReq.MaxTokens, defaultMaxTokens)
	}
	if len(gotReq.Messages) != 2 || gotReq.Messages[0].Role != "system" || gotReq.Messages[1].Role != "user" {
		t.Errorf("messages = %+v", gotReq.Messages)
	}
}

func TestOpenAI_Generate_RequestOverridesBeatConfig(t *testing.T) {
	var gotReq chatRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewDecoder(r.Body).Decode(&gotReq)
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(okChatBody("ok", 0))
	}))
	defer srv.Close()

	cfgTemp, cfgMax := 0.2, 512
	reqTemp, reqMax := 1.5, 64
	cfg := cfgWith(model.ProviderOpenAI, "sk-test-12345678", "gpt-4o")
	cfg.Temperature = &cfgTemp
	cfg.MaxTokens = &cfgMax

	p := NewOpenAIProvider(srv.URL, srv.Client())
	_, err := p.Generate(context.Background(),
		model.GenerationRequest{Prompt: "hello", Temperature: &reqTemp, MaxTokens: &reqMax}, cfg)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if gotReq.Model != "gpt-4o" {
		t.Errorf("model = %q, want configured gpt-4o", gotReq.Model)
	}
	if gotReq.Temperature != 1.5 {
		t.Errorf("temperature = %v, want request override 1.5", gotReq.Temperature)
	}
	if gotReq.MaxTokens != 64 {
		t.Errorf("max_tokens = %d, want request override 64", gotReq.MaxTokens)
	}
}

func TestOpenAI_Generate_HTTPErrorCapturesBody(t *testing.T) {
	srv := makeTestServer(t, http.StatusTooManyRequests, map[string]string{"detail": "rate limited"})

	p := NewOpenAIProvider(srv.URL, srv.Client())
	_, err := p.Generate(context.Background(),
		model.GenerationRequest{Prompt: "hello"},
		cfgWith(model.ProviderOpenAI, "sk-test-12345678", ""))

	var pErr *model.ProviderError
	if !errors.As(err, &pErr) {
		t.Fatalf("err = %v, want ProviderError", err)
	}
	if pErr.StatusCode != http.StatusTooManyRequests {
		t.Errorf("StatusCode = %d", pErr.StatusCode)
	}
	if pErr.Body == "" {
		t.Error("Body is empty, want upstream response text")
	}
}

func TestOpenAI_Generate_EmptyChoices(t *testing.T) {
	srv := makeTestServer(t, http.StatusOK, map[string]any{"choices": []any{}})

	p := NewOpenAIProvider(srv.URL, srv.Client())
	_, err := p.Generate(context.Background(),
		model.GenerationRequest{Prompt: "hello"},
		cfgWith(model.ProviderOpenAI, "sk-test-12345678", ""))
	if err == nil {
		t.Fatal("expected error when response has no choices")
	}
}

func TestOpenAI_Available(t *testing.T) {
	p := NewOpenAIProvider("", http.DefaultClient)
	if p.Available(&EffectiveConfig{Providers: map[model.ProviderID]ProviderSettings{}}) {
		t.Error("Available = true with no key")
	}
	if !p.Available(cfgWith(model.ProviderOpenAI, "sk-test-12345678", "")) {
		t.Error("Available = false with key present")
	}
}
