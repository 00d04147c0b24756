package ai

import (
	"context"
	"errors"
	"testing"

	"github.com/applydraft/applydraft/internal/config"
	"github.com/applydraft/applydraft/internal/model"
	"github.com/applydraft/applydraft/internal/store"
)

func strp(s string) *string { return &s }

func provp(p model.ProviderID) *model.ProviderID { return &p }

func TestEffective_NotConfigured(t *testing.T) {
	r := NewResolver(store.NewMemStore(), config.Fallbacks{})
	_, err := r.Effective(context.Background(), "nobody")
	if !errors.Is(err, model.ErrNotConfigured) {
		t.Fatalf("err = %v, want ErrNotConfigured", err)
	}
}

func TestEffective_SecretPrecedence(t *testing.T) {
	tests := []struct {
		name     string
		userKey  string
		fallback string
		want     string
	}{
		{"both present: user wins", "sk-user-12345678", "sk-server-12345678", "sk-user-12345678"},
		{"user only", "sk-user-12345678", "", "sk-user-12345678"},
		{"fallback only", "", "sk-server-12345678", "sk-server-12345678"},
		{"neither: absent", "", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := store.NewMemStore()
			ctx := context.Background()
			if err := s.UpsertProviderConfig(ctx, "u1", model.ProviderConfigPatch{
				OpenAIAPIKey: strp(tt.userKey),
			}); err != nil {
				t.Fatal(err)
			}

			r := NewResolver(s, config.Fallbacks{OpenAIAPIKey: tt.fallback})
			cfg, err := r.Effective(ctx, "u1")
			if err != nil {
				t.Fatalf("Effective: %v", err)
			}
			if got := cfg.Settings(model.ProviderOpenAI).APIKey; got != tt.want {
				t.Errorf("resolved key = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestEffective_LocalEndpointPrecedence(t *testing.T) {
	s := store.NewMemStore()
	ctx := context.Background()
	if err := s.UpsertProviderConfig(ctx, "u1", model.ProviderConfigPatch{}); err != nil {
		t.Fatal(err)
	}

	// No user value, no fallback: built-in default applies.
	r := NewResolver(s, config.Fallbacks{})
	cfg, err := r.Effective(ctx, "u1")
	if err != nil {
		t.Fatal(err)
	}
	if cfg.LocalURL != defaultLocalURL {
		t.Errorf("LocalURL = %q, want built-in default", cfg.LocalURL)
	}

	// Server fallback beats the built-in default.
	r = NewResolver(s, config.Fallbacks{LocalURL: "http://llm.internal:11434", LocalModel: "mistral"})
	cfg, err = r.Effective(ctx, "u1")
	if err != nil {
		t.Fatal(err)
	}
	if cfg.LocalURL != "http://llm.internal:11434" {
		t.Errorf("LocalURL = %q, want server fallback", cfg.LocalURL)
	}
	if cfg.Settings(model.ProviderLocal).Model != "mistral" {
		t.Errorf("local model = %q, want server fallback", cfg.Settings(model.ProviderLocal).Model)
	}

	// User value beats both.
	if err := s.UpsertProviderConfig(ctx, "u1", model.ProviderConfigPatch{
		LocalURL: strp("http://127.0.0.1:8080"),
	}); err != nil {
		t.Fatal(err)
	}
	cfg, err = r.Effective(ctx, "u1")
	if err != nil {
		t.Fatal(err)
	}
	if cfg.LocalURL != "http://127.0.0.1:8080" {
		t.Errorf("LocalURL = %q, want user value", cfg.LocalURL)
	}
}

func TestEffective_RecomputedEveryCall(t *testing.T) {
	s := store.NewMemStore()
	ctx := context.Background()
	if err := s.UpsertProviderConfig(ctx, "u1", model.ProviderConfigPatch{
		ActiveProvider: provp(model.ProviderOpenAI),
	}); err != nil {
		t.Fatal(err)
	}

	r := NewResolver(s, config.Fallbacks{})
	first, err := r.Effective(ctx, "u1")
	if err != nil {
		t.Fatal(err)
	}
	if first.Active != model.ProviderOpenAI {
		t.Fatalf("Active = %q", first.Active)
	}

	// A config edit must be visible on the next resolution.
	if err := s.UpsertProviderConfig(ctx, "u1", model.ProviderConfigPatch{
		ActiveProvider: provp(model.ProviderLocal),
	}); err != nil {
		t.Fatal(err)
	}
	second, err := r.Effective(ctx, "u1")
	if err != nil {
		t.Fatal(err)
	}
	if second.Active != model.ProviderLocal {
		t.Errorf("Active = %q, want edit to take effect", second.Active)
	}
}

func TestEffective_EnvFallback(t *testing.T) {
	t.Setenv(config.EnvAnthropicAPIKey, "sk-ant-env-12345678")

	s := store.NewMemStore()
	ctx := context.Background()
	if err := s.UpsertProviderConfig(ctx, "u1", model.ProviderConfigPatch{}); err != nil {
		t.Fatal(err)
	}

	r := NewResolver(s, config.Fallbacks{})
	cfg, err := r.Effective(ctx, "u1")
	if err != nil {
		t.Fatal(err)
	}
	if got := cfg.Settings(model.ProviderAnthropic).APIKey; got != "sk-ant-env-12345678" {
		t.Errorf("resolved key = %q, want env fallback", got)
	}
}
