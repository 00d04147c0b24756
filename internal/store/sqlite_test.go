package store

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/applydraft/applydraft/internal/model"
)

func newTestStore(t *testing.T) *SQLiteStore {
	t.Helper()
	s, err := NewSQLiteStore(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("NewSQLiteStore: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func strp(s string) *string   { return &s }
func f64p(f float64) *float64 { return &f }
func intp(i int) *int         { return &i }

func provp(p model.ProviderID) *model.ProviderID { return &p }

func TestGetProviderConfig_NotConfigured(t *testing.T) {
	s := newTestStore(t)
	_, err := s.GetProviderConfig(context.Background(), "nobody")
	if !errors.Is(err, model.ErrNotConfigured) {
		t.Fatalf("err = %v, want ErrNotConfigured", err)
	}
}

func TestUpsertProviderConfig_CreatesThenMerges(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	err := s.UpsertProviderConfig(ctx, "u1", model.ProviderConfigPatch{
		ActiveProvider:  provp(model.ProviderAnthropic),
		AnthropicAPIKey: strp("sk-ant-12345678"),
		Temperature:     f64p(0.3),
	})
	if err != nil {
		t.Fatalf("first upsert: %v", err)
	}

	// Second upsert touches different fields and must not clobber the first.
	err = s.UpsertProviderConfig(ctx, "u1", model.ProviderConfigPatch{
		OpenAIAPIKey: strp("sk-oai-12345678"),
		MaxTokens:    intp(2048),
	})
	if err != nil {
		t.Fatalf("second upsert: %v", err)
	}

	cfg, err := s.GetProviderConfig(ctx, "u1")
	if err != nil {
		t.Fatalf("GetProviderConfig: %v", err)
	}
	if cfg.ActiveProvider != model.ProviderAnthropic {
		t.Errorf("ActiveProvider = %q", cfg.ActiveProvider)
	}
	if cfg.AnthropicAPIKey != "sk-ant-12345678" {
		t.Errorf("AnthropicAPIKey = %q", cfg.AnthropicAPIKey)
	}
	if cfg.OpenAIAPIKey != "sk-oai-12345678" {
		t.Errorf("OpenAIAPIKey = %q", cfg.OpenAIAPIKey)
	}
	if cfg.Temperature == nil || *cfg.Temperature != 0.3 {
		t.Errorf("Temperature = %v, want 0.3", cfg.Temperature)
	}
	if cfg.MaxTokens == nil || *cfg.MaxTokens != 2048 {
		t.Errorf("MaxTokens = %v, want 2048", cfg.MaxTokens)
	}
}

func TestUpsertProviderConfig_ClearsWithEmptyString(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	if err := s.UpsertProviderConfig(ctx, "u1", model.ProviderConfigPatch{
		OpenAIAPIKey: strp("sk-oai-12345678"),
	}); err != nil {
		t.Fatal(err)
	}
	if err := s.UpsertProviderConfig(ctx, "u1", model.ProviderConfigPatch{
		OpenAIAPIKey: strp(""),
	}); err != nil {
		t.Fatal(err)
	}

	cfg, err := s.GetProviderConfig(ctx, "u1")
	if err != nil {
		t.Fatal(err)
	}
	if cfg.OpenAIAPIKey != "" {
		t.Errorf("OpenAIAPIKey = %q, want cleared", cfg.OpenAIAPIKey)
	}
}

func TestUpsertProviderConfig_RejectsBadRanges(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	var vErr *model.ValidationError
	err := s.UpsertProviderConfig(ctx, "u1", model.ProviderConfigPatch{Temperature: f64p(3.5)})
	if !errors.As(err, &vErr) {
		t.Errorf("temperature 3.5: err = %v, want ValidationError", err)
	}
	err = s.UpsertProviderConfig(ctx, "u1", model.ProviderConfigPatch{MaxTokens: intp(0)})
	if !errors.As(err, &vErr) {
		t.Errorf("maxTokens 0: err = %v, want ValidationError", err)
	}

	bad := model.ProviderID("grok")
	err = s.UpsertProviderConfig(ctx, "u1", model.ProviderConfigPatch{ActiveProvider: &bad})
	var uErr *model.UnknownProviderError
	if !errors.As(err, &uErr) {
		t.Errorf("bad provider: err = %v, want UnknownProviderError", err)
	}
}

func TestProfile_RoundTrip(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	_, err := s.GetProfile(ctx, "u1")
	if !errors.Is(err, model.ErrProfileNotFound) {
		t.Fatalf("err = %v, want ErrProfileNotFound", err)
	}

	want := &model.CandidateProfile{
		FirstName: "Ada",
		Skills:    []string{"Go"},
		Experience: []model.Experience{
			{Title: "Engineer", Company: "Acme", Description: "Built systems"},
		},
	}
	if err := s.PutProfile(ctx, "u1", want); err != nil {
		t.Fatalf("PutProfile: %v", err)
	}

	got, err := s.GetProfile(ctx, "u1")
	if err != nil {
		t.Fatalf("GetProfile: %v", err)
	}
	if got.FirstName != "Ada" || len(got.Experience) != 1 || got.Experience[0].Company != "Acme" {
		t.Errorf("profile round-trip mismatch: %+v", got)
	}
}
