// Package ai dispatches text generation across interchangeable LLM
// backends. Four providers sit behind one interface; a registry resolves
// them by id, a resolver merges user config with server-level fallbacks,
// and a dispatcher composes the two for each call.
package ai

import (
	"context"

	"github.com/applydraft/applydraft/internal/model"
)

// Provider is one concrete LLM backend behind the shared interface.
type Provider interface {
	// ID returns the provider's identifier in the closed provider set.
	ID() model.ProviderID

	// Available reports whether the provider has a usable credential (or,
	// for the local server, an endpoint) in the resolved config. It never
	// performs network I/O.
	Available(cfg *EffectiveConfig) bool

	// Generate performs one generation call. A single attempt, no retry:
	// LLM calls are costly enough that retrying without an explicit
	// budget is worse than surfacing the failure.
	Generate(ctx context.Context, req model.GenerationRequest, cfg *EffectiveConfig) (*model.GenerationResult, error)
}

// ProviderSettings is one provider's resolved credential and model.
type ProviderSettings struct {
	APIKey string
	Model  string // empty = use the provider's default model
}

// EffectiveConfig is a derived, per-call snapshot of a user's provider
// configuration with server-level fallbacks already merged in. It is
// never persisted and never written back.
type EffectiveConfig struct {
	Active      model.ProviderID
	Providers   map[model.ProviderID]ProviderSettings
	LocalURL    string
	Temperature *float64
	MaxTokens   *int
}

// Settings returns the resolved settings for a provider, zero-valued if
// none were configured.
func (c *EffectiveConfig) Settings(id model.ProviderID) ProviderSettings {
	return c.Providers[id]
}

// Provider-hardcoded fallbacks, applied only when neither the request
// nor the user's config supplies a value.
const (
	defaultTemperature = 0.7
	defaultMaxTokens   = 1024
)

// Default models per provider, used when no model is configured.
const (
	defaultOpenAIModel     = "gpt-4o-mini"
	defaultAnthropicModel  = "claude-3-5-sonnet-20241022"
	defaultOpenRouterModel = "anthropic/claude-3.5-sonnet"
	defaultLocalModel      = "llama3"
	defaultLocalURL        = "http://localhost:11434"
)

// resolveParams applies the defaulting chain for sampling parameters:
// request override > configured default > hardcoded fallback.
func resolveParams(req model.GenerationRequest, cfg *EffectiveConfig) (temperature float64, maxTokens int) {
	temperature = defaultTemperature
	if cfg.Temperature != nil {
		temperature = *cfg.Temperature
	}
	if req.Temperature != nil {
		temperature = *req.Temperature
	}

	maxTokens = defaultMaxTokens
	if cfg.MaxTokens != nil {
		maxTokens = *cfg.MaxTokens
	}
	if req.MaxTokens != nil {
		maxTokens = *req.MaxTokens
	}
	return temperature, maxTokens
}

// resolveModel returns the configured model for a provider or the given
// default when none is set.
func resolveModel(cfg *EffectiveConfig, id model.ProviderID, fallback string) string {
	if m := cfg.Settings(id).Model; m != "" {
		return m
	}
	return fallback
}
