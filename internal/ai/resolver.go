package ai

import (
	"context"

	"github.com/applydraft/applydraft/internal/config"
	"github.com/applydraft/applydraft/internal/model"
)

// Resolver derives an EffectiveConfig for a user by merging their
// persisted config with server-level fallbacks. The merge runs fresh on
// every call so configuration edits take effect on the next request; no
// snapshot is cached or written back.
type Resolver struct {
	configs   model.ConfigStore
	fallbacks config.Fallbacks
}

func NewResolver(configs model.ConfigStore, fallbacks config.Fallbacks) *Resolver {
	return &Resolver{configs: configs, fallbacks: fallbacks}
}

// Effective loads the user's persisted config and resolves each secret
// and the local endpoint. Precedence per value: user-supplied, then
// server fallback (config file, then environment), then absent. Returns
// model.ErrNotConfigured when the user has no config row.
func (r *Resolver) Effective(ctx context.Context, userID string) (*EffectiveConfig, error) {
	stored, err := r.configs.GetProviderConfig(ctx, userID)
	if err != nil {
		return nil, err
	}

	// Environment is consulted per call so operator changes apply without
	// a restart.
	fb := r.fallbacks.WithEnv()

	firstNonEmpty := func(values ...string) string {
		for _, v := range values {
			if v != "" {
				return v
			}
		}
		return ""
	}

	return &EffectiveConfig{
		Active: stored.ActiveProvider,
		Providers: map[model.ProviderID]ProviderSettings{
			model.ProviderOpenAI: {
				APIKey: firstNonEmpty(stored.OpenAIAPIKey, fb.OpenAIAPIKey),
				Model:  stored.OpenAIModel,
			},
			model.ProviderAnthropic: {
				APIKey: firstNonEmpty(stored.AnthropicAPIKey, fb.AnthropicAPIKey),
				Model:  stored.AnthropicModel,
			},
			model.ProviderOpenRouter: {
				APIKey: firstNonEmpty(stored.OpenRouterAPIKey, fb.OpenRouterAPIKey),
				Model:  stored.OpenRouterModel,
			},
			model.ProviderLocal: {
				Model: firstNonEmpty(stored.LocalModel, fb.LocalModel),
			},
		},
		LocalURL:    firstNonEmpty(stored.LocalURL, fb.LocalURL, defaultLocalURL),
		Temperature: stored.Temperature,
		MaxTokens:   stored.MaxTokens,
	}, nil
}
