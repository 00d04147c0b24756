package ai

import (
	"context"
	"net/http"

	"github.com/applydraft/applydraft/internal/model"
)

const (
	openRouterBaseURL = "https://openrouter.ai/api/v1"

	// OpenRouter asks callers to identify themselves via attribution
	// headers; requests without them are deprioritized.
	openRouterReferer = "https://github.com/applydraft/applydraft"
	openRouterTitle   = "applydraft"
)

// OpenRouterProvider routes OpenAI-style chat completions through the
// OpenRouter gateway, which exposes many upstream models under one key.
type OpenRouterProvider struct {
	baseURL string
	client  *http.Client
}

// NewOpenRouterProvider creates a provider targeting OpenRouter. baseURL
// is overridable for tests; pass "" for the real endpoint.
func NewOpenRouterProvider(baseURL string, client *http.Client) *OpenRouterProvider {
	if baseURL == "" {
		baseURL = openRouterBaseURL
	}
	return &OpenRouterProvider{baseURL: baseURL, client: client}
}

func (p *OpenRouterProvider) ID() model.ProviderID {
	return model.ProviderOpenRouter
}

func (p *OpenRouterProvider) Available(cfg *EffectiveConfig) bool {
	return cfg.Settings(model.ProviderOpenRouter).APIKey != ""
}

func (p *OpenRouterProvider) Generate(ctx context.Context, req model.GenerationRequest, cfg *EffectiveConfig) (*model.GenerationResult, error) {
	temperature, maxTokens := resolveParams(req, cfg)
	modelID := resolveModel(cfg, model.ProviderOpenRouter, defaultOpenRouterModel)

	resp, err := postChat(ctx, p.client, model.ProviderOpenRouter, p.baseURL+"/chat/completions",
		map[string]string{
			"Authorization": "Bearer " + cfg.Settings(model.ProviderOpenRouter).APIKey,
			"HTTP-Referer":  openRouterReferer,
			"X-Title":       openRouterTitle,
		},
		chatRequest{
			Model:       modelID,
			Messages:    buildMessages(req),
			Temperature: temperature,
			MaxTokens:   maxTokens,
		})
	if err != nil {
		return nil, err
	}

	return &model.GenerationResult{
		Text:       resp.Choices[0].Message.Content,
		Provider:   model.ProviderOpenRouter,
		Model:      modelID,
		TokensUsed: resp.Usage.TotalTokens,
	}, nil
}
