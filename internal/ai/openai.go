package ai

import (
	"context"
	"net/http"

	"github.com/applydraft/applydraft/internal/model"
)

const openAIBaseURL = "https://api.openai.com/v1"

// OpenAIProvider calls the OpenAI /v1/chat/completions endpoint.
type OpenAIProvider struct {
	baseURL string
	client  *http.Client
}

// NewOpenAIProvider creates a provider targeting the OpenAI API. baseURL
// is overridable for tests; pass "" for the real endpoint.
func NewOpenAIProvider(baseURL string, client *http.Client) *OpenAIProvider {
	if baseURL == "" {
		baseURL = openAIBaseURL
	}
	return &OpenAIProvider{baseURL: baseURL, client: client}
}

func (p *OpenAIProvider) ID() model.ProviderID {
	return model.ProviderOpenAI
}

func (p *OpenAIProvider) Available(cfg *EffectiveConfig) bool {
	return cfg.Settings(model.ProviderOpenAI).APIKey != ""
}

func (p *OpenAIProvider) Generate(ctx context.Context, req model.GenerationRequest, cfg *EffectiveConfig) (*model.GenerationResult, error) {
	temperature, maxTokens := resolveParams(req, cfg)
	modelID := resolveModel(cfg, model.ProviderOpenAI, defaultOpenAIModel)

	resp, err := postChat(ctx, p.client, model.ProviderOpenAI, p.baseURL+"/chat/completions",
		map[string]string{"Authorization": "Bearer " + cfg.Settings(model.ProviderOpenAI).APIKey},
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
		Provider:   model.ProviderOpenAI,
		Model:      modelID,
		TokensUsed: resp.Usage.TotalTokens,
	}, nil
}
