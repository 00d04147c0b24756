package ai

import (
	"context"
	"net/http"
	"strings"

	"github.com/applydraft/applydraft/internal/model"
)

// LocalProvider posts OpenAI-style chat completions to a self-hosted
// server (ollama, llama.cpp, vLLM, anything exposing the compatible
// endpoint) at a user-configured base URL. No credential is required.
type LocalProvider struct {
	client *http.Client
}

func NewLocalProvider(client *http.Client) *LocalProvider {
	return &LocalProvider{client: client}
}

func (p *LocalProvider) ID() model.ProviderID {
	return model.ProviderLocal
}

func (p *LocalProvider) Available(cfg *EffectiveConfig) bool {
	return cfg.LocalURL != ""
}

func (p *LocalProvider) Generate(ctx context.Context, req model.GenerationRequest, cfg *EffectiveConfig) (*model.GenerationResult, error) {
	temperature, maxTokens := resolveParams(req, cfg)
	modelID := resolveModel(cfg, model.ProviderLocal, defaultLocalModel)

	base := strings.TrimRight(cfg.LocalURL, "/")

	resp, err := postChat(ctx, p.client, model.ProviderLocal, base+"/v1/chat/completions", nil,
		chatRequest{
			Model:       modelID,
			Messages:    buildMessages(req),
			Temperature: temperature,
			MaxTokens:   maxTokens,
		})
	if err != nil {
		return nil, err
	}

	// Most local servers omit usage accounting; TokensUsed stays 0 then.
	return &model.GenerationResult{
		Text:       resp.Choices[0].Message.Content,
		Provider:   model.ProviderLocal,
		Model:      modelID,
		TokensUsed: resp.Usage.TotalTokens,
	}, nil
}
