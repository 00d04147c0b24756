package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/applydraft/applydraft/internal/model"
)

const (
	anthropicBaseURL = "https://api.anthropic.com/v1"
	anthropicVersion = "2023-06-01"
)

// AnthropicProvider calls the Anthropic /v1/messages endpoint. Unlike
// the OpenAI-style providers, the system prompt is a top-level field and
// token usage is reported as separate input and output counts.
type AnthropicProvider struct {
	baseURL string
	client  *http.Client
}

// NewAnthropicProvider creates a provider targeting the Anthropic API.
// baseURL is overridable for tests; pass "" for the real endpoint.
func NewAnthropicProvider(baseURL string, client *http.Client) *AnthropicProvider {
	if baseURL == "" {
		baseURL = anthropicBaseURL
	}
	return &AnthropicProvider{baseURL: baseURL, client: client}
}

func (p *AnthropicProvider) ID() model.ProviderID {
	return model.ProviderAnthropic
}

func (p *AnthropicProvider) Available(cfg *EffectiveConfig) bool {
	return cfg.Settings(model.ProviderAnthropic).APIKey != ""
}

// messagesRequest mirrors the Anthropic /v1/messages request body.
type messagesRequest struct {
	Model       string        `json:"model"`
	MaxTokens   int           `json:"max_tokens"`
	Temperature float64       `json:"temperature"`
	System      string        `json:"system,omitempty"`
	Messages    []chatMessage `json:"messages"`
}

// messagesResponse mirrors the relevant fields of the Anthropic response.
type messagesResponse struct {
	Content []struct {
		Text string `json:"text"`
	} `json:"content"`
	Usage struct {
		InputTokens  int `json:"input_tokens"`
		OutputTokens int `json:"output_tokens"`
	} `json:"usage"`
	Error *struct {
		Message string `json:"message"`
		Type    string `json:"type"`
	} `json:"error,omitempty"`
}

func (p *AnthropicProvider) Generate(ctx context.Context, req model.GenerationRequest, cfg *EffectiveConfig) (*model.GenerationResult, error) {
	temperature, maxTokens := resolveParams(req, cfg)
	modelID := resolveModel(cfg, model.ProviderAnthropic, defaultAnthropicModel)

	body := messagesRequest{
		Model:       modelID,
		MaxTokens:   maxTokens,
		Temperature: temperature,
		System:      req.SystemPrompt,
		Messages:    []chatMessage{{Role: "user", Content: req.Prompt}},
	}

	payload, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("marshal messages request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, p.baseURL+"/messages", bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("create messages request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("x-api-key", cfg.Settings(model.ProviderAnthropic).APIKey)
	httpReq.Header.Set("anthropic-version", anthropicVersion)

	resp, err := p.client.Do(httpReq)
	if err != nil {
		return nil, &model.ProviderError{Provider: model.ProviderAnthropic, Err: err}
	}
	defer resp.Body.Close()

	respBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &model.ProviderError{Provider: model.ProviderAnthropic, Err: fmt.Errorf("read response: %w", err)}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &model.ProviderError{
			Provider:   model.ProviderAnthropic,
			StatusCode: resp.StatusCode,
			Body:       string(respBytes),
		}
	}

	var msgResp messagesResponse
	if err := json.Unmarshal(respBytes, &msgResp); err != nil {
		return nil, &model.ProviderError{Provider: model.ProviderAnthropic, Err: fmt.Errorf("parse response: %w", err)}
	}

	if msgResp.Error != nil {
		return nil, &model.ProviderError{
			Provider: model.ProviderAnthropic,
			Err:      fmt.Errorf("upstream error (%s): %s", msgResp.Error.Type, msgResp.Error.Message),
		}
	}

	if len(msgResp.Content) == 0 {
		return nil, &model.ProviderError{Provider: model.ProviderAnthropic, Err: fmt.Errorf("response contained no content")}
	}

	return &model.GenerationResult{
		Text:       msgResp.Content[0].Text,
		Provider:   model.ProviderAnthropic,
		Model:      modelID,
		TokensUsed: msgResp.Usage.InputTokens + msgResp.Usage.OutputTokens,
	}, nil
}
