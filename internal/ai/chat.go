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

// chatRequest mirrors the OpenAI /chat/completions request body. The
// openai, openrouter, and local providers all speak this shape.
type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
	MaxTokens   int           `json:"max_tokens"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// chatResponse mirrors the relevant fields of an OpenAI-style response.
type chatResponse struct {
	Model   string `json:"model"`
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
	Usage struct {
		TotalTokens int `json:"total_tokens"`
	} `json:"usage"`
	Error *struct {
		Message string `json:"message"`
		Type    string `json:"type"`
	} `json:"error,omitempty"`
}

// buildMessages assembles the messages array, including the system
// message only when one was supplied.
func buildMessages(req model.GenerationRequest) []chatMessage {
	var msgs []chatMessage
	if req.SystemPrompt != "" {
		msgs = append(msgs, chatMessage{Role: "system", Content: req.SystemPrompt})
	}
	return append(msgs, chatMessage{Role: "user", Content: req.Prompt})
}

// postChat sends an OpenAI-style chat completion and parses the narrow
// response type. Non-2xx responses become a ProviderError carrying the
// upstream status and body text verbatim.
func postChat(ctx context.Context, client *http.Client, providerID model.ProviderID, url string, headers map[string]string, body chatRequest) (*chatResponse, error) {
	payload, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("marshal chat request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("create chat request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, &model.ProviderError{Provider: providerID, Err: err}
	}
	defer resp.Body.Close()

	respBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &model.ProviderError{Provider: providerID, Err: fmt.Errorf("read response: %w", err)}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &model.ProviderError{
			Provider:   providerID,
			StatusCode: resp.StatusCode,
			Body:       string(respBytes),
		}
	}

	var chatResp chatResponse
	if err := json.Unmarshal(respBytes, &chatResp); err != nil {
		return nil, &model.ProviderError{Provider: providerID, Err: fmt.Errorf("parse response: %w", err)}
	}

	if chatResp.Error != nil {
		return nil, &model.ProviderError{
			Provider: providerID,
			Err:      fmt.Errorf("upstream error (%s): %s", chatResp.Error.Type, chatResp.Error.Message),
		}
	}

	if len(chatResp.Choices) == 0 {
		return nil, &model.ProviderError{Provider: providerID, Err: fmt.Errorf("response contained no choices")}
	}

	return &chatResp, nil
}
