package model

import "fmt"

// ProviderID identifies one of the supported LLM backends.
type ProviderID string

const (
	ProviderOpenAI     ProviderID = "openai"
	ProviderAnthropic  ProviderID = "anthropic"
	ProviderOpenRouter ProviderID = "openrouter"
	ProviderLocal      ProviderID = "local"
)

// AllProviders lists every supported provider, in display order.
var AllProviders = []ProviderID{
	ProviderOpenAI,
	ProviderAnthropic,
	ProviderOpenRouter,
	ProviderLocal,
}

// ParseProvider validates a raw string against the supported provider set.
func ParseProvider(s string) (ProviderID, error) {
	for _, id := range AllProviders {
		if string(id) == s {
			return id, nil
		}
	}
	return "", &UnknownProviderError{ID: s}
}

// ProviderConfig is the persisted per-user provider configuration row.
// One row exists per user once created; updates merge via upsert.
// Empty strings mean "not set"; nil pointers mean "not set" for numerics
// (temperature 0 is a valid value, so it cannot double as a sentinel).
type ProviderConfig struct {
	UserID         string
	ActiveProvider ProviderID

	OpenAIAPIKey     string
	OpenAIModel      string
	AnthropicAPIKey  string
	AnthropicModel   string
	OpenRouterAPIKey string
	OpenRouterModel  string
	LocalURL         string
	LocalModel       string

	Temperature *float64 // shared default, range [0,2]
	MaxTokens   *int     // shared default, range [1,8192]
}

// ProviderConfigPatch carries a partial update for UpsertProviderConfig.
// Nil fields are left unchanged; non-nil fields overwrite, including
// pointers to the empty string, which clear a stored value.
type ProviderConfigPatch struct {
	ActiveProvider *ProviderID

	OpenAIAPIKey     *string
	OpenAIModel      *string
	AnthropicAPIKey  *string
	AnthropicModel   *string
	OpenRouterAPIKey *string
	OpenRouterModel  *string
	LocalURL         *string
	LocalModel       *string

	Temperature *float64
	MaxTokens   *int
}

// Validate checks range constraints on the patch before it is persisted.
func (p *ProviderConfigPatch) Validate() error {
	if p.ActiveProvider != nil {
		if _, err := ParseProvider(string(*p.ActiveProvider)); err != nil {
			return err
		}
	}
	if p.Temperature != nil && (*p.Temperature < 0 || *p.Temperature > 2) {
		return &ValidationError{Field: "temperature", Reason: fmt.Sprintf("must be in [0,2], got %v", *p.Temperature)}
	}
	if p.MaxTokens != nil && (*p.MaxTokens < 1 || *p.MaxTokens > 8192) {
		return &ValidationError{Field: "maxTokens", Reason: fmt.Sprintf("must be in [1,8192], got %d", *p.MaxTokens)}
	}
	return nil
}
