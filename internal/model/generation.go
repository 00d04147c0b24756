package model

// GenerationRequest is a single text-generation call against the active
// provider. Temperature and MaxTokens, when set, override the user's
// configured defaults, which in turn override provider fallbacks.
type GenerationRequest struct {
	Prompt       string
	SystemPrompt string
	Temperature  *float64 // range [0,2]
	MaxTokens    *int     // range [1,8192]
}

// Validate checks the request before any config or network work happens.
func (r *GenerationRequest) Validate() error {
	if r.Prompt == "" {
		return &ValidationError{Field: "prompt", Reason: "must not be empty"}
	}
	if r.Temperature != nil && (*r.Temperature < 0 || *r.Temperature > 2) {
		return &ValidationError{Field: "temperature", Reason: "must be in [0,2]"}
	}
	if r.MaxTokens != nil && (*r.MaxTokens < 1 || *r.MaxTokens > 8192) {
		return &ValidationError{Field: "maxTokens", Reason: "must be in [1,8192]"}
	}
	return nil
}

// GenerationResult is the outcome of a successful generation call.
// It is ephemeral; nothing in this layer persists it.
type GenerationResult struct {
	Text       string
	Provider   ProviderID
	Model      string
	TokensUsed int // 0 when the backend does not report usage
}

// TestConnectionResult reports a connectivity probe outcome as a value.
// The probe never raises; failures land here as Success=false.
type TestConnectionResult struct {
	Success bool
	Message string
}
