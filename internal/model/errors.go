package model

import (
	"errors"
	"fmt"
)

// ErrNotConfigured is returned when a user has no provider config row.
var ErrNotConfigured = errors.New("no provider configuration found; run `applydraft config set` first")

// ErrProfileNotFound is returned when a user has no stored candidate profile.
var ErrProfileNotFound = errors.New("no candidate profile found; run `applydraft profile set` first")

// ValidationError reports a malformed request field. It is surfaced
// verbatim to the caller with the offending field named.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// UnknownProviderError reports an identifier outside the supported set.
type UnknownProviderError struct {
	ID string
}

func (e *UnknownProviderError) Error() string {
	return fmt.Sprintf("unknown provider %q (supported: openai, anthropic, openrouter, local)", e.ID)
}

// UnavailableError means the selected provider has no usable credential,
// so no network call was attempted.
type UnavailableError struct {
	Provider ProviderID
}

func (e *UnavailableError) Error() string {
	if e.Provider == ProviderLocal {
		return "local provider is not configured; set a server URL or start a server on the default endpoint"
	}
	return fmt.Sprintf("%s is not configured; add an API key for it or switch the active provider", e.Provider)
}

// ProviderError wraps an upstream HTTP failure or network error from one
// concrete backend. The upstream message is kept intact so operators can
// act on it.
type ProviderError struct {
	Provider   ProviderID
	StatusCode int // 0 for transport-level failures
	Body       string
	Err        error
}

func (e *ProviderError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("%s returned HTTP %d: %s", e.Provider, e.StatusCode, e.Body)
	}
	return fmt.Sprintf("%s request failed: %v", e.Provider, e.Err)
}

func (e *ProviderError) Unwrap() error {
	return e.Err
}

// GenerationError re-wraps a provider failure with the attempted provider
// id so callers know which backend was in play.
type GenerationError struct {
	Provider ProviderID
	Err      error
}

func (e *GenerationError) Error() string {
	return fmt.Sprintf("generation via %s failed: %v", e.Provider, e.Err)
}

func (e *GenerationError) Unwrap() error {
	return e.Err
}
