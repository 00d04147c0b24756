package ai

import (
	"net/http"

	"github.com/applydraft/applydraft/internal/model"
)

// Registry is an immutable mapping from provider id to implementation.
// It is built once at startup and injected wherever dispatch happens;
// there is no runtime registration.
type Registry struct {
	providers map[model.ProviderID]Provider
}

// NewRegistry builds the registry with the four supported providers, all
// sharing one HTTP client.
func NewRegistry(client *http.Client) *Registry {
	return NewRegistryWith(
		NewOpenAIProvider("", client),
		NewAnthropicProvider("", client),
		NewOpenRouterProvider("", client),
		NewLocalProvider(client),
	)
}

// NewRegistryWith builds a registry from explicit providers, letting
// tests substitute doubles for any subset.
func NewRegistryWith(providers ...Provider) *Registry {
	m := make(map[model.ProviderID]Provider, len(providers))
	for _, p := range providers {
		m[p.ID()] = p
	}
	return &Registry{providers: m}
}

// Resolve returns the provider for id, or an UnknownProviderError.
func (r *Registry) Resolve(id model.ProviderID) (Provider, error) {
	p, ok := r.providers[id]
	if !ok {
		return nil, &model.UnknownProviderError{ID: string(id)}
	}
	return p, nil
}
