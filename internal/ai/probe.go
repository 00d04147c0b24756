package ai

import (
	"context"
	"fmt"

	"github.com/applydraft/applydraft/internal/model"
)

// The probe sends a fixed minimal request through the normal provider
// path. Small ceiling: the point is reachability, not output.
const (
	probePrompt    = "Reply with the single word: OK"
	probeMaxTokens = 10
)

// TestConnection checks that the selected provider is reachable with the
// user's effective configuration. override, when non-nil, probes that
// provider instead of the active one. Unlike Generate, every failure is
// reported as a value: the probe is itself an error-reporting tool and
// must never raise to its caller.
func (s *Service) TestConnection(ctx context.Context, userID string, override *model.ProviderID) model.TestConnectionResult {
	cfg, err := s.resolver.Effective(ctx, userID)
	if err != nil {
		return model.TestConnectionResult{Success: false, Message: err.Error()}
	}

	target := cfg.Active
	if override != nil {
		target = *override
	}

	provider, err := s.registry.Resolve(target)
	if err != nil {
		return model.TestConnectionResult{Success: false, Message: err.Error()}
	}

	if !provider.Available(cfg) {
		return model.TestConnectionResult{
			Success: false,
			Message: (&model.UnavailableError{Provider: target}).Error(),
		}
	}

	maxTokens := probeMaxTokens
	result, err := provider.Generate(ctx, model.GenerationRequest{
		Prompt:    probePrompt,
		MaxTokens: &maxTokens,
	}, cfg)
	if err != nil {
		s.logger.Debug("connection probe failed", "user", userID, "provider", target, "error", err)
		return model.TestConnectionResult{
			Success: false,
			Message: fmt.Sprintf("connection to %s failed: %v", target, err),
		}
	}

	return model.TestConnectionResult{
		Success: true,
		Message: fmt.Sprintf("connected to %s (model %s)", result.Provider, result.Model),
	}
}
