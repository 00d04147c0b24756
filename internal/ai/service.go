package ai

import (
	"context"
	"log/slog"

	"github.com/applydraft/applydraft/internal/model"
	"github.com/applydraft/applydraft/internal/prompt"
)

// Service composes the resolver, registry, and prompt builders to
// execute generation requests. Every call is stateless: config is read
// fresh, one provider attempt is made, and nothing is retried.
type Service struct {
	resolver *Resolver
	registry *Registry
	profiles model.ProfileStore
	logger   *slog.Logger
}

func NewService(resolver *Resolver, registry *Registry, profiles model.ProfileStore, logger *slog.Logger) *Service {
	return &Service{
		resolver: resolver,
		registry: registry,
		profiles: profiles,
		logger:   logger,
	}
}

// Generate resolves the user's active provider and performs one
// generation attempt. Failure modes, in order: ValidationError,
// ErrNotConfigured, UnknownProviderError, UnavailableError (checked
// before any network call), then GenerationError wrapping whatever the
// provider returned.
func (s *Service) Generate(ctx context.Context, userID string, req model.GenerationRequest) (*model.GenerationResult, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	cfg, err := s.resolver.Effective(ctx, userID)
	if err != nil {
		return nil, err
	}

	provider, err := s.registry.Resolve(cfg.Active)
	if err != nil {
		return nil, err
	}

	if !provider.Available(cfg) {
		return nil, &model.UnavailableError{Provider: cfg.Active}
	}

	s.logger.Debug("dispatching generation",
		"user", userID,
		"provider", cfg.Active,
		"prompt_len", len(req.Prompt),
	)

	result, err := provider.Generate(ctx, req, cfg)
	if err != nil {
		return nil, &model.GenerationError{Provider: cfg.Active, Err: err}
	}

	s.logger.Debug("generation complete",
		"user", userID,
		"provider", result.Provider,
		"model", result.Model,
		"tokens", result.TokensUsed,
	)
	return result, nil
}

// GenerateCoverLetter builds a cover-letter prompt from the user's
// stored profile and dispatches it.
func (s *Service) GenerateCoverLetter(ctx context.Context, userID, jobDescription, companyName string) (*model.GenerationResult, error) {
	profile, err := s.profiles.GetProfile(ctx, userID)
	if err != nil {
		return nil, err
	}
	pair := prompt.CoverLetter(profile, jobDescription, companyName)
	return s.Generate(ctx, userID, model.GenerationRequest{
		Prompt:       pair.User,
		SystemPrompt: pair.System,
	})
}

// GenerateAnswer answers a standalone application question.
func (s *Service) GenerateAnswer(ctx context.Context, userID, question string) (*model.GenerationResult, error) {
	profile, err := s.profiles.GetProfile(ctx, userID)
	if err != nil {
		return nil, err
	}
	pair := prompt.Answer(profile, question)
	return s.Generate(ctx, userID, model.GenerationRequest{
		Prompt:       pair.User,
		SystemPrompt: pair.System,
	})
}

// GenerateSmartAnswer answers a question in the context of a specific
// job, optionally under a hard character limit (0 = none).
func (s *Service) GenerateSmartAnswer(ctx context.Context, userID, question, jobContext string, charLimit int) (*model.GenerationResult, error) {
	profile, err := s.profiles.GetProfile(ctx, userID)
	if err != nil {
		return nil, err
	}
	pair := prompt.SmartAnswer(profile, question, jobContext, charLimit)
	return s.Generate(ctx, userID, model.GenerationRequest{
		Prompt:       pair.User,
		SystemPrompt: pair.System,
	})
}

// GenerateResumeOptimization produces feedback on the user's profile
// against a target job description.
func (s *Service) GenerateResumeOptimization(ctx context.Context, userID, jobDescription string) (*model.GenerationResult, error) {
	profile, err := s.profiles.GetProfile(ctx, userID)
	if err != nil {
		return nil, err
	}
	pair := prompt.ResumeOptimization(profile, jobDescription)
	return s.Generate(ctx, userID, model.GenerationRequest{
		Prompt:       pair.User,
		SystemPrompt: pair.System,
	})
}
