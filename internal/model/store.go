package model

import "context"

// ConfigStore supplies persisted per-user provider configuration.
type ConfigStore interface {
	// GetProviderConfig returns the user's config row, or ErrNotConfigured.
	GetProviderConfig(ctx context.Context, userID string) (*ProviderConfig, error)

	// UpsertProviderConfig creates the row if absent, otherwise merges the
	// patch into the existing row.
	UpsertProviderConfig(ctx context.Context, userID string, patch ProviderConfigPatch) error
}

// ProfileStore supplies the candidate-profile projection used for prompts.
type ProfileStore interface {
	// GetProfile returns the user's profile, or ErrProfileNotFound.
	GetProfile(ctx context.Context, userID string) (*CandidateProfile, error)

	// PutProfile stores or replaces the user's profile.
	PutProfile(ctx context.Context, userID string, profile *CandidateProfile) error
}
