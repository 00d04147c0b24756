package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	_ "modernc.org/sqlite"

	"github.com/applydraft/applydraft/internal/model"
)

// SQLiteStore persists provider configuration and candidate profiles in
// a local SQLite database.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore opens (or creates) a SQLite database at dbPath and
// ensures the schema exists.
func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("opening sqlite db: %w", err)
	}

	// Verify the connection is alive.
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("pinging sqlite db: %w", err)
	}

	schema := `
	CREATE TABLE IF NOT EXISTS provider_configs (
		user_id            TEXT PRIMARY KEY,
		active_provider    TEXT NOT NULL DEFAULT 'openai',
		openai_api_key     TEXT NOT NULL DEFAULT '',
		openai_model       TEXT NOT NULL DEFAULT '',
		anthropic_api_key  TEXT NOT NULL DEFAULT '',
		anthropic_model    TEXT NOT NULL DEFAULT '',
		openrouter_api_key TEXT NOT NULL DEFAULT '',
		openrouter_model   TEXT NOT NULL DEFAULT '',
		local_url          TEXT NOT NULL DEFAULT '',
		local_model        TEXT NOT NULL DEFAULT '',
		temperature        REAL,
		max_tokens         INTEGER,
		updated_at         DATETIME DEFAULT CURRENT_TIMESTAMP
	);
	CREATE TABLE IF NOT EXISTS profiles (
		user_id    TEXT PRIMARY KEY,
		profile    TEXT NOT NULL,
		updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
	)`
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}

	return &SQLiteStore{db: db}, nil
}

// querier lets config loading work inside and outside a transaction.
type querier interface {
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// GetProviderConfig loads the user's config row. Returns
// model.ErrNotConfigured when the user has no row yet.
func (s *SQLiteStore) GetProviderConfig(ctx context.Context, userID string) (*model.ProviderConfig, error) {
	return loadProviderConfig(ctx, s.db, userID)
}

// UpsertProviderConfig creates the user's config row if absent, otherwise
// merges the patch into it. Nil patch fields leave stored values alone.
func (s *SQLiteStore) UpsertProviderConfig(ctx context.Context, userID string, patch model.ProviderConfigPatch) error {
	if err := patch.Validate(); err != nil {
		return err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning upsert: %w", err)
	}
	defer tx.Rollback()

	cfg, err := loadProviderConfig(ctx, tx, userID)
	if err != nil && !errors.Is(err, model.ErrNotConfigured) {
		return err
	}
	if cfg == nil {
		cfg = &model.ProviderConfig{UserID: userID, ActiveProvider: model.ProviderOpenAI}
	}

	applyPatch(cfg, patch)

	var temperature sql.NullFloat64
	if cfg.Temperature != nil {
		temperature = sql.NullFloat64{Float64: *cfg.Temperature, Valid: true}
	}
	var maxTokens sql.NullInt64
	if cfg.MaxTokens != nil {
		maxTokens = sql.NullInt64{Int64: int64(*cfg.MaxTokens), Valid: true}
	}

	_, err = tx.ExecContext(ctx, `
		INSERT OR REPLACE INTO provider_configs (
			user_id, active_provider,
			openai_api_key, openai_model,
			anthropic_api_key, anthropic_model,
			openrouter_api_key, openrouter_model,
			local_url, local_model,
			temperature, max_tokens, updated_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, CURRENT_TIMESTAMP)`,
		userID, string(cfg.ActiveProvider),
		cfg.OpenAIAPIKey, cfg.OpenAIModel,
		cfg.AnthropicAPIKey, cfg.AnthropicModel,
		cfg.OpenRouterAPIKey, cfg.OpenRouterModel,
		cfg.LocalURL, cfg.LocalModel,
		temperature, maxTokens)
	if err != nil {
		return fmt.Errorf("upserting provider config for %s: %w", userID, err)
	}

	return tx.Commit()
}

func loadProviderConfig(ctx context.Context, q querier, userID string) (*model.ProviderConfig, error) {
	row := q.QueryRowContext(ctx, `
		SELECT active_provider,
		       openai_api_key, openai_model,
		       anthropic_api_key, anthropic_model,
		       openrouter_api_key, openrouter_model,
		       local_url, local_model,
		       temperature, max_tokens
		FROM provider_configs WHERE user_id = ?`, userID)

	cfg := model.ProviderConfig{UserID: userID}
	var active string
	var temperature sql.NullFloat64
	var maxTokens sql.NullInt64
	err := row.Scan(&active,
		&cfg.OpenAIAPIKey, &cfg.OpenAIModel,
		&cfg.AnthropicAPIKey, &cfg.AnthropicModel,
		&cfg.OpenRouterAPIKey, &cfg.OpenRouterModel,
		&cfg.LocalURL, &cfg.LocalModel,
		&temperature, &maxTokens)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, model.ErrNotConfigured
	}
	if err != nil {
		return nil, fmt.Errorf("loading provider config for %s: %w", userID, err)
	}

	cfg.ActiveProvider = model.ProviderID(active)
	if temperature.Valid {
		v := temperature.Float64
		cfg.Temperature = &v
	}
	if maxTokens.Valid {
		v := int(maxTokens.Int64)
		cfg.MaxTokens = &v
	}
	return &cfg, nil
}

func applyPatch(cfg *model.ProviderConfig, patch model.ProviderConfigPatch) {
	if patch.ActiveProvider != nil {
		cfg.ActiveProvider = *patch.ActiveProvider
	}
	if patch.OpenAIAPIKey != nil {
		cfg.OpenAIAPIKey = *patch.OpenAIAPIKey
	}
	if patch.OpenAIModel != nil {
		cfg.OpenAIModel = *patch.OpenAIModel
	}
	if patch.AnthropicAPIKey != nil {
		cfg.AnthropicAPIKey = *patch.AnthropicAPIKey
	}
	if patch.AnthropicModel != nil {
		cfg.AnthropicModel = *patch.AnthropicModel
	}
	if patch.OpenRouterAPIKey != nil {
		cfg.OpenRouterAPIKey = *patch.OpenRouterAPIKey
	}
	if patch.OpenRouterModel != nil {
		cfg.OpenRouterModel = *patch.OpenRouterModel
	}
	if patch.LocalURL != nil {
		cfg.LocalURL = *patch.LocalURL
	}
	if patch.LocalModel != nil {
		cfg.LocalModel = *patch.LocalModel
	}
	if patch.Temperature != nil {
		cfg.Temperature = patch.Temperature
	}
	if patch.MaxTokens != nil {
		cfg.MaxTokens = patch.MaxTokens
	}
}

// GetProfile loads the user's candidate profile. Returns
// model.ErrProfileNotFound when none is stored.
func (s *SQLiteStore) GetProfile(ctx context.Context, userID string) (*model.CandidateProfile, error) {
	var raw string
	err := s.db.QueryRowContext(ctx,
		"SELECT profile FROM profiles WHERE user_id = ?", userID).Scan(&raw)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, model.ErrProfileNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("loading profile for %s: %w", userID, err)
	}

	var profile model.CandidateProfile
	if err := json.Unmarshal([]byte(raw), &profile); err != nil {
		return nil, fmt.Errorf("decoding profile for %s: %w", userID, err)
	}
	return &profile, nil
}

// PutProfile stores or replaces the user's candidate profile.
func (s *SQLiteStore) PutProfile(ctx context.Context, userID string, profile *model.CandidateProfile) error {
	raw, err := json.Marshal(profile)
	if err != nil {
		return fmt.Errorf("encoding profile for %s: %w", userID, err)
	}
	_, err = s.db.ExecContext(ctx, `
		INSERT OR REPLACE INTO profiles (user_id, profile, updated_at)
		VALUES (?, ?, CURRENT_TIMESTAMP)`, userID, string(raw))
	if err != nil {
		return fmt.Errorf("storing profile for %s: %w", userID, err)
	}
	return nil
}

// Close closes the underlying database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
