package store

import (
	"context"
	"sync"

	"github.com/applydraft/applydraft/internal/model"
)

// MemStore is an in-memory store used by tests and dry runs. Nothing
// survives the process.
type MemStore struct {
	mu       sync.Mutex
	configs  map[string]*model.ProviderConfig
	profiles map[string]*model.CandidateProfile
}

func NewMemStore() *MemStore {
	return &MemStore{
		configs:  make(map[string]*model.ProviderConfig),
		profiles: make(map[string]*model.CandidateProfile),
	}
}

func (s *MemStore) GetProviderConfig(_ context.Context, userID string) (*model.ProviderConfig, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	cfg, ok := s.configs[userID]
	if !ok {
		return nil, model.ErrNotConfigured
	}
	c := *cfg
	return &c, nil
}

func (s *MemStore) UpsertProviderConfig(_ context.Context, userID string, patch model.ProviderConfigPatch) error {
	if err := patch.Validate(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	cfg, ok := s.configs[userID]
	if !ok {
		cfg = &model.ProviderConfig{UserID: userID, ActiveProvider: model.ProviderOpenAI}
		s.configs[userID] = cfg
	}
	applyPatch(cfg, patch)
	return nil
}

func (s *MemStore) GetProfile(_ context.Context, userID string) (*model.CandidateProfile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.profiles[userID]
	if !ok {
		return nil, model.ErrProfileNotFound
	}
	return p, nil
}

func (s *MemStore) PutProfile(_ context.Context, userID string, profile *model.CandidateProfile) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.profiles[userID] = profile
	return nil
}
