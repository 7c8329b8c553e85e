package memory

import (
	"context"
	"sync"

	"github.com/PabloGalante/mindbloom/internal/domain"
)

type ProfileStore struct {
	mu       sync.RWMutex
	profiles map[domain.UserID]domain.Profile
}

func NewProfileStore() *ProfileStore {
	return &ProfileStore{
		profiles: make(map[domain.UserID]domain.Profile),
	}
}

func (s *ProfileStore) GetProfile(_ context.Context, userID domain.UserID) (*domain.Profile, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	p, ok := s.profiles[userID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &p, nil
}

func (s *ProfileStore) UpsertProfile(_ context.Context, profile *domain.Profile) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.profiles[profile.UserID] = *profile
	return nil
}
