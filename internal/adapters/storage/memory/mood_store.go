package memory

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/PabloGalante/mindbloom/internal/domain"
)

type MoodStore struct {
	mu      sync.RWMutex
	entries map[domain.UserID][]*domain.MoodEntry
}

func NewMoodStore() *MoodStore {
	return &MoodStore{
		entries: make(map[domain.UserID][]*domain.MoodEntry),
	}
}

func (s *MoodStore) AppendMoodEntry(_ context.Context, entry *domain.MoodEntry) error {
	if entry == nil {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if entry.ID == "" {
		entry.ID = domain.MoodEntryID(uuid.NewString())
	}
	s.entries[entry.UserID] = append(s.entries[entry.UserID], entry)
	return nil
}

func (s *MoodStore) ListMoodEntriesByUser(_ context.Context, userID domain.UserID, limit int) ([]*domain.MoodEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	all := s.entries[userID]
	if limit <= 0 || limit > len(all) {
		limit = len(all)
	}

	out := make([]*domain.MoodEntry, 0, limit)
	for i := len(all) - 1; i >= 0 && len(out) < limit; i-- {
		out = append(out, all[i])
	}
	return out, nil
}
