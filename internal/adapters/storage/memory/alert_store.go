package memory

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/PabloGalante/mindbloom/internal/domain"
)

type AlertStore struct {
	mu     sync.RWMutex
	alerts map[domain.UserID][]*domain.CrisisAlert
}

func NewAlertStore() *AlertStore {
	return &AlertStore{
		alerts: make(map[domain.UserID][]*domain.CrisisAlert),
	}
}

func (s *AlertStore) AppendAlert(_ context.Context, alert *domain.CrisisAlert) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if alert.ID == "" {
		alert.ID = domain.AlertID(uuid.NewString())
	}
	s.alerts[alert.UserID] = append(s.alerts[alert.UserID], alert)
	return nil
}

// ListAlertsByUser returns alerts newest first.
func (s *AlertStore) ListAlertsByUser(_ context.Context, userID domain.UserID) ([]*domain.CrisisAlert, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	all := s.alerts[userID]
	out := make([]*domain.CrisisAlert, 0, len(all))
	for i := len(all) - 1; i >= 0; i-- {
		out = append(out, all[i])
	}
	return out, nil
}
