package profile

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/PabloGalante/mindbloom/internal/domain"
	"github.com/PabloGalante/mindbloom/internal/observability"
)

// ErrUnknownPersona is returned when a user picks a persona code that does not exist.
var ErrUnknownPersona = errors.New("unknown persona")

// Service reads and updates the AI persona a user has selected
type Service struct {
	store domain.ProfileStore
	now   func() time.Time
}

func NewService(store domain.ProfileStore) *Service {
	return &Service{
		store: store,
		now:   time.Now,
	}
}

// Persona returns the user's persona, ZEN when no profile exists.
func (s *Service) Persona(ctx context.Context, userID domain.UserID) (domain.Persona, error) {
	p, err := s.store.GetProfile(ctx, userID)
	if errors.Is(err, domain.ErrNotFound) {
		return domain.PersonaZen, nil
	}
	if err != nil {
		return domain.PersonaZen, fmt.Errorf("get profile: %w", err)
	}
	persona, _ := domain.ParsePersona(string(p.Persona))
	return persona, nil
}

// PersonaOrDefault is Persona for callers that must not fail; errors are logged.
func (s *Service) PersonaOrDefault(ctx context.Context, userID domain.UserID) domain.Persona {
	persona, err := s.Persona(ctx, userID)
	if err != nil {
		observability.LoggerFromContext(ctx).Warn("persona lookup failed, using default", "error", err)
	}
	return persona
}

// SetPersona stores a new persona selection.
func (s *Service) SetPersona(ctx context.Context, userID domain.UserID, code string) (domain.Persona, error) {
	persona, ok := domain.ParsePersona(code)
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownPersona, code)
	}

	err := s.store.UpsertProfile(ctx, &domain.Profile{
		UserID:    userID,
		Persona:   persona,
		UpdatedAt: s.now(),
	})
	if err != nil {
		return "", fmt.Errorf("upsert profile: %w", err)
	}

	observability.LoggerFromContext(ctx).Info("persona updated", "persona", persona)
	return persona, nil
}
