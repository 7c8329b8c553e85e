package mood

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/PabloGalante/mindbloom/internal/app/reflection"
	"github.com/PabloGalante/mindbloom/internal/domain"
	"github.com/PabloGalante/mindbloom/internal/observability"
)

// trendWindow is how many previous check-ins feed the trend summary.
const trendWindow = 7

type Service struct {
	store domain.MoodStore
	ai    *reflection.Orchestrator
	now   func() time.Time
}

func NewService(store domain.MoodStore, ai *reflection.Orchestrator) *Service {
	return &Service{
		store: store,
		ai:    ai,
		now:   time.Now,
	}
}

type CheckInInput struct {
	UserID domain.UserID
	Mood   int
	Energy int
	Stress int
	Note   string
}

type CheckInOutput struct {
	Entry      *domain.MoodEntry
	Suggestion string
}

// CheckIn stores the scores and asks for a gentle focus suggestion.
func (s *Service) CheckIn(ctx context.Context, in CheckInInput) (*CheckInOutput, error) {
	log := observability.LoggerFromContext(ctx).With("user_id", in.UserID)

	previous, err := s.store.ListMoodEntriesByUser(ctx, in.UserID, trendWindow)
	if err != nil {
		log.Error("failed to load mood history", "error", err)
		return nil, fmt.Errorf("load mood history: %w", err)
	}

	entry := &domain.MoodEntry{
		ID:        domain.MoodEntryID(uuid.NewString()),
		UserID:    in.UserID,
		Mood:      in.Mood,
		Energy:    in.Energy,
		Stress:    in.Stress,
		Note:      in.Note,
		CreatedAt: s.now(),
	}
	if err := s.store.AppendMoodEntry(ctx, entry); err != nil {
		log.Error("failed to append mood entry", "error", err)
		return nil, fmt.Errorf("append mood entry: %w", err)
	}

	suggestion := s.ai.GenerateMoodSuggestion(ctx, reflection.MoodSnapshot{
		Mood:   in.Mood,
		Energy: in.Energy,
		Stress: in.Stress,
	}, TrendSummary(previous))

	log.Info("mood check-in saved", "entry_id", entry.ID)
	return &CheckInOutput{Entry: entry, Suggestion: suggestion}, nil
}

// Latest returns the most recent check-in, or nil when there is none.
func (s *Service) Latest(ctx context.Context, userID domain.UserID) (*domain.MoodEntry, error) {
	entries, err := s.store.ListMoodEntriesByUser(ctx, userID, 1)
	if err != nil {
		return nil, err
	}
	if len(entries) == 0 {
		return nil, nil
	}
	return entries[0], nil
}

// TrendSummary averages previous check-ins into a one-line label.
// It is empty when there are no previous entries.
func TrendSummary(entries []*domain.MoodEntry) string {
	if len(entries) == 0 {
		return ""
	}

	var mood, energy, stress float64
	for _, e := range entries {
		mood += float64(e.Mood)
		energy += float64(e.Energy)
		stress += float64(e.Stress)
	}
	n := float64(len(entries))

	return fmt.Sprintf("last %d check-ins average Mood %.1f, Energy %.1f, Stress %.1f",
		len(entries), mood/n, energy/n, stress/n)
}
