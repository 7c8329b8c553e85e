package journal

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/PabloGalante/mindbloom/internal/app/reflection"
	"github.com/PabloGalante/mindbloom/internal/domain"
	"github.com/PabloGalante/mindbloom/internal/observability"
)

// ErrEmptyContent is returned when an entry has no text.
var ErrEmptyContent = errors.New("journal content is required")

// historyWindow is how many previous entries are given to the reflection.
const historyWindow = 3

// PersonaSource resolves the persona a user selected.
type PersonaSource interface {
	PersonaOrDefault(ctx context.Context, userID domain.UserID) domain.Persona
}

// Service holds the logic of writing and reading journal entries
type Service struct {
	journals domain.JournalStore
	moods    domain.MoodStore
	alerts   domain.AlertStore
	personas PersonaSource
	ai       *reflection.Orchestrator
	now      func() time.Time
}

func NewService(
	journals domain.JournalStore,
	moods domain.MoodStore,
	alerts domain.AlertStore,
	personas PersonaSource,
	ai *reflection.Orchestrator,
) *Service {
	return &Service{
		journals: journals,
		moods:    moods,
		alerts:   alerts,
		personas: personas,
		ai:       ai,
		now:      time.Now,
	}
}

type SubmitInput struct {
	UserID  domain.UserID
	Content string
}

type SubmitOutput struct {
	Entry *domain.JournalEntry
	Alert *domain.CrisisAlert
}

// Submit saves an entry together with its reflection. Flagged entries also
// raise a CrisisAlert; if storing the alert fails the entry is still
// returned, with a nil Alert.
func (s *Service) Submit(ctx context.Context, in SubmitInput) (*SubmitOutput, error) {
	if strings.TrimSpace(in.Content) == "" {
		return nil, ErrEmptyContent
	}

	log := observability.LoggerFromContext(ctx).With("user_id", in.UserID)

	flagged := DetectCrisis(in.Content)

	past, err := s.journals.ListJournalEntriesByUser(ctx, in.UserID, historyWindow)
	if err != nil {
		log.Error("failed to load journal history", "error", err)
		return nil, fmt.Errorf("load journal history: %w", err)
	}
	history := make([]string, 0, len(past))
	for _, e := range past {
		history = append(history, e.Content)
	}

	reflectionText := s.ai.GenerateReflection(ctx, reflection.ReflectionRequest{
		Text:        in.Content,
		Persona:     s.personas.PersonaOrDefault(ctx, in.UserID),
		History:     history,
		MoodSummary: s.moodSummary(ctx, in.UserID),
	})

	now := s.now()
	entry := &domain.JournalEntry{
		ID:         domain.JournalEntryID(uuid.NewString()),
		UserID:     in.UserID,
		Content:    in.Content,
		Reflection: reflectionText,
		Flagged:    flagged,
		CreatedAt:  now,
	}
	if err := s.journals.AppendJournalEntry(ctx, entry); err != nil {
		log.Error("failed to append journal entry", "error", err)
		return nil, fmt.Errorf("append journal entry: %w", err)
	}

	out := &SubmitOutput{Entry: entry}
	if flagged {
		observability.RecordCrisisFlag()
		alert := &domain.CrisisAlert{
			ID:             domain.AlertID(uuid.NewString()),
			UserID:         in.UserID,
			JournalEntryID: entry.ID,
			Message:        alertMessage(in.Content),
			CreatedAt:      now,
		}
		// The entry is already stored with Flagged set, so a lost alert can
		// still be recovered from the journal.
		if err := s.alerts.AppendAlert(ctx, alert); err != nil {
			log.Error("failed to append crisis alert", "error", err, "entry_id", entry.ID)
		} else {
			log.Warn("crisis keywords detected", "entry_id", entry.ID, "alert_id", alert.ID)
			out.Alert = alert
		}
	}

	log.Info("journal entry saved", "entry_id", entry.ID, "history_len", len(history))
	return out, nil
}

// List returns the last `limit` entries for a user, newest first.
// If limit <= 0, a reasonable default value is used.
func (s *Service) List(ctx context.Context, userID domain.UserID, limit int) ([]*domain.JournalEntry, error) {
	if limit <= 0 {
		limit = 20
	}
	return s.journals.ListJournalEntriesByUser(ctx, userID, limit)
}

// Alerts returns the crisis alerts raised for a user, newest first.
func (s *Service) Alerts(ctx context.Context, userID domain.UserID) ([]*domain.CrisisAlert, error) {
	return s.alerts.ListAlertsByUser(ctx, userID)
}

func (s *Service) moodSummary(ctx context.Context, userID domain.UserID) string {
	moods, err := s.moods.ListMoodEntriesByUser(ctx, userID, 1)
	if err != nil {
		observability.LoggerFromContext(ctx).Warn("failed to load latest mood", "error", err)
		return "Unknown"
	}
	if len(moods) == 0 {
		return "Unknown"
	}
	return FormatMoodSummary(moods[0])
}

// FormatMoodSummary renders the short mood label used as reflection context.
func FormatMoodSummary(m *domain.MoodEntry) string {
	return fmt.Sprintf("Mood: %d, Energy: %d", m.Mood, m.Energy)
}
