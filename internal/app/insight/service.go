// Package insight builds the student dashboard's AI content and the
// stateless companion chat.
package insight

import (
	"context"
	"fmt"
	"strconv"

	"github.com/PabloGalante/mindbloom/internal/app/journal"
	"github.com/PabloGalante/mindbloom/internal/app/reflection"
	"github.com/PabloGalante/mindbloom/internal/domain"
	"github.com/PabloGalante/mindbloom/internal/observability"
)

const (
	recentWindow       = 3
	breakthroughWindow = 10
	// minBreakthroughEntries is the history size below which no analysis is shown.
	minBreakthroughEntries = 3

	mentorWindow = 5
	// mentorThoughtLimit caps how many characters of the newest entry are quoted.
	mentorThoughtLimit = 300
	mentorPrefix       = "Provide a high-level mentorship perspective on my overall growth trajectory based on my latest thought: "
)

type Service struct {
	journals domain.JournalStore
	moods    domain.MoodStore
	personas journal.PersonaSource
	ai       *reflection.Orchestrator
}

func NewService(
	journals domain.JournalStore,
	moods domain.MoodStore,
	personas journal.PersonaSource,
	ai *reflection.Orchestrator,
) *Service {
	return &Service{
		journals: journals,
		moods:    moods,
		personas: personas,
		ai:       ai,
	}
}

type Dashboard struct {
	LatestMood     *domain.MoodEntry
	RecentJournals []*domain.JournalEntry
	MentorInsight  string
	// Breakthrough is nil when there is not enough history or generation failed.
	Breakthrough *reflection.Breakthrough
}

// Dashboard assembles the student's home view.
func (s *Service) Dashboard(ctx context.Context, userID domain.UserID) (*Dashboard, error) {
	log := observability.LoggerFromContext(ctx).With("user_id", userID)

	moods, err := s.moods.ListMoodEntriesByUser(ctx, userID, 1)
	if err != nil {
		log.Error("failed to load latest mood", "error", err)
		return nil, fmt.Errorf("load latest mood: %w", err)
	}

	entries, err := s.journals.ListJournalEntriesByUser(ctx, userID, breakthroughWindow)
	if err != nil {
		log.Error("failed to load journals", "error", err)
		return nil, fmt.Errorf("load journals: %w", err)
	}

	out := &Dashboard{RecentJournals: entries}
	if len(moods) > 0 {
		out.LatestMood = moods[0]
	}
	if len(entries) > recentWindow {
		out.RecentJournals = entries[:recentWindow]
	}

	if len(out.RecentJournals) > 0 {
		history := make([]string, 0, len(out.RecentJournals)-1)
		for _, e := range out.RecentJournals[1:] {
			history = append(history, e.Content)
		}

		moodSummary := "None"
		if out.LatestMood != nil {
			moodSummary = journal.FormatMoodSummary(out.LatestMood)
		}

		out.MentorInsight = s.ai.GenerateReflection(ctx, reflection.ReflectionRequest{
			Text:        out.RecentJournals[0].Content,
			Persona:     s.personas.PersonaOrDefault(ctx, userID),
			History:     history,
			MoodSummary: moodSummary,
		})
	}

	if len(entries) >= minBreakthroughEntries {
		texts := make([]string, 0, len(entries))
		for _, e := range entries {
			texts = append(texts, e.Content)
		}
		if raw, ok := s.ai.GenerateBreakthroughAnalysis(ctx, texts); ok {
			b := reflection.ParseBreakthrough(raw)
			out.Breakthrough = &b
		}
	}

	return out, nil
}

// Mentor gives a growth-trajectory perspective on the newest journal entry,
// with up to four earlier entries as history. It returns "" when the user
// has not written anything yet. The mentor always speaks as ZEN.
func (s *Service) Mentor(ctx context.Context, userID domain.UserID) (string, error) {
	log := observability.LoggerFromContext(ctx).With("user_id", userID)

	entries, err := s.journals.ListJournalEntriesByUser(ctx, userID, mentorWindow)
	if err != nil {
		log.Error("failed to load journals", "error", err)
		return "", fmt.Errorf("load journals: %w", err)
	}
	if len(entries) == 0 {
		return "", nil
	}

	moods, err := s.moods.ListMoodEntriesByUser(ctx, userID, 1)
	if err != nil {
		log.Error("failed to load latest mood", "error", err)
		return "", fmt.Errorf("load latest mood: %w", err)
	}
	moodScore := "N/A"
	if len(moods) > 0 {
		moodScore = strconv.Itoa(moods[0].Mood)
	}

	history := make([]string, 0, len(entries)-1)
	for _, e := range entries[1:] {
		history = append(history, e.Content)
	}

	return s.ai.GenerateReflection(ctx, reflection.ReflectionRequest{
		Text:        mentorPrefix + truncateRunes(entries[0].Content, mentorThoughtLimit),
		Persona:     domain.PersonaZen,
		History:     history,
		MoodSummary: "Recent Mood Score: " + moodScore,
	}), nil
}

func truncateRunes(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}

// Chat answers a free-form message with a single reflection; no conversation
// state is kept between calls.
func (s *Service) Chat(ctx context.Context, userID domain.UserID, message string) string {
	return s.ai.GenerateReflection(ctx, reflection.ReflectionRequest{
		Text:    "User ranted or asked: " + message,
		Persona: s.personas.PersonaOrDefault(ctx, userID),
	})
}
