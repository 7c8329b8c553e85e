package domain

import "context"

// TextGenerator sends a single prompt to a hosted model and returns its text.
type TextGenerator interface {
	GenerateText(ctx context.Context, prompt string) (string, error)
}

// JournalStore persists journal entries
type JournalStore interface {
	AppendJournalEntry(ctx context.Context, entry *JournalEntry) error
	// ListJournalEntriesByUser returns entries most recent first.
	// limit <= 0 means no limit.
	ListJournalEntriesByUser(ctx context.Context, userID UserID, limit int) ([]*JournalEntry, error)
}

// MoodStore persists mood check-ins
type MoodStore interface {
	AppendMoodEntry(ctx context.Context, entry *MoodEntry) error
	// ListMoodEntriesByUser returns entries most recent first.
	ListMoodEntriesByUser(ctx context.Context, userID UserID, limit int) ([]*MoodEntry, error)
}

// ProfileStore persists user profiles
type ProfileStore interface {
	GetProfile(ctx context.Context, userID UserID) (*Profile, error)
	UpsertProfile(ctx context.Context, profile *Profile) error
}

// AlertStore persists crisis alerts
type AlertStore interface {
	AppendAlert(ctx context.Context, alert *CrisisAlert) error
	ListAlertsByUser(ctx context.Context, userID UserID) ([]*CrisisAlert, error)
}
