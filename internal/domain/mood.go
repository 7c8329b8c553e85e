package domain

import "time"

// MoodEntry is a daily check-in. Scores are nominally 1-10.
type MoodEntry struct {
	ID        MoodEntryID `json:"id"`
	UserID    UserID      `json:"user_id"`
	Mood      int         `json:"mood_score"`
	Energy    int         `json:"energy_score"`
	Stress    int         `json:"stress_score"`
	Note      string      `json:"note,omitempty"`
	CreatedAt time.Time   `json:"created_at"`
}

// Profile holds per-user preferences relevant to the AI companion.
type Profile struct {
	UserID    UserID    `json:"user_id"`
	Persona   Persona   `json:"ai_persona"`
	UpdatedAt time.Time `json:"updated_at"`
}
