package domain

import "time"

// JournalEntry is a free-text entry written by a student, plus the reflection
// generated for it at submission time.
type JournalEntry struct {
	ID        JournalEntryID `json:"id"`
	UserID    UserID         `json:"user_id"`
	Content   string         `json:"content"`
	CreatedAt time.Time      `json:"created_at"`

	// Reflection generated when the entry was saved (may be a fallback text)
	Reflection string `json:"ai_reflection"`

	// Flagged is set when crisis keywords were detected in Content
	Flagged bool `json:"is_flagged"`
}

// CrisisAlert is raised for therapists when a flagged entry is saved.
type CrisisAlert struct {
	ID             AlertID        `json:"id"`
	UserID         UserID         `json:"user_id"`
	JournalEntryID JournalEntryID `json:"journal_entry_id"`
	Message        string         `json:"message"`
	Resolved       bool           `json:"is_resolved"`
	CreatedAt      time.Time      `json:"created_at"`
}
