package domain

import "errors"

type UserID string
type JournalEntryID string
type MoodEntryID string
type AlertID string

// ErrNotFound is returned by stores when a record does not exist.
var ErrNotFound = errors.New("not found")
