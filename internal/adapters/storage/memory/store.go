package memory

// Store bundles every in-memory store; one value satisfies all storage ports.
type Store struct {
	*JournalStore
	*MoodStore
	*ProfileStore
	*AlertStore
}

func NewStore() *Store {
	return &Store{
		JournalStore: NewJournalStore(),
		MoodStore:    NewMoodStore(),
		ProfileStore: NewProfileStore(),
		AlertStore:   NewAlertStore(),
	}
}
