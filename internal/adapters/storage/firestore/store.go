package firestore

import (
	"context"
	"errors"
	"fmt"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/google/uuid"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/PabloGalante/mindbloom/internal/domain"
)

type Store struct {
	client *firestore.Client
}

// NewStore creates a Firestore store.
// Uses the project passed (MINDBLOOM_GCP_PROJECT).
func NewStore(ctx context.Context, projectID string) (*Store, error) {
	if projectID == "" {
		return nil, fmt.Errorf("projectID is required for Firestore store")
	}

	client, err := firestore.NewClient(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("creating firestore client: %w", err)
	}

	return &Store{client: client}, nil
}

func (s *Store) Close() error {
	return s.client.Close()
}

// ─────────────────────────────────────────
// Helpers
// ─────────────────────────────────────────

func (s *Store) userDoc(id domain.UserID) *firestore.DocumentRef {
	return s.client.Collection("users").Doc(string(id))
}

func (s *Store) journalCol(id domain.UserID) *firestore.CollectionRef {
	return s.userDoc(id).Collection("journal_entries")
}

func (s *Store) moodCol(id domain.UserID) *firestore.CollectionRef {
	return s.userDoc(id).Collection("mood_entries")
}

func (s *Store) alertCol(id domain.UserID) *firestore.CollectionRef {
	return s.userDoc(id).Collection("crisis_alerts")
}

func (s *Store) profileDoc(id domain.UserID) *firestore.DocumentRef {
	return s.client.Collection("profiles").Doc(string(id))
}

// newestFirst orders by created_at descending, with an optional limit.
func newestFirst(col *firestore.CollectionRef, limit int) firestore.Query {
	q := col.OrderBy("created_at", firestore.Desc)
	if limit > 0 {
		q = q.Limit(limit)
	}
	return q
}

// eachDoc walks a query, calling fn for every snapshot.
func eachDoc(ctx context.Context, q firestore.Query, fn func(*firestore.DocumentSnapshot) error) error {
	iter := q.Documents(ctx)
	defer iter.Stop()

	for {
		snap, err := iter.Next()
		if errors.Is(err, iterator.Done) {
			return nil
		}
		if err != nil {
			return err
		}
		if err := fn(snap); err != nil {
			return err
		}
	}
}

// ─────────────────────────────────────────
// Firestore Types
// ─────────────────────────────────────────

type journalDoc struct {
	Content    string    `firestore:"content"`
	Reflection string    `firestore:"ai_reflection"`
	Flagged    bool      `firestore:"is_flagged"`
	CreatedAt  time.Time `firestore:"created_at"`
}

type moodDoc struct {
	Mood      int       `firestore:"mood_score"`
	Energy    int       `firestore:"energy_score"`
	Stress    int       `firestore:"stress_score"`
	Note      string    `firestore:"note"`
	CreatedAt time.Time `firestore:"created_at"`
}

type profileDoc struct {
	Persona   string    `firestore:"ai_persona"`
	UpdatedAt time.Time `firestore:"updated_at"`
}

type alertDoc struct {
	JournalEntryID string    `firestore:"journal_entry_id"`
	Message        string    `firestore:"message"`
	Resolved       bool      `firestore:"is_resolved"`
	CreatedAt      time.Time `firestore:"created_at"`
}

// ─────────────────────────────────────────
// JournalStore implementation
// ─────────────────────────────────────────

func (s *Store) AppendJournalEntry(ctx context.Context, entry *domain.JournalEntry) error {
	if entry.ID == "" {
		entry.ID = domain.JournalEntryID(uuid.NewString())
	}

	doc := journalDoc{
		Content:    entry.Content,
		Reflection: entry.Reflection,
		Flagged:    entry.Flagged,
		CreatedAt:  entry.CreatedAt,
	}

	if _, err := s.journalCol(entry.UserID).Doc(string(entry.ID)).Set(ctx, doc); err != nil {
		return fmt.Errorf("firestore AppendJournalEntry: %w", err)
	}
	return nil
}

func (s *Store) ListJournalEntriesByUser(ctx context.Context, userID domain.UserID, limit int) ([]*domain.JournalEntry, error) {
	out := []*domain.JournalEntry{}
	err := eachDoc(ctx, newestFirst(s.journalCol(userID), limit), func(snap *firestore.DocumentSnapshot) error {
		var doc journalDoc
		if err := snap.DataTo(&doc); err != nil {
			return fmt.Errorf("decode journalDoc: %w", err)
		}
		out = append(out, &domain.JournalEntry{
			ID:         domain.JournalEntryID(snap.Ref.ID),
			UserID:     userID,
			Content:    doc.Content,
			Reflection: doc.Reflection,
			Flagged:    doc.Flagged,
			CreatedAt:  doc.CreatedAt,
		})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("firestore ListJournalEntriesByUser: %w", err)
	}
	return out, nil
}

// ─────────────────────────────────────────
// MoodStore implementation
// ─────────────────────────────────────────

func (s *Store) AppendMoodEntry(ctx context.Context, entry *domain.MoodEntry) error {
	if entry.ID == "" {
		entry.ID = domain.MoodEntryID(uuid.NewString())
	}

	doc := moodDoc{
		Mood:      entry.Mood,
		Energy:    entry.Energy,
		Stress:    entry.Stress,
		Note:      entry.Note,
		CreatedAt: entry.CreatedAt,
	}

	if _, err := s.moodCol(entry.UserID).Doc(string(entry.ID)).Set(ctx, doc); err != nil {
		return fmt.Errorf("firestore AppendMoodEntry: %w", err)
	}
	return nil
}

func (s *Store) ListMoodEntriesByUser(ctx context.Context, userID domain.UserID, limit int) ([]*domain.MoodEntry, error) {
	out := []*domain.MoodEntry{}
	err := eachDoc(ctx, newestFirst(s.moodCol(userID), limit), func(snap *firestore.DocumentSnapshot) error {
		var doc moodDoc
		if err := snap.DataTo(&doc); err != nil {
			return fmt.Errorf("decode moodDoc: %w", err)
		}
		out = append(out, &domain.MoodEntry{
			ID:        domain.MoodEntryID(snap.Ref.ID),
			UserID:    userID,
			Mood:      doc.Mood,
			Energy:    doc.Energy,
			Stress:    doc.Stress,
			Note:      doc.Note,
			CreatedAt: doc.CreatedAt,
		})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("firestore ListMoodEntriesByUser: %w", err)
	}
	return out, nil
}

// ─────────────────────────────────────────
// ProfileStore implementation
// ─────────────────────────────────────────

func (s *Store) GetProfile(ctx context.Context, userID domain.UserID) (*domain.Profile, error) {
	snap, err := s.profileDoc(userID).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("firestore GetProfile: %w", err)
	}

	var doc profileDoc
	if err := snap.DataTo(&doc); err != nil {
		return nil, fmt.Errorf("firestore GetProfile decode: %w", err)
	}

	persona, _ := domain.ParsePersona(doc.Persona)
	return &domain.Profile{
		UserID:    userID,
		Persona:   persona,
		UpdatedAt: doc.UpdatedAt,
	}, nil
}

func (s *Store) UpsertProfile(ctx context.Context, profile *domain.Profile) error {
	doc := map[string]interface{}{
		"ai_persona": string(profile.Persona),
		"updated_at": profile.UpdatedAt,
	}

	if _, err := s.profileDoc(profile.UserID).Set(ctx, doc, firestore.MergeAll); err != nil {
		return fmt.Errorf("firestore UpsertProfile: %w", err)
	}
	return nil
}

// ─────────────────────────────────────────
// AlertStore implementation
// ─────────────────────────────────────────

func (s *Store) AppendAlert(ctx context.Context, alert *domain.CrisisAlert) error {
	if alert.ID == "" {
		alert.ID = domain.AlertID(uuid.NewString())
	}

	doc := alertDoc{
		JournalEntryID: string(alert.JournalEntryID),
		Message:        alert.Message,
		Resolved:       alert.Resolved,
		CreatedAt:      alert.CreatedAt,
	}

	if _, err := s.alertCol(alert.UserID).Doc(string(alert.ID)).Create(ctx, doc); err != nil {
		return fmt.Errorf("firestore AppendAlert: %w", err)
	}
	return nil
}

func (s *Store) ListAlertsByUser(ctx context.Context, userID domain.UserID) ([]*domain.CrisisAlert, error) {
	out := []*domain.CrisisAlert{}
	err := eachDoc(ctx, newestFirst(s.alertCol(userID), 0), func(snap *firestore.DocumentSnapshot) error {
		var doc alertDoc
		if err := snap.DataTo(&doc); err != nil {
			return fmt.Errorf("decode alertDoc: %w", err)
		}
		out = append(out, &domain.CrisisAlert{
			ID:             domain.AlertID(snap.Ref.ID),
			UserID:         userID,
			JournalEntryID: domain.JournalEntryID(doc.JournalEntryID),
			Message:        doc.Message,
			Resolved:       doc.Resolved,
			CreatedAt:      doc.CreatedAt,
		})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("firestore ListAlertsByUser: %w", err)
	}
	return out, nil
}
