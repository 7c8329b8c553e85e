// Package sqlite persists wellness records in a local SQLite database.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/PabloGalante/mindbloom/internal/domain"
)

// Store implements the journal, mood, profile and alert ports using SQLite.
type Store struct {
	db *sql.DB
}

// Open creates (if needed) and opens the database at dbPath.
func Open(dbPath string) (*Store, error) {
	if dbPath != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
			return nil, fmt.Errorf("create database directory: %w", err)
		}
	}

	dsn := dbPath + "?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	// a single connection keeps :memory: databases shared and avoids SQLITE_BUSY on writes
	db.SetMaxOpenConns(1)
	db.SetConnMaxLifetime(0)

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	s := &Store{db: db}
	if err := s.initSchema(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("initialize schema: %w", err)
	}
	return s, nil
}

func (s *Store) initSchema() error {
	query := `
	CREATE TABLE IF NOT EXISTS journal_entries (
		id TEXT PRIMARY KEY,
		user_id TEXT NOT NULL,
		content TEXT NOT NULL,
		ai_reflection TEXT,
		is_flagged INTEGER NOT NULL DEFAULT 0,
		created_at INTEGER NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_journal_user ON journal_entries(user_id, created_at);

	CREATE TABLE IF NOT EXISTS mood_entries (
		id TEXT PRIMARY KEY,
		user_id TEXT NOT NULL,
		mood_score INTEGER NOT NULL,
		energy_score INTEGER NOT NULL,
		stress_score INTEGER NOT NULL,
		note TEXT,
		created_at INTEGER NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_mood_user ON mood_entries(user_id, created_at);

	CREATE TABLE IF NOT EXISTS profiles (
		user_id TEXT PRIMARY KEY,
		ai_persona TEXT NOT NULL,
		updated_at INTEGER NOT NULL
	);

	CREATE TABLE IF NOT EXISTS crisis_alerts (
		id TEXT PRIMARY KEY,
		user_id TEXT NOT NULL,
		journal_entry_id TEXT,
		message TEXT NOT NULL,
		is_resolved INTEGER NOT NULL DEFAULT 0,
		created_at INTEGER NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_alerts_user ON crisis_alerts(user_id, created_at);
	`
	if _, err := s.db.Exec(query); err != nil {
		return fmt.Errorf("create schema: %w", err)
	}
	return nil
}

// Ping verifies database connectivity.
func (s *Store) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func closeRows(rows *sql.Rows, what string) {
	if err := rows.Close(); err != nil {
		slog.Warn("failed to close rows", "query", what, "error", err)
	}
}

func limitClause(limit int) string {
	if limit <= 0 {
		return ""
	}
	return fmt.Sprintf(" LIMIT %d", limit)
}

// ─────────────────────────────────────────
// JournalStore implementation
// ─────────────────────────────────────────

func (s *Store) AppendJournalEntry(ctx context.Context, entry *domain.JournalEntry) error {
	if entry.ID == "" {
		entry.ID = domain.JournalEntryID(uuid.NewString())
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO journal_entries (id, user_id, content, ai_reflection, is_flagged, created_at)
		VALUES (?, ?, ?, ?, ?, ?)`,
		string(entry.ID), string(entry.UserID), entry.Content, entry.Reflection,
		entry.Flagged, entry.CreatedAt.UnixNano(),
	)
	if err != nil {
		return fmt.Errorf("insert journal entry: %w", err)
	}
	return nil
}

func (s *Store) ListJournalEntriesByUser(ctx context.Context, userID domain.UserID, limit int) ([]*domain.JournalEntry, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, user_id, content, COALESCE(ai_reflection, ''), is_flagged, created_at
		FROM journal_entries WHERE user_id = ?
		ORDER BY created_at DESC, rowid DESC`+limitClause(limit),
		string(userID),
	)
	if err != nil {
		return nil, fmt.Errorf("query journal entries: %w", err)
	}
	defer closeRows(rows, "journal_entries")

	out := []*domain.JournalEntry{}
	for rows.Next() {
		var (
			e         domain.JournalEntry
			id, uid   string
			createdAt int64
		)
		if err := rows.Scan(&id, &uid, &e.Content, &e.Reflection, &e.Flagged, &createdAt); err != nil {
			return nil, fmt.Errorf("scan journal entry: %w", err)
		}
		e.ID = domain.JournalEntryID(id)
		e.UserID = domain.UserID(uid)
		e.CreatedAt = time.Unix(0, createdAt)
		out = append(out, &e)
	}
	return out, rows.Err()
}

// ─────────────────────────────────────────
// MoodStore implementation
// ─────────────────────────────────────────

func (s *Store) AppendMoodEntry(ctx context.Context, entry *domain.MoodEntry) error {
	if entry.ID == "" {
		entry.ID = domain.MoodEntryID(uuid.NewString())
	}

	var note any
	if entry.Note != "" {
		note = entry.Note
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO mood_entries (id, user_id, mood_score, energy_score, stress_score, note, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		string(entry.ID), string(entry.UserID), entry.Mood, entry.Energy, entry.Stress,
		note, entry.CreatedAt.UnixNano(),
	)
	if err != nil {
		return fmt.Errorf("insert mood entry: %w", err)
	}
	return nil
}

func (s *Store) ListMoodEntriesByUser(ctx context.Context, userID domain.UserID, limit int) ([]*domain.MoodEntry, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, user_id, mood_score, energy_score, stress_score, note, created_at
		FROM mood_entries WHERE user_id = ?
		ORDER BY created_at DESC, rowid DESC`+limitClause(limit),
		string(userID),
	)
	if err != nil {
		return nil, fmt.Errorf("query mood entries: %w", err)
	}
	defer closeRows(rows, "mood_entries")

	out := []*domain.MoodEntry{}
	for rows.Next() {
		var (
			e         domain.MoodEntry
			id, uid   string
			note      sql.NullString
			createdAt int64
		)
		if err := rows.Scan(&id, &uid, &e.Mood, &e.Energy, &e.Stress, &note, &createdAt); err != nil {
			return nil, fmt.Errorf("scan mood entry: %w", err)
		}
		e.ID = domain.MoodEntryID(id)
		e.UserID = domain.UserID(uid)
		e.Note = note.String
		e.CreatedAt = time.Unix(0, createdAt)
		out = append(out, &e)
	}
	return out, rows.Err()
}

// ─────────────────────────────────────────
// ProfileStore implementation
// ─────────────────────────────────────────

func (s *Store) GetProfile(ctx context.Context, userID domain.UserID) (*domain.Profile, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT ai_persona, updated_at FROM profiles WHERE user_id = ?`, string(userID))

	var (
		persona   string
		updatedAt int64
	)
	err := row.Scan(&persona, &updatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("scan profile: %w", err)
	}

	p, _ := domain.ParsePersona(persona)
	return &domain.Profile{
		UserID:    userID,
		Persona:   p,
		UpdatedAt: time.Unix(0, updatedAt),
	}, nil
}

func (s *Store) UpsertProfile(ctx context.Context, profile *domain.Profile) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO profiles (user_id, ai_persona, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(user_id) DO UPDATE SET
			ai_persona = excluded.ai_persona,
			updated_at = excluded.updated_at`,
		string(profile.UserID), string(profile.Persona), profile.UpdatedAt.UnixNano(),
	)
	if err != nil {
		return fmt.Errorf("upsert profile: %w", err)
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

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO crisis_alerts (id, user_id, journal_entry_id, message, is_resolved, created_at)
		VALUES (?, ?, ?, ?, ?, ?)`,
		string(alert.ID), string(alert.UserID), string(alert.JournalEntryID),
		alert.Message, alert.Resolved, alert.CreatedAt.UnixNano(),
	)
	if err != nil {
		return fmt.Errorf("insert crisis alert: %w", err)
	}
	return nil
}

func (s *Store) ListAlertsByUser(ctx context.Context, userID domain.UserID) ([]*domain.CrisisAlert, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, journal_entry_id, message, is_resolved, created_at
		FROM crisis_alerts WHERE user_id = ?
		ORDER BY created_at DESC, rowid DESC`,
		string(userID),
	)
	if err != nil {
		return nil, fmt.Errorf("query crisis alerts: %w", err)
	}
	defer closeRows(rows, "crisis_alerts")

	out := []*domain.CrisisAlert{}
	for rows.Next() {
		var (
			a           domain.CrisisAlert
			id, entryID string
			createdAt   int64
		)
		if err := rows.Scan(&id, &entryID, &a.Message, &a.Resolved, &createdAt); err != nil {
			return nil, fmt.Errorf("scan crisis alert: %w", err)
		}
		a.ID = domain.AlertID(id)
		a.UserID = userID
		a.JournalEntryID = domain.JournalEntryID(entryID)
		a.CreatedAt = time.Unix(0, createdAt)
		out = append(out, &a)
	}
	return out, rows.Err()
}
