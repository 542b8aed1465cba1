// Package history persists completed generations to a local SQLite
// database so cards can be listed, re-viewed and re-downloaded later.
package history

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"cardlab/internal/card"
)

// ErrNotFound is returned when no stored card matches the lookup.
var ErrNotFound = errors.New("history: card not found")

// Store manages generation history backed by SQLite.
type Store struct {
	db   *sql.DB
	path string
}

const schema = `
CREATE TABLE IF NOT EXISTS generations (
	local_id             TEXT PRIMARY KEY,
	remote_id            INTEGER NOT NULL,
	extended_id          TEXT NOT NULL,
	status               TEXT NOT NULL,
	color_value          TEXT NOT NULL,
	display_name         TEXT NOT NULL,
	front_horizontal_url TEXT NOT NULL DEFAULT '',
	front_vertical_url   TEXT NOT NULL DEFAULT '',
	back_horizontal_url  TEXT NOT NULL DEFAULT '',
	back_vertical_url    TEXT NOT NULL DEFAULT '',
	note_text            TEXT NOT NULL DEFAULT '',
	has_note             INTEGER NOT NULL DEFAULT 0,
	created_at           TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_generations_extended_id ON generations(extended_id);
`

// Open initializes or connects to the history database at path.
func Open(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("history: ensure directory: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("history: open sqlite db: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, execErr := db.Exec(pragma); execErr != nil {
			_ = db.Close()
			return nil, fmt.Errorf("history: apply pragma %q: %w", pragma, execErr)
		}
	}

	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("history: init schema: %w", err)
	}

	return &Store{db: db, path: path}, nil
}

// Close releases the database handle.
func (s *Store) Close() error {
	return s.db.Close()
}

// Path returns the database file location.
func (s *Store) Path() string {
	return s.path
}

// Save upserts a record by its local id. Called after finalize succeeds and
// again after annotate, so the stored row tracks the latest phase.
func (s *Store) Save(ctx context.Context, rec *card.GenerationRecord) error {
	hasNote := 0
	if rec.HasNote {
		hasNote = 1
	}
	_, err := s.db.ExecContext(ctx, `
INSERT INTO generations (
	local_id, remote_id, extended_id, status, color_value, display_name,
	front_horizontal_url, front_vertical_url, back_horizontal_url, back_vertical_url,
	note_text, has_note, created_at
) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
ON CONFLICT(local_id) DO UPDATE SET
	status = excluded.status,
	front_horizontal_url = excluded.front_horizontal_url,
	front_vertical_url = excluded.front_vertical_url,
	back_horizontal_url = excluded.back_horizontal_url,
	back_vertical_url = excluded.back_vertical_url,
	note_text = excluded.note_text,
	has_note = excluded.has_note`,
		rec.LocalID.String(), rec.RemoteID, rec.ExtendedID, rec.Status.String(),
		rec.ColorValue, rec.DisplayName,
		rec.Assets.FrontHorizontal, rec.Assets.FrontVertical,
		rec.Assets.BackHorizontal, rec.Assets.BackVertical,
		rec.NoteText, hasNote, rec.CreatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("history: save %s: %w", rec.LocalID, err)
	}
	return nil
}

// Entry is one stored generation as listed by the history command.
type Entry struct {
	ExtendedID  string
	RemoteID    int64
	Status      card.Status
	ColorValue  string
	DisplayName string
	Assets      card.AssetSet
	NoteText    string
	HasNote     bool
	CreatedAt   time.Time
}

// List returns the most recent generations, newest first.
func (s *Store) List(ctx context.Context, limit int) ([]Entry, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.db.QueryContext(ctx, `
SELECT extended_id, remote_id, status, color_value, display_name,
	front_horizontal_url, front_vertical_url, back_horizontal_url, back_vertical_url,
	note_text, has_note, created_at
FROM generations
ORDER BY created_at DESC
LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("history: list: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		entry, err := scanEntry(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("history: list: %w", err)
	}
	return entries, nil
}

// FindByExtendedID looks up a single stored card.
func (s *Store) FindByExtendedID(ctx context.Context, extendedID string) (Entry, error) {
	row := s.db.QueryRowContext(ctx, `
SELECT extended_id, remote_id, status, color_value, display_name,
	front_horizontal_url, front_vertical_url, back_horizontal_url, back_vertical_url,
	note_text, has_note, created_at
FROM generations
WHERE extended_id = ?
ORDER BY created_at DESC
LIMIT 1`, extendedID)

	entry, err := scanEntry(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Entry{}, ErrNotFound
	}
	if err != nil {
		return Entry{}, err
	}
	return entry, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanEntry(row rowScanner) (Entry, error) {
	var (
		entry      Entry
		statusName string
		hasNote    int
		createdAt  string
	)
	err := row.Scan(
		&entry.ExtendedID, &entry.RemoteID, &statusName, &entry.ColorValue, &entry.DisplayName,
		&entry.Assets.FrontHorizontal, &entry.Assets.FrontVertical,
		&entry.Assets.BackHorizontal, &entry.Assets.BackVertical,
		&entry.NoteText, &hasNote, &createdAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Entry{}, err
		}
		return Entry{}, fmt.Errorf("history: scan row: %w", err)
	}
	entry.Status, err = card.ParseStatus(statusName)
	if err != nil {
		return Entry{}, fmt.Errorf("history: scan row: %w", err)
	}
	entry.HasNote = hasNote != 0
	if ts, parseErr := time.Parse(time.RFC3339, createdAt); parseErr == nil {
		entry.CreatedAt = ts
	}
	return entry, nil
}
