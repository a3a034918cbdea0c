package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/xvierd/countdown-cli/internal/domain"
	"github.com/xvierd/countdown-cli/internal/ports"
)

// notesRepository implements ports.NotesRepository using SQLite.
type notesRepository struct {
	db *sql.DB
}

func newNotesRepository(db *sql.DB) ports.NotesRepository {
	return &notesRepository{db: db}
}

// Get retrieves the note stored under key.
func (r *notesRepository) Get(ctx context.Context, key string) (*domain.Note, error) {
	query := `SELECT key, body, updated_at FROM notes WHERE key = ?`

	var note domain.Note
	var updated int64
	err := r.db.QueryRowContext(ctx, query, key).Scan(&note.Key, &note.Body, &updated)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNoteNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get note: %w", err)
	}
	note.UpdatedAt = fromMillis(updated)
	return &note, nil
}

// Set stores or replaces a note.
func (r *notesRepository) Set(ctx context.Context, note *domain.Note) error {
	query := `
		INSERT INTO notes (key, body, updated_at)
		VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET body = excluded.body, updated_at = excluded.updated_at
	`

	updated := note.UpdatedAt
	if updated.IsZero() {
		updated = time.Now()
	}

	if _, err := r.db.ExecContext(ctx, query, note.Key, note.Body, toMillis(updated)); err != nil {
		return fmt.Errorf("failed to save note: %w", err)
	}
	return nil
}

// Delete removes the note under key.
func (r *notesRepository) Delete(ctx context.Context, key string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM notes WHERE key = ?`, key); err != nil {
		return fmt.Errorf("failed to delete note: %w", err)
	}
	return nil
}
