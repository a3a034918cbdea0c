// Package ports defines the interfaces (driven and driving ports)
// for the countdown application following hexagonal architecture principles.
// These interfaces define the contracts between the domain layer and
// external infrastructure.
package ports

import (
	"context"
	"time"

	"github.com/xvierd/countdown-cli/internal/domain"
)

// NotesRepository defines the interface for the persisted notes blob.
// This is a driven port (implemented by adapters).
type NotesRepository interface {
	// Get retrieves the note stored under key.
	// Returns domain.ErrNoteNotFound when nothing is stored.
	Get(ctx context.Context, key string) (*domain.Note, error)

	// Set stores or replaces the note under its key.
	Set(ctx context.Context, note *domain.Note) error

	// Delete removes the note under key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error
}

// RunRepository defines the interface for countdown run history.
// This is a driven port (implemented by adapters).
type RunRepository interface {
	// Save persists a finished run.
	Save(ctx context.Context, run *domain.Run) error

	// FindByID retrieves a run by its unique identifier.
	FindByID(ctx context.Context, id string) (*domain.Run, error)

	// FindRecent retrieves runs started at or after since, newest first.
	// A limit of zero or less means no limit.
	FindRecent(ctx context.Context, since time.Time, limit int) ([]*domain.Run, error)

	// GetStats returns aggregated counts for runs started at or after since.
	GetStats(ctx context.Context, since time.Time) (*domain.RunStats, error)
}

// Storage is the combined repository interface.
// This is a driven port (implemented by adapters).
type Storage interface {
	// Notes provides access to the notes blob.
	Notes() NotesRepository

	// Runs provides access to run history.
	Runs() RunRepository

	// Close closes the storage connection.
	Close() error

	// Migrate runs database migrations.
	Migrate() error
}
