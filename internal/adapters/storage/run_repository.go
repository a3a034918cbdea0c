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

// ErrDuplicateRun is returned when a run with the same ID is saved twice.
var ErrDuplicateRun = errors.New("run already recorded")

// runRepository implements ports.RunRepository using SQLite.
type runRepository struct {
	db *sql.DB
}

func newRunRepository(db *sql.DB) ports.RunRepository {
	return &runRepository{db: db}
}

const runColumns = `id, initial_seconds, remaining_seconds, outcome, started_at, ended_at, git_branch, git_commit`

// Save persists a finished run.
func (r *runRepository) Save(ctx context.Context, run *domain.Run) error {
	query := `INSERT INTO runs (` + runColumns + `) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`

	_, err := r.db.ExecContext(ctx, query,
		run.ID,
		run.InitialSeconds,
		run.RemainingSeconds,
		string(run.Outcome),
		toMillis(run.StartedAt),
		toMillis(run.EndedAt),
		run.GitBranch,
		run.GitCommit,
	)
	if isUniqueConstraintError(err) {
		return fmt.Errorf("failed to save run %s: %w", run.ID, ErrDuplicateRun)
	}
	if err != nil {
		return fmt.Errorf("failed to save run: %w", err)
	}
	return nil
}

// FindByID retrieves a run by its unique identifier.
func (r *runRepository) FindByID(ctx context.Context, id string) (*domain.Run, error) {
	query := `SELECT ` + runColumns + ` FROM runs WHERE id = ?`

	run, err := scanRun(r.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrRunNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find run: %w", err)
	}
	return run, nil
}

// FindRecent retrieves runs started at or after since, newest first.
func (r *runRepository) FindRecent(ctx context.Context, since time.Time, limit int) ([]*domain.Run, error) {
	query := `
		SELECT ` + runColumns + `
		FROM runs
		WHERE started_at >= ?
		ORDER BY started_at DESC
	`
	args := []any{toMillis(since)}
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query recent runs: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var runs []*domain.Run
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan run: %w", err)
		}
		runs = append(runs, run)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate runs: %w", err)
	}
	return runs, nil
}

// GetStats returns aggregated counts for runs started at or after since.
func (r *runRepository) GetStats(ctx context.Context, since time.Time) (*domain.RunStats, error) {
	query := `
		SELECT
			COUNT(*),
			COALESCE(SUM(CASE WHEN outcome = ? THEN 1 ELSE 0 END), 0),
			COALESCE(SUM(CASE WHEN outcome = ? THEN 1 ELSE 0 END), 0),
			COALESCE(SUM(initial_seconds - remaining_seconds), 0)
		FROM runs
		WHERE started_at >= ?
	`

	stats := &domain.RunStats{Since: since}
	err := r.db.QueryRowContext(ctx, query,
		string(domain.RunOutcomeExpired),
		string(domain.RunOutcomeReset),
		toMillis(since),
	).Scan(&stats.TotalRuns, &stats.Expired, &stats.Reset, &stats.CountedSeconds)
	if err != nil {
		return nil, fmt.Errorf("failed to get run stats: %w", err)
	}
	return stats, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRun(row rowScanner) (*domain.Run, error) {
	var run domain.Run
	var outcome string
	var started, ended int64
	var branch, commit sql.NullString

	if err := row.Scan(
		&run.ID,
		&run.InitialSeconds,
		&run.RemainingSeconds,
		&outcome,
		&started,
		&ended,
		&branch,
		&commit,
	); err != nil {
		return nil, err
	}

	run.Outcome = domain.RunOutcome(outcome)
	run.StartedAt = fromMillis(started)
	run.EndedAt = fromMillis(ended)
	run.GitBranch = branch.String
	run.GitCommit = commit.String
	return &run, nil
}
