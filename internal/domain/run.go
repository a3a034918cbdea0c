package domain

import (
	"time"

	"github.com/google/uuid"
)

// RunOutcome records how a countdown left the running state for good.
type RunOutcome string

const (
	RunOutcomeExpired RunOutcome = "expired"
	RunOutcomeReset   RunOutcome = "reset"
)

// Run is one started countdown, kept for history and stats.
type Run struct {
	ID               string
	InitialSeconds   int
	RemainingSeconds int
	Outcome          RunOutcome
	StartedAt        time.Time
	EndedAt          time.Time
	GitBranch        string
	GitCommit        string
}

// NewRun creates a run record with a fresh ID.
func NewRun(initial, remaining int, outcome RunOutcome, startedAt, endedAt time.Time) *Run {
	return &Run{
		ID:               uuid.NewString(),
		InitialSeconds:   initial,
		RemainingSeconds: remaining,
		Outcome:          outcome,
		StartedAt:        startedAt,
		EndedAt:          endedAt,
	}
}

// ElapsedSeconds returns how many seconds were actually counted down.
func (r *Run) ElapsedSeconds() int {
	return r.InitialSeconds - r.RemainingSeconds
}

// SetGitContext stores git information for the run.
func (r *Run) SetGitContext(branch, commit string) {
	r.GitBranch = branch
	r.GitCommit = commit
}

// GetOutcomeLabel returns a human-readable label for a run outcome.
func GetOutcomeLabel(o RunOutcome) string {
	switch o {
	case RunOutcomeExpired:
		return "Completed"
	case RunOutcomeReset:
		return "Reset"
	default:
		return "Unknown"
	}
}

// RunStats aggregates run history over a period.
type RunStats struct {
	Since          time.Time
	TotalRuns      int
	Expired        int
	Reset          int
	CountedSeconds int
}
