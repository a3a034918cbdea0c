package ports

import (
	"context"

	"github.com/xvierd/countdown-cli/internal/domain"
)

// MCPHandler defines the interface for MCP server operations.
// This is a driving port (called by the application layer).
type MCPHandler interface {
	// Start begins serving MCP requests.
	Start(ctx context.Context) error

	// Stop gracefully shuts down the server.
	Stop() error

	// IsRunning returns true if the server is active.
	IsRunning() bool
}

// StateProvider exposes timer control, notes and history to remote front
// ends (the MCP server and the HTTP API).
// This is a driven port (implemented by services layer).
type StateProvider interface {
	GetTimerState(ctx context.Context) (domain.Snapshot, error)
	StartTimer(ctx context.Context, input string) (domain.Snapshot, error)
	PauseTimer(ctx context.Context) (domain.Snapshot, error)
	ResumeTimer(ctx context.Context) (domain.Snapshot, error)
	ResetTimer(ctx context.Context) (domain.Snapshot, error)
	ApplyShortcut(ctx context.Context, index int) (domain.Snapshot, error)
	ListPresets(ctx context.Context) []domain.Preset

	GetNotes(ctx context.Context) (string, error)
	SetNotes(ctx context.Context, text string) error

	GetRecentRuns(ctx context.Context, limit int) ([]*domain.Run, error)

	// Subscribe registers fn to receive a snapshot after every state change.
	Subscribe(fn func(domain.Snapshot)) (unsubscribe func())
}
