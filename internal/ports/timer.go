package ports

import (
	"context"
	"time"

	"github.com/xvierd/countdown-cli/internal/domain"
)

// TickHandle is a live periodic schedule.
type TickHandle interface {
	// Stop cancels the schedule. It must not block and is safe to call twice.
	Stop()
}

// Scheduler creates periodic ticks.
// This is a driven port (implemented by adapters).
type Scheduler interface {
	// Every calls fn once per period until the returned handle is stopped.
	Every(period time.Duration, fn func()) TickHandle
}

// AlertSink plays the completion sound.
// This is a driven port (implemented by adapters).
type AlertSink interface {
	// Cue arms a playback and returns the function that plays it. A Stop
	// issued after Cue returns cancels the playback even when the returned
	// function has not started yet. The function rewinds the alert, plays it
	// and blocks until playback ends or Stop is called.
	Cue() func() error

	// Stop halts playback and rewinds. It is a no-op when nothing plays.
	Stop()
}

// Notifier shows a transient message to the user.
// This is a driven port (implemented by adapters).
type Notifier interface {
	// Notify shows message and hides it again after delay.
	Notify(message string, delay time.Duration)
}

// TimerView is the rendering surface the timer service pushes changes to.
// This is a driven port (implemented by adapters).
type TimerView interface {
	// SetDisplay replaces the MM:SS readout, which is also the input field.
	SetDisplay(text string)

	// SetProgress redraws the progress ring.
	SetProgress(offset, circumference float64)

	// SetInputLocked toggles the read-only state of the duration field.
	SetInputLocked(locked bool)

	// SetControls updates control visibility and labels.
	SetControls(controls domain.Controls)

	// SetShortcutsEnabled toggles the preset controls.
	SetShortcutsEnabled(enabled bool)
}

// TimerController is the command surface of the countdown.
// This is a driving port (called by front ends).
type TimerController interface {
	// Snapshot returns the current observable state.
	Snapshot() domain.Snapshot

	// Presets returns the shortcut presets in control order.
	Presets() []domain.Preset

	// Edit applies a keystroke-level change to the duration field.
	Edit(raw string) (domain.Snapshot, error)

	// Start begins a countdown from the given field text.
	Start(ctx context.Context, input string) (domain.Snapshot, error)

	// Pause freezes a running countdown.
	Pause(ctx context.Context) (domain.Snapshot, error)

	// Resume continues a paused countdown.
	Resume(ctx context.Context) (domain.Snapshot, error)

	// TogglePause backs the Pause/Resume control.
	TogglePause(ctx context.Context) (domain.Snapshot, error)

	// Reset returns the timer to idle with the last duration restored.
	Reset(ctx context.Context) (domain.Snapshot, error)

	// ApplyShortcut fills the field with the preset at index.
	ApplyShortcut(ctx context.Context, index int) (domain.Snapshot, error)

	// Subscribe registers fn to receive a snapshot after every state change.
	// fn is called outside the controller lock. The returned func unsubscribes.
	Subscribe(fn func(domain.Snapshot)) (unsubscribe func())
}

// Timer is the interactive timer interface.
// This is a driving port (called by the application layer).
type Timer interface {
	// Run starts the timer interface and blocks until the user quits.
	Run(ctx context.Context) error

	// Stop gracefully stops the timer interface.
	Stop()
}
