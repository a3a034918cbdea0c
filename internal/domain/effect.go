package domain

import "time"

// Effect is a side effect requested by a timer transition.
type Effect interface {
	effect()
}

// ScheduleTick asks for a periodic tick that reports HandleID.
type ScheduleTick struct {
	HandleID uint64
	Period   time.Duration
}

// CancelTick releases the periodic tick with HandleID.
type CancelTick struct {
	HandleID uint64
}

// SetDisplay replaces the MM:SS readout (which doubles as the input field).
type SetDisplay struct {
	Text string
}

// SetProgress redraws the progress ring.
type SetProgress struct {
	Offset        float64
	Circumference float64
}

// LockInput makes the duration field read-only.
type LockInput struct{}

// UnlockInput makes the duration field editable again.
type UnlockInput struct{}

// SetControls updates control visibility and the Pause/Resume label.
type SetControls struct {
	Controls Controls
}

// SetShortcutsEnabled toggles the preset controls.
type SetShortcutsEnabled struct {
	Enabled bool
}

// Notify shows a transient message that dismisses itself after Delay.
type Notify struct {
	Message string
	Delay   time.Duration
}

// PlayAlert requests the completion sound.
type PlayAlert struct{}

// StopAlert stops and rewinds the completion sound if it is playing.
type StopAlert struct{}

// PhaseChanged reports a phase transition.
type PhaseChanged struct {
	From Phase
	To   Phase
}

func (ScheduleTick) effect()        {}
func (CancelTick) effect()          {}
func (SetDisplay) effect()          {}
func (SetProgress) effect()         {}
func (LockInput) effect()           {}
func (UnlockInput) effect()         {}
func (SetControls) effect()         {}
func (SetShortcutsEnabled) effect() {}
func (Notify) effect()              {}
func (PlayAlert) effect()           {}
func (StopAlert) effect()           {}
func (PhaseChanged) effect()        {}
