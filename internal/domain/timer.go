// Package domain contains the countdown timer core: duration parsing and
// formatting, progress math, the shortcut gate and the timer state machine.
// Everything here is pure; side effects are described as Effect values and
// carried out by the services layer.
package domain

import (
	"errors"
	"fmt"
	"time"
)

// Common domain errors.
var (
	ErrInvalidDuration   = errors.New("invalid duration")
	ErrInvalidTransition = errors.New("invalid transition for current phase")
	ErrShortcutsDisabled = errors.New("shortcuts are disabled while a timer is active")
	ErrShortcutNotFound  = errors.New("shortcut not found")
	ErrInputLocked       = errors.New("duration input is locked")
	ErrNoteNotFound      = errors.New("note not found")
	ErrRunNotFound       = errors.New("run not found")
)

// User-facing notification texts.
const (
	MsgInvalidTime       = "Please enter a valid time!"
	MsgShortcutsDisabled = "Timer is already running. Shortcuts are disabled!"
)

// Phase is the discrete state of the timer machine.
type Phase string

const (
	PhaseIdle    Phase = "idle"
	PhaseRunning Phase = "running"
	PhasePaused  Phase = "paused"
	PhaseExpired Phase = "expired"
)

// GetPhaseLabel returns a human-readable label for the phase.
func GetPhaseLabel(p Phase) string {
	switch p {
	case PhaseIdle:
		return "Idle"
	case PhaseRunning:
		return "Running"
	case PhasePaused:
		return "Paused"
	case PhaseExpired:
		return "Expired"
	default:
		return "Unknown"
	}
}

// TickHandle identifies the one periodic schedule owned by a running timer.
type TickHandle struct {
	ID uint64
}

// TimerState is the complete state of the countdown.
type TimerState struct {
	Phase            Phase
	RemainingSeconds int
	InitialSeconds   int
	// Tick is non-nil exactly while Phase is PhaseRunning.
	Tick             *TickHandle
	Display          string
	InputLocked      bool
	ShortcutsEnabled bool
}

// Options tunes a Timer.
type Options struct {
	TickInterval        time.Duration
	Circumference       float64
	NotifyDelay         time.Duration
	ShortcutNotifyDelay time.Duration
	Presets             []Preset
}

// DefaultOptions returns the stock widget settings.
func DefaultOptions() Options {
	return Options{
		TickInterval:        time.Second,
		Circumference:       RingCircumference(DefaultRingRadius),
		NotifyDelay:         3 * time.Second,
		ShortcutNotifyDelay: 2 * time.Second,
		Presets:             DefaultPresets(),
	}
}

// Timer is the countdown state machine. Every transition mutates the owned
// TimerState and returns the effects a rendering layer must apply. Timer is
// not safe for concurrent use; callers serialize access.
type Timer struct {
	state      TimerState
	opts       Options
	gate       ShortcutGate
	nextTickID uint64
	version    uint64
}

// NewTimer creates an idle timer. Zero-valued options fall back to defaults.
func NewTimer(opts Options) *Timer {
	defaults := DefaultOptions()
	if opts.TickInterval <= 0 {
		opts.TickInterval = defaults.TickInterval
	}
	if opts.Circumference <= 0 {
		opts.Circumference = defaults.Circumference
	}
	if opts.NotifyDelay <= 0 {
		opts.NotifyDelay = defaults.NotifyDelay
	}
	if opts.ShortcutNotifyDelay <= 0 {
		opts.ShortcutNotifyDelay = defaults.ShortcutNotifyDelay
	}
	if opts.Presets == nil {
		opts.Presets = defaults.Presets
	}

	return &Timer{
		state: TimerState{
			Phase:            PhaseIdle,
			ShortcutsEnabled: true,
		},
		opts: opts,
		gate: NewShortcutGate(opts.Presets),
	}
}

// State returns a copy of the current state.
func (t *Timer) State() TimerState {
	st := t.state
	if st.Tick != nil {
		h := *st.Tick
		st.Tick = &h
	}
	return st
}

// Phase returns the current phase.
func (t *Timer) Phase() Phase {
	return t.state.Phase
}

// Options returns the options the timer was built with.
func (t *Timer) Options() Options {
	return t.opts
}

// Presets returns the shortcut presets.
func (t *Timer) Presets() []Preset {
	return t.gate.Presets()
}

// Edit applies a keystroke-level change to the duration field. Edits are
// ignored while the input is locked.
func (t *Timer) Edit(raw string) ([]Effect, error) {
	if t.state.InputLocked {
		return nil, ErrInputLocked
	}
	t.state.Display = SanitizeInput(raw)
	t.version++
	return []Effect{SetDisplay{Text: t.state.Display}}, nil
}

// Start begins a countdown from the given field text. An unparsable or
// non-positive duration clears the field, raises a notification and keeps
// the timer idle.
func (t *Timer) Start(input string) ([]Effect, error) {
	if t.state.Phase != PhaseIdle {
		return nil, ErrInvalidTransition
	}

	seconds, err := ParseDuration(input)
	if err != nil {
		t.state.Display = ""
		t.version++
		return []Effect{
			SetDisplay{Text: ""},
			Notify{Message: MsgInvalidTime, Delay: t.opts.NotifyDelay},
		}, err
	}

	t.state.InitialSeconds = seconds
	t.state.RemainingSeconds = seconds
	t.state.Display = FormatDuration(seconds)
	t.state.InputLocked = true
	t.state.ShortcutsEnabled = false

	effects := []Effect{
		SetDisplay{Text: t.state.Display},
		t.progress(),
		LockInput{},
		SetShortcutsEnabled{Enabled: false},
	}
	effects = append(effects, t.acquireTick()...)
	effects = append(effects, t.enter(PhaseRunning)...)
	return effects, nil
}

// Tick advances a running countdown by one second. Ticks carrying a handle
// other than the live one are stale and change nothing.
func (t *Timer) Tick(handleID uint64) []Effect {
	if t.state.Phase != PhaseRunning || t.state.Tick == nil || t.state.Tick.ID != handleID {
		return nil
	}

	if t.state.RemainingSeconds > 0 {
		t.state.RemainingSeconds--
		t.state.Display = FormatDuration(t.state.RemainingSeconds)
		t.version++
		return []Effect{
			SetDisplay{Text: t.state.Display},
			t.progress(),
		}
	}

	effects := t.releaseTick()
	t.state.InputLocked = false
	effects = append(effects, UnlockInput{}, PlayAlert{})
	return append(effects, t.enter(PhaseExpired)...)
}

// Pause freezes a running countdown.
func (t *Timer) Pause() ([]Effect, error) {
	if t.state.Phase != PhaseRunning {
		return nil, ErrInvalidTransition
	}
	effects := t.releaseTick()
	return append(effects, t.enter(PhasePaused)...), nil
}

// Resume continues a paused countdown.
func (t *Timer) Resume() ([]Effect, error) {
	if t.state.Phase != PhasePaused {
		return nil, ErrInvalidTransition
	}
	effects := t.acquireTick()
	return append(effects, t.enter(PhaseRunning)...), nil
}

// TogglePause backs the Pause/Resume control.
func (t *Timer) TogglePause() ([]Effect, error) {
	switch t.state.Phase {
	case PhaseRunning:
		return t.Pause()
	case PhasePaused:
		return t.Resume()
	default:
		return nil, ErrInvalidTransition
	}
}

// Reset returns an active or expired timer to idle with the last started
// duration restored on the display.
func (t *Timer) Reset() ([]Effect, error) {
	if t.state.Phase == PhaseIdle {
		return nil, ErrInvalidTransition
	}

	effects := t.releaseTick()
	t.state.RemainingSeconds = t.state.InitialSeconds
	t.state.Display = FormatDuration(t.state.InitialSeconds)
	t.state.InputLocked = false
	t.state.ShortcutsEnabled = true

	effects = append(effects,
		UnlockInput{},
		SetDisplay{Text: t.state.Display},
		t.progress(),
		SetShortcutsEnabled{Enabled: true},
		StopAlert{},
	)
	return append(effects, t.enter(PhaseIdle)...), nil
}

// ApplyShortcut fills the duration field with a preset. It never starts the
// timer. Outside the idle phase the activation only produces a notification.
func (t *Timer) ApplyShortcut(index int) ([]Effect, error) {
	value, err := t.gate.Activate(t.state.Phase, index)
	if errors.Is(err, ErrShortcutsDisabled) {
		return []Effect{
			Notify{Message: MsgShortcutsDisabled, Delay: t.opts.ShortcutNotifyDelay},
		}, err
	}
	if err != nil {
		return nil, err
	}

	t.state.Display = value
	t.version++
	return []Effect{SetDisplay{Text: value}}, nil
}

// Snapshot captures the observable state for renderers and remote clients.
func (t *Timer) Snapshot() Snapshot {
	offset := 0.0
	if t.state.InitialSeconds > 0 && t.state.Phase != PhaseIdle {
		offset = ComputeStrokeOffset(t.state.RemainingSeconds, t.state.InitialSeconds, t.opts.Circumference)
	}
	return Snapshot{
		Phase:            t.state.Phase,
		RemainingSeconds: t.state.RemainingSeconds,
		InitialSeconds:   t.state.InitialSeconds,
		Display:          t.state.Display,
		StrokeOffset:     offset,
		Circumference:    t.opts.Circumference,
		Controls:         ControlsFor(t.state.Phase),
		InputLocked:      t.state.InputLocked,
		ShortcutsEnabled: t.state.ShortcutsEnabled,
		Version:          t.version,
	}
}

// CheckInvariants reports the first broken state invariant, if any.
func (t *Timer) CheckInvariants() error {
	st := t.state
	if st.RemainingSeconds < 0 {
		return fmt.Errorf("remaining seconds %d is negative", st.RemainingSeconds)
	}
	if st.RemainingSeconds > st.InitialSeconds {
		return fmt.Errorf("remaining seconds %d exceeds initial %d", st.RemainingSeconds, st.InitialSeconds)
	}
	if (st.Tick != nil) != (st.Phase == PhaseRunning) {
		return fmt.Errorf("tick handle present=%v in phase %s", st.Tick != nil, st.Phase)
	}
	if st.Phase != PhaseIdle && st.InitialSeconds < 1 {
		return fmt.Errorf("initial seconds %d in phase %s", st.InitialSeconds, st.Phase)
	}
	return nil
}

func (t *Timer) progress() Effect {
	if t.state.InitialSeconds <= 0 {
		return SetProgress{Offset: 0, Circumference: t.opts.Circumference}
	}
	return SetProgress{
		Offset:        ComputeStrokeOffset(t.state.RemainingSeconds, t.state.InitialSeconds, t.opts.Circumference),
		Circumference: t.opts.Circumference,
	}
}

// acquireTick creates the live tick handle. A leftover handle is released
// first so two schedules never coexist.
func (t *Timer) acquireTick() []Effect {
	effects := t.releaseTick()
	t.nextTickID++
	t.state.Tick = &TickHandle{ID: t.nextTickID}
	return append(effects, ScheduleTick{HandleID: t.nextTickID, Period: t.opts.TickInterval})
}

func (t *Timer) releaseTick() []Effect {
	if t.state.Tick == nil {
		return nil
	}
	id := t.state.Tick.ID
	t.state.Tick = nil
	return []Effect{CancelTick{HandleID: id}}
}

func (t *Timer) enter(to Phase) []Effect {
	from := t.state.Phase
	t.state.Phase = to
	t.version++
	return []Effect{
		SetControls{Controls: ControlsFor(to)},
		PhaseChanged{From: from, To: to},
	}
}
