package domain

// Control labels for the Pause/Resume affordance.
const (
	LabelPause  = "Pause"
	LabelResume = "Resume"
)

// Controls describes which affordances are visible. The three controls are
// fully determined by the phase.
type Controls struct {
	StartVisible bool   `json:"start_visible"`
	PauseVisible bool   `json:"pause_visible"`
	PauseLabel   string `json:"pause_label,omitempty"`
	ResetVisible bool   `json:"reset_visible"`
}

// ControlsFor returns the control layout for a phase.
func ControlsFor(p Phase) Controls {
	switch p {
	case PhaseRunning:
		return Controls{PauseVisible: true, PauseLabel: LabelPause, ResetVisible: true}
	case PhasePaused:
		return Controls{PauseVisible: true, PauseLabel: LabelResume, ResetVisible: true}
	case PhaseExpired:
		return Controls{ResetVisible: true}
	default:
		return Controls{StartVisible: true}
	}
}

// Snapshot is a read-only view of the timer for renderers and remote clients.
// Version grows with every state change so consumers can drop stale copies.
type Snapshot struct {
	Phase            Phase    `json:"phase"`
	RemainingSeconds int      `json:"remaining_seconds"`
	InitialSeconds   int      `json:"initial_seconds"`
	Display          string   `json:"display"`
	StrokeOffset     float64  `json:"stroke_offset"`
	Circumference    float64  `json:"circumference"`
	Controls         Controls `json:"controls"`
	InputLocked      bool     `json:"input_locked"`
	ShortcutsEnabled bool     `json:"shortcuts_enabled"`
	Version          uint64   `json:"version"`
}

// Fraction returns the drawn share of the progress ring.
func (s Snapshot) Fraction() float64 {
	return ProgressFraction(s.StrokeOffset, s.Circumference)
}

// IsActive returns true if a countdown is running or paused.
func (s Snapshot) IsActive() bool {
	return s.Phase == PhaseRunning || s.Phase == PhasePaused
}
