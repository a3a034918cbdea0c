package domain

import "fmt"

// Preset is a fixed duration the user can drop into the field in one step.
type Preset struct {
	Name  string `mapstructure:"name" json:"name" toml:"name"`
	Value string `mapstructure:"value" json:"value" toml:"value"`
}

// DefaultPresets returns the stock shortcut durations.
func DefaultPresets() []Preset {
	return []Preset{
		{Name: "Long", Value: "10:00"},
		{Name: "Medium", Value: "05:00"},
		{Name: "Short", Value: "01:00"},
		{Name: "Quick", Value: "00:30"},
	}
}

// ValidatePreset checks that a preset value is already in field form and
// describes a positive duration.
func ValidatePreset(p Preset) error {
	if SanitizeInput(p.Value) != p.Value {
		return fmt.Errorf("preset %q: value %q is not in MM:SS form: %w", p.Name, p.Value, ErrInvalidDuration)
	}
	if _, err := ParseDuration(p.Value); err != nil {
		return fmt.Errorf("preset %q: %w", p.Name, err)
	}
	return nil
}

// ShortcutGate decides whether preset controls may act.
type ShortcutGate struct {
	presets []Preset
}

// NewShortcutGate creates a gate over the given presets.
func NewShortcutGate(presets []Preset) ShortcutGate {
	cp := make([]Preset, len(presets))
	copy(cp, presets)
	return ShortcutGate{presets: cp}
}

// Presets returns a copy of the presets.
func (g ShortcutGate) Presets() []Preset {
	cp := make([]Preset, len(g.presets))
	copy(cp, g.presets)
	return cp
}

// Enabled reports whether presets are usable in the given phase.
func (g ShortcutGate) Enabled(p Phase) bool {
	return p == PhaseIdle
}

// Activate returns the literal field text for preset index, or
// ErrShortcutsDisabled when the phase does not allow it.
func (g ShortcutGate) Activate(p Phase, index int) (string, error) {
	if index < 0 || index >= len(g.presets) {
		return "", fmt.Errorf("shortcut %d: %w", index+1, ErrShortcutNotFound)
	}
	if !g.Enabled(p) {
		return "", ErrShortcutsDisabled
	}
	return g.presets[index].Value, nil
}
