package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/xvierd/countdown-cli/internal/domain"
)

// keyMap holds the widget bindings. Start, Pause and Reset are enabled only
// while their control is visible, so a hidden control cannot be activated.
type keyMap struct {
	Start     key.Binding
	Pause     key.Binding
	Reset     key.Binding
	Shortcuts []key.Binding
	Notes     key.Binding
	Restore   key.Binding
	Save      key.Binding
	Help      key.Binding
	Quit      key.Binding
}

// maxShortcutKeys is the number of function keys bound to presets.
const maxShortcutKeys = 12

func newKeyMap(presets []domain.Preset) keyMap {
	km := keyMap{
		Start: key.NewBinding(
			key.WithKeys("enter", "s"),
			key.WithHelp("enter", "start"),
		),
		Pause: key.NewBinding(
			key.WithKeys(" ", "p"),
			key.WithHelp("space", "pause"),
			key.WithDisabled(),
		),
		Reset: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "reset"),
			key.WithDisabled(),
		),
		Notes: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "notes"),
		),
		Restore: key.NewBinding(
			key.WithKeys("ctrl+o"),
			key.WithHelp("ctrl+o", "restore notes"),
			key.WithDisabled(),
		),
		Save: key.NewBinding(
			key.WithKeys("ctrl+s"),
			key.WithHelp("ctrl+s", "save notes"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "more"),
		),
		Quit: key.NewBinding(
			key.WithKeys("ctrl+c", "q"),
			key.WithHelp("q", "quit"),
		),
	}

	for i, p := range presets {
		if i >= maxShortcutKeys {
			break
		}
		fkey := fmt.Sprintf("f%d", i+1)
		km.Shortcuts = append(km.Shortcuts, key.NewBinding(
			key.WithKeys(fkey),
			key.WithHelp(fkey, fmt.Sprintf("%s %s", p.Name, p.Value)),
		))
	}
	return km
}

// syncControls mirrors the visible controls of a snapshot onto the bindings.
func (k *keyMap) syncControls(c domain.Controls) {
	k.Start.SetEnabled(c.StartVisible)
	k.Pause.SetEnabled(c.PauseVisible)
	if c.PauseLabel != "" {
		k.Pause.SetHelp("space", strings.ToLower(c.PauseLabel))
	}
	k.Reset.SetEnabled(c.ResetVisible)
}

// ShortHelp implements help.KeyMap.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Start, k.Pause, k.Reset, k.Notes, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Start, k.Pause, k.Reset},
		k.Shortcuts,
		{k.Notes, k.Restore, k.Save},
		{k.Help, k.Quit},
	}
}
