package tui

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/xvierd/countdown-cli/internal/adapters/notification"
	"github.com/xvierd/countdown-cli/internal/config"
	"github.com/xvierd/countdown-cli/internal/domain"
	"github.com/xvierd/countdown-cli/internal/ports"
)

// snapshotMsg carries a snapshot published by the controller.
type snapshotMsg struct {
	snap domain.Snapshot
}

// notifyMsg carries a transient message for the tooltip.
type notifyMsg struct {
	message string
	delay   time.Duration
}

// tooltipExpiredMsg asks for a redraw once a tooltip delay has passed.
type tooltipExpiredMsg struct{}

// widget is the timer surface shared by the fullscreen and inline models:
// the duration field, the controls and the tooltip.
type widget struct {
	ctx     context.Context
	ctl     ports.TimerController
	snap    domain.Snapshot
	presets []domain.Preset
	input   textinput.Model
	tooltip *notification.Tooltip
	keys    keyMap
	theme   config.ThemeConfig
}

func newWidget(ctx context.Context, ctl ports.TimerController, theme config.ThemeConfig) widget {
	presets := ctl.Presets()

	ti := textinput.New()
	ti.Prompt = ""
	ti.Placeholder = "MM:SS"
	ti.CharLimit = domain.MaxInputLen
	ti.Width = domain.MaxInputLen + 1
	ti.Focus()

	w := widget{
		ctx:     ctx,
		ctl:     ctl,
		presets: presets,
		input:   ti,
		tooltip: notification.NewTooltip(),
		keys:    newKeyMap(presets),
		theme:   theme,
	}
	w.apply(ctl.Snapshot())
	return w
}

// apply installs snap unless a newer snapshot is already shown.
func (w *widget) apply(snap domain.Snapshot) {
	if snap.Version < w.snap.Version {
		return
	}
	w.snap = snap
	w.keys.syncControls(snap.Controls)
	if w.input.Value() != snap.Display {
		w.input.SetValue(snap.Display)
		w.input.CursorEnd()
	}
}

// result applies the snapshot a command returned. Rejections reach the user
// through the tooltip, so the error itself is dropped.
func (w *widget) result(snap domain.Snapshot, _ error) {
	w.apply(snap)
}

// notify shows a tooltip and schedules the redraw that hides it.
func (w *widget) notify(message string, delay time.Duration) tea.Cmd {
	w.tooltip.Notify(message, delay)
	return tea.Tick(delay, func(time.Time) tea.Msg {
		return tooltipExpiredMsg{}
	})
}

// handleKey runs the timer bindings. It reports whether the key was
// consumed.
func (w *widget) handleKey(msg tea.KeyMsg) (bool, tea.Cmd) {
	switch {
	case key.Matches(msg, w.keys.Start):
		w.result(w.ctl.Start(w.ctx, w.input.Value()))
		return true, nil
	case key.Matches(msg, w.keys.Pause):
		w.result(w.ctl.TogglePause(w.ctx))
		return true, nil
	case key.Matches(msg, w.keys.Reset):
		w.result(w.ctl.Reset(w.ctx))
		return true, nil
	}

	for i, b := range w.keys.Shortcuts {
		if key.Matches(msg, b) {
			w.result(w.ctl.ApplyShortcut(w.ctx, i))
			return true, nil
		}
	}

	if w.snap.InputLocked || !isFieldKey(msg) {
		return false, nil
	}

	var cmd tea.Cmd
	w.input, cmd = w.input.Update(msg)
	if w.input.Value() != w.snap.Display {
		w.result(w.ctl.Edit(w.input.Value()))
	}
	return true, cmd
}

// isFieldKey reports whether msg edits the duration field.
func isFieldKey(msg tea.KeyMsg) bool {
	switch msg.Type {
	case tea.KeyBackspace, tea.KeyDelete, tea.KeyLeft, tea.KeyRight, tea.KeyHome, tea.KeyEnd:
		return true
	case tea.KeyRunes:
		for _, r := range msg.Runes {
			if (r < '0' || r > '9') && r != ':' {
				return false
			}
		}
		return len(msg.Runes) > 0
	}
	return false
}
