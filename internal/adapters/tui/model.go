// Package tui provides the terminal user interface implementation
// using the Bubbletea framework.
package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/xvierd/countdown-cli/internal/config"
	"github.com/xvierd/countdown-cli/internal/domain"
	"github.com/xvierd/countdown-cli/internal/ports"
)

// NotesStore persists the notes pane.
type NotesStore interface {
	Get(ctx context.Context) (string, error)
	Set(ctx context.Context, text string) error
	HasSaved(ctx context.Context) (bool, error)
}

// focusArea selects which pane receives keystrokes.
type focusArea int

const (
	focusTimer focusArea = iota
	focusNotes
)

const notesCharLimit = 4000

// Model represents the fullscreen TUI state.
type Model struct {
	widget

	progress progress.Model
	help     help.Model
	width    int
	height   int

	notes      textarea.Model
	notesStore NotesStore
	notesDirty bool
	notesErr   error
	focus      focusArea
}

// NewModel creates a new fullscreen TUI model.
func NewModel(ctx context.Context, ctl ports.TimerController, notes NotesStore, theme *config.ThemeConfig) Model {
	resolved := resolveTheme(theme)

	ta := textarea.New()
	ta.Placeholder = "Notes for this countdown..."
	ta.CharLimit = notesCharLimit
	ta.ShowLineNumbers = false
	ta.SetHeight(4)
	ta.Blur()

	m := Model{
		widget:     newWidget(ctx, ctl, resolved),
		progress:   progress.New(progress.WithGradient(resolved.GradientStart, resolved.GradientEnd)),
		help:       help.New(),
		notes:      ta,
		notesStore: notes,
	}

	if notes != nil {
		saved, err := notes.HasSaved(ctx)
		m.notesErr = err
		m.keys.Restore.SetEnabled(saved)
	}
	return m
}

// Init initializes the TUI.
func (m Model) Init() tea.Cmd {
	return textarea.Blink
}

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.updateKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.progress.Width = msg.Width - 8
		m.notes.SetWidth(min(msg.Width-8, 72))
		m.help.Width = msg.Width

	case snapshotMsg:
		m.apply(msg.snap)

	case notifyMsg:
		return m, m.notify(msg.message, msg.delay)

	case tooltipExpiredMsg:
		// redraw only
	}

	var cmd tea.Cmd
	if m.focus == focusNotes {
		m.notes, cmd = m.notes.Update(msg)
	}
	return m, cmd
}

func (m Model) updateKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case msg.Type == tea.KeyCtrlC:
		m.saveNotes()
		return m, tea.Quit
	case key.Matches(msg, m.keys.Notes):
		m.toggleFocus()
		return m, nil
	case key.Matches(msg, m.keys.Save):
		m.saveNotes()
		return m, nil
	case key.Matches(msg, m.keys.Restore):
		m.restoreNotes()
		return m, nil
	}

	if m.focus == focusNotes {
		if msg.Type == tea.KeyEsc {
			m.toggleFocus()
			return m, nil
		}
		before := m.notes.Value()
		var cmd tea.Cmd
		m.notes, cmd = m.notes.Update(msg)
		if m.notes.Value() != before {
			m.notesDirty = true
		}
		return m, cmd
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		m.saveNotes()
		return m, tea.Quit
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil
	}

	_, cmd := m.handleKey(msg)
	return m, cmd
}

func (m *Model) toggleFocus() {
	if m.focus == focusTimer {
		m.focus = focusNotes
		m.input.Blur()
		m.notes.Focus()
		return
	}
	m.focus = focusTimer
	m.notes.Blur()
	m.input.Focus()
}

// saveNotes writes the notes pane if it changed.
func (m *Model) saveNotes() {
	if m.notesStore == nil || !m.notesDirty {
		return
	}
	m.notesErr = m.notesStore.Set(m.ctx, m.notes.Value())
	if m.notesErr == nil {
		m.notesDirty = false
		m.keys.Restore.SetEnabled(strings.TrimSpace(m.notes.Value()) != "")
	}
}

// restoreNotes loads the stored notes into the pane.
func (m *Model) restoreNotes() {
	if m.notesStore == nil {
		return
	}
	text, err := m.notesStore.Get(m.ctx)
	m.notesErr = err
	if err != nil {
		return
	}
	m.notes.SetValue(text)
	m.notesDirty = false
	m.keys.Restore.SetEnabled(false)
}

// View renders the TUI.
func (m Model) View() string {
	if m.width == 0 {
		return "Loading..."
	}

	snap := m.snap
	color := phaseColor(m.theme, snap.Phase)
	helpStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(m.theme.ColorHelp))

	var sections []string

	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(m.theme.ColorTitle)).MarginBottom(1)
	sections = append(sections, titleStyle.Render(fmt.Sprintf("%s Countdown", m.theme.IconApp)))

	statusStyle := lipgloss.NewStyle().Foreground(color)
	sections = append(sections, statusStyle.Render(domain.GetPhaseLabel(snap.Phase)))

	sections = append(sections, "")
	sections = append(sections, renderBigTime(snap.Display, color, m.width))

	switch snap.Phase {
	case domain.PhasePaused:
		sections = append(sections, "", m.badge("PAUSED", m.theme.ColorPaused))
	case domain.PhaseExpired:
		sections = append(sections, "", m.badge("TIME'S UP", m.theme.ColorExpired))
	}

	if !snap.InputLocked {
		sections = append(sections, "")
		sections = append(sections, helpStyle.Render("Duration: ")+m.input.View())
	}

	if snap.Phase != domain.PhaseIdle {
		sections = append(sections, "")
		sections = append(sections, m.progress.ViewAs(snap.Fraction()))
	}

	if tip := m.tooltip.Message(); tip != "" {
		tipStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(m.theme.ColorExpired))
		sections = append(sections, "", tipStyle.Render(tip))
	}

	sections = append(sections, "", m.viewShortcuts())
	sections = append(sections, "", m.viewNotes())

	sections = append(sections, "")
	sections = append(sections, m.help.View(m.keys))

	content := lipgloss.JoinVertical(lipgloss.Center, sections...)
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, content)
}

func (m Model) badge(text, bg string) string {
	return lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("#FFFFFF")).
		Background(lipgloss.Color(bg)).
		Padding(0, 1).
		Render(text)
}

// viewShortcuts renders the preset controls, dimmed while disabled.
func (m Model) viewShortcuts() string {
	style := lipgloss.NewStyle().Foreground(lipgloss.Color(m.theme.ColorRunning))
	if !m.snap.ShortcutsEnabled {
		style = lipgloss.NewStyle().Foreground(lipgloss.Color(m.theme.ColorHelp)).Faint(true)
	}

	parts := make([]string, 0, len(m.keys.Shortcuts))
	for _, b := range m.keys.Shortcuts {
		h := b.Help()
		parts = append(parts, fmt.Sprintf("[%s] %s", h.Key, h.Desc))
	}
	return style.Render(strings.Join(parts, "  "))
}

func (m Model) viewNotes() string {
	helpStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(m.theme.ColorHelp))

	header := fmt.Sprintf("%s Notes", m.theme.IconNotes)
	if m.notesDirty {
		header += " *"
	}

	lines := []string{helpStyle.Render(header), m.notes.View()}
	if m.keys.Restore.Enabled() {
		lines = append(lines, helpStyle.Render("ctrl+o restore saved notes"))
	}
	if m.notesErr != nil {
		lines = append(lines, helpStyle.Render("notes unavailable: "+m.notesErr.Error()))
	}
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}
