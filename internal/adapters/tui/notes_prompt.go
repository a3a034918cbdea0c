package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/xvierd/countdown-cli/internal/config"
)

// NotesPromptResult holds the outcome of the notes editor.
type NotesPromptResult struct {
	Text    string
	Changed bool
	Aborted bool
}

type notesPromptModel struct {
	title    string
	original string
	editor   textarea.Model
	aborted  bool
	theme    config.ThemeConfig
}

func newNotesPromptModel(title, current string, theme *config.ThemeConfig) notesPromptModel {
	ta := textarea.New()
	ta.Placeholder = "Empty notes are cleared on save"
	ta.CharLimit = notesCharLimit
	ta.ShowLineNumbers = false
	ta.SetWidth(60)
	ta.SetHeight(6)
	ta.SetValue(current)
	ta.Focus()

	return notesPromptModel{
		title:    title,
		original: current,
		editor:   ta,
		theme:    resolveTheme(theme),
	}
}

func (m notesPromptModel) Init() tea.Cmd {
	return textarea.Blink
}

func (m notesPromptModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.String() {
		case "ctrl+s":
			return m, tea.Quit
		case "ctrl+c", "esc":
			m.aborted = true
			return m, tea.Quit
		}
	}

	var cmd tea.Cmd
	m.editor, cmd = m.editor.Update(msg)
	return m, cmd
}

func (m notesPromptModel) View() string {
	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(m.theme.ColorTitle))
	dimStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(m.theme.ColorHelp))

	header := m.title
	if m.dirty() {
		header += " *"
	}

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(titleStyle.Render("  "+header) + "\n\n")
	b.WriteString(m.editor.View())
	b.WriteString("\n\n")
	b.WriteString(dimStyle.Render(fmt.Sprintf("  %d/%d · ctrl+s save · esc cancel", len([]rune(m.editor.Value())), notesCharLimit)) + "\n")
	return b.String()
}

func (m notesPromptModel) dirty() bool {
	return m.editor.Value() != m.original
}

func (m notesPromptModel) result() NotesPromptResult {
	if m.aborted {
		return NotesPromptResult{Text: m.original, Aborted: true}
	}
	return NotesPromptResult{Text: strings.TrimSpace(m.editor.Value()), Changed: m.dirty()}
}

// RunNotesPrompt opens an editor pre-filled with current and returns the
// edited notes.
func RunNotesPrompt(title, current string, theme *config.ThemeConfig) NotesPromptResult {
	result, err := tea.NewProgram(newNotesPromptModel(title, current, theme)).Run()
	if err != nil {
		return NotesPromptResult{Text: current, Aborted: true}
	}
	return result.(notesPromptModel).result()
}
