package tui

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/term"
	"github.com/xvierd/countdown-cli/internal/config"
	"github.com/xvierd/countdown-cli/internal/domain"
	"github.com/xvierd/countdown-cli/internal/ports"
)

// InlineModel is a compact timer that renders below the prompt instead of
// taking over the screen.
type InlineModel struct {
	widget

	progress progress.Model
	help     help.Model
	width    int
}

// getTerminalWidth returns the current terminal width, defaulting to 80.
func getTerminalWidth() int {
	w, _, err := term.GetSize(os.Stdout.Fd())
	if err != nil || w < 40 {
		return 80
	}
	return w
}

// NewInlineModel creates a new inline TUI model.
func NewInlineModel(ctx context.Context, ctl ports.TimerController, theme *config.ThemeConfig) InlineModel {
	resolved := resolveTheme(theme)
	w := getTerminalWidth()

	pbar := progress.New(progress.WithGradient(resolved.GradientStart, resolved.GradientEnd))
	pbar.Width = max(w-16, 20)

	h := help.New()
	h.Width = w

	return InlineModel{
		widget:   newWidget(ctx, ctl, resolved),
		progress: pbar,
		help:     h,
		width:    w,
	}
}

func (m InlineModel) Init() tea.Cmd {
	return nil
}

func (m InlineModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if key.Matches(msg, m.keys.Quit) {
			return m, tea.Quit
		}
		_, cmd := m.handleKey(msg)
		return m, cmd

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.progress.Width = max(msg.Width-16, 20)
		m.help.Width = msg.Width

	case snapshotMsg:
		m.apply(msg.snap)

	case notifyMsg:
		return m, m.notify(msg.message, msg.delay)
	}
	return m, nil
}

func (m InlineModel) View() string {
	snap := m.snap
	accent := lipgloss.NewStyle().Foreground(phaseColor(m.theme, snap.Phase)).Bold(true)
	dim := lipgloss.NewStyle().Foreground(lipgloss.Color(m.theme.ColorHelp))

	var b strings.Builder

	// Line 1: icon, phase and time or the editable field
	b.WriteString(accent.Render(fmt.Sprintf("  %s %s  ", m.theme.IconApp, domain.GetPhaseLabel(snap.Phase))))
	if snap.InputLocked {
		b.WriteString(accent.Render(snap.Display))
	} else {
		b.WriteString(m.input.View())
	}
	if snap.Phase == domain.PhaseExpired {
		b.WriteString(accent.Render("  Time's up!"))
	}
	if tip := m.tooltip.Message(); tip != "" {
		b.WriteString(dim.Render("  " + tip))
	}
	b.WriteString("\n")

	// Line 2: progress or presets
	if snap.Phase == domain.PhaseIdle {
		parts := make([]string, 0, len(m.keys.Shortcuts))
		for _, sc := range m.keys.Shortcuts {
			h := sc.Help()
			parts = append(parts, fmt.Sprintf("[%s] %s", h.Key, h.Desc))
		}
		b.WriteString(dim.Render("  " + strings.Join(parts, "  ")))
	} else {
		frac := snap.Fraction()
		b.WriteString("  " + m.progress.ViewAs(frac))
		b.WriteString(dim.Render(fmt.Sprintf("  %d%%", int(frac*100))))
	}
	b.WriteString("\n")

	// Line 3: help
	b.WriteString("  " + m.help.ShortHelpView([]key.Binding{m.keys.Start, m.keys.Pause, m.keys.Reset, m.keys.Quit}))
	b.WriteString("\n")

	return b.String()
}
