package tui

import (
	"reflect"

	"github.com/charmbracelet/lipgloss"
	"github.com/xvierd/countdown-cli/internal/config"
	"github.com/xvierd/countdown-cli/internal/domain"
)

// resolveTheme fills any empty string fields in the given ThemeConfig with defaults.
// If theme is nil, returns the full default theme.
func resolveTheme(theme *config.ThemeConfig) config.ThemeConfig {
	defaults := config.DefaultThemeConfig()
	if theme == nil {
		return defaults
	}
	resolved := *theme
	rv := reflect.ValueOf(&resolved).Elem()
	dv := reflect.ValueOf(defaults)
	for i := 0; i < rv.NumField(); i++ {
		f := rv.Field(i)
		if f.Kind() == reflect.String && f.String() == "" {
			f.SetString(dv.Field(i).String())
		}
	}
	return resolved
}

// phaseColor returns the accent colour for a timer phase.
func phaseColor(theme config.ThemeConfig, p domain.Phase) lipgloss.Color {
	switch p {
	case domain.PhaseRunning:
		return lipgloss.Color(theme.ColorRunning)
	case domain.PhasePaused:
		return lipgloss.Color(theme.ColorPaused)
	case domain.PhaseExpired:
		return lipgloss.Color(theme.ColorExpired)
	default:
		return lipgloss.Color(theme.ColorIdle)
	}
}
