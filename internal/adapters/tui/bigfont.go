package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// digitMap maps the characters a display can hold to 5-line glyphs.
var digitMap = map[rune][5]string{
	'0': {
		"████",
		"█  █",
		"█  █",
		"█  █",
		"████",
	},
	'1': {
		" █ ",
		"██ ",
		" █ ",
		" █ ",
		"███",
	},
	'2': {
		"████",
		"   █",
		"████",
		"█   ",
		"████",
	},
	'3': {
		"████",
		"   █",
		"████",
		"   █",
		"████",
	},
	'4': {
		"█  █",
		"█  █",
		"████",
		"   █",
		"   █",
	},
	'5': {
		"████",
		"█   ",
		"████",
		"   █",
		"████",
	},
	'6': {
		"████",
		"█   ",
		"████",
		"█  █",
		"████",
	},
	'7': {
		"████",
		"   █",
		"  █ ",
		" █  ",
		" █  ",
	},
	'8': {
		"████",
		"█  █",
		"████",
		"█  █",
		"████",
	},
	'9': {
		"████",
		"█  █",
		"████",
		"   █",
		"████",
	},
	':': {
		" ",
		"█",
		" ",
		"█",
		" ",
	},
	'-': {
		"    ",
		"    ",
		"████",
		"    ",
		"    ",
	},
}

// emptyDisplay stands in for a blank duration field.
const emptyDisplay = "--:--"

// bigTimeWidth returns the rendered width of text in glyph columns.
func bigTimeWidth(text string) int {
	width := 0
	for _, ch := range text {
		glyph, ok := digitMap[ch]
		if !ok {
			continue
		}
		if width > 0 {
			width++
		}
		width += lipgloss.Width(glyph[0])
	}
	return width
}

// renderBigTime renders display text as glyphs in the given colour. It falls
// back to a single bold line when the glyphs do not fit in width.
func renderBigTime(text string, color lipgloss.Color, width int) string {
	if text == "" {
		text = emptyDisplay
	}
	style := lipgloss.NewStyle().Bold(true).Foreground(color)
	if width < 40 || bigTimeWidth(text) > width {
		return style.Render(text)
	}

	var rows [5]strings.Builder
	first := true
	for _, ch := range text {
		glyph, ok := digitMap[ch]
		if !ok {
			continue
		}
		for i := range rows {
			if !first {
				rows[i].WriteByte(' ')
			}
			rows[i].WriteString(glyph[i])
		}
		first = false
	}

	styled := make([]string, len(rows))
	for i := range rows {
		styled[i] = style.Render(rows[i].String())
	}
	return strings.Join(styled, "\n")
}
