package domain

import (
	"fmt"
	"strconv"
	"strings"
)

// MaxInputLen is the widest text the duration field accepts (MM:SS).
const MaxInputLen = 5

// maxSegment is the largest value a minutes or seconds segment may hold.
const maxSegment = 59

// SanitizeInput normalizes raw keystroke text for the duration field.
// Anything other than digits and ':' is dropped, a colon is inserted after
// the second digit when none was typed, numeric segments above 59 are
// clamped to 59 and the result is cut to MM:SS width.
func SanitizeInput(raw string) string {
	var b strings.Builder
	for _, r := range raw {
		if (r >= '0' && r <= '9') || r == ':' {
			b.WriteRune(r)
		}
	}
	value := b.String()

	if len(value) > 2 && !strings.Contains(value, ":") {
		value = value[:2] + ":" + value[2:]
	}

	parts := strings.Split(value, ":")
	minutes := clampSegment(parts[0])
	if len(parts) > 1 {
		value = minutes + ":" + clampSegment(parts[1])
	} else {
		value = minutes
	}

	if len(value) > MaxInputLen {
		value = value[:MaxInputLen]
	}
	return value
}

// clampSegment caps a numeric segment at 59 and folds zero-padded runs such
// as "0007" down to two digits, so every segment fits MM or SS. Empty
// segments are returned untouched.
func clampSegment(seg string) string {
	n, ok := leadingInt(seg)
	if !ok {
		return seg
	}
	if n > maxSegment {
		return strconv.Itoa(maxSegment)
	}
	if len(seg) > 2 {
		return fmt.Sprintf("%02d", n)
	}
	return seg
}

// leadingInt parses the run of digits at the start of s.
func leadingInt(s string) (int, bool) {
	end := 0
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == 0 {
		return 0, false
	}
	digits := strings.TrimLeft(s[:end], "0")
	if digits == "" {
		return 0, true
	}
	// Long digit runs overflow strconv; any of them is far above 59 anyway.
	if len(digits) > 4 {
		return maxSegment + 1, true
	}
	n, err := strconv.Atoi(digits)
	if err != nil {
		return 0, false
	}
	return n, true
}

// NormalizeInput turns bare seconds ("5") into the MM:SS form ("00:05").
// Text that already contains a colon is only trimmed.
func NormalizeInput(text string) string {
	text = strings.TrimSpace(text)
	if strings.Contains(text, ":") {
		return text
	}
	if len(text) < 2 {
		text = strings.Repeat("0", 2-len(text)) + text
	}
	return "00:" + text
}

// ParseDuration converts duration field text into a total number of seconds.
// Text without a colon is read as seconds. It returns ErrInvalidDuration when
// either part is not a number or the total is not positive.
func ParseDuration(text string) (int, error) {
	parts := strings.Split(NormalizeInput(text), ":")
	if len(parts) < 2 {
		return 0, ErrInvalidDuration
	}

	minutes, err := parseNumber(parts[0])
	if err != nil {
		return 0, ErrInvalidDuration
	}
	seconds, err := parseNumber(parts[1])
	if err != nil {
		return 0, ErrInvalidDuration
	}

	total := minutes*60 + seconds
	if total <= 0 {
		return 0, ErrInvalidDuration
	}
	return total, nil
}

// parseNumber follows numeric-cast rules for a field segment: surrounding
// space is ignored and an empty segment counts as zero. Negative segments are
// rejected, so "1:-5" is invalid rather than 55 seconds. The field can never
// hold a minus sign; only remote callers send one.
func parseNumber(s string) (int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, err
	}
	if n < 0 {
		return 0, fmt.Errorf("negative segment %q", s)
	}
	return n, nil
}

// FormatDuration renders a number of seconds as zero-padded MM:SS.
func FormatDuration(totalSeconds int) string {
	if totalSeconds < 0 {
		totalSeconds = 0
	}
	return fmt.Sprintf("%02d:%02d", totalSeconds/60, totalSeconds%60)
}
