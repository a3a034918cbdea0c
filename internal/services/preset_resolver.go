package services

import (
	"fmt"
	"strings"

	"github.com/sahilm/fuzzy"
	"github.com/xvierd/countdown-cli/internal/domain"
)

// FindPresets returns the presets whose names fuzzily match query, best
// match first. Matching ignores case.
func FindPresets(query string, presets []domain.Preset) []domain.Preset {
	names := make([]string, len(presets))
	for i, p := range presets {
		names[i] = strings.ToLower(p.Name)
	}

	matches := fuzzy.Find(strings.ToLower(query), names)

	result := make([]domain.Preset, 0, len(matches))
	for _, match := range matches {
		result = append(result, presets[match.Index])
	}
	return result
}

// ResolveDuration turns a command-line argument into field text. A valid
// duration passes through unchanged; anything else is looked up as a preset
// name.
func ResolveDuration(arg string, presets []domain.Preset) (string, error) {
	if _, err := domain.ParseDuration(arg); err == nil {
		return arg, nil
	}

	for _, p := range presets {
		if strings.EqualFold(p.Name, arg) {
			return p.Value, nil
		}
	}

	matches := FindPresets(arg, presets)
	if len(matches) == 0 {
		return "", fmt.Errorf("%q is neither a duration nor a preset: %w", arg, domain.ErrShortcutNotFound)
	}
	return matches[0].Value, nil
}

// PresetIndex returns the control position of the preset with the given
// name, or -1.
func PresetIndex(name string, presets []domain.Preset) int {
	for i, p := range presets {
		if strings.EqualFold(p.Name, name) {
			return i
		}
	}
	return -1
}
