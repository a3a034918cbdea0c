package services

import (
	"errors"
	"testing"

	"github.com/xvierd/countdown-cli/internal/domain"
)

func TestResolveDuration(t *testing.T) {
	presets := domain.DefaultPresets()

	tests := []struct {
		arg     string
		want    string
		wantErr bool
	}{
		{"02:30", "02:30", false},
		{"45", "45", false},
		{"long", "10:00", false},
		{"Quick", "00:30", false},
		{"med", "05:00", false},
		{"shrt", "01:00", false},
		{"zzz", "", true},
		{"00:00", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.arg, func(t *testing.T) {
			got, err := ResolveDuration(tt.arg, presets)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ResolveDuration(%q) error = %v, wantErr %v", tt.arg, err, tt.wantErr)
			}
			if tt.wantErr && !errors.Is(err, domain.ErrShortcutNotFound) {
				t.Errorf("error = %v, want ErrShortcutNotFound", err)
			}
			if got != tt.want {
				t.Errorf("ResolveDuration(%q) = %q, want %q", tt.arg, got, tt.want)
			}
		})
	}
}

func TestFindPresets(t *testing.T) {
	presets := domain.DefaultPresets()

	got := FindPresets("QU", presets)
	if len(got) != 1 || got[0].Name != "Quick" {
		t.Errorf("FindPresets(QU) = %v, want Quick", got)
	}
	if got := FindPresets("xyz", presets); len(got) != 0 {
		t.Errorf("FindPresets(xyz) = %v, want none", got)
	}
}

func TestPresetIndex(t *testing.T) {
	presets := domain.DefaultPresets()
	if got := PresetIndex("medium", presets); got != 1 {
		t.Errorf("PresetIndex(medium) = %d, want 1", got)
	}
	if got := PresetIndex("nope", presets); got != -1 {
		t.Errorf("PresetIndex(nope) = %d, want -1", got)
	}
}
