package services

import (
	"context"
	"strings"

	"github.com/xvierd/countdown-cli/internal/domain"
	"github.com/xvierd/countdown-cli/internal/ports"
)

// StateService implements the ports.StateProvider interface for the remote
// front ends.
type StateService struct {
	timer   ports.TimerController
	notes   *NotesService
	history *HistoryService
}

// NewStateService creates a new state service.
func NewStateService(timer ports.TimerController, notes *NotesService, history *HistoryService) *StateService {
	return &StateService{timer: timer, notes: notes, history: history}
}

// GetTimerState implements ports.StateProvider.
func (s *StateService) GetTimerState(ctx context.Context) (domain.Snapshot, error) {
	return s.timer.Snapshot(), nil
}

// StartTimer implements ports.StateProvider. An empty input starts from
// whatever the duration field currently holds, and the exact name of a
// preset starts its value. Any other text is parsed as a duration.
func (s *StateService) StartTimer(ctx context.Context, input string) (domain.Snapshot, error) {
	presets := s.timer.Presets()
	if input == "" {
		input = s.timer.Snapshot().Display
	} else if i := PresetIndex(strings.TrimSpace(input), presets); i >= 0 {
		input = presets[i].Value
	}
	return s.timer.Start(ctx, input)
}

// PauseTimer implements ports.StateProvider.
func (s *StateService) PauseTimer(ctx context.Context) (domain.Snapshot, error) {
	return s.timer.Pause(ctx)
}

// ResumeTimer implements ports.StateProvider.
func (s *StateService) ResumeTimer(ctx context.Context) (domain.Snapshot, error) {
	return s.timer.Resume(ctx)
}

// ResetTimer implements ports.StateProvider.
func (s *StateService) ResetTimer(ctx context.Context) (domain.Snapshot, error) {
	return s.timer.Reset(ctx)
}

// ApplyShortcut implements ports.StateProvider.
func (s *StateService) ApplyShortcut(ctx context.Context, index int) (domain.Snapshot, error) {
	return s.timer.ApplyShortcut(ctx, index)
}

// ListPresets implements ports.StateProvider.
func (s *StateService) ListPresets(ctx context.Context) []domain.Preset {
	return s.timer.Presets()
}

// GetNotes implements ports.StateProvider.
func (s *StateService) GetNotes(ctx context.Context) (string, error) {
	return s.notes.Get(ctx)
}

// SetNotes implements ports.StateProvider.
func (s *StateService) SetNotes(ctx context.Context, text string) error {
	return s.notes.Set(ctx, text)
}

// GetRecentRuns implements ports.StateProvider.
func (s *StateService) GetRecentRuns(ctx context.Context, limit int) ([]*domain.Run, error) {
	return s.history.Recent(ctx, limit)
}

// Subscribe implements ports.StateProvider.
func (s *StateService) Subscribe(fn func(domain.Snapshot)) func() {
	return s.timer.Subscribe(fn)
}

var _ ports.StateProvider = (*StateService)(nil)
