package httpapi

import (
	"context"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/xvierd/countdown-cli/internal/domain"
)

type mockProvider struct {
	mu        sync.Mutex
	snap      domain.Snapshot
	startErr  error
	lastInput string
	lastIndex int
	notes     string
	listeners map[int]func(domain.Snapshot)
	nextID    int
}

func newMockProvider() *mockProvider {
	return &mockProvider{
		snap:      domain.Snapshot{Phase: domain.PhaseIdle, Version: 1},
		listeners: make(map[int]func(domain.Snapshot)),
	}
}

// set replaces the snapshot and notifies subscribers.
func (m *mockProvider) set(fn func(*domain.Snapshot)) domain.Snapshot {
	m.mu.Lock()
	fn(&m.snap)
	m.snap.Version++
	snap := m.snap
	listeners := make([]func(domain.Snapshot), 0, len(m.listeners))
	for _, l := range m.listeners {
		listeners = append(listeners, l)
	}
	m.mu.Unlock()

	for _, l := range listeners {
		l(snap)
	}
	return snap
}

func (m *mockProvider) subscribers() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.listeners)
}

func (m *mockProvider) GetTimerState(ctx context.Context) (domain.Snapshot, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.snap, nil
}

func (m *mockProvider) StartTimer(ctx context.Context, input string) (domain.Snapshot, error) {
	m.mu.Lock()
	m.lastInput = input
	err := m.startErr
	m.mu.Unlock()
	if err != nil {
		snap, _ := m.GetTimerState(ctx)
		return snap, err
	}
	return m.set(func(s *domain.Snapshot) {
		s.Phase = domain.PhaseRunning
		s.InitialSeconds = 90
		s.RemainingSeconds = 90
		s.Display = "01:30"
	}), nil
}

func (m *mockProvider) PauseTimer(ctx context.Context) (domain.Snapshot, error) {
	snap, _ := m.GetTimerState(ctx)
	if snap.Phase != domain.PhaseRunning {
		return snap, domain.ErrInvalidTransition
	}
	return m.set(func(s *domain.Snapshot) { s.Phase = domain.PhasePaused }), nil
}

func (m *mockProvider) ResumeTimer(ctx context.Context) (domain.Snapshot, error) {
	snap, _ := m.GetTimerState(ctx)
	if snap.Phase != domain.PhasePaused {
		return snap, domain.ErrInvalidTransition
	}
	return m.set(func(s *domain.Snapshot) { s.Phase = domain.PhaseRunning }), nil
}

func (m *mockProvider) ResetTimer(ctx context.Context) (domain.Snapshot, error) {
	return m.set(func(s *domain.Snapshot) {
		*s = domain.Snapshot{Phase: domain.PhaseIdle, Version: s.Version}
	}), nil
}

func (m *mockProvider) ApplyShortcut(ctx context.Context, index int) (domain.Snapshot, error) {
	presets := domain.DefaultPresets()
	if index >= len(presets) {
		snap, _ := m.GetTimerState(ctx)
		return snap, domain.ErrShortcutNotFound
	}
	m.mu.Lock()
	m.lastIndex = index
	m.mu.Unlock()
	return m.set(func(s *domain.Snapshot) { s.Display = presets[index].Value }), nil
}

func (m *mockProvider) ListPresets(ctx context.Context) []domain.Preset {
	return domain.DefaultPresets()
}

func (m *mockProvider) GetNotes(ctx context.Context) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.notes, nil
}

func (m *mockProvider) SetNotes(ctx context.Context, text string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.notes = text
	return nil
}

func (m *mockProvider) GetRecentRuns(ctx context.Context, limit int) ([]*domain.Run, error) {
	return nil, nil
}

func (m *mockProvider) Subscribe(fn func(domain.Snapshot)) func() {
	m.mu.Lock()
	defer m.mu.Unlock()
	id := m.nextID
	m.nextID++
	m.listeners[id] = fn
	return func() {
		m.mu.Lock()
		defer m.mu.Unlock()
		delete(m.listeners, id)
	}
}

func newTestRouter(p *mockProvider) *gin.Engine {
	gin.SetMode(gin.TestMode)
	return NewHandler(p, nil).InitRoutes()
}
