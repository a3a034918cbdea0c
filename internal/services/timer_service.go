package services

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/xvierd/countdown-cli/internal/domain"
	"github.com/xvierd/countdown-cli/internal/logger"
	"github.com/xvierd/countdown-cli/internal/ports"
)

// TimerService drives the countdown state machine and carries out the
// effects of every transition: it owns the tick schedule, plays and stops the
// alert, shows notifications, updates the view and records finished runs.
//
// Transitions run under mu. Everything that reaches outside the service runs
// after mu is released, in transition order (dispatchMu), so listeners may
// read the service but must not issue commands synchronously.
type TimerService struct {
	mu         sync.Mutex
	dispatchMu sync.Mutex

	timer     *domain.Timer
	scheduler ports.Scheduler
	handles   map[uint64]ports.TickHandle
	runs      ports.RunRepository
	git       ports.GitDetector

	alert    ports.AlertSink
	notifier ports.Notifier
	view     ports.TimerView
	log      *logger.Logger
	now      func() time.Time
	ctx      context.Context

	listeners    map[int]func(domain.Snapshot)
	nextListener int

	startedAt time.Time
	gitInfo   *ports.GitInfo

	saves sync.WaitGroup
}

// NewTimerService creates a timer service. runs and gitDetector may be nil.
func NewTimerService(timer *domain.Timer, scheduler ports.Scheduler, runs ports.RunRepository, gitDetector ports.GitDetector) *TimerService {
	return &TimerService{
		timer:     timer,
		scheduler: scheduler,
		handles:   make(map[uint64]ports.TickHandle),
		runs:      runs,
		git:       gitDetector,
		log:       logger.Nop(),
		now:       time.Now,
		ctx:       context.Background(),
		listeners: make(map[int]func(domain.Snapshot)),
	}
}

// SetAlertSink sets the sound played on expiry.
func (s *TimerService) SetAlertSink(alert ports.AlertSink) {
	s.alert = alert
}

// SetNotifier sets where transient messages go.
func (s *TimerService) SetNotifier(notifier ports.Notifier) {
	s.notifier = notifier
}

// SetView sets the rendering surface.
func (s *TimerService) SetView(view ports.TimerView) {
	s.view = view
}

// SetLogger sets the service logger.
func (s *TimerService) SetLogger(log *logger.Logger) {
	if log != nil {
		s.log = log
	}
}

// SetContext sets the context used for work triggered by ticks, such as
// saving an expired run.
func (s *TimerService) SetContext(ctx context.Context) {
	s.ctx = ctx
}

// Snapshot returns the current observable state.
func (s *TimerService) Snapshot() domain.Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.timer.Snapshot()
}

// Presets returns the shortcut presets.
func (s *TimerService) Presets() []domain.Preset {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.timer.Presets()
}

// Subscribe registers fn to receive a snapshot after every state change.
func (s *TimerService) Subscribe(fn func(domain.Snapshot)) func() {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.nextListener
	s.nextListener++
	s.listeners[id] = fn

	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		delete(s.listeners, id)
	}
}

// Edit applies a keystroke-level change to the duration field.
func (s *TimerService) Edit(raw string) (domain.Snapshot, error) {
	return s.transition(s.ctx, func() ([]domain.Effect, error) {
		return s.timer.Edit(raw)
	})
}

// Start begins a countdown from the given field text.
func (s *TimerService) Start(ctx context.Context, input string) (domain.Snapshot, error) {
	var info *ports.GitInfo
	if s.Snapshot().Phase == domain.PhaseIdle {
		info = s.detectGit(ctx)
	}

	snap, err := s.transition(ctx, func() ([]domain.Effect, error) {
		effects, err := s.timer.Start(input)
		if err == nil {
			s.startedAt = s.now()
			s.gitInfo = info
		}
		return effects, err
	})
	if err != nil {
		return snap, fmt.Errorf("failed to start timer: %w", err)
	}
	s.log.Infow("timer started", "seconds", snap.InitialSeconds)
	return snap, nil
}

// Pause freezes a running countdown.
func (s *TimerService) Pause(ctx context.Context) (domain.Snapshot, error) {
	snap, err := s.transition(ctx, s.timer.Pause)
	if err != nil {
		return snap, fmt.Errorf("failed to pause timer: %w", err)
	}
	return snap, nil
}

// Resume continues a paused countdown.
func (s *TimerService) Resume(ctx context.Context) (domain.Snapshot, error) {
	snap, err := s.transition(ctx, s.timer.Resume)
	if err != nil {
		return snap, fmt.Errorf("failed to resume timer: %w", err)
	}
	return snap, nil
}

// TogglePause backs the Pause/Resume control.
func (s *TimerService) TogglePause(ctx context.Context) (domain.Snapshot, error) {
	snap, err := s.transition(ctx, s.timer.TogglePause)
	if err != nil {
		return snap, fmt.Errorf("failed to toggle pause: %w", err)
	}
	return snap, nil
}

// Reset returns the timer to idle with the last duration restored.
func (s *TimerService) Reset(ctx context.Context) (domain.Snapshot, error) {
	snap, err := s.transition(ctx, s.timer.Reset)
	if err != nil {
		return snap, fmt.Errorf("failed to reset timer: %w", err)
	}
	return snap, nil
}

// ApplyShortcut fills the duration field with the preset at index.
func (s *TimerService) ApplyShortcut(ctx context.Context, index int) (domain.Snapshot, error) {
	snap, err := s.transition(ctx, func() ([]domain.Effect, error) {
		return s.timer.ApplyShortcut(index)
	})
	if err != nil {
		return snap, fmt.Errorf("failed to apply shortcut %d: %w", index+1, err)
	}
	return snap, nil
}

// Close cancels any live tick, silences the alert and waits for finished
// runs to be saved.
func (s *TimerService) Close() {
	s.mu.Lock()
	for id, h := range s.handles {
		h.Stop()
		delete(s.handles, id)
	}
	s.mu.Unlock()

	if s.alert != nil {
		s.alert.Stop()
	}
	s.saves.Wait()
}

// LiveTicks returns the number of tick schedules the service holds.
func (s *TimerService) LiveTicks() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.handles)
}

func (s *TimerService) tick(handleID uint64) {
	_, _ = s.transition(s.ctx, func() ([]domain.Effect, error) {
		return s.timer.Tick(handleID), nil
	})
}

// outbound collects what a transition asks of the outside world.
type outbound struct {
	view      []domain.Effect
	notices   []domain.Notify
	playAlert bool
	stopAlert bool
	run       *domain.Run
	snapshot  domain.Snapshot
	listeners []func(domain.Snapshot)
}

func (s *TimerService) transition(ctx context.Context, fn func() ([]domain.Effect, error)) (domain.Snapshot, error) {
	s.mu.Lock()
	prev := s.timer.State()
	effects, err := fn()
	out := s.apply(prev, effects)
	s.dispatchMu.Lock()
	s.mu.Unlock()

	s.dispatch(out)
	s.dispatchMu.Unlock()

	if out.run != nil {
		s.saveRun(ctx, out.run)
		s.saves.Done()
	}
	return out.snapshot, err
}

// apply performs scheduler effects in place and sorts the rest into an
// outbound batch. Callers hold mu.
func (s *TimerService) apply(prev domain.TimerState, effects []domain.Effect) outbound {
	var out outbound

	for _, e := range effects {
		switch e := e.(type) {
		case domain.ScheduleTick:
			id := e.HandleID
			s.handles[id] = s.scheduler.Every(e.Period, func() { s.tick(id) })
		case domain.CancelTick:
			if h, ok := s.handles[e.HandleID]; ok {
				h.Stop()
				delete(s.handles, e.HandleID)
			}
		case domain.Notify:
			out.notices = append(out.notices, e)
		case domain.PlayAlert:
			out.playAlert = true
		case domain.StopAlert:
			out.stopAlert = true
		case domain.PhaseChanged:
			out.run = s.finishRun(prev, e)
			if out.run != nil {
				s.saves.Add(1)
			}
		default:
			out.view = append(out.view, e)
		}
	}

	out.snapshot = s.timer.Snapshot()
	if len(effects) > 0 {
		out.listeners = make([]func(domain.Snapshot), 0, len(s.listeners))
		for _, fn := range s.listeners {
			out.listeners = append(out.listeners, fn)
		}
	}
	return out
}

// finishRun builds the history record for a countdown that left the running
// state for good.
func (s *TimerService) finishRun(prev domain.TimerState, change domain.PhaseChanged) *domain.Run {
	var run *domain.Run
	switch {
	case change.To == domain.PhaseExpired:
		run = domain.NewRun(prev.InitialSeconds, 0, domain.RunOutcomeExpired, s.startedAt, s.now())
	case change.To == domain.PhaseIdle && (change.From == domain.PhaseRunning || change.From == domain.PhasePaused):
		run = domain.NewRun(prev.InitialSeconds, prev.RemainingSeconds, domain.RunOutcomeReset, s.startedAt, s.now())
	default:
		return nil
	}
	if s.gitInfo != nil {
		run.SetGitContext(s.gitInfo.Branch, s.gitInfo.Commit)
	}
	return run
}

func (s *TimerService) dispatch(out outbound) {
	if s.view != nil {
		for _, e := range out.view {
			s.render(e)
		}
	}

	for _, n := range out.notices {
		s.log.Debugw("notification", "message", n.Message)
		if s.notifier != nil {
			s.notifier.Notify(n.Message, n.Delay)
		}
	}

	if s.alert != nil {
		if out.stopAlert {
			s.alert.Stop()
		}
		if out.playAlert {
			play := s.alert.Cue()
			go func() {
				if err := play(); err != nil {
					s.log.Warnw("alert playback failed", "error", err)
				}
			}()
		}
	}

	for _, fn := range out.listeners {
		fn(out.snapshot)
	}
}

func (s *TimerService) render(e domain.Effect) {
	switch e := e.(type) {
	case domain.SetDisplay:
		s.view.SetDisplay(e.Text)
	case domain.SetProgress:
		s.view.SetProgress(e.Offset, e.Circumference)
	case domain.LockInput:
		s.view.SetInputLocked(true)
	case domain.UnlockInput:
		s.view.SetInputLocked(false)
	case domain.SetControls:
		s.view.SetControls(e.Controls)
	case domain.SetShortcutsEnabled:
		s.view.SetShortcutsEnabled(e.Enabled)
	}
}

func (s *TimerService) saveRun(ctx context.Context, run *domain.Run) {
	if run.Outcome == domain.RunOutcomeExpired {
		s.log.Infow("timer expired", "seconds", run.InitialSeconds)
	}
	if s.runs == nil {
		return
	}
	if err := s.runs.Save(ctx, run); err != nil {
		s.log.Errorw("failed to save run", "id", run.ID, "error", err)
		return
	}
	s.log.Infow("run saved", "id", run.ID, "outcome", run.Outcome, "counted", run.ElapsedSeconds())
}

func (s *TimerService) detectGit(ctx context.Context) *ports.GitInfo {
	if s.git == nil || !s.git.IsAvailable() {
		return nil
	}
	info, err := s.git.Detect(ctx, "")
	if err != nil {
		s.log.Debugw("git context unavailable", "error", err)
		return nil
	}
	return info
}

var _ ports.TimerController = (*TimerService)(nil)
