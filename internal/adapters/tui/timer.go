package tui

import (
	"context"
	"fmt"
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/xvierd/countdown-cli/internal/config"
	"github.com/xvierd/countdown-cli/internal/domain"
	"github.com/xvierd/countdown-cli/internal/ports"
)

// Options configures the terminal front end.
type Options struct {
	Theme  *config.ThemeConfig
	Notes  NotesStore
	Inline bool
}

// Timer implements the ports.Timer interface using Bubbletea. It also acts
// as the controller's notifier, routing messages to the tooltip.
type Timer struct {
	ctl   ports.TimerController
	opts  Options
	queue *msgQueue

	mu      sync.Mutex
	program *tea.Program
	cancel  context.CancelFunc
}

// NewTimer creates a new TUI timer adapter.
func NewTimer(ctl ports.TimerController, opts Options) *Timer {
	return &Timer{
		ctl:   ctl,
		opts:  opts,
		queue: newMsgQueue(),
	}
}

// Notify implements ports.Notifier.
func (t *Timer) Notify(message string, delay time.Duration) {
	t.queue.push(notifyMsg{message: message, delay: delay})
}

// Run starts the timer interface and blocks until the user quits or ctx is
// cancelled.
func (t *Timer) Run(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	var (
		model   tea.Model
		options []tea.ProgramOption
	)
	if t.opts.Inline {
		model = NewInlineModel(ctx, t.ctl, t.opts.Theme)
	} else {
		model = NewModel(ctx, t.ctl, t.opts.Notes, t.opts.Theme)
		options = append(options, tea.WithAltScreen())
	}

	program := tea.NewProgram(model, options...)

	t.mu.Lock()
	t.program = program
	t.cancel = cancel
	t.mu.Unlock()

	unsubscribe := t.ctl.Subscribe(func(s domain.Snapshot) {
		t.queue.push(snapshotMsg{snap: s})
	})
	defer unsubscribe()

	go t.queue.pump(ctx, program.Send)

	go func() {
		<-ctx.Done()
		program.Quit()
	}()

	if _, err := program.Run(); err != nil {
		return fmt.Errorf("failed to run TUI: %w", err)
	}
	return nil
}

// Stop gracefully stops the timer interface.
func (t *Timer) Stop() {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.cancel != nil {
		t.cancel()
	}
}

var (
	_ ports.Timer    = (*Timer)(nil)
	_ ports.Notifier = (*Timer)(nil)
)

// msgQueue hands messages from controller goroutines to the program in
// order without blocking the sender.
type msgQueue struct {
	mu     sync.Mutex
	items  []tea.Msg
	signal chan struct{}
}

func newMsgQueue() *msgQueue {
	return &msgQueue{signal: make(chan struct{}, 1)}
}

func (q *msgQueue) push(msg tea.Msg) {
	q.mu.Lock()
	q.items = append(q.items, msg)
	q.mu.Unlock()

	select {
	case q.signal <- struct{}{}:
	default:
	}
}

func (q *msgQueue) drain() []tea.Msg {
	q.mu.Lock()
	defer q.mu.Unlock()
	items := q.items
	q.items = nil
	return items
}

// pump forwards queued messages to send until ctx is done.
func (q *msgQueue) pump(ctx context.Context, send func(tea.Msg)) {
	for {
		select {
		case <-ctx.Done():
			return
		case <-q.signal:
			for _, msg := range q.drain() {
				send(msg)
			}
		}
	}
}
