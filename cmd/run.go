package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"github.com/xvierd/countdown-cli/internal/adapters/alert"
	"github.com/xvierd/countdown-cli/internal/adapters/notification"
	"github.com/xvierd/countdown-cli/internal/adapters/scheduler"
	"github.com/xvierd/countdown-cli/internal/adapters/tui"
	"github.com/xvierd/countdown-cli/internal/config"
	"github.com/xvierd/countdown-cli/internal/domain"
	"github.com/xvierd/countdown-cli/internal/ports"
	"github.com/xvierd/countdown-cli/internal/services"
)

// alertLinger bounds how long run waits for the expiry alert to finish.
const alertLinger = 3 * time.Second

// runCmd represents the run command
var runCmd = &cobra.Command{
	Use:   "run [duration|preset]",
	Short: "Run a countdown without the fullscreen UI",
	Long: `Run a countdown and print a live MM:SS line until it expires.

The argument is a duration (MM:SS or plain seconds) or the name of a preset;
preset names match fuzzily. Without an argument a preset picker opens.
Ctrl+C resets the countdown and exits.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		presets := app.config.TimerOptions().Presets

		var input string
		if len(args) == 1 {
			resolved, err := services.ResolveDuration(args[0], presets)
			if err != nil {
				return err
			}
			input = resolved
		} else {
			result := tui.RunPicker("Duration:", tui.PresetItems(presets), "", &app.config.Theme)
			if result.Aborted {
				return nil
			}
			input = presets[result.Index].Value
		}

		return runHeadless(cmd.Context(), cmd.OutOrStdout(), input)
	},
}

// runHeadless counts input down on a real ticker, redrawing one line per tick.
func runHeadless(parent context.Context, out io.Writer, input string) error {
	if parent == nil {
		parent = context.Background()
	}
	ctx, cancel := context.WithCancel(parent)
	defer cancel()

	svc, sink := newTimerService(ctx, scheduler.NewTicker())
	defer svc.Close()

	view := newLineView(out, &app.config.Theme)
	svc.SetView(view)
	svc.SetNotifier(notification.Multi{view.tooltip, view})

	unwatch := watchExpiry(svc, app.notifier, app.log)
	defer unwatch()

	expired := make(chan struct{})
	var once sync.Once
	unsubscribe := svc.Subscribe(func(snap domain.Snapshot) {
		if snap.Phase == domain.PhaseExpired {
			once.Do(func() { close(expired) })
		}
	})
	defer unsubscribe()

	if _, err := svc.Start(ctx, input); err != nil {
		view.finish()
		return fmt.Errorf("failed to start countdown: %w", err)
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigChan)

	select {
	case <-expired:
		view.finish()
		fmt.Fprintln(out, "Time's up!")
		waitForAlert(sink, alertLinger)
	case <-sigChan:
		snap, err := svc.Reset(ctx)
		view.finish()
		if err != nil {
			return fmt.Errorf("failed to reset countdown: %w", err)
		}
		fmt.Fprintf(out, "Reset to %s\n", snap.Display)
	case <-ctx.Done():
		view.finish()
	}
	return nil
}

// waitForAlert blocks while a beeper is still playing, up to limit.
func waitForAlert(sink ports.AlertSink, limit time.Duration) {
	b, ok := sink.(*alert.Beeper)
	if !ok {
		return
	}
	deadline := time.Now().Add(limit)
	for b.Playing() && time.Now().Before(deadline) {
		time.Sleep(50 * time.Millisecond)
	}
}

// lineView renders the countdown as a single redrawn terminal line.
type lineView struct {
	mu       sync.Mutex
	out      io.Writer
	tooltip  *notification.Tooltip
	display  string
	fraction float64
	phase    string
	locked   bool
	bar      progress.Model
}

// lineBarWidth is the width of the progress bar in cells.
const lineBarWidth = 30

func newLineView(out io.Writer, theme *config.ThemeConfig) *lineView {
	gradient := progress.WithDefaultGradient()
	if theme != nil && theme.GradientStart != "" && theme.GradientEnd != "" {
		gradient = progress.WithGradient(theme.GradientStart, theme.GradientEnd)
	}
	return &lineView{
		out:     out,
		tooltip: notification.NewTooltip(),
		phase:   domain.GetPhaseLabel(domain.PhaseIdle),
		bar:     progress.New(gradient, progress.WithWidth(lineBarWidth), progress.WithoutPercentage()),
	}
}

// SetDisplay implements ports.TimerView.
func (v *lineView) SetDisplay(text string) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.display = text
	v.redraw()
}

// SetProgress implements ports.TimerView.
func (v *lineView) SetProgress(offset, circumference float64) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.fraction = domain.ProgressFraction(offset, circumference)
	v.redraw()
}

// SetInputLocked implements ports.TimerView.
func (v *lineView) SetInputLocked(locked bool) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.locked = locked
}

// SetControls implements ports.TimerView. The visible pause label tells a
// paused countdown apart from a running one.
func (v *lineView) SetControls(c domain.Controls) {
	v.mu.Lock()
	defer v.mu.Unlock()
	switch {
	case c.PauseLabel == domain.LabelResume:
		v.phase = domain.GetPhaseLabel(domain.PhasePaused)
	case c.PauseVisible:
		v.phase = domain.GetPhaseLabel(domain.PhaseRunning)
	case c.StartVisible:
		v.phase = domain.GetPhaseLabel(domain.PhaseIdle)
	default:
		v.phase = domain.GetPhaseLabel(domain.PhaseExpired)
	}
	v.redraw()
}

// SetShortcutsEnabled implements ports.TimerView.
func (v *lineView) SetShortcutsEnabled(bool) {}

// Notify implements ports.Notifier. The message itself is held by the
// tooltip; this only redraws so it shows.
func (v *lineView) Notify(string, time.Duration) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.redraw()
}

// line renders the current state. Callers hold mu.
func (v *lineView) line() string {
	accent := lipgloss.NewStyle().Bold(true)
	text := fmt.Sprintf("  %s  %s  %s  %3d%%", accent.Render(v.display), v.bar.ViewAs(v.fraction), v.phase, int(v.fraction*100))
	if tip := v.tooltip.Message(); tip != "" {
		text += "  " + tip
	}
	return text
}

// redraw rewrites the line in place. Callers hold mu.
func (v *lineView) redraw() {
	fmt.Fprintf(v.out, "\r\033[K%s", v.line())
}

// finish ends the line so later output starts on a fresh one.
func (v *lineView) finish() {
	v.mu.Lock()
	defer v.mu.Unlock()
	fmt.Fprintln(v.out)
}

var (
	_ ports.TimerView = (*lineView)(nil)
	_ ports.Notifier  = (*lineView)(nil)
)
