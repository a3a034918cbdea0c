// Package alert plays the completion sound through the system speaker.
package alert

import (
	"fmt"
	"sync"
	"time"

	"github.com/gen2brain/beeep"
	"github.com/xvierd/countdown-cli/internal/ports"
)

// BeepFunc plays a single tone; beeep.Beep in production.
type BeepFunc func(freq float64, durationMs int) error

// Beeper is an AlertSink that plays a short run of beeps.
type Beeper struct {
	mu     sync.Mutex
	gen    uint64
	armed  bool
	stop   chan struct{}
	beep   BeepFunc
	freq   float64
	length int
	repeat int
	gap    time.Duration
}

// Option configures a Beeper.
type Option func(*Beeper)

// WithBeepFunc replaces the tone generator.
func WithBeepFunc(fn BeepFunc) Option {
	return func(b *Beeper) { b.beep = fn }
}

// WithPattern sets how many tones play and the pause between them.
func WithPattern(repeat int, gap time.Duration) Option {
	return func(b *Beeper) {
		b.repeat = repeat
		b.gap = gap
	}
}

// NewBeeper creates a beeper with the stock three-tone pattern.
func NewBeeper(opts ...Option) *Beeper {
	b := &Beeper{
		beep:   beeep.Beep,
		freq:   beeep.DefaultFreq,
		length: beeep.DefaultDuration,
		repeat: 3,
		gap:    300 * time.Millisecond,
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Play rewinds any playback in progress and plays the pattern from the top.
// It returns early when Stop is called.
func (b *Beeper) Play() error {
	return b.Cue()()
}

// Cue implements ports.AlertSink. The returned function does nothing when
// Stop or another Cue came in between.
func (b *Beeper) Cue() func() error {
	b.mu.Lock()
	b.gen++
	gen := b.gen
	b.armed = true
	b.mu.Unlock()
	return func() error { return b.play(gen) }
}

func (b *Beeper) play(gen uint64) error {
	b.mu.Lock()
	if b.gen != gen {
		b.mu.Unlock()
		return nil
	}
	b.armed = false
	if b.stop != nil {
		close(b.stop)
	}
	stop := make(chan struct{})
	b.stop = stop
	b.mu.Unlock()

	defer func() {
		b.mu.Lock()
		if b.stop == stop {
			b.stop = nil
		}
		b.mu.Unlock()
	}()

	for i := 0; i < b.repeat; i++ {
		select {
		case <-stop:
			return nil
		default:
		}

		if err := b.beep(b.freq, b.length); err != nil {
			return fmt.Errorf("failed to play alert: %w", err)
		}

		if i == b.repeat-1 {
			break
		}
		select {
		case <-stop:
			return nil
		case <-time.After(b.gap):
		}
	}
	return nil
}

// Stop halts playback. Nothing happens when the alert is silent.
func (b *Beeper) Stop() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.gen++
	b.armed = false
	if b.stop != nil {
		close(b.stop)
		b.stop = nil
	}
}

// Playing reports whether a playback is cued or in progress.
func (b *Beeper) Playing() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.armed || b.stop != nil
}

// Silent is an AlertSink that never makes a sound.
type Silent struct{}

// Play does nothing.
func (Silent) Play() error { return nil }

// Cue implements ports.AlertSink.
func (Silent) Cue() func() error { return Silent{}.Play }

// Stop implements ports.AlertSink.
func (Silent) Stop() {}

var (
	_ ports.AlertSink = (*Beeper)(nil)
	_ ports.AlertSink = Silent{}
)
