// Package scheduler provides the periodic tick sources behind the timer
// service: a wall-clock ticker and a manually driven scheduler for tests.
package scheduler

import (
	"sync"
	"time"

	"github.com/xvierd/countdown-cli/internal/ports"
)

// Ticker schedules ticks with time.Ticker.
type Ticker struct{}

// NewTicker creates a wall-clock scheduler.
func NewTicker() *Ticker {
	return &Ticker{}
}

// Every starts a goroutine that calls fn once per period until stopped.
func (t *Ticker) Every(period time.Duration, fn func()) ports.TickHandle {
	h := &tickerHandle{done: make(chan struct{})}
	ticker := time.NewTicker(period)

	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-h.done:
				return
			case <-ticker.C:
				select {
				case <-h.done:
					return
				default:
				}
				fn()
			}
		}
	}()

	return h
}

type tickerHandle struct {
	once sync.Once
	done chan struct{}
}

// Stop implements ports.TickHandle.
func (h *tickerHandle) Stop() {
	h.once.Do(func() { close(h.done) })
}

var _ ports.Scheduler = (*Ticker)(nil)
