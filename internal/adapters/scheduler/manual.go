package scheduler

import (
	"sort"
	"sync"
	"time"

	"github.com/xvierd/countdown-cli/internal/ports"
)

// Manual is a scheduler whose ticks fire only when Fire is called.
type Manual struct {
	mu      sync.Mutex
	nextID  int
	handles map[int]*manualHandle
	created int
}

// NewManual creates a manual scheduler with no live schedules.
func NewManual() *Manual {
	return &Manual{handles: make(map[int]*manualHandle)}
}

// Every registers fn. The period is recorded but otherwise ignored.
func (m *Manual) Every(period time.Duration, fn func()) ports.TickHandle {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.nextID++
	m.created++
	h := &manualHandle{id: m.nextID, period: period, fn: fn, owner: m}
	m.handles[h.id] = h
	return h
}

// Fire calls every live schedule once and returns how many fired.
func (m *Manual) Fire() int {
	m.mu.Lock()
	ids := make([]int, 0, len(m.handles))
	for id := range m.handles {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	fns := make([]func(), 0, len(ids))
	for _, id := range ids {
		fns = append(fns, m.handles[id].fn)
	}
	m.mu.Unlock()

	for _, fn := range fns {
		fn()
	}
	return len(fns)
}

// Advance fires all live schedules n times.
func (m *Manual) Advance(n int) {
	for i := 0; i < n; i++ {
		m.Fire()
	}
}

// Live returns the number of schedules not yet stopped.
func (m *Manual) Live() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.handles)
}

// Created returns how many schedules were ever registered.
func (m *Manual) Created() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.created
}

// LastPeriod returns the period of the newest live schedule, or zero.
func (m *Manual) LastPeriod() time.Duration {
	m.mu.Lock()
	defer m.mu.Unlock()
	var newest *manualHandle
	for _, h := range m.handles {
		if newest == nil || h.id > newest.id {
			newest = h
		}
	}
	if newest == nil {
		return 0
	}
	return newest.period
}

type manualHandle struct {
	id     int
	period time.Duration
	fn     func()
	owner  *Manual
}

// Stop implements ports.TickHandle.
func (h *manualHandle) Stop() {
	h.owner.mu.Lock()
	delete(h.owner.handles, h.id)
	h.owner.mu.Unlock()
}

var _ ports.Scheduler = (*Manual)(nil)
