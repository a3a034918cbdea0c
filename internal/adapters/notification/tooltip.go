package notification

import (
	"sync"
	"time"

	"github.com/xvierd/countdown-cli/internal/ports"
)

// Tooltip holds the most recent transient message until its delay passes.
// A newer message replaces an older one immediately.
type Tooltip struct {
	mu      sync.Mutex
	message string
	expires time.Time
	now     func() time.Time
}

// NewTooltip creates an empty tooltip.
func NewTooltip() *Tooltip {
	return &Tooltip{now: time.Now}
}

// Notify implements ports.Notifier.
func (t *Tooltip) Notify(message string, delay time.Duration) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.message = message
	t.expires = t.now().Add(delay)
}

// Message returns the visible message, or "" once it has expired.
func (t *Tooltip) Message() string {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.message == "" || !t.now().Before(t.expires) {
		return ""
	}
	return t.message
}

// Clear hides the message.
func (t *Tooltip) Clear() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.message = ""
}

var _ ports.Notifier = (*Tooltip)(nil)
