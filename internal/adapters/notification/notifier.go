// Package notification provides the user-facing message channels: desktop
// notifications and a transient in-app tooltip.
package notification

import (
	"fmt"
	"time"

	"github.com/gen2brain/beeep"
	"github.com/xvierd/countdown-cli/internal/config"
	"github.com/xvierd/countdown-cli/internal/logger"
	"github.com/xvierd/countdown-cli/internal/ports"
)

const appTitle = "⏳ Countdown"

// SendFunc delivers a desktop notification; beeep.Notify in production.
type SendFunc func(title, message string) error

// Notifier handles desktop notifications.
type Notifier struct {
	cfg  *config.NotificationConfig
	send SendFunc
	log  *logger.Logger
}

// New creates a new notifier with the given configuration.
func New(cfg *config.NotificationConfig, log *logger.Logger) *Notifier {
	if log == nil {
		log = logger.Nop()
	}
	return &Notifier{cfg: cfg, send: beeepNotify, log: log}
}

// WithSender replaces the delivery function.
func (n *Notifier) WithSender(send SendFunc) *Notifier {
	n.send = send
	return n
}

// Send displays a desktop notification if enabled.
func (n *Notifier) Send(title, message string) error {
	if !n.IsEnabled() {
		return nil
	}
	if err := n.send(title, message); err != nil {
		return fmt.Errorf("failed to send notification: %w", err)
	}
	return nil
}

// Notify implements ports.Notifier. The desktop service decides how long the
// message stays visible, so delay is ignored.
func (n *Notifier) Notify(message string, _ time.Duration) {
	if err := n.Send(appTitle, message); err != nil {
		n.log.Warnw("desktop notification failed", "error", err)
	}
}

// NotifyExpired displays a notification when a countdown runs out.
func (n *Notifier) NotifyExpired(initialSeconds int) error {
	title := "⏰ Time's up!"
	message := fmt.Sprintf("Your %s countdown has finished.", formatLength(initialSeconds))
	return n.Send(title, message)
}

// IsEnabled returns true if notifications are enabled.
func (n *Notifier) IsEnabled() bool {
	return n.cfg != nil && n.cfg.Enabled
}

func beeepNotify(title, message string) error {
	return beeep.Notify(title, message, "")
}

func formatLength(seconds int) string {
	return (time.Duration(seconds) * time.Second).String()
}

// Multi fans a message out to several notifiers.
type Multi []ports.Notifier

// Notify implements ports.Notifier.
func (m Multi) Notify(message string, delay time.Duration) {
	for _, n := range m {
		if n != nil {
			n.Notify(message, delay)
		}
	}
}

var (
	_ ports.Notifier = (*Notifier)(nil)
	_ ports.Notifier = Multi(nil)
)
