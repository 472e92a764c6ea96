// Package notify tells the user that a phase is over. Nothing in here may
// stop or fail the clock: errors are logged and dropped.
package notify

import (
	"fmt"
	"log/slog"
	"sync"

	"pomodoro/internal/core/clock"
	"pomodoro/internal/core/display"
	"pomodoro/internal/core/model"

	"fyne.io/fyne/v2"
)

// Player plays the audible cue from its start.
type Player interface {
	Play() error
}

// Sink plays the cue on every transition while sound is enabled.
type Sink struct {
	mu      sync.Mutex
	player  Player
	enabled bool
	logger  *slog.Logger
}

// NewSink creates a sound sink.
func NewSink(player Player, enabled bool, logger *slog.Logger) *Sink {
	if logger == nil {
		logger = slog.Default()
	}
	return &Sink{player: player, enabled: enabled, logger: logger}
}

// SetEnabled turns the sound on or off.
func (sink *Sink) SetEnabled(enabled bool) {
	sink.mu.Lock()
	defer sink.mu.Unlock()
	sink.enabled = enabled
}

// Enabled reports whether the cue is played.
func (sink *Sink) Enabled() bool {
	sink.mu.Lock()
	defer sink.mu.Unlock()
	return sink.enabled
}

// Notify plays the cue.
func (sink *Sink) Notify(transition clock.Transition) {
	sink.mu.Lock()
	enabled, player := sink.enabled, sink.player
	sink.mu.Unlock()

	if !enabled || player == nil {
		return
	}
	if err := player.Play(); err != nil {
		sink.logger.Warn("audio play failed", "clock", transition.Clock, "error", err)
	}
}

// Sender is implemented by fyne.App.
type Sender interface {
	SendNotification(*fyne.Notification)
}

// DesktopNotifier posts a desktop notification for each transition.
type DesktopNotifier struct {
	sender Sender
}

// NewDesktopNotifier wraps a notification sender.
func NewDesktopNotifier(sender Sender) *DesktopNotifier {
	return &DesktopNotifier{sender: sender}
}

// Notify sends the notification.
func (notifier *DesktopNotifier) Notify(transition clock.Transition) {
	notifier.sender.SendNotification(fyne.NewNotification(display.PhaseLabel(transition.To), Message(transition)))
}

// Message describes a transition in one sentence.
func Message(transition clock.Transition) string {
	switch transition.To {
	case model.PhaseShortBreak:
		return fmt.Sprintf("Session %d done. Take a short break.", transition.Completed)
	case model.PhaseLongBreak:
		return fmt.Sprintf("Session %d done. Time for a long break.", transition.Completed)
	default:
		return "Break is over. Back to focus."
	}
}

// Multi fans a transition out to several notifiers in order.
type Multi []clock.Notifier

// Notify calls every notifier.
func (multi Multi) Notify(transition clock.Transition) {
	for _, notifier := range multi {
		if notifier != nil {
			notifier.Notify(transition)
		}
	}
}
