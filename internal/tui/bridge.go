package tui

import (
	"context"

	"pomodoro/internal/core/clock"

	tea "github.com/charmbracelet/bubbletea"
)

// refreshMsg asks the model to redraw from the clocks.
type refreshMsg struct{}

// Bridge is a clock.Renderer that wakes the Bubble Tea program. Renders are
// coalesced and forwarded from a separate goroutine, because clocks render
// synchronously from inside Update and Program.Send would block there.
type Bridge struct {
	wake chan struct{}
}

// NewBridge creates an idle bridge.
func NewBridge() *Bridge {
	return &Bridge{wake: make(chan struct{}, 1)}
}

// Render implements clock.Renderer.
func (bridge *Bridge) Render(clock.Snapshot) {
	select {
	case bridge.wake <- struct{}{}:
	default:
	}
}

// Run forwards wake-ups to program until ctx is done.
func (bridge *Bridge) Run(ctx context.Context, program *tea.Program) {
	for {
		select {
		case <-ctx.Done():
			return
		case <-bridge.wake:
			program.Send(refreshMsg{})
		}
	}
}
