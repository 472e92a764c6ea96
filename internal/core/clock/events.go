package clock

import (
	"time"

	"pomodoro/internal/core/model"
)

// Snapshot is a consistent view of the clock state for renderers.
type Snapshot struct {
	Name                    string
	Phase                   model.Phase
	Remaining               int
	Running                 bool
	Completed               int
	SessionsBeforeLongBreak int
	// Transitioned is set on the render that follows a phase change.
	Transitioned bool
}

// Transition describes one exhausted countdown.
type Transition struct {
	Clock     string
	From      model.Phase
	To        model.Phase
	Completed int
	At        time.Time
}

// Renderer receives a snapshot after every change to remaining time or phase.
type Renderer interface {
	Render(Snapshot)
}

// Notifier is told about every phase transition. It must not block the clock
// for long and must not fail it.
type Notifier interface {
	Notify(Transition)
}

// RenderFunc adapts a function to Renderer.
type RenderFunc func(Snapshot)

// Render calls fn.
func (fn RenderFunc) Render(snapshot Snapshot) {
	fn(snapshot)
}

// NotifyFunc adapts a function to Notifier.
type NotifyFunc func(Transition)

// Notify calls fn.
func (fn NotifyFunc) Notify(transition Transition) {
	fn(transition)
}

// Sinks are the collaborators a Clock reports to.
type Sinks struct {
	Renderer Renderer
	Notifier Notifier
}

// Renderers fans a snapshot out to several renderers in order.
type Renderers []Renderer

// Render calls every renderer.
func (renderers Renderers) Render(snapshot Snapshot) {
	for _, renderer := range renderers {
		if renderer != nil {
			renderer.Render(snapshot)
		}
	}
}
