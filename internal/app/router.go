package app

import "sync"

// View identifies one of the panels shown in the main window.
type View string

const (
	ViewLanding    View = "landing"
	ViewTaskIntake View = "task_intake"
	ViewTimer      View = "timer"
	ViewTaskTimer  View = "task_timer"
)

// Router keeps track of the single visible view.
type Router struct {
	mu        sync.Mutex
	current   View
	listeners []func(from, to View)
}

// NewRouter creates a router showing initial.
func NewRouter(initial View) *Router {
	return &Router{current: initial}
}

// OnChange registers a listener called after every view switch.
func (router *Router) OnChange(listener func(from, to View)) {
	router.mu.Lock()
	defer router.mu.Unlock()
	router.listeners = append(router.listeners, listener)
}

// Current returns the visible view.
func (router *Router) Current() View {
	router.mu.Lock()
	defer router.mu.Unlock()
	return router.current
}

// Show switches to view. Showing the current view does nothing.
func (router *Router) Show(view View) {
	router.mu.Lock()
	from := router.current
	if from == view {
		router.mu.Unlock()
		return
	}
	router.current = view
	listeners := append([]func(from, to View)(nil), router.listeners...)
	router.mu.Unlock()

	for _, listener := range listeners {
		listener(from, view)
	}
}
