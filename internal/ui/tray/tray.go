package tray

import (
	"sync"

	"pomodoro/internal/core/clock"
	"pomodoro/internal/core/display"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/driver/desktop"
)

// Callbacks defines tray action handlers.
type Callbacks struct {
	OnShow        func()
	OnStart       func()
	OnPause       func()
	OnReset       func()
	OnSettings    func()
	OnToggleSound func()
	OnQuit        func()
}

// Icons are swapped as the clock starts and stops.
type Icons struct {
	Running fyne.Resource
	Paused  fyne.Resource
}

// Manager handles system tray state.
type Manager struct {
	app       desktop.App
	callbacks Callbacks
	icons     Icons

	mu         sync.Mutex
	status     string
	running    bool
	soundOn    bool
	iconPaused *bool
}

// New creates a tray manager with the provided callbacks.
func New(app desktop.App, callbacks Callbacks, icons Icons, soundOn bool) *Manager {
	manager := &Manager{
		app:       app,
		callbacks: callbacks,
		icons:     icons,
		status:    "ready",
		soundOn:   soundOn,
	}
	manager.refresh()
	return manager
}

// Render implements clock.Renderer so the tray follows a clock.
func (manager *Manager) Render(snapshot clock.Snapshot) {
	manager.mu.Lock()
	manager.status = display.Status(snapshot.Phase, snapshot.Remaining, snapshot.Running)
	manager.running = snapshot.Running
	manager.mu.Unlock()

	fyne.Do(manager.refresh)
}

// SetSound updates the sound toggle caption.
func (manager *Manager) SetSound(enabled bool) {
	manager.mu.Lock()
	manager.soundOn = enabled
	manager.mu.Unlock()

	fyne.Do(manager.refresh)
}

// Menu builds the current tray menu.
func (manager *Manager) Menu() *fyne.Menu {
	manager.mu.Lock()
	status, running, soundOn := manager.status, manager.running, manager.soundOn
	manager.mu.Unlock()

	statusItem := fyne.NewMenuItem(status, nil)
	statusItem.Disabled = true

	start := fyne.NewMenuItem("Start", manager.callback(func(c Callbacks) func() { return c.OnStart }))
	start.Disabled = running
	pause := fyne.NewMenuItem("Pause", manager.callback(func(c Callbacks) func() { return c.OnPause }))
	pause.Disabled = !running

	sound := fyne.NewMenuItem("Sound", manager.callback(func(c Callbacks) func() { return c.OnToggleSound }))
	sound.Checked = soundOn

	return fyne.NewMenu("Pomodoro",
		statusItem,
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Show", manager.callback(func(c Callbacks) func() { return c.OnShow })),
		start,
		pause,
		fyne.NewMenuItem("Reset", manager.callback(func(c Callbacks) func() { return c.OnReset })),
		fyne.NewMenuItemSeparator(),
		sound,
		fyne.NewMenuItem("Settings", manager.callback(func(c Callbacks) func() { return c.OnSettings })),
		fyne.NewMenuItem("Quit", manager.callback(func(c Callbacks) func() { return c.OnQuit })),
	)
}

func (manager *Manager) refresh() {
	if manager.app == nil {
		return
	}
	manager.app.SetSystemTrayMenu(manager.Menu())

	manager.mu.Lock()
	paused := !manager.running
	changed := manager.iconPaused == nil || *manager.iconPaused != paused
	manager.iconPaused = &paused
	manager.mu.Unlock()

	if !changed {
		return
	}
	if paused && manager.icons.Paused != nil {
		manager.app.SetSystemTrayIcon(manager.icons.Paused)
	} else if !paused && manager.icons.Running != nil {
		manager.app.SetSystemTrayIcon(manager.icons.Running)
	}
}

func (manager *Manager) callback(pick func(Callbacks) func()) func() {
	return func() {
		if handler := pick(manager.callbacks); handler != nil {
			handler()
		}
	}
}
