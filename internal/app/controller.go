package app

import (
	"log/slog"
	"sync"
	"time"

	"pomodoro/internal/core/clock"
	"pomodoro/internal/core/model"
	"pomodoro/internal/notify"
	"pomodoro/internal/storage"

	"github.com/google/uuid"
)

// Clock names used in logs and snapshots.
const (
	TimerClockName = "timer"
	TaskClockName  = "task"
)

// SoundSwitch is the audible notification sink.
type SoundSwitch interface {
	clock.Notifier
	SetEnabled(bool)
}

// Options wires the controller to its collaborators.
type Options struct {
	// Store is required.
	Store storage.Store
	Sound SoundSwitch
	// Notifier receives transitions in addition to Sound. Optional.
	Notifier clock.Notifier

	TimerRenderer clock.Renderer
	TaskRenderer  clock.Renderer

	TickInterval time.Duration
	GraceDelay   time.Duration
	Logger       *slog.Logger
}

// Controller owns the standalone clock, the task clock and the router.
type Controller struct {
	mu       sync.Mutex
	options  Options
	logger   *slog.Logger
	router   *Router
	notifier clock.Notifier
	config   model.SessionConfig

	timer     *clock.Clock
	task      *Task
	taskClock *clock.Clock

	newID func() string
	now   func() time.Time
}

// New loads persisted settings and builds the standalone clock.
func New(options Options) *Controller {
	logger := options.Logger
	if logger == nil {
		logger = slog.Default()
	}

	config := storage.LoadOrDefault(options.Store, logger)
	if options.Sound != nil {
		options.Sound.SetEnabled(config.SoundEnabled)
	}

	controller := &Controller{
		options:  options,
		logger:   logger,
		router:   NewRouter(ViewLanding),
		notifier: notify.Multi{options.Sound, options.Notifier},
		config:   config,
		newID:    func() string { return uuid.NewString() },
		now:      time.Now,
	}
	controller.timer = controller.newClock(TimerClockName, options.TimerRenderer)
	controller.router.OnChange(controller.onViewChange)
	return controller
}

// Router returns the view router.
func (controller *Controller) Router() *Router {
	return controller.router
}

// Timer returns the standalone clock.
func (controller *Controller) Timer() *clock.Clock {
	return controller.timer
}

// TaskClock returns the task clock, or nil before a task was submitted.
func (controller *Controller) TaskClock() *clock.Clock {
	controller.mu.Lock()
	defer controller.mu.Unlock()
	return controller.taskClock
}

// Task returns the current task.
func (controller *Controller) Task() (Task, bool) {
	controller.mu.Lock()
	defer controller.mu.Unlock()
	if controller.task == nil {
		return Task{}, false
	}
	return *controller.task, true
}

// Settings returns the settings in use.
func (controller *Controller) Settings() model.SessionConfig {
	controller.mu.Lock()
	defer controller.mu.Unlock()
	return controller.config
}

// ActiveClock is the clock of the visible timer view. Outside the timer
// views it is the standalone clock.
func (controller *Controller) ActiveClock() *clock.Clock {
	if controller.router.Current() == ViewTaskTimer {
		if taskClock := controller.TaskClock(); taskClock != nil {
			return taskClock
		}
	}
	return controller.timer
}

// Start starts the active clock, switching to the standalone timer first when
// no timer view is visible.
func (controller *Controller) Start() {
	switch controller.router.Current() {
	case ViewTimer, ViewTaskTimer:
	default:
		controller.router.Show(ViewTimer)
	}
	controller.ActiveClock().Start()
}

// Pause pauses the active clock.
func (controller *Controller) Pause() {
	controller.ActiveClock().Pause()
}

// Reset resets the active clock.
func (controller *Controller) Reset() {
	controller.ActiveClock().Reset()
}

// SaveSettings persists settings and applies them to every clock.
// Persistence failures are logged; the new settings are used regardless.
func (controller *Controller) SaveSettings(config model.SessionConfig) {
	config = config.Normalize()
	if err := controller.options.Store.Save(config); err != nil {
		controller.logger.Error("save settings failed", "error", err)
	}
	controller.ApplySettings(config)
}

// ApplySettings uses settings without persisting them, e.g. after the
// settings file was edited externally.
func (controller *Controller) ApplySettings(config model.SessionConfig) {
	config = config.Normalize()

	controller.mu.Lock()
	controller.config = config
	taskClock := controller.taskClock
	controller.mu.Unlock()

	if controller.options.Sound != nil {
		controller.options.Sound.SetEnabled(config.SoundEnabled)
	}
	controller.timer.ApplyConfig(config)
	if taskClock != nil {
		taskClock.ApplyConfig(config)
	}
	controller.logger.Info("settings applied",
		"focus", config.Focus,
		"short_break", config.ShortBreak,
		"long_break", config.LongBreak,
		"sessions_before_long_break", config.SessionsBeforeLongBreak,
	)
}

// ToggleSound flips the sound preference and persists it right away.
// Durations and running clocks are left alone.
func (controller *Controller) ToggleSound() bool {
	controller.mu.Lock()
	controller.config.SoundEnabled = !controller.config.SoundEnabled
	config := controller.config
	controller.mu.Unlock()

	if controller.options.Sound != nil {
		controller.options.Sound.SetEnabled(config.SoundEnabled)
	}
	if err := controller.options.Store.Save(config); err != nil {
		controller.logger.Error("save settings failed", "error", err)
	}
	return config.SoundEnabled
}

// ShowStandard switches to the standalone timer.
func (controller *Controller) ShowStandard() {
	controller.router.Show(ViewTimer)
}

// ShowTaskIntake switches to the task intake form.
func (controller *Controller) ShowTaskIntake() {
	controller.router.Show(ViewTaskIntake)
}

// Back leaves the current view. The task timer goes back to the intake
// form, everything else to the landing view.
func (controller *Controller) Back() {
	if controller.router.Current() == ViewTaskTimer {
		controller.router.Show(ViewTaskIntake)
		return
	}
	controller.router.Show(ViewLanding)
}

// SubmitTask validates the intake form, creates a fresh task clock and shows
// the task timer. On error nothing changes.
func (controller *Controller) SubmitTask(name string, estimate Estimate) (Task, error) {
	name, err := validateTask(name, estimate)
	if err != nil {
		return Task{}, err
	}

	task := Task{
		ID:        controller.newID(),
		Name:      name,
		Estimate:  estimate,
		CreatedAt: controller.now(),
	}
	taskClock := controller.newClock(TaskClockName, controller.options.TaskRenderer)

	controller.mu.Lock()
	previous := controller.taskClock
	controller.task = &task
	controller.taskClock = taskClock
	controller.mu.Unlock()

	if previous != nil {
		previous.Close()
	}
	controller.logger.Info("task started", "task_id", task.ID, "name", task.Name, "estimate_hours", int(task.Estimate))
	controller.router.Show(ViewTaskTimer)
	return task, nil
}

// Close stops every clock.
func (controller *Controller) Close() {
	controller.timer.Close()
	if taskClock := controller.TaskClock(); taskClock != nil {
		taskClock.Close()
	}
}

// onViewChange pauses the clock of a timer view being left, and the
// standalone clock whenever task mode is entered, so no invisible clock keeps
// ticking.
func (controller *Controller) onViewChange(from, to View) {
	controller.logger.Debug("view changed", "from", from, "to", to)
	switch from {
	case ViewTimer:
		controller.timer.Pause()
	case ViewTaskTimer:
		if taskClock := controller.TaskClock(); taskClock != nil {
			taskClock.Pause()
		}
	}
	if to == ViewTaskIntake || to == ViewTaskTimer {
		controller.timer.Pause()
	}
}

func (controller *Controller) newClock(name string, renderer clock.Renderer) *clock.Clock {
	return clock.New(controller.Settings(), clock.Options{
		Name:         name,
		TickInterval: controller.options.TickInterval,
		GraceDelay:   controller.options.GraceDelay,
		Logger:       controller.logger,
	}, clock.Sinks{
		Renderer: renderer,
		Notifier: controller.notifier,
	})
}
