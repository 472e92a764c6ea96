package clock

import (
	"log/slog"
	"sync"
	"time"

	"pomodoro/internal/core/display"
	"pomodoro/internal/core/model"
)

// Options contains runtime options for a Clock.
type Options struct {
	Name         string
	TickInterval time.Duration
	GraceDelay   time.Duration
	Logger       *slog.Logger
}

// Clock counts down the current phase and advances through
// Focus, ShortBreak and LongBreak until paused.
type Clock struct {
	mu        sync.Mutex
	config    model.SessionConfig
	options   Options
	sinks     Sinks
	logger    *slog.Logger
	phase     model.Phase
	remaining int
	completed int
	// stopCh is the active tick handle; it is non-nil iff the clock is running.
	stopCh chan struct{}
	now    func() time.Time

	// seq orders renders produced outside mu.
	seq      uint64
	renderMu sync.Mutex
	rendered uint64
}

// New creates a paused Clock in the Focus phase.
func New(config model.SessionConfig, options Options, sinks Sinks) *Clock {
	if options.TickInterval <= 0 {
		options.TickInterval = time.Second
	}
	if options.GraceDelay <= 0 {
		options.GraceDelay = time.Second
	}
	if options.Name == "" {
		options.Name = "timer"
	}
	logger := options.Logger
	if logger == nil {
		logger = slog.Default()
	}
	config = config.Normalize()

	return &Clock{
		config:    config,
		options:   options,
		sinks:     sinks,
		logger:    logger.With("clock", options.Name),
		phase:     model.PhaseFocus,
		remaining: config.DurationOf(model.PhaseFocus),
		now:       time.Now,
	}
}

// Start launches the ticking loop. It is a no-op while already running.
func (clock *Clock) Start() {
	clock.mu.Lock()
	if clock.stopCh != nil {
		clock.mu.Unlock()
		return
	}
	stopCh := make(chan struct{})
	clock.stopCh = stopCh
	snapshot, seq := clock.snapshotLocked(false), clock.nextSeqLocked()
	clock.mu.Unlock()

	clock.logger.Debug("clock started", "phase", snapshot.Phase, "remaining", snapshot.Remaining)
	clock.render(snapshot, seq)
	go clock.run(stopCh)
}

// Pause cancels the active tick. It is idempotent.
func (clock *Clock) Pause() {
	clock.mu.Lock()
	paused := clock.pauseLocked()
	snapshot, seq := clock.snapshotLocked(false), clock.nextSeqLocked()
	clock.mu.Unlock()

	if paused {
		clock.logger.Debug("clock paused", "phase", snapshot.Phase, "remaining", snapshot.Remaining)
		clock.render(snapshot, seq)
	}
}

// Reset pauses and returns to the start of a Focus phase.
// The completed session count is kept.
func (clock *Clock) Reset() {
	clock.mu.Lock()
	clock.pauseLocked()
	clock.phase = model.PhaseFocus
	clock.remaining = clock.config.DurationOf(model.PhaseFocus)
	snapshot, seq := clock.snapshotLocked(false), clock.nextSeqLocked()
	clock.mu.Unlock()

	clock.logger.Debug("clock reset")
	clock.render(snapshot, seq)
}

// ApplyConfig replaces the durations in use. A paused clock picks up the new
// duration of its current phase immediately; a running one from the next
// transition on.
func (clock *Clock) ApplyConfig(config model.SessionConfig) {
	clock.mu.Lock()
	clock.config = config.Normalize()
	running := clock.stopCh != nil
	if !running {
		clock.remaining = clock.config.DurationOf(clock.phase)
	}
	snapshot, seq := clock.snapshotLocked(false), clock.nextSeqLocked()
	clock.mu.Unlock()

	if !running {
		clock.render(snapshot, seq)
	}
}

// Snapshot returns the current state.
func (clock *Clock) Snapshot() Snapshot {
	clock.mu.Lock()
	defer clock.mu.Unlock()
	return clock.snapshotLocked(false)
}

// Running reports whether a tick is scheduled.
func (clock *Clock) Running() bool {
	clock.mu.Lock()
	defer clock.mu.Unlock()
	return clock.stopCh != nil
}

// Close stops the clock for good.
func (clock *Clock) Close() {
	clock.mu.Lock()
	clock.pauseLocked()
	clock.mu.Unlock()
}

func (clock *Clock) run(stopCh chan struct{}) {
	for {
		if !clock.countdown(stopCh) {
			return
		}
		// Grace period between phases; pausing here cancels the auto start.
		grace := time.NewTimer(clock.options.GraceDelay)
		select {
		case <-stopCh:
			grace.Stop()
			return
		case <-grace.C:
		}
	}
}

// countdown ticks until the phase is exhausted (true) or the clock is
// paused (false).
func (clock *Clock) countdown(stopCh chan struct{}) bool {
	ticker := time.NewTicker(clock.options.TickInterval)
	defer ticker.Stop()

	for {
		select {
		case <-stopCh:
			return false
		case <-ticker.C:
			transitioned, alive := clock.tick(stopCh)
			if !alive {
				return false
			}
			if transitioned {
				return true
			}
		}
	}
}

// tick advances the countdown by one second. alive is false when stopCh is no
// longer the active handle.
func (clock *Clock) tick(stopCh chan struct{}) (transitioned, alive bool) {
	clock.mu.Lock()
	if clock.stopCh != stopCh {
		clock.mu.Unlock()
		return false, false
	}

	clock.remaining--
	if clock.remaining >= 0 {
		snapshot, seq := clock.snapshotLocked(false), clock.nextSeqLocked()
		clock.mu.Unlock()
		clock.render(snapshot, seq)
		return false, true
	}

	transition := clock.transitionLocked()
	snapshot, seq := clock.snapshotLocked(true), clock.nextSeqLocked()
	clock.mu.Unlock()

	clock.logger.Info("phase complete",
		"from", transition.From,
		"to", transition.To,
		"completed", transition.Completed,
	)
	clock.notify(transition)
	clock.render(snapshot, seq)
	return true, true
}

func (clock *Clock) transitionLocked() Transition {
	from := clock.phase
	if from == model.PhaseFocus {
		clock.completed++
		clock.phase = display.NextBreak(clock.completed, clock.config.SessionsBeforeLongBreak)
	} else {
		clock.phase = model.PhaseFocus
	}
	clock.remaining = clock.config.DurationOf(clock.phase)

	return Transition{
		Clock:     clock.options.Name,
		From:      from,
		To:        clock.phase,
		Completed: clock.completed,
		At:        clock.now(),
	}
}

func (clock *Clock) pauseLocked() bool {
	if clock.stopCh == nil {
		return false
	}
	close(clock.stopCh)
	clock.stopCh = nil
	return true
}

func (clock *Clock) snapshotLocked(transitioned bool) Snapshot {
	return Snapshot{
		Name:                    clock.options.Name,
		Phase:                   clock.phase,
		Remaining:               clock.remaining,
		Running:                 clock.stopCh != nil,
		Completed:               clock.completed,
		SessionsBeforeLongBreak: clock.config.SessionsBeforeLongBreak,
		Transitioned:            transitioned,
	}
}

func (clock *Clock) nextSeqLocked() uint64 {
	clock.seq++
	return clock.seq
}

// render drops snapshots that were overtaken by a newer one.
func (clock *Clock) render(snapshot Snapshot, seq uint64) {
	if clock.sinks.Renderer == nil {
		return
	}
	clock.renderMu.Lock()
	defer clock.renderMu.Unlock()
	if seq <= clock.rendered {
		return
	}
	clock.rendered = seq
	clock.sinks.Renderer.Render(snapshot)
}

func (clock *Clock) notify(transition Transition) {
	if clock.sinks.Notifier != nil {
		clock.sinks.Notifier.Notify(transition)
	}
}
