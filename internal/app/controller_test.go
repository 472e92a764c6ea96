package app

import (
	"errors"
	"sync"
	"testing"
	"time"

	"pomodoro/internal/core/clock"
	"pomodoro/internal/core/display"
	"pomodoro/internal/core/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memoryStore struct {
	mu      sync.Mutex
	config  *model.SessionConfig
	saves   int
	saveErr error
}

func (store *memoryStore) Load() (model.SessionConfig, bool, error) {
	store.mu.Lock()
	defer store.mu.Unlock()
	if store.config == nil {
		return model.DefaultSessionConfig(), false, nil
	}
	return *store.config, true, nil
}

func (store *memoryStore) Save(config model.SessionConfig) error {
	store.mu.Lock()
	defer store.mu.Unlock()
	store.saves++
	store.config = &config
	return store.saveErr
}

type fakeSound struct {
	mu      sync.Mutex
	enabled bool
	played  int
}

func (sound *fakeSound) SetEnabled(enabled bool) {
	sound.mu.Lock()
	defer sound.mu.Unlock()
	sound.enabled = enabled
}

func (sound *fakeSound) Notify(clock.Transition) {
	sound.mu.Lock()
	defer sound.mu.Unlock()
	if sound.enabled {
		sound.played++
	}
}

type lastRender struct {
	mu       sync.Mutex
	snapshot clock.Snapshot
	count    int
}

func (render *lastRender) Render(snapshot clock.Snapshot) {
	render.mu.Lock()
	defer render.mu.Unlock()
	render.snapshot = snapshot
	render.count++
}

func (render *lastRender) get() (clock.Snapshot, int) {
	render.mu.Lock()
	defer render.mu.Unlock()
	return render.snapshot, render.count
}

type fixture struct {
	controller *Controller
	store      *memoryStore
	sound      *fakeSound
	timer      *lastRender
	task       *lastRender
}

func newFixture(t *testing.T, stored *model.SessionConfig) fixture {
	t.Helper()
	f := fixture{
		store: &memoryStore{config: stored},
		sound: &fakeSound{},
		timer: &lastRender{},
		task:  &lastRender{},
	}
	f.controller = New(Options{
		Store:         f.store,
		Sound:         f.sound,
		TimerRenderer: f.timer,
		TaskRenderer:  f.task,
		// Ticks never fire during these tests.
		TickInterval: time.Hour,
		GraceDelay:   time.Hour,
	})
	t.Cleanup(f.controller.Close)
	return f
}

func TestNewUsesStoredSettings(t *testing.T) {
	stored := model.DefaultSessionConfig()
	stored.Focus = 40 * time.Minute
	stored.SoundEnabled = false
	f := newFixture(t, &stored)

	assert.Equal(t, 40*60, f.controller.Timer().Snapshot().Remaining)
	assert.False(t, f.sound.enabled)
	assert.Equal(t, ViewLanding, f.controller.Router().Current())
}

func TestNewFallsBackToDefaults(t *testing.T) {
	f := newFixture(t, nil)

	assert.Equal(t, model.DefaultSessionConfig(), f.controller.Settings())
	assert.True(t, f.sound.enabled)
}

func TestSubmitTaskRequiresName(t *testing.T) {
	f := newFixture(t, nil)
	f.controller.ShowTaskIntake()

	_, err := f.controller.SubmitTask("   ", 2)
	require.ErrorIs(t, err, ErrTaskNameRequired)

	assert.Equal(t, ViewTaskIntake, f.controller.Router().Current())
	assert.Nil(t, f.controller.TaskClock())
	_, ok := f.controller.Task()
	assert.False(t, ok)
}

func TestSubmitTaskRequiresEstimate(t *testing.T) {
	f := newFixture(t, nil)
	f.controller.ShowTaskIntake()

	_, err := f.controller.SubmitTask("Write report", 0)
	require.ErrorIs(t, err, ErrTaskEstimateRequired)
	assert.Equal(t, ViewTaskIntake, f.controller.Router().Current())
	assert.Nil(t, f.controller.TaskClock())
}

func TestSubmitTaskStartsTaskMode(t *testing.T) {
	f := newFixture(t, nil)
	f.controller.newID = func() string { return "task-1" }
	f.controller.ShowStandard()
	f.controller.Start()
	require.True(t, f.controller.Timer().Running())

	f.controller.ShowTaskIntake()
	assert.False(t, f.controller.Timer().Running())

	task, err := f.controller.SubmitTask("  Write report ", 2)
	require.NoError(t, err)

	assert.Equal(t, "task-1", task.ID)
	assert.Equal(t, "Working on: Write report", task.Summary())
	assert.Equal(t, "Estimated: 2 hours", task.EstimateLabel())
	assert.Equal(t, ViewTaskTimer, f.controller.Router().Current())
	require.NotNil(t, f.controller.TaskClock())
	assert.Same(t, f.controller.TaskClock(), f.controller.ActiveClock())

	f.controller.Start()
	assert.True(t, f.controller.TaskClock().Running())
	assert.False(t, f.controller.Timer().Running())
	snapshot, _ := f.task.get()
	assert.Equal(t, TaskClockName, snapshot.Name)
}

func TestResubmitReplacesTaskClock(t *testing.T) {
	f := newFixture(t, nil)
	_, err := f.controller.SubmitTask("First", 1)
	require.NoError(t, err)
	first := f.controller.TaskClock()
	f.controller.Start()

	f.controller.Back()
	assert.Equal(t, ViewTaskIntake, f.controller.Router().Current())
	assert.False(t, first.Running())

	_, err = f.controller.SubmitTask("Second", 3)
	require.NoError(t, err)
	assert.NotSame(t, first, f.controller.TaskClock())
	task, _ := f.controller.Task()
	assert.Equal(t, "Second", task.Name)
}

func TestLeavingTimerViewPausesClock(t *testing.T) {
	f := newFixture(t, nil)
	f.controller.Start()
	require.Equal(t, ViewTimer, f.controller.Router().Current())
	require.True(t, f.controller.Timer().Running())

	f.controller.Back()
	assert.Equal(t, ViewLanding, f.controller.Router().Current())
	assert.False(t, f.controller.Timer().Running())
}

func TestSaveSettingsWhilePausedUpdatesDisplay(t *testing.T) {
	f := newFixture(t, nil)
	f.controller.ShowStandard()

	config := f.controller.Settings()
	config.Focus = 50 * time.Minute
	f.controller.SaveSettings(config)

	snapshot, _ := f.timer.get()
	assert.Equal(t, "50:00", display.FormatRemaining(snapshot.Remaining))
	assert.Equal(t, 1, f.store.saves)
	stored, found, _ := f.store.Load()
	require.True(t, found)
	assert.Equal(t, 50*time.Minute, stored.Focus)
}

func TestSaveSettingsWhileRunningKeepsRemaining(t *testing.T) {
	f := newFixture(t, nil)
	f.controller.Start()

	config := f.controller.Settings()
	config.Focus = 50 * time.Minute
	f.controller.SaveSettings(config)

	assert.Equal(t, 25*60, f.controller.Timer().Snapshot().Remaining)
	assert.Equal(t, 50*time.Minute, f.controller.Settings().Focus)
}

func TestSaveSettingsAppliesEvenWhenStoreFails(t *testing.T) {
	f := newFixture(t, nil)
	f.store.saveErr = errors.New("disk full")

	config := f.controller.Settings()
	config.ShortBreak = 7 * time.Minute
	f.controller.SaveSettings(config)

	assert.Equal(t, 7*time.Minute, f.controller.Settings().ShortBreak)
}

func TestSaveSettingsAppliesToTaskClock(t *testing.T) {
	f := newFixture(t, nil)
	_, err := f.controller.SubmitTask("Review", 1)
	require.NoError(t, err)

	config := f.controller.Settings()
	config.Focus = 10 * time.Minute
	f.controller.SaveSettings(config)

	assert.Equal(t, 600, f.controller.TaskClock().Snapshot().Remaining)
}

func TestToggleSoundPersistsWithoutTouchingClock(t *testing.T) {
	f := newFixture(t, nil)
	f.controller.ShowStandard()
	_, rendersBefore := f.timer.get()

	enabled := f.controller.ToggleSound()

	assert.False(t, enabled)
	assert.False(t, f.sound.enabled)
	stored, found, _ := f.store.Load()
	require.True(t, found)
	assert.False(t, stored.SoundEnabled)
	_, rendersAfter := f.timer.get()
	assert.Equal(t, rendersBefore, rendersAfter)

	assert.True(t, f.controller.ToggleSound())
	assert.Equal(t, 2, f.store.saves)
}

func TestResetThroughController(t *testing.T) {
	f := newFixture(t, nil)
	f.controller.Start()
	f.controller.Reset()

	snapshot := f.controller.Timer().Snapshot()
	assert.False(t, snapshot.Running)
	assert.Equal(t, model.PhaseFocus, snapshot.Phase)
	assert.Equal(t, 25*60, snapshot.Remaining)
}

func TestStandardAndTaskClocksRunIndependently(t *testing.T) {
	f := newFixture(t, nil)
	f.controller.options.TickInterval = time.Millisecond
	f.controller.options.GraceDelay = time.Millisecond
	_, err := f.controller.SubmitTask("Fast", 4)
	require.NoError(t, err)

	f.controller.Start()
	require.Eventually(t, func() bool {
		return f.controller.TaskClock().Snapshot().Remaining < 25*60
	}, 5*time.Second, 5*time.Millisecond)

	assert.Equal(t, 25*60, f.controller.Timer().Snapshot().Remaining)
	assert.False(t, f.controller.Timer().Running())
}
