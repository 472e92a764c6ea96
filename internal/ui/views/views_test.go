package views

import (
	"testing"
	"time"

	"pomodoro/internal/app"
	"pomodoro/internal/core/clock"
	"pomodoro/internal/core/model"
	"pomodoro/internal/storage"

	"fyne.io/fyne/v2/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type kv map[string]string

func (values kv) String(key string) string    { return values[key] }
func (values kv) SetString(key, value string) { values[key] = value }

func newTestWindow(t *testing.T) (*Window, *app.Controller) {
	t.Helper()
	fyneApp := test.NewTempApp(t)
	panels := Panels{Timer: NewTimerPanel(0), Task: NewTimerPanel(0)}
	controller := app.New(app.Options{
		Store:         storage.NewPreferencesStore(kv{}),
		TimerRenderer: panels.Timer,
		TaskRenderer:  panels.Task,
		TickInterval:  time.Hour,
	})
	t.Cleanup(controller.Close)

	window := fyneApp.NewWindow("test")
	return New(window, controller, panels, nil), controller
}

func TestTimerPanelUpdate(t *testing.T) {
	test.NewTempApp(t)
	panel := NewTimerPanel(0)

	panel.Update(clock.Snapshot{Phase: model.PhaseLongBreak, Remaining: 905, Running: true, Completed: 4})

	assert.Equal(t, "15:05", panel.Text())
	assert.Equal(t, "Long Break", panel.Label())
	assert.Equal(t, "Sessions: 4", panel.sessions.Text)
	assert.True(t, panel.start.Disabled())
	assert.False(t, panel.pause.Disabled())
	assert.Equal(t, colorNormal, panel.time.Color)

	panel.Update(clock.Snapshot{Phase: model.PhaseFocus, Remaining: 9})
	assert.Equal(t, colorWarning, panel.time.Color)
	assert.False(t, panel.start.Disabled())
}

func TestTimerPanelFlashesOnTransition(t *testing.T) {
	test.NewTempApp(t)
	panel := NewTimerPanel(0)

	panel.Update(clock.Snapshot{Phase: model.PhaseShortBreak, Remaining: 300, Running: true, Transitioned: true})
	assert.Equal(t, colorComplete, panel.time.Color)

	panel.endFlash()
	assert.Equal(t, colorNormal, panel.time.Color)
	assert.Equal(t, "05:00", panel.Text())
}

func TestTimerPanelButtonsCallActions(t *testing.T) {
	test.NewTempApp(t)
	panel := NewTimerPanel(0)
	var calls []string
	panel.Bind(TimerActions{
		OnStart: func() { calls = append(calls, "start") },
		OnReset: func() { calls = append(calls, "reset") },
	})

	test.Tap(panel.start)
	test.Tap(panel.reset)
	test.Tap(panel.back)

	assert.Equal(t, []string{"start", "reset"}, calls)
}

func TestWindowStartsOnLanding(t *testing.T) {
	window, controller := newTestWindow(t)

	assert.Equal(t, app.ViewLanding, window.Visible())
	assert.Equal(t, "25:00", window.panels.Timer.Text())
	assert.Equal(t, app.ViewLanding, controller.Router().Current())
}

func TestIntakeWithEmptyNameShowsError(t *testing.T) {
	window, controller := newTestWindow(t)
	controller.ShowTaskIntake()

	window.intake.estimate.SetSelected("2 hours")
	test.Tap(window.intake.submit)

	assert.Equal(t, app.ViewTaskIntake, controller.Router().Current())
	assert.Nil(t, controller.TaskClock())
	require.NotNil(t, window.window.Canvas().Overlays().Top())
}

func TestIntakeSubmitCreatesTask(t *testing.T) {
	window, controller := newTestWindow(t)
	controller.ShowTaskIntake()

	window.intake.name.SetText("Write report")
	window.intake.estimate.SetSelected("1 hour")
	test.Tap(window.intake.submit)

	assert.Equal(t, app.ViewTaskTimer, controller.Router().Current())
	task, ok := controller.Task()
	require.True(t, ok)
	assert.Equal(t, "Write report", task.Name)
	assert.Equal(t, app.Estimate(1), task.Estimate)

	window.Show(app.ViewTaskTimer)
	assert.Equal(t, "Working on: Write report", window.panels.Task.heading.Text)
	assert.Equal(t, "Estimated: 1 hour", window.panels.Task.subtitle.Text)
}

func TestToggleSoundUpdatesBothPanels(t *testing.T) {
	window, controller := newTestWindow(t)

	test.Tap(window.panels.Timer.sound)

	assert.False(t, controller.Settings().SoundEnabled)
	assert.Equal(t, "Sound Off", window.panels.Timer.sound.Text)
	assert.Equal(t, "Sound Off", window.panels.Task.sound.Text)
}

func TestSoundChangesReachListener(t *testing.T) {
	window, _ := newTestWindow(t)
	var got []bool
	window.OnSoundChanged(func(enabled bool) { got = append(got, enabled) })

	test.Tap(window.panels.Task.sound)
	test.Tap(window.panels.Task.sound)
	// Settings reloaded from disk go through SetSound as well.
	window.SetSound(false)

	assert.Equal(t, []bool{false, true, false}, got)
	assert.Equal(t, "Sound Off", window.panels.Timer.sound.Text)
}
