package views

import (
	"pomodoro/internal/app"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/widget"
)

// Panels are the two timer panels, bound to the standalone and task clocks.
type Panels struct {
	Timer *TimerPanel
	Task  *TimerPanel
}

// Window hosts every view inside one fyne window and follows the router.
type Window struct {
	window     fyne.Window
	controller *app.Controller
	panels     Panels
	intake     *IntakeForm
	views      map[app.View]fyne.CanvasObject
	stack      *fyne.Container
	visible    app.View
	onSound    func(bool)
}

// New builds the views and binds them to the controller. onSettings opens
// the settings panel.
func New(window fyne.Window, controller *app.Controller, panels Panels, onSettings func()) *Window {
	win := &Window{
		window:     window,
		controller: controller,
		panels:     panels,
	}
	win.intake = NewIntakeForm(win.submitTask, controller.Back)

	actions := TimerActions{
		OnStart:       controller.Start,
		OnPause:       controller.Pause,
		OnReset:       controller.Reset,
		OnSettings:    onSettings,
		OnToggleSound: win.toggleSound,
		OnBack:        controller.Back,
	}
	panels.Timer.Bind(actions)
	panels.Task.Bind(actions)

	sound := controller.Settings().SoundEnabled
	panels.Timer.SetSound(sound)
	panels.Task.SetSound(sound)
	panels.Timer.Update(controller.Timer().Snapshot())

	win.views = map[app.View]fyne.CanvasObject{
		app.ViewLanding:    win.landing(),
		app.ViewTaskIntake: win.intake.Content(),
		app.ViewTimer:      panels.Timer.Content(),
		app.ViewTaskTimer:  panels.Task.Content(),
	}
	win.stack = container.NewStack()
	window.SetContent(container.NewPadded(win.stack))
	win.Show(controller.Router().Current())

	controller.Router().OnChange(func(_, to app.View) {
		fyne.Do(func() {
			win.Show(to)
		})
	})
	return win
}

// Show swaps the visible view. It must run on the fyne main goroutine.
func (win *Window) Show(view app.View) {
	content, ok := win.views[view]
	if !ok {
		return
	}
	if view == app.ViewTaskTimer {
		if task, ok := win.controller.Task(); ok {
			win.panels.Task.SetTask(task.Summary(), task.EstimateLabel())
		}
		if taskClock := win.controller.TaskClock(); taskClock != nil {
			win.panels.Task.Update(taskClock.Snapshot())
		}
	}
	if view == app.ViewTaskIntake {
		win.intake.Clear()
	}
	win.visible = view
	win.stack.Objects = []fyne.CanvasObject{content}
	win.stack.Refresh()
}

// Visible returns the view currently on screen.
func (win *Window) Visible() app.View {
	return win.visible
}

// SetSound refreshes the sound toggles, e.g. after settings were reloaded,
// and passes the new state on to the OnSoundChanged listener.
func (win *Window) SetSound(enabled bool) {
	win.panels.Timer.SetSound(enabled)
	win.panels.Task.SetSound(enabled)
	if win.onSound != nil {
		win.onSound(enabled)
	}
}

// OnSoundChanged registers fn to follow every sound state shown in the window.
func (win *Window) OnSoundChanged(fn func(enabled bool)) {
	win.onSound = fn
}

func (win *Window) toggleSound() {
	win.SetSound(win.controller.ToggleSound())
}

func (win *Window) submitTask(name string, estimate app.Estimate) {
	if _, err := win.controller.SubmitTask(name, estimate); err != nil {
		dialog.ShowError(err, win.window)
	}
}

func (win *Window) landing() fyne.CanvasObject {
	title := widget.NewLabelWithStyle("Pomodoro", fyne.TextAlignCenter, fyne.TextStyle{Bold: true})
	intro := widget.NewLabelWithStyle("Focus in short sprints with regular breaks.", fyne.TextAlignCenter, fyne.TextStyle{})
	standard := widget.NewButton("Standard Mode", win.controller.ShowStandard)
	task := widget.NewButton("Task Mode", win.controller.ShowTaskIntake)

	return container.NewVBox(
		layout.NewSpacer(),
		title,
		intro,
		container.NewHBox(layout.NewSpacer(), standard, task, layout.NewSpacer()),
		layout.NewSpacer(),
	)
}
