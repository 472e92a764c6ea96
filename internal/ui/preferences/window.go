package preferences

import (
	"pomodoro/internal/core/model"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/widget"
)

// Window handles the settings UI.
type Window struct {
	window     fyne.Window
	current    func() model.SessionConfig
	onSave     func(model.SessionConfig)
	focus      *widget.Entry
	shortBreak *widget.Entry
	longBreak  *widget.Entry
	sessions   *widget.Entry
}

// New creates a settings window. current returns the settings in use; saving
// changes only the fields shown in the form and keeps everything else, such as
// the sound toggle, as current reports it.
func New(app fyne.App, current func() model.SessionConfig, onSave func(model.SessionConfig)) *Window {
	window := app.NewWindow("Pomodoro Settings")

	prefs := &Window{
		window:     window,
		current:    current,
		onSave:     onSave,
		focus:      widget.NewEntry(),
		shortBreak: widget.NewEntry(),
		longBreak:  widget.NewEntry(),
		sessions:   widget.NewEntry(),
	}
	prefs.UpdateSettings(current())

	form := container.NewVBox(
		widget.NewLabelWithStyle("Timer", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		container.NewGridWithColumns(3, widget.NewLabel("Focus"), prefs.focus, widget.NewLabel("min")),
		container.NewGridWithColumns(3, widget.NewLabel("Short break"), prefs.shortBreak, widget.NewLabel("min")),
		container.NewGridWithColumns(3, widget.NewLabel("Long break"), prefs.longBreak, widget.NewLabel("min")),
		container.NewGridWithColumns(3, widget.NewLabel("Long break after"), prefs.sessions, widget.NewLabel("sessions")),
	)

	saveButton := widget.NewButton("Save", prefs.handleSave)
	saveButton.Importance = widget.HighImportance
	cancelButton := widget.NewButton("Cancel", func() {
		prefs.UpdateSettings(prefs.current())
		window.Hide()
	})
	buttons := container.NewHBox(cancelButton, layout.NewSpacer(), saveButton)

	window.SetContent(container.NewBorder(nil, buttons, nil, nil, form))
	window.Resize(fyne.NewSize(380, 260))
	window.SetCloseIntercept(window.Hide)
	return prefs
}

// Show displays the settings window.
func (prefs *Window) Show() {
	prefs.UpdateSettings(prefs.current())
	prefs.window.Show()
	prefs.window.RequestFocus()
}

// UpdateSettings replaces window values.
func (prefs *Window) UpdateSettings(settings model.SessionConfig) {
	form := FormFrom(settings)
	prefs.focus.SetText(form.Focus)
	prefs.shortBreak.SetText(form.ShortBreak)
	prefs.longBreak.SetText(form.LongBreak)
	prefs.sessions.SetText(form.Sessions)
}

func (prefs *Window) form() Form {
	return Form{
		Focus:      prefs.focus.Text,
		ShortBreak: prefs.shortBreak.Text,
		LongBreak:  prefs.longBreak.Text,
		Sessions:   prefs.sessions.Text,
	}
}

func (prefs *Window) handleSave() {
	settings := prefs.form().Apply(prefs.current())
	prefs.UpdateSettings(settings)
	if prefs.onSave != nil {
		prefs.onSave(settings)
	}
	prefs.window.Hide()
}
