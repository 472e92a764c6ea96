package views

import (
	"image/color"
	"strconv"
	"sync"
	"time"

	"pomodoro/internal/core/clock"
	"pomodoro/internal/core/display"
	"pomodoro/internal/core/model"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
)

var (
	colorNormal   = color.NRGBA{R: 0x33, G: 0x33, B: 0x33, A: 0xff}
	colorWarning  = color.NRGBA{R: 0xe7, G: 0x4c, B: 0x3c, A: 0xff}
	colorComplete = color.NRGBA{R: 0x2e, G: 0xcc, B: 0x71, A: 0xff}
)

// TimerActions are the buttons of a timer panel.
type TimerActions struct {
	OnStart       func()
	OnPause       func()
	OnReset       func()
	OnSettings    func()
	OnToggleSound func()
	OnBack        func()
}

// TimerPanel shows one clock. The standalone and the task timer each get
// their own panel.
type TimerPanel struct {
	heading  *widget.Label
	subtitle *widget.Label
	label    *widget.Label
	time     *canvas.Text
	sessions *widget.Label
	start    *widget.Button
	pause    *widget.Button
	reset    *widget.Button
	settings *widget.Button
	sound    *widget.Button
	back     *widget.Button
	content  fyne.CanvasObject

	flashFor time.Duration

	mu       sync.Mutex
	actions  TimerActions
	flashing bool
	last     clock.Snapshot
}

// NewTimerPanel builds the panel widgets. flashFor is how long the display
// stays highlighted after a phase completes.
func NewTimerPanel(flashFor time.Duration) *TimerPanel {
	panel := &TimerPanel{
		heading:  widget.NewLabelWithStyle("", fyne.TextAlignCenter, fyne.TextStyle{Bold: true}),
		subtitle: widget.NewLabelWithStyle("", fyne.TextAlignCenter, fyne.TextStyle{Italic: true}),
		label:    widget.NewLabelWithStyle(display.PhaseLabel(model.PhaseFocus), fyne.TextAlignCenter, fyne.TextStyle{Bold: true}),
		time:     canvas.NewText(display.FormatRemaining(0), colorNormal),
		sessions: widget.NewLabelWithStyle("Sessions: 0", fyne.TextAlignCenter, fyne.TextStyle{}),
		flashFor: flashFor,
	}
	panel.heading.Hide()
	panel.subtitle.Hide()
	panel.time.TextSize = 64
	panel.time.TextStyle = fyne.TextStyle{Monospace: true, Bold: true}
	panel.time.Alignment = fyne.TextAlignCenter

	panel.start = widget.NewButtonWithIcon("Start", theme.MediaPlayIcon(), func() { call(panel.bound().OnStart) })
	panel.pause = widget.NewButtonWithIcon("Pause", theme.MediaPauseIcon(), func() { call(panel.bound().OnPause) })
	panel.reset = widget.NewButtonWithIcon("Reset", theme.MediaReplayIcon(), func() { call(panel.bound().OnReset) })
	panel.settings = widget.NewButtonWithIcon("Settings", theme.SettingsIcon(), func() { call(panel.bound().OnSettings) })
	panel.sound = widget.NewButtonWithIcon(soundLabel(true), theme.VolumeUpIcon(), func() { call(panel.bound().OnToggleSound) })
	panel.back = widget.NewButtonWithIcon("Back", theme.NavigateBackIcon(), func() { call(panel.bound().OnBack) })
	panel.pause.Disable()

	panel.content = container.NewVBox(
		panel.heading,
		panel.subtitle,
		panel.label,
		panel.time,
		panel.sessions,
		container.NewHBox(layout.NewSpacer(), panel.start, panel.pause, panel.reset, layout.NewSpacer()),
		container.NewHBox(panel.back, layout.NewSpacer(), panel.sound, panel.settings),
	)
	return panel
}

// Bind sets the button handlers.
func (panel *TimerPanel) Bind(actions TimerActions) {
	panel.mu.Lock()
	defer panel.mu.Unlock()
	panel.actions = actions
}

// Content returns the panel's root object.
func (panel *TimerPanel) Content() fyne.CanvasObject {
	return panel.content
}

// SetTask shows the task heading; empty strings hide it.
func (panel *TimerPanel) SetTask(summary, estimate string) {
	setOptional(panel.heading, summary)
	setOptional(panel.subtitle, estimate)
}

// SetSound updates the sound toggle caption.
func (panel *TimerPanel) SetSound(enabled bool) {
	panel.sound.SetText(soundLabel(enabled))
	if enabled {
		panel.sound.SetIcon(theme.VolumeUpIcon())
	} else {
		panel.sound.SetIcon(theme.VolumeMuteIcon())
	}
}

// Render implements clock.Renderer. It may be called from any goroutine.
func (panel *TimerPanel) Render(snapshot clock.Snapshot) {
	fyne.Do(func() {
		panel.Update(snapshot)
	})
}

// Update redraws the panel. It must run on the fyne main goroutine.
func (panel *TimerPanel) Update(snapshot clock.Snapshot) {
	panel.mu.Lock()
	panel.last = snapshot
	if snapshot.Transitioned {
		panel.flashing = true
	}
	flashing := panel.flashing
	panel.mu.Unlock()

	panel.time.Text = display.FormatRemaining(snapshot.Remaining)
	switch {
	case flashing:
		panel.time.Color = colorComplete
	case display.Warning(snapshot.Remaining):
		panel.time.Color = colorWarning
	default:
		panel.time.Color = colorNormal
	}
	panel.time.Refresh()

	panel.label.SetText(display.PhaseLabel(snapshot.Phase))
	panel.sessions.SetText("Sessions: " + strconv.Itoa(snapshot.Completed))
	if snapshot.Running {
		panel.start.Disable()
		panel.pause.Enable()
	} else {
		panel.start.Enable()
		panel.pause.Disable()
	}

	if snapshot.Transitioned && panel.flashFor > 0 {
		time.AfterFunc(panel.flashFor, func() {
			fyne.Do(panel.endFlash)
		})
	}
}

// Text returns the rendered countdown.
func (panel *TimerPanel) Text() string {
	return panel.time.Text
}

// Label returns the rendered phase label.
func (panel *TimerPanel) Label() string {
	return panel.label.Text
}

func (panel *TimerPanel) endFlash() {
	panel.mu.Lock()
	panel.flashing = false
	last := panel.last
	panel.mu.Unlock()

	last.Transitioned = false
	panel.Update(last)
}

func (panel *TimerPanel) bound() TimerActions {
	panel.mu.Lock()
	defer panel.mu.Unlock()
	return panel.actions
}

func call(action func()) {
	if action != nil {
		action()
	}
}

func soundLabel(enabled bool) string {
	if enabled {
		return "Sound On"
	}
	return "Sound Off"
}

func setOptional(label *widget.Label, text string) {
	label.SetText(text)
	if text == "" {
		label.Hide()
	} else {
		label.Show()
	}
}
