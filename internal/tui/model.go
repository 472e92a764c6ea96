package tui

import (
	"fmt"
	"strings"

	"pomodoro/internal/app"
	"pomodoro/internal/core/clock"
	"pomodoro/internal/core/display"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// Model is the Bubble Tea model of the terminal front end.
type Model struct {
	controller *app.Controller
	theme      Theme
	input      textinput.Model
	estimate   app.Estimate
	message    string
}

// New creates the model.
func New(controller *app.Controller) Model {
	input := textinput.New()
	input.Placeholder = "What are you working on?"
	input.CharLimit = 120
	input.Width = 40

	return Model{
		controller: controller,
		theme:      DefaultTheme(),
		input:      input,
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case refreshMsg:
		return m, nil
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			return m.quit()
		}
		switch m.controller.Router().Current() {
		case app.ViewLanding:
			return m.updateLanding(msg)
		case app.ViewTaskIntake:
			return m.updateIntake(msg)
		default:
			return m.updateTimer(msg)
		}
	}
	return m, nil
}

func (m Model) updateLanding(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "1":
		m.controller.ShowStandard()
	case "2":
		m = m.openIntake()
	case "q":
		return m.quit()
	}
	return m, nil
}

func (m Model) updateIntake(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.input.Blur()
		m.message = ""
		m.controller.Back()
		return m, nil
	case tea.KeyEnter:
		if _, err := m.controller.SubmitTask(m.input.Value(), m.estimate); err != nil {
			m.message = err.Error()
			return m, nil
		}
		m.input.Blur()
		m.message = ""
		return m, nil
	case tea.KeyLeft:
		m.estimate = cycleEstimate(m.estimate, -1)
		return m, nil
	case tea.KeyRight:
		m.estimate = cycleEstimate(m.estimate, 1)
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) updateTimer(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "s", " ":
		m.controller.Start()
	case "p":
		m.controller.Pause()
	case "r":
		m.controller.Reset()
	case "m":
		m.controller.ToggleSound()
	case "t":
		m = m.openIntake()
	case "esc", "b":
		if m.controller.Router().Current() == app.ViewTaskTimer {
			m = m.openIntake()
		} else {
			m.controller.Back()
		}
	case "q":
		return m.quit()
	}
	return m, nil
}

func (m Model) openIntake() Model {
	m.controller.ShowTaskIntake()
	m.input.Reset()
	m.input.Focus()
	m.estimate = 0
	m.message = ""
	return m
}

func (m Model) quit() (tea.Model, tea.Cmd) {
	m.controller.Close()
	return m, tea.Quit
}

// View implements tea.Model.
func (m Model) View() string {
	var body string
	switch m.controller.Router().Current() {
	case app.ViewLanding:
		body = m.viewLanding()
	case app.ViewTaskIntake:
		body = m.viewIntake()
	case app.ViewTaskTimer:
		if clk := m.controller.TaskClock(); clk != nil {
			task, _ := m.controller.Task()
			body = m.viewTimer(clk.Snapshot(), task.Summary(), task.EstimateLabel())
		}
	default:
		body = m.viewTimer(m.controller.Timer().Snapshot(), "", "")
	}
	return m.theme.Panel.Render(body) + "\n"
}

func (m Model) viewLanding() string {
	return lipgloss.JoinVertical(lipgloss.Left,
		m.theme.Title.Render("Pomodoro"),
		"",
		"[1] Standard mode",
		"[2] Task mode",
		"",
		m.theme.Muted.Render("[q] quit"),
	)
}

func (m Model) viewIntake() string {
	estimate := "←/→ to choose"
	if m.estimate.Valid() {
		estimate = "‹ " + m.estimate.Label() + " ›"
	}
	lines := []string{
		m.theme.Title.Render("Task Mode"),
		"",
		"Task:     " + m.input.View(),
		"Estimate: " + estimate,
	}
	if m.message != "" {
		lines = append(lines, "", m.theme.Error.Render(m.message))
	}
	lines = append(lines, "", m.theme.Muted.Render("[enter] start  [esc] back"))
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func (m Model) viewTimer(snapshot clock.Snapshot, summary, estimate string) string {
	var lines []string
	if summary != "" {
		lines = append(lines, m.theme.Title.Render(summary), m.theme.Muted.Render(estimate), "")
	}

	labelStyle := m.theme.Focus
	if snapshot.Phase.IsBreak() {
		labelStyle = m.theme.Break
	}
	clockStyle := m.theme.Clock
	if display.Warning(snapshot.Remaining) {
		clockStyle = m.theme.Warning
	}

	state := "paused"
	if snapshot.Running {
		state = "running"
	}
	sound := "off"
	if m.controller.Settings().SoundEnabled {
		sound = "on"
	}

	lines = append(lines,
		labelStyle.Render(display.PhaseLabel(snapshot.Phase)),
		clockStyle.Render(display.FormatRemaining(snapshot.Remaining)),
		fmt.Sprintf("Sessions: %d", snapshot.Completed),
		m.theme.Muted.Render(fmt.Sprintf("%s · sound %s", state, sound)),
		"",
		m.theme.Muted.Render(strings.Join([]string{"[s] start", "[p] pause", "[r] reset", "[m] sound", "[esc] back", "[q] quit"}, "  ")),
	)
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func cycleEstimate(current app.Estimate, step int) app.Estimate {
	options := app.EstimateOptions
	index := -1
	for i, option := range options {
		if option == current {
			index = i
		}
	}
	if index < 0 {
		if step > 0 {
			return options[0]
		}
		return options[len(options)-1]
	}
	return options[(index+step+len(options))%len(options)]
}
