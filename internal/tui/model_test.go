package tui

import (
	"strings"
	"testing"
	"time"

	"pomodoro/internal/app"
	"pomodoro/internal/storage"

	tea "github.com/charmbracelet/bubbletea"
)

type kv map[string]string

func (values kv) String(key string) string    { return values[key] }
func (values kv) SetString(key, value string) { values[key] = value }

func newTestModel(t *testing.T) Model {
	t.Helper()
	controller := app.New(app.Options{
		Store:        storage.NewPreferencesStore(kv{}),
		TickInterval: time.Hour,
	})
	t.Cleanup(controller.Close)
	return New(controller)
}

func press(t *testing.T, m Model, keys ...string) Model {
	t.Helper()
	for _, key := range keys {
		var msg tea.KeyMsg
		switch key {
		case "enter":
			msg = tea.KeyMsg{Type: tea.KeyEnter}
		case "esc":
			msg = tea.KeyMsg{Type: tea.KeyEsc}
		case "right":
			msg = tea.KeyMsg{Type: tea.KeyRight}
		case "left":
			msg = tea.KeyMsg{Type: tea.KeyLeft}
		default:
			msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(key)}
		}
		updated, _ := m.Update(msg)
		m = updated.(Model)
	}
	return m
}

func TestLandingToStandardTimer(t *testing.T) {
	m := press(t, newTestModel(t), "1")

	if got := m.controller.Router().Current(); got != app.ViewTimer {
		t.Fatalf("expected timer view, got %s", got)
	}
	view := m.View()
	if !strings.Contains(view, "Focus Time") || !strings.Contains(view, "25:00") {
		t.Fatalf("unexpected timer view:\n%s", view)
	}

	m = press(t, m, "s")
	if !m.controller.Timer().Running() {
		t.Fatalf("expected clock to run after start")
	}
	m = press(t, m, "p")
	if m.controller.Timer().Running() {
		t.Fatalf("expected clock to pause")
	}
}

func TestIntakeRequiresName(t *testing.T) {
	m := press(t, newTestModel(t), "2", "right", "enter")

	if got := m.controller.Router().Current(); got != app.ViewTaskIntake {
		t.Fatalf("expected to stay on intake, got %s", got)
	}
	if m.controller.TaskClock() != nil {
		t.Fatalf("task clock must not be created")
	}
	if !strings.Contains(m.View(), app.ErrTaskNameRequired.Error()) {
		t.Fatalf("missing validation message:\n%s", m.View())
	}
}

func TestIntakeRequiresEstimate(t *testing.T) {
	m := press(t, newTestModel(t), "2", "R", "e", "a", "d", "enter")

	if !strings.Contains(m.message, app.ErrTaskEstimateRequired.Error()) {
		t.Fatalf("unexpected message %q", m.message)
	}
}

func TestIntakeSubmitShowsTaskTimer(t *testing.T) {
	m := press(t, newTestModel(t), "2", "D", "o", "c", "s", "right", "right", "enter")

	if got := m.controller.Router().Current(); got != app.ViewTaskTimer {
		t.Fatalf("expected task timer, got %s", got)
	}
	view := m.View()
	if !strings.Contains(view, "Working on: Docs") || !strings.Contains(view, "Estimated: 2 hours") {
		t.Fatalf("missing task header:\n%s", view)
	}

	m = press(t, m, "esc")
	if got := m.controller.Router().Current(); got != app.ViewTaskIntake {
		t.Fatalf("expected intake after back, got %s", got)
	}
}

func TestToggleSoundKey(t *testing.T) {
	m := press(t, newTestModel(t), "1", "m")

	if m.controller.Settings().SoundEnabled {
		t.Fatalf("expected sound off")
	}
	if !strings.Contains(m.View(), "sound off") {
		t.Fatalf("view does not show sound state:\n%s", m.View())
	}
}

func TestCycleEstimate(t *testing.T) {
	if got := cycleEstimate(0, 1); got != 1 {
		t.Fatalf("expected 1, got %d", got)
	}
	if got := cycleEstimate(0, -1); got != 4 {
		t.Fatalf("expected 4, got %d", got)
	}
	if got := cycleEstimate(4, 1); got != 1 {
		t.Fatalf("expected wrap to 1, got %d", got)
	}
}
