// Package display renders clock state for humans. Everything here is pure.
package display

import (
	"fmt"

	"pomodoro/internal/core/model"
)

// WarningThreshold is the remaining time at which the countdown is highlighted.
const WarningThreshold = 10

// FormatRemaining renders seconds as zero-padded MM:SS.
func FormatRemaining(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}
	return fmt.Sprintf("%02d:%02d", seconds/60, seconds%60)
}

// PhaseLabel returns the heading shown above the countdown.
func PhaseLabel(phase model.Phase) string {
	switch phase {
	case model.PhaseShortBreak:
		return "Short Break"
	case model.PhaseLongBreak:
		return "Long Break"
	default:
		return "Focus Time"
	}
}

// NextBreak picks the break that follows a finished focus phase.
func NextBreak(completed, sessionsBeforeLongBreak int) model.Phase {
	if sessionsBeforeLongBreak < 1 {
		sessionsBeforeLongBreak = 1
	}
	if completed > 0 && completed%sessionsBeforeLongBreak == 0 {
		return model.PhaseLongBreak
	}
	return model.PhaseShortBreak
}

// Warning reports whether the countdown is in its final seconds.
func Warning(seconds int) bool {
	return seconds <= WarningThreshold
}

// Status is the one-line summary used by the tray and the terminal UI.
func Status(phase model.Phase, seconds int, running bool) string {
	status := PhaseLabel(phase) + " " + FormatRemaining(seconds)
	if !running {
		status += " (paused)"
	}
	return status
}
