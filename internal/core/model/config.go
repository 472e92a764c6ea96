package model

import "time"

// Phase identifies what the current countdown is for.
type Phase string

const (
	PhaseFocus      Phase = "focus"
	PhaseShortBreak Phase = "short_break"
	PhaseLongBreak  Phase = "long_break"
)

// IsBreak reports whether the phase is one of the break phases.
func (phase Phase) IsBreak() bool {
	return phase == PhaseShortBreak || phase == PhaseLongBreak
}

// Default durations used when nothing was persisted.
const (
	DefaultFocus                   = 25 * time.Minute
	DefaultShortBreak              = 5 * time.Minute
	DefaultLongBreak               = 15 * time.Minute
	DefaultSessionsBeforeLongBreak = 4
)

// MaxMinutes bounds a single phase to one day.
const MaxMinutes = 24 * 60

// MaxDuration is MaxMinutes as a duration.
const MaxDuration = MaxMinutes * time.Minute

// Minutes converts a stored or typed minute count into a duration. ok is
// false outside 1..MaxMinutes.
func Minutes(minutes int64) (duration time.Duration, ok bool) {
	if minutes <= 0 || minutes > MaxMinutes {
		return 0, false
	}
	return time.Duration(minutes) * time.Minute, true
}

// SessionConfig is an immutable snapshot of the session durations.
// It is replaced wholesale whenever settings are saved.
type SessionConfig struct {
	Focus      time.Duration
	ShortBreak time.Duration
	LongBreak  time.Duration

	SessionsBeforeLongBreak int
	SoundEnabled            bool
}

// DefaultSessionConfig returns the classic 25/5/15 schedule with sound on.
func DefaultSessionConfig() SessionConfig {
	return SessionConfig{
		Focus:                   DefaultFocus,
		ShortBreak:              DefaultShortBreak,
		LongBreak:               DefaultLongBreak,
		SessionsBeforeLongBreak: DefaultSessionsBeforeLongBreak,
		SoundEnabled:            true,
	}
}

// Normalize replaces out-of-range values with defaults and truncates
// durations to whole seconds.
func (config SessionConfig) Normalize() SessionConfig {
	defaults := DefaultSessionConfig()
	if !inRange(config.Focus) {
		config.Focus = defaults.Focus
	}
	if !inRange(config.ShortBreak) {
		config.ShortBreak = defaults.ShortBreak
	}
	if !inRange(config.LongBreak) {
		config.LongBreak = defaults.LongBreak
	}
	if config.SessionsBeforeLongBreak < 1 {
		config.SessionsBeforeLongBreak = defaults.SessionsBeforeLongBreak
	}
	config.Focus = config.Focus.Truncate(time.Second)
	config.ShortBreak = config.ShortBreak.Truncate(time.Second)
	config.LongBreak = config.LongBreak.Truncate(time.Second)
	return config
}

func inRange(duration time.Duration) bool {
	return duration >= time.Second && duration <= MaxDuration
}

// DurationOf returns the configured length of a phase in whole seconds.
func (config SessionConfig) DurationOf(phase Phase) int {
	switch phase {
	case PhaseShortBreak:
		return int(config.ShortBreak / time.Second)
	case PhaseLongBreak:
		return int(config.LongBreak / time.Second)
	default:
		return int(config.Focus / time.Second)
	}
}
