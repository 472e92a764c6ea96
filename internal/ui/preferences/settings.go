package preferences

import (
	"strconv"
	"strings"
	"time"

	"pomodoro/internal/core/model"
)

// Form holds the text of the settings fields. Durations are in minutes.
type Form struct {
	Focus      string
	ShortBreak string
	LongBreak  string
	Sessions   string
}

// FormFrom fills the form from settings.
func FormFrom(settings model.SessionConfig) Form {
	return Form{
		Focus:      strconv.Itoa(int(settings.Focus / time.Minute)),
		ShortBreak: strconv.Itoa(int(settings.ShortBreak / time.Minute)),
		LongBreak:  strconv.Itoa(int(settings.LongBreak / time.Minute)),
		Sessions:   strconv.Itoa(settings.SessionsBeforeLongBreak),
	}
}

// Apply returns settings updated with every valid field; invalid or empty
// fields keep the previous value.
func (form Form) Apply(settings model.SessionConfig) model.SessionConfig {
	if duration, ok := parseMinutes(form.Focus); ok {
		settings.Focus = duration
	}
	if duration, ok := parseMinutes(form.ShortBreak); ok {
		settings.ShortBreak = duration
	}
	if duration, ok := parseMinutes(form.LongBreak); ok {
		settings.LongBreak = duration
	}
	if sessions, ok := parsePositiveInt(form.Sessions); ok {
		settings.SessionsBeforeLongBreak = sessions
	}
	return settings
}

func parseMinutes(value string) (time.Duration, bool) {
	parsed, err := strconv.ParseInt(strings.TrimSpace(value), 10, 64)
	if err != nil {
		return 0, false
	}
	return model.Minutes(parsed)
}

func parsePositiveInt(value string) (int, bool) {
	parsed, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil || parsed <= 0 {
		return 0, false
	}
	return parsed, true
}
