package storage

import (
	"log/slog"
	"time"

	"pomodoro/internal/core/model"
)

// Store persists the user's session settings as a single record.
type Store interface {
	// Load returns false when nothing has been stored yet.
	Load() (model.SessionConfig, bool, error)
	// Save overwrites the stored record wholesale.
	Save(model.SessionConfig) error
}

// LoadOrDefault loads settings, falling back to defaults when the record is
// missing or unreadable.
func LoadOrDefault(store Store, logger *slog.Logger) model.SessionConfig {
	config, found, err := store.Load()
	if err != nil {
		logger.Warn("load settings failed, using defaults", "error", err)
		return model.DefaultSessionConfig()
	}
	if !found {
		return model.DefaultSessionConfig()
	}
	return config
}

func toMinutes(duration time.Duration) int {
	minutes := int(duration / time.Minute)
	if minutes < 1 {
		return 1
	}
	return minutes
}
