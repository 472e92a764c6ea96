package storage

import (
	"log/slog"

	"pomodoro/internal/config"
)

// AppName names the settings directory.
const AppName = "Pomodoro"

// Open picks the settings store configured in cfg. values is the key-value
// backend for the preferences store and may be nil when the front end has
// none, in which case the file store is used. The returned FileStore is nil
// unless the file backend was chosen.
func Open(cfg config.StorageConfig, values KeyValue, logger *slog.Logger) (Store, *FileStore, error) {
	if cfg.Backend == config.BackendPreferences && values != nil {
		return NewPreferencesStore(values), nil, nil
	}
	if cfg.Backend == config.BackendPreferences {
		logger.Info("preferences backend unavailable, using settings file")
	}

	path := cfg.Path
	if path == "" {
		defaultPath, err := DefaultSettingsPath(AppName)
		if err != nil {
			return nil, nil, err
		}
		path = defaultPath
	}
	fileStore := NewFileStore(path, logger)
	return fileStore, fileStore, nil
}
