package storage

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"pomodoro/internal/core/model"

	"github.com/fsnotify/fsnotify"
	"gopkg.in/yaml.v3"
)

const settingsFileName = "settings.yaml"

type yamlSettings struct {
	FocusMinutes            int   `yaml:"focus_minutes"`
	ShortBreakMinutes       int   `yaml:"short_break_minutes"`
	LongBreakMinutes        int   `yaml:"long_break_minutes"`
	SessionsBeforeLongBreak int   `yaml:"sessions_before_long_break"`
	SoundEnabled            *bool `yaml:"sound_enabled"`
}

// FileStore keeps settings in a YAML file.
type FileStore struct {
	path   string
	logger *slog.Logger

	mu   sync.Mutex
	last *model.SessionConfig
}

// NewFileStore creates a store for the file at path.
func NewFileStore(path string, logger *slog.Logger) *FileStore {
	if logger == nil {
		logger = slog.Default()
	}
	return &FileStore{path: path, logger: logger}
}

// DefaultSettingsPath returns the settings file under the user config dir.
func DefaultSettingsPath(appName string) (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("resolve user config dir: %w", err)
	}
	return filepath.Join(configDir, appName, settingsFileName), nil
}

// Path returns the backing file.
func (store *FileStore) Path() string {
	return store.path
}

// Load reads user settings from YAML.
// If the file does not exist, defaults are returned with found=false.
func (store *FileStore) Load() (model.SessionConfig, bool, error) {
	settings := model.DefaultSessionConfig()

	rawData, err := os.ReadFile(store.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return settings, false, nil
		}
		return settings, false, fmt.Errorf("read settings file: %w", err)
	}

	var fileData yamlSettings
	if err := yaml.Unmarshal(rawData, &fileData); err != nil {
		return settings, false, fmt.Errorf("parse settings yaml: %w", err)
	}

	applyYamlSettings(&settings, fileData)
	store.remember(settings)
	return settings, true, nil
}

// Save writes user settings to YAML.
func (store *FileStore) Save(settings model.SessionConfig) error {
	settings = settings.Normalize()
	if err := os.MkdirAll(filepath.Dir(store.path), 0o755); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}

	sound := settings.SoundEnabled
	fileData := yamlSettings{
		FocusMinutes:            toMinutes(settings.Focus),
		ShortBreakMinutes:       toMinutes(settings.ShortBreak),
		LongBreakMinutes:        toMinutes(settings.LongBreak),
		SessionsBeforeLongBreak: settings.SessionsBeforeLongBreak,
		SoundEnabled:            &sound,
	}

	serialized, err := yaml.Marshal(fileData)
	if err != nil {
		return fmt.Errorf("marshal settings yaml: %w", err)
	}

	if err := os.WriteFile(store.path, serialized, 0o644); err != nil {
		return fmt.Errorf("write settings file: %w", err)
	}

	// Remember what was written in its reloaded form so the watcher
	// ignores our own write.
	written := model.DefaultSessionConfig()
	applyYamlSettings(&written, fileData)
	store.remember(written)
	return nil
}

// Watch reloads the file after external edits and calls onChange with the new
// settings. It returns once the watcher is set up; watching stops with ctx.
func (store *FileStore) Watch(ctx context.Context, debounce time.Duration, onChange func(model.SessionConfig)) error {
	if onChange == nil {
		return fmt.Errorf("onChange callback is nil: %w", os.ErrInvalid)
	}
	dir := filepath.Dir(store.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create settings watcher: %w", err)
	}
	// Watch the directory so editors that replace the file are seen.
	if err := watcher.Add(dir); err != nil {
		_ = watcher.Close()
		return fmt.Errorf("watch %s: %w", dir, err)
	}

	go store.watchLoop(ctx, watcher, debounce, onChange)
	return nil
}

func (store *FileStore) watchLoop(ctx context.Context, watcher *fsnotify.Watcher, debounce time.Duration, onChange func(model.SessionConfig)) {
	defer watcher.Close()

	var pending <-chan time.Time
	for {
		select {
		case <-ctx.Done():
			return

		case event, ok := <-watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != filepath.Clean(store.path) {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			pending = time.After(debounce)

		case err, ok := <-watcher.Errors:
			if !ok {
				return
			}
			store.logger.Warn("settings watcher error", "error", err)

		case <-pending:
			pending = nil
			store.reload(onChange)
		}
	}
}

func (store *FileStore) reload(onChange func(model.SessionConfig)) {
	store.mu.Lock()
	previous := store.last
	store.mu.Unlock()

	settings, found, err := store.Load()
	if err != nil {
		store.logger.Warn("reload settings failed", "path", store.path, "error", err)
		return
	}
	if !found || (previous != nil && *previous == settings) {
		return
	}
	store.logger.Info("settings file changed", "path", store.path)
	onChange(settings)
}

func (store *FileStore) remember(settings model.SessionConfig) {
	store.mu.Lock()
	defer store.mu.Unlock()
	store.last = &settings
}

func applyYamlSettings(settings *model.SessionConfig, fileData yamlSettings) {
	if duration, ok := model.Minutes(int64(fileData.FocusMinutes)); ok {
		settings.Focus = duration
	}
	if duration, ok := model.Minutes(int64(fileData.ShortBreakMinutes)); ok {
		settings.ShortBreak = duration
	}
	if duration, ok := model.Minutes(int64(fileData.LongBreakMinutes)); ok {
		settings.LongBreak = duration
	}
	if fileData.SessionsBeforeLongBreak > 0 {
		settings.SessionsBeforeLongBreak = fileData.SessionsBeforeLongBreak
	}
	if fileData.SoundEnabled != nil {
		settings.SoundEnabled = *fileData.SoundEnabled
	}
}
