package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Storage backends for user settings.
const (
	BackendPreferences = "preferences"
	BackendFile        = "file"
)

// Config defines application configuration. User-editable session settings
// live in the settings store, not here.
type Config struct {
	Storage StorageConfig `yaml:"storage"`
	Log     LogConfig     `yaml:"log"`
	Clock   ClockConfig   `yaml:"clock"`
	Notify  NotifyConfig  `yaml:"notify"`
}

type StorageConfig struct {
	Backend string `yaml:"backend"`
	// Path overrides the settings file location for the file backend.
	Path  string `yaml:"path"`
	Watch bool   `yaml:"watch"`
}

type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

type ClockConfig struct {
	TickInterval time.Duration `yaml:"tick_interval"`
	GraceDelay   time.Duration `yaml:"grace_delay"`
}

type NotifyConfig struct {
	Sound   bool `yaml:"sound"`
	Desktop bool `yaml:"desktop"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Storage: StorageConfig{
			Backend: BackendPreferences,
			Watch:   true,
		},
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
		Clock: ClockConfig{
			TickInterval: time.Second,
			GraceDelay:   time.Second,
		},
		Notify: NotifyConfig{
			Sound:   true,
			Desktop: true,
		},
	}
}

// Load reads configuration from an optional YAML file and environment variables.
func Load() (Config, error) {
	return load(os.Getenv)
}

func load(getenv func(string) string) (Config, error) {
	cfg := Default()

	if path := getenv("POMODORO_CONFIG_PATH"); path != "" {
		if err := loadFromFile(path, &cfg); err != nil {
			return Config{}, err
		}
	}

	if level := getenv("POMODORO_LOG_LEVEL"); level != "" {
		cfg.Log.Level = level
	}
	if format := getenv("POMODORO_LOG_FORMAT"); format != "" {
		cfg.Log.Format = format
	}
	if backend := getenv("POMODORO_STORAGE"); backend != "" {
		cfg.Storage.Backend = backend
	}
	if path := getenv("POMODORO_SETTINGS_PATH"); path != "" {
		cfg.Storage.Path = path
	}
	if tick := getenv("POMODORO_TICK"); tick != "" {
		interval, err := time.ParseDuration(tick)
		if err != nil {
			return Config{}, fmt.Errorf("invalid POMODORO_TICK: %w", err)
		}
		cfg.Clock.TickInterval = interval
	}

	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (cfg Config) validate() error {
	switch cfg.Storage.Backend {
	case BackendPreferences, BackendFile:
	default:
		return fmt.Errorf("unknown storage backend %q", cfg.Storage.Backend)
	}
	if cfg.Clock.TickInterval <= 0 {
		return fmt.Errorf("tick interval must be positive, got %s", cfg.Clock.TickInterval)
	}
	if cfg.Clock.GraceDelay <= 0 {
		return fmt.Errorf("grace delay must be positive, got %s", cfg.Clock.GraceDelay)
	}
	return nil
}

func loadFromFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse config file: %w", err)
	}
	return nil
}
