package storage

import (
	"encoding/json"
	"fmt"
	"time"

	"pomodoro/internal/core/model"

	"github.com/tidwall/gjson"
)

// SettingsKey is the single key the settings record is stored under.
const SettingsKey = "pomodoroSettings"

// KeyValue is the subset of fyne.Preferences the store needs.
type KeyValue interface {
	String(key string) string
	SetString(key string, value string)
}

type settingsRecord struct {
	WorkTime                int  `json:"workTime"`
	BreakTime               int  `json:"breakTime"`
	LongBreakTime           int  `json:"longBreakTime"`
	SessionsBeforeLongBreak int  `json:"sessionsBeforeLongBreak"`
	SoundEnabled            bool `json:"soundEnabled"`
}

// PreferencesStore keeps settings as a JSON record in a key-value backend.
type PreferencesStore struct {
	values KeyValue
}

// NewPreferencesStore wraps a key-value backend such as fyne.Preferences.
func NewPreferencesStore(values KeyValue) *PreferencesStore {
	return &PreferencesStore{values: values}
}

// Load decodes the stored record. Unparseable records count as absent and
// missing fields take their defaults.
func (store *PreferencesStore) Load() (model.SessionConfig, bool, error) {
	raw := store.values.String(SettingsKey)
	if raw == "" || !gjson.Valid(raw) || !gjson.Parse(raw).IsObject() {
		return model.DefaultSessionConfig(), false, nil
	}
	return decodeRecord(raw), true, nil
}

// Save encodes and stores the record.
func (store *PreferencesStore) Save(config model.SessionConfig) error {
	config = config.Normalize()
	encoded, err := json.Marshal(settingsRecord{
		WorkTime:                toMinutes(config.Focus),
		BreakTime:               toMinutes(config.ShortBreak),
		LongBreakTime:           toMinutes(config.LongBreak),
		SessionsBeforeLongBreak: config.SessionsBeforeLongBreak,
		SoundEnabled:            config.SoundEnabled,
	})
	if err != nil {
		return fmt.Errorf("encode settings: %w", err)
	}
	store.values.SetString(SettingsKey, string(encoded))
	return nil
}

func decodeRecord(raw string) model.SessionConfig {
	config := model.DefaultSessionConfig()
	if duration, ok := minutesField(raw, "workTime"); ok {
		config.Focus = duration
	}
	if duration, ok := minutesField(raw, "breakTime"); ok {
		config.ShortBreak = duration
	}
	if duration, ok := minutesField(raw, "longBreakTime"); ok {
		config.LongBreak = duration
	}
	if sessions, ok := positiveInt(raw, "sessionsBeforeLongBreak"); ok {
		config.SessionsBeforeLongBreak = sessions
	}
	// Only an explicit false turns sound off.
	if sound := gjson.Get(raw, "soundEnabled"); sound.Type == gjson.False {
		config.SoundEnabled = false
	}
	return config
}

func minutesField(raw, field string) (time.Duration, bool) {
	value := gjson.Get(raw, field)
	if value.Type != gjson.Number {
		return 0, false
	}
	return model.Minutes(value.Int())
}

func positiveInt(raw, field string) (int, bool) {
	value := gjson.Get(raw, field)
	if value.Type != gjson.Number {
		return 0, false
	}
	parsed := value.Int()
	if parsed <= 0 {
		return 0, false
	}
	return int(parsed), true
}
