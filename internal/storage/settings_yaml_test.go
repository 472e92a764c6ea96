package storage

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"pomodoro/internal/core/model"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestFileStore(t *testing.T) *FileStore {
	t.Helper()
	return NewFileStore(filepath.Join(t.TempDir(), "pomodoro", settingsFileName), slog.Default())
}

func TestFileStoreMissingFile(t *testing.T) {
	store := newTestFileStore(t)

	config, found, err := store.Load()
	require.NoError(t, err)
	assert.False(t, found)
	assert.Equal(t, model.DefaultSessionConfig(), config)
}

func TestFileStoreRoundTrip(t *testing.T) {
	store := newTestFileStore(t)
	saved := model.SessionConfig{
		Focus:                   30 * time.Minute,
		ShortBreak:              3 * time.Minute,
		LongBreak:               20 * time.Minute,
		SessionsBeforeLongBreak: 2,
		SoundEnabled:            false,
	}
	require.NoError(t, store.Save(saved))

	loaded, found, err := store.Load()
	require.NoError(t, err)
	require.True(t, found)
	if diff := cmp.Diff(saved, loaded); diff != "" {
		t.Fatalf("settings mismatch (-saved +loaded):\n%s", diff)
	}
}

func TestFileStorePartialFileKeepsDefaults(t *testing.T) {
	store := newTestFileStore(t)
	require.NoError(t, os.MkdirAll(filepath.Dir(store.Path()), 0o755))
	require.NoError(t, os.WriteFile(store.Path(), []byte("focus_minutes: 50\n"), 0o644))

	config, found, err := store.Load()
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, 50*time.Minute, config.Focus)
	assert.Equal(t, model.DefaultShortBreak, config.ShortBreak)
	assert.True(t, config.SoundEnabled)
}

func TestFileStoreInvalidYAML(t *testing.T) {
	store := newTestFileStore(t)
	require.NoError(t, os.MkdirAll(filepath.Dir(store.Path()), 0o755))
	require.NoError(t, os.WriteFile(store.Path(), []byte("focus_minutes: [oops"), 0o644))

	_, _, err := store.Load()
	require.ErrorContains(t, err, "parse settings yaml")
	assert.Equal(t, model.DefaultSessionConfig(), LoadOrDefault(store, slog.Default()))
}

func TestFileStoreWatchReloadsExternalEdits(t *testing.T) {
	store := newTestFileStore(t)
	require.NoError(t, store.Save(model.DefaultSessionConfig()))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	changes := make(chan model.SessionConfig, 4)
	require.NoError(t, store.Watch(ctx, 20*time.Millisecond, func(config model.SessionConfig) {
		changes <- config
	}))

	require.NoError(t, os.WriteFile(store.Path(), []byte("focus_minutes: 50\n"), 0o644))

	select {
	case config := <-changes:
		assert.Equal(t, 50*time.Minute, config.Focus)
	case <-time.After(5 * time.Second):
		t.Fatal("watcher did not report the edit")
	}
}

func TestFileStoreWatchIgnoresOwnSave(t *testing.T) {
	store := newTestFileStore(t)
	require.NoError(t, store.Save(model.DefaultSessionConfig()))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	changes := make(chan model.SessionConfig, 4)
	require.NoError(t, store.Watch(ctx, 20*time.Millisecond, func(config model.SessionConfig) {
		changes <- config
	}))

	config := model.DefaultSessionConfig()
	config.Focus = 40 * time.Minute
	require.NoError(t, store.Save(config))

	select {
	case config := <-changes:
		t.Fatalf("unexpected reload of own write: %+v", config)
	case <-time.After(200 * time.Millisecond):
	}
}

func TestFileStoreHugeMinutesUseDefaults(t *testing.T) {
	store := newTestFileStore(t)
	require.NoError(t, os.MkdirAll(filepath.Dir(store.Path()), 0o755))
	require.NoError(t, os.WriteFile(store.Path(), []byte("focus_minutes: 1000000000000\nshort_break_minutes: 10\n"), 0o644))

	config, found, err := store.Load()
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, model.DefaultFocus, config.Focus)
	assert.Equal(t, 10*time.Minute, config.ShortBreak)
}
