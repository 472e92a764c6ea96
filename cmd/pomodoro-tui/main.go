package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"pomodoro/internal/app"
	"pomodoro/internal/config"
	"pomodoro/internal/core/model"
	"pomodoro/internal/logging"
	"pomodoro/internal/notify"
	"pomodoro/internal/platform"
	"pomodoro/internal/storage"
	"pomodoro/internal/tui"
	"pomodoro/resources"

	tea "github.com/charmbracelet/bubbletea"
)

const watchDebounce = 300 * time.Millisecond

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "pomodoro-tui: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	// The screen belongs to Bubble Tea, so logs go to a file.
	logPath := filepath.Join(os.TempDir(), "pomodoro-tui.log")
	logFile, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("open log file: %w", err)
	}
	defer logFile.Close()
	logger := logging.New(logFile, cfg.Log.Level, cfg.Log.Format)

	guard, err := platform.AcquireSingleInstance(storage.AppName)
	if err != nil {
		if errors.Is(err, platform.ErrAlreadyRunning) {
			return errors.New("another Pomodoro instance is already running")
		}
		return err
	}
	defer func() {
		_ = guard.Release()
	}()

	store, fileStore, err := storage.Open(cfg.Storage, nil, logger)
	if err != nil {
		return err
	}

	var player notify.Player
	if cfg.Notify.Sound {
		player = notify.NewBeepPlayer(resources.Chime())
	}
	bridge := tui.NewBridge()
	controller := app.New(app.Options{
		Store:         store,
		Sound:         notify.NewSink(player, true, logger),
		TimerRenderer: bridge,
		TaskRenderer:  bridge,
		TickInterval:  cfg.Clock.TickInterval,
		GraceDelay:    cfg.Clock.GraceDelay,
		Logger:        logger,
	})
	defer controller.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	program := tea.NewProgram(tui.New(controller), tea.WithAltScreen())
	go bridge.Run(ctx, program)

	if fileStore != nil && cfg.Storage.Watch {
		err := fileStore.Watch(ctx, watchDebounce, func(settings model.SessionConfig) {
			controller.ApplySettings(settings)
			bridge.Render(controller.Timer().Snapshot())
		})
		if err != nil {
			logger.Warn("settings watch disabled", "error", err)
		}
	}

	if _, err := program.Run(); err != nil {
		return fmt.Errorf("run terminal ui: %w", err)
	}
	return nil
}
