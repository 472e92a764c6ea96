package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	"pomodoro/internal/app"
	"pomodoro/internal/config"
	"pomodoro/internal/core/clock"
	"pomodoro/internal/core/model"
	"pomodoro/internal/logging"
	"pomodoro/internal/notify"
	"pomodoro/internal/platform"
	"pomodoro/internal/storage"
	"pomodoro/internal/ui/preferences"
	"pomodoro/internal/ui/tray"
	"pomodoro/internal/ui/views"
	"pomodoro/resources"

	"fyne.io/fyne/v2"
	fyneapp "fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/driver/desktop"
)

const watchDebounce = 300 * time.Millisecond

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "pomodoro: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	logger := logging.New(os.Stderr, cfg.Log.Level, cfg.Log.Format)
	slog.SetDefault(logger)

	guard, err := platform.AcquireSingleInstance(storage.AppName)
	if err != nil {
		if errors.Is(err, platform.ErrAlreadyRunning) {
			logger.Info("another instance is running, bringing it to the front")
			if activateErr := platform.Activate(storage.AppName); activateErr != nil {
				logger.Warn("activate running instance failed", "error", activateErr)
			}
			return nil
		}
		return err
	}
	defer func() {
		_ = guard.Release()
	}()

	fyneApp := fyneapp.NewWithID("com.pomodoro.app")
	fyneApp.SetIcon(resources.MustLogo(resources.LogoActive))

	store, fileStore, err := storage.Open(cfg.Storage, fyneApp.Preferences(), logger)
	if err != nil {
		return err
	}

	var player notify.Player
	if cfg.Notify.Sound {
		player = notify.NewBeepPlayer(resources.Chime())
	}
	sound := notify.NewSink(player, true, logger)
	var desktopNotifier clock.Notifier
	if cfg.Notify.Desktop {
		desktopNotifier = notify.NewDesktopNotifier(fyneApp)
	}

	panels := views.Panels{
		Timer: views.NewTimerPanel(cfg.Clock.GraceDelay),
		Task:  views.NewTimerPanel(cfg.Clock.GraceDelay),
	}

	var trayManager *tray.Manager
	trayRenderer := clock.RenderFunc(func(snapshot clock.Snapshot) {
		if trayManager != nil {
			trayManager.Render(snapshot)
		}
	})

	controller := app.New(app.Options{
		Store:         store,
		Sound:         sound,
		Notifier:      desktopNotifier,
		TimerRenderer: clock.Renderers{panels.Timer, trayRenderer},
		TaskRenderer:  clock.Renderers{panels.Task, trayRenderer},
		TickInterval:  cfg.Clock.TickInterval,
		GraceDelay:    cfg.Clock.GraceDelay,
		Logger:        logger,
	})
	defer controller.Close()

	mainWindow := fyneApp.NewWindow("Pomodoro")
	mainWindow.Resize(fyne.NewSize(420, 360))

	prefsWindow := preferences.New(fyneApp, controller.Settings, controller.SaveSettings)
	ui := views.New(mainWindow, controller, panels, prefsWindow.Show)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if fileStore != nil && cfg.Storage.Watch {
		err := fileStore.Watch(ctx, watchDebounce, func(settings model.SessionConfig) {
			controller.ApplySettings(settings)
			fyne.Do(func() {
				prefsWindow.UpdateSettings(settings)
				ui.SetSound(settings.SoundEnabled)
			})
		})
		if err != nil {
			logger.Warn("settings watch disabled", "error", err)
		}
	}

	if desktopApp, ok := fyneApp.(desktop.App); ok {
		trayManager = tray.New(desktopApp, tray.Callbacks{
			OnShow: func() {
				mainWindow.Show()
				mainWindow.RequestFocus()
			},
			OnStart:    controller.Start,
			OnPause:    controller.Pause,
			OnReset:    controller.Reset,
			OnSettings: prefsWindow.Show,
			OnToggleSound: func() {
				ui.SetSound(controller.ToggleSound())
			},
			OnQuit: fyneApp.Quit,
		}, tray.Icons{
			Running: resources.MustLogo(resources.LogoActive),
			Paused:  resources.MustLogo(resources.LogoPaused),
		}, controller.Settings().SoundEnabled)
		ui.OnSoundChanged(trayManager.SetSound)
		mainWindow.SetCloseIntercept(mainWindow.Hide)
	} else {
		logger.Info("system tray unsupported on this platform")
	}

	go guard.Serve(func() {
		fyne.Do(func() {
			mainWindow.Show()
			mainWindow.RequestFocus()
		})
	})

	logger.Info("pomodoro started", "storage", cfg.Storage.Backend, "tick", cfg.Clock.TickInterval)
	mainWindow.ShowAndRun()
	return nil
}
