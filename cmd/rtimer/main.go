package main

import (
	"context"
	"errors"
	"log/slog"
	"os"

	"rtimer/internal/core/countdown"
	"rtimer/internal/feedback"
	"rtimer/internal/logging"
	"rtimer/internal/platform"
	"rtimer/internal/storage"
	"rtimer/internal/ui/preferences"
	"rtimer/internal/ui/timerview"
	"rtimer/internal/ui/tray"
	"rtimer/resources"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/driver/desktop"
)

const (
	appName = "rTimer"
	appID   = "com.rtimer.app"
)

func main() {
	logger := logging.New(logging.Config{
		Level:  os.Getenv("RTIMER_LOG_LEVEL"),
		Format: os.Getenv("RTIMER_LOG_FORMAT"),
	})
	slog.SetDefault(logger)

	guard, err := platform.AcquireSingleInstance(appName)
	if err != nil {
		logger.Info("another instance is running", slog.String("error", err.Error()))
		if err := platform.Activate(appName); err != nil {
			logger.Warn("activate running instance", slog.String("error", err.Error()))
		}
		return
	}
	defer func() {
		_ = guard.Release()
	}()
	guard.SetLogger(logger)

	settings, err := storage.LoadSettings(appName)
	if err != nil {
		logger.Warn("load settings, using defaults", slog.String("error", err.Error()))
		settings = preferences.DefaultSettings()
	}

	soundsDir, err := storage.SoundsDir(appName)
	if err != nil {
		logger.Warn("resolve sounds dir", slog.String("error", err.Error()))
	}
	sounds := listSounds(soundsDir, logger)

	var player feedback.Player
	if detected, err := feedback.DetectPlayer(); err != nil {
		logger.Warn("sound cues disabled", slog.String("error", err.Error()))
	} else {
		player = detected
	}

	fyneApp := app.NewWithID(appID)
	fyneApp.SetIcon(resources.MustIcon(resources.IconApp))

	cues := feedback.New(player, feedback.NotifierFunc(func(title, body string) {
		fyneApp.SendNotification(fyne.NewNotification(title, body))
	}), feedbackOptions(soundsDir, settings))
	cues.SetLogger(logger)

	engine := countdown.New(countdown.NewTickerScheduler(fyne.Do))
	engine.SetLogger(logger)

	view := timerview.New(engine, func() preferences.Settings { return settings })
	engine.SetListener(countdown.Multi(view, cues))

	mainWindow := fyneApp.NewWindow(appName)
	mainWindow.SetContent(view.Content())
	mainWindow.Resize(fyne.NewSize(320, 260))
	view.SetOnError(func(err error) {
		dialog.ShowError(err, mainWindow)
	})

	applySettings := func(updated preferences.Settings) {
		settings = updated
		view.ApplySettings(updated)
		cues.SetOptions(feedbackOptions(soundsDir, updated))
	}

	prefsWindow := preferences.New(fyneApp, settings, sounds, func(updated preferences.Settings) {
		if err := storage.SaveSettings(appName, updated); err != nil {
			logger.Error("save settings", slog.String("error", err.Error()))
			dialog.ShowError(err, mainWindow)
		}
		applySettings(updated)
	})

	showMain := func() {
		mainWindow.Show()
		mainWindow.RequestFocus()
	}

	if desktopApp, ok := fyneApp.(desktop.App); ok {
		activeIcon := resources.MustIcon(resources.IconActive)
		pausedIcon := resources.MustIcon(resources.IconPaused)

		trayManager := tray.New(desktopApp, tray.Callbacks{
			OnShow:      showMain,
			OnToggleRun: view.ToggleRun,
			OnReset:     view.Reset,
			OnPreferences: func() {
				prefsWindow.SetSounds(listSounds(soundsDir, logger))
				prefsWindow.Show()
			},
			OnQuit: fyneApp.Quit,
		})
		desktopApp.SetSystemTrayIcon(pausedIcon)

		running := false
		view.SetOnStatus(func(status string, active bool) {
			trayManager.SetStatus(status)
			trayManager.SetRunning(active)
			if active != running {
				running = active
				if active {
					desktopApp.SetSystemTrayIcon(activeIcon)
				} else {
					desktopApp.SetSystemTrayIcon(pausedIcon)
				}
			}
		})
		mainWindow.SetCloseIntercept(mainWindow.Hide)
	} else {
		logger.Info("system tray unsupported on this platform")
		mainWindow.SetMainMenu(fyne.NewMainMenu(fyne.NewMenu("File",
			fyne.NewMenuItem("Preferences", prefsWindow.Show),
		)))
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go func() {
		err := guard.Serve(ctx, func() { fyne.Do(showMain) })
		if err != nil {
			logger.Warn("activation listener stopped", slog.String("error", err.Error()))
		}
	}()

	if configPath, err := storage.SettingsPath(appName); err != nil {
		logger.Warn("settings reload disabled", slog.String("error", err.Error()))
	} else if watcher, err := storage.WatchSettings(configPath, func(updated preferences.Settings) {
		fyne.Do(func() {
			applySettings(updated)
			prefsWindow.UpdateSettings(updated)
		})
	}, logger); err != nil {
		logger.Warn("settings reload disabled", slog.String("error", err.Error()))
	} else {
		defer func() {
			_ = watcher.Close()
		}()
		go func() {
			if err := watcher.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
				logger.Warn("settings watcher stopped", slog.String("error", err.Error()))
			}
		}()
	}

	showMain()
	fyneApp.Run()
}

func listSounds(dir string, logger *slog.Logger) []string {
	if dir == "" {
		return nil
	}
	sounds, err := feedback.Sounds(dir)
	if err != nil {
		logger.Debug("list sounds", slog.String("dir", dir), slog.String("error", err.Error()))
		return nil
	}
	return sounds
}

func feedbackOptions(soundsDir string, settings preferences.Settings) feedback.Options {
	options := feedback.Options{
		PlaysSound: settings.PlaysSound,
		Notifies:   settings.Notifies,
	}
	if soundsDir != "" && settings.SoundName != "" {
		options.SoundPath = feedback.SoundPath(soundsDir, settings.SoundName)
	}
	return options
}
