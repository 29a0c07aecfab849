package storage

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"rtimer/internal/ui/preferences"

	"github.com/fsnotify/fsnotify"
)

// SettingsWatcher reloads the settings file whenever it changes on disk.
type SettingsWatcher struct {
	path     string
	onChange func(preferences.Settings)
	logger   *slog.Logger
	watcher  *fsnotify.Watcher
}

// WatchSettings starts watching configPath. onChange is called from the
// watcher goroutine with freshly loaded settings; hosts marshal it onto their
// UI thread themselves.
func WatchSettings(configPath string, onChange func(preferences.Settings), logger *slog.Logger) (*SettingsWatcher, error) {
	if logger == nil {
		logger = slog.Default()
	}

	dir := filepath.Dir(configPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("ensure dir %s: %w", dir, err)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create fsnotify watcher: %w", err)
	}
	// The directory is watched because atomic saves replace the file inode.
	if err := watcher.Add(dir); err != nil {
		_ = watcher.Close()
		return nil, fmt.Errorf("watch %s: %w", dir, err)
	}

	return &SettingsWatcher{
		path:     filepath.Clean(configPath),
		onChange: onChange,
		logger:   logger,
		watcher:  watcher,
	}, nil
}

// Run delivers reloads until ctx is done or Close is called.
func (settingsWatcher *SettingsWatcher) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case event, ok := <-settingsWatcher.watcher.Events:
			if !ok {
				return nil
			}
			settingsWatcher.handle(event)
		case err, ok := <-settingsWatcher.watcher.Errors:
			if !ok {
				return nil
			}
			settingsWatcher.logger.Warn("settings watcher error", slog.String("error", err.Error()))
		}
	}
}

// Close stops the watcher.
func (settingsWatcher *SettingsWatcher) Close() error {
	return settingsWatcher.watcher.Close()
}

func (settingsWatcher *SettingsWatcher) handle(event fsnotify.Event) {
	if filepath.Clean(event.Name) != settingsWatcher.path {
		return
	}
	if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
		return
	}

	settings, err := LoadSettingsFile(settingsWatcher.path)
	if err != nil {
		settingsWatcher.logger.Warn("settings reload failed",
			slog.String("path", settingsWatcher.path),
			slog.String("error", err.Error()))
		return
	}
	settingsWatcher.logger.Debug("settings reloaded", slog.String("path", settingsWatcher.path))
	if settingsWatcher.onChange != nil {
		settingsWatcher.onChange(settings)
	}
}
