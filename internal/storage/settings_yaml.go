package storage

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"rtimer/internal/ui/preferences"

	"gopkg.in/yaml.v3"
)

const (
	settingsFileName = "settings.yaml"
	soundsDirName    = "sounds"
)

type yamlSettings struct {
	IntervalMinutes int    `yaml:"interval_minutes"`
	Repetitions     int    `yaml:"repetitions"`
	DelaySeconds    *int   `yaml:"delay_seconds,omitempty"`
	SoundName       string `yaml:"sound_name"`
	PlaysSound      bool   `yaml:"plays_sound"`
	Notifies        bool   `yaml:"notifies"`
}

// SettingsPath returns the settings file location for appName.
func SettingsPath(appName string) (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("resolve user config dir: %w", err)
	}
	return filepath.Join(configDir, appName, settingsFileName), nil
}

// SoundsDir returns the directory scanned for cue sounds.
func SoundsDir(appName string) (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("resolve user config dir: %w", err)
	}
	return filepath.Join(configDir, appName, soundsDirName), nil
}

// LoadSettings reads user preferences for appName.
// If the config file does not exist, default settings are returned.
func LoadSettings(appName string) (preferences.Settings, error) {
	configPath, err := SettingsPath(appName)
	if err != nil {
		return preferences.DefaultSettings(), err
	}
	return LoadSettingsFile(configPath)
}

// SaveSettings writes user preferences for appName.
func SaveSettings(appName string, settings preferences.Settings) error {
	configPath, err := SettingsPath(appName)
	if err != nil {
		return err
	}
	return SaveSettingsFile(configPath, settings)
}

// LoadSettingsFile reads preferences from configPath.
func LoadSettingsFile(configPath string) (preferences.Settings, error) {
	settings := preferences.DefaultSettings()

	rawData, err := os.ReadFile(configPath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return settings, nil
		}
		return settings, fmt.Errorf("read settings file: %w", err)
	}

	var fileData yamlSettings
	if err := yaml.Unmarshal(rawData, &fileData); err != nil {
		return settings, fmt.Errorf("parse settings yaml: %w", err)
	}

	applyYamlSettings(&settings, fileData)
	return settings, nil
}

// SaveSettingsFile writes preferences to configPath, replacing it atomically.
func SaveSettingsFile(configPath string, settings preferences.Settings) error {
	if err := os.MkdirAll(filepath.Dir(configPath), 0o755); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}

	delaySeconds := int(settings.Delay / time.Second)
	fileData := yamlSettings{
		IntervalMinutes: int(settings.Interval / time.Minute),
		Repetitions:     settings.Repetitions,
		DelaySeconds:    &delaySeconds,
		SoundName:       settings.SoundName,
		PlaysSound:      settings.PlaysSound,
		Notifies:        settings.Notifies,
	}

	serialized, err := yaml.Marshal(fileData)
	if err != nil {
		return fmt.Errorf("marshal settings yaml: %w", err)
	}

	if err := writeFileAtomic(configPath, serialized); err != nil {
		return fmt.Errorf("write settings file: %w", err)
	}
	return nil
}

func writeFileAtomic(path string, content []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), ".settings-*.yaml")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	defer func() {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
	}()

	if _, err := tmp.Write(content); err != nil {
		return err
	}
	if err := tmp.Sync(); err != nil {
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmpName, path)
}

func applyYamlSettings(settings *preferences.Settings, fileData yamlSettings) {
	if fileData.IntervalMinutes > 0 {
		settings.Interval = time.Duration(fileData.IntervalMinutes) * time.Minute
	}
	if fileData.Repetitions > 0 {
		settings.Repetitions = fileData.Repetitions
	}
	// Zero is a valid delay, so only an absent key keeps the default.
	if fileData.DelaySeconds != nil && *fileData.DelaySeconds >= 0 {
		settings.Delay = time.Duration(*fileData.DelaySeconds) * time.Second
	}

	settings.SoundName = fileData.SoundName
	settings.PlaysSound = fileData.PlaysSound
	settings.Notifies = fileData.Notifies
}
