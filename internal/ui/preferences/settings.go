package preferences

import (
	"errors"
	"fmt"
	"time"

	"rtimer/internal/core/model"
)

var (
	// ErrSoundRequired indicates sound playback is enabled without a sound.
	ErrSoundRequired = errors.New("choose a sound")
	// ErrNoFeedback indicates both sound and notifications are disabled.
	ErrNoFeedback = errors.New("enable sound or notifications")

	ErrIntervalInput    = errors.New("specify the interval in whole minutes")
	ErrRepetitionsInput = errors.New("specify the number of repetitions")
	ErrDelayInput       = errors.New("specify the delay in seconds")
)

// Settings defines editable user preferences.
type Settings struct {
	Interval    time.Duration
	Repetitions int
	Delay       time.Duration

	SoundName  string
	PlaysSound bool
	Notifies   bool
}

// DefaultSettings returns default settings for rTimer.
func DefaultSettings() Settings {
	return Settings{
		Interval:    time.Minute,
		Repetitions: 5,
		Delay:       10 * time.Second,
		PlaysSound:  false,
		Notifies:    true,
	}
}

// CountdownConfig converts settings to a CountdownConfig.
func (settings Settings) CountdownConfig() model.CountdownConfig {
	return model.CountdownConfig{
		DelaySeconds:     int(settings.Delay / time.Second),
		IntervalSeconds:  int(settings.Interval / time.Second),
		TotalRepetitions: settings.Repetitions,
	}
}

// Validate checks the settings before a fresh run is started.
func (settings Settings) Validate() error {
	if err := settings.CountdownConfig().Validate(); err != nil {
		return fmt.Errorf("invalid countdown: %w", err)
	}
	if settings.PlaysSound && settings.SoundName == "" {
		return ErrSoundRequired
	}
	if !settings.PlaysSound && !settings.Notifies {
		return ErrNoFeedback
	}
	return nil
}
