package model

import "errors"

var (
	// ErrNegativeDelay indicates a delay below zero.
	ErrNegativeDelay = errors.New("delay must not be negative")
	// ErrIntervalRequired indicates a missing or non-positive interval.
	ErrIntervalRequired = errors.New("interval must be positive")
	// ErrRepetitionsRequired indicates a missing or non-positive repetition count.
	ErrRepetitionsRequired = errors.New("repetitions must be positive")
)

// CountdownConfig contains the values for a single countdown run.
// All durations are whole seconds.
type CountdownConfig struct {
	DelaySeconds     int
	IntervalSeconds  int
	TotalRepetitions int
}

// Validate reports the first value a caller must not pass to the engine.
func (config CountdownConfig) Validate() error {
	if config.DelaySeconds < 0 {
		return ErrNegativeDelay
	}
	if config.IntervalSeconds <= 0 {
		return ErrIntervalRequired
	}
	if config.TotalRepetitions <= 0 {
		return ErrRepetitionsRequired
	}
	return nil
}

// TotalSeconds returns how long a full run lasts in ticks.
func (config CountdownConfig) TotalSeconds() int {
	if config.IntervalSeconds <= 0 || config.TotalRepetitions <= 0 {
		return max(config.DelaySeconds, 0)
	}
	return max(config.DelaySeconds, 0) + config.IntervalSeconds*config.TotalRepetitions
}
