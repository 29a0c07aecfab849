// Package feedback turns countdown milestones into sound cues and desktop
// notifications.
package feedback

import (
	"fmt"
	"log/slog"
)

// Player plays a sound file to completion.
type Player interface {
	Play(path string) error
}

// Notifier posts a desktop notification.
type Notifier interface {
	Notify(title, body string)
}

// NotifierFunc adapts a function to a Notifier.
type NotifierFunc func(title, body string)

func (fn NotifierFunc) Notify(title, body string) {
	fn(title, body)
}

// Options selects which cues fire.
type Options struct {
	SoundPath  string
	PlaysSound bool
	Notifies   bool
}

// Feedback is a countdown listener reacting to repetition and end events.
type Feedback struct {
	player   Player
	notifier Notifier
	options  Options
	logger   *slog.Logger
	run      func(func())
}

// New creates Feedback. Either dependency may be nil to disable that channel.
func New(player Player, notifier Notifier, options Options) *Feedback {
	return &Feedback{
		player:   player,
		notifier: notifier,
		options:  options,
		run:      func(fn func()) { go fn() },
	}
}

// SetOptions replaces the cue options.
func (feedback *Feedback) SetOptions(options Options) {
	feedback.options = options
}

// SetLogger injects a logger for playback failures.
func (feedback *Feedback) SetLogger(logger *slog.Logger) {
	feedback.logger = logger
}

// CountUpdated is a no-op; feedback only reacts to milestones.
func (feedback *Feedback) CountUpdated(int) {}

// RepetitionsUpdated plays the cue once.
func (feedback *Feedback) RepetitionsUpdated(completed, total int) {
	feedback.notify("Repetition done", fmt.Sprintf("%d of %d repetitions completed", completed, total))
	feedback.play(1)
}

// CountingEnded plays the cue twice.
func (feedback *Feedback) CountingEnded() {
	feedback.notify("Workout finished", "All repetitions completed")
	feedback.play(2)
}

func (feedback *Feedback) notify(title, body string) {
	if !feedback.options.Notifies || feedback.notifier == nil {
		return
	}
	feedback.notifier.Notify(title, body)
}

func (feedback *Feedback) play(times int) {
	options := feedback.options
	if !options.PlaysSound || options.SoundPath == "" || feedback.player == nil {
		return
	}
	player := feedback.player
	logger := feedback.log()

	feedback.run(func() {
		for i := 0; i < times; i++ {
			if err := player.Play(options.SoundPath); err != nil {
				logger.Warn("play sound failed",
					slog.String("path", options.SoundPath),
					slog.String("error", err.Error()))
				return
			}
		}
	})
}

func (feedback *Feedback) log() *slog.Logger {
	if feedback.logger != nil {
		return feedback.logger
	}
	return slog.Default()
}
