// Package countdowntest provides a deterministic Scheduler for tests.
package countdowntest

import (
	"time"

	"rtimer/internal/core/countdown"
)

// ManualScheduler records schedules and fires them only when asked.
type ManualScheduler struct {
	handles   []*ManualHandle
	scheduled int
}

// ManualHandle is a schedule created by ManualScheduler.
type ManualHandle struct {
	Period    time.Duration
	tick      func()
	cancelled bool
}

// NewManualScheduler creates an empty scheduler.
func NewManualScheduler() *ManualScheduler {
	return &ManualScheduler{}
}

// Schedule implements countdown.Scheduler.
func (scheduler *ManualScheduler) Schedule(period time.Duration, tick func()) countdown.Handle {
	handle := &ManualHandle{Period: period, tick: tick}
	scheduler.handles = append(scheduler.handles, handle)
	scheduler.scheduled++
	return handle
}

// Cancel implements countdown.Handle.
func (handle *ManualHandle) Cancel() {
	handle.cancelled = true
}

// Fire delivers one tick to every live schedule and returns how many ran.
func (scheduler *ManualScheduler) Fire() int {
	live := scheduler.live()
	for _, handle := range live {
		if !handle.cancelled {
			handle.tick()
		}
	}
	return len(live)
}

// FireN calls Fire n times.
func (scheduler *ManualScheduler) FireN(n int) {
	for i := 0; i < n; i++ {
		scheduler.Fire()
	}
}

// Live returns the number of schedules that have not been cancelled.
func (scheduler *ManualScheduler) Live() int {
	return len(scheduler.live())
}

// Scheduled returns how many times Schedule was called.
func (scheduler *ManualScheduler) Scheduled() int {
	return scheduler.scheduled
}

func (scheduler *ManualScheduler) live() []*ManualHandle {
	var live []*ManualHandle
	for _, handle := range scheduler.handles {
		if !handle.cancelled {
			live = append(live, handle)
		}
	}
	return live
}
