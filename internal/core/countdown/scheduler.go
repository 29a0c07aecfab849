package countdown

import (
	"context"
	"sync"
	"sync/atomic"
	"time"
)

// Scheduler arms a repeating callback.
type Scheduler interface {
	Schedule(period time.Duration, tick func()) Handle
}

// Handle cancels a schedule. Cancel is idempotent.
type Handle interface {
	Cancel()
}

// TickerScheduler runs schedules on time.Ticker goroutines and hands each tick
// to Dispatch, which must run it on the thread that owns the Engine.
type TickerScheduler struct {
	Dispatch func(func())
}

// NewTickerScheduler creates a scheduler delivering ticks through dispatch.
func NewTickerScheduler(dispatch func(func())) *TickerScheduler {
	return &TickerScheduler{Dispatch: dispatch}
}

// Schedule starts a ticker calling tick every period until the handle is cancelled.
func (scheduler *TickerScheduler) Schedule(period time.Duration, tick func()) Handle {
	if period <= 0 {
		period = TickPeriod
	}
	handle := &tickerHandle{stopCh: make(chan struct{})}
	dispatch := scheduler.Dispatch
	if dispatch == nil {
		dispatch = func(fn func()) { fn() }
	}

	go handle.run(period, func() {
		dispatch(func() {
			// Cancel runs on the dispatch thread too, so this check cannot race
			// with a Pause issued between the ticker firing and delivery.
			if handle.cancelled.Load() {
				return
			}
			tick()
		})
	})
	return handle
}

type tickerHandle struct {
	stopCh    chan struct{}
	stopOnce  sync.Once
	cancelled atomic.Bool
}

func (handle *tickerHandle) run(period time.Duration, fire func()) {
	ticker := time.NewTicker(period)
	defer ticker.Stop()

	for {
		select {
		case <-handle.stopCh:
			return
		case <-ticker.C:
			fire()
		}
	}
}

func (handle *tickerHandle) Cancel() {
	handle.cancelled.Store(true)
	handle.stopOnce.Do(func() {
		close(handle.stopCh)
	})
}

// Loop serializes functions onto the goroutine calling Run.
type Loop struct {
	queue  chan func()
	stopCh chan struct{}
	once   sync.Once
}

// NewLoop creates a loop with the given queue capacity.
func NewLoop(buffer int) *Loop {
	if buffer <= 0 {
		buffer = 1
	}
	return &Loop{
		queue:  make(chan func(), buffer),
		stopCh: make(chan struct{}),
	}
}

// Dispatch queues fn. It blocks while the queue is full and drops fn once the
// loop is stopped.
func (loop *Loop) Dispatch(fn func()) {
	select {
	case loop.queue <- fn:
	case <-loop.stopCh:
	}
}

// Run executes queued functions until ctx is done or Stop is called.
func (loop *Loop) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-loop.stopCh:
			return nil
		case fn := <-loop.queue:
			fn()
		}
	}
}

// Stop ends Run. It is safe to call from a queued function.
func (loop *Loop) Stop() {
	loop.once.Do(func() {
		close(loop.stopCh)
	})
}
