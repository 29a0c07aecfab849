package countdown_test

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rtimer/internal/core/countdown"
	"rtimer/internal/core/model"
)

func TestTickerScheduler_DeliversThroughDispatch(t *testing.T) {
	var dispatched, ticks atomic.Int32
	scheduler := countdown.NewTickerScheduler(func(fn func()) {
		dispatched.Add(1)
		fn()
	})

	handle := scheduler.Schedule(5*time.Millisecond, func() { ticks.Add(1) })
	require.Eventually(t, func() bool { return ticks.Load() >= 3 }, time.Second, time.Millisecond)
	handle.Cancel()

	assert.GreaterOrEqual(t, dispatched.Load(), ticks.Load())
}

func TestTickerScheduler_CancelStopsTicks(t *testing.T) {
	var ticks atomic.Int32
	scheduler := countdown.NewTickerScheduler(nil)

	handle := scheduler.Schedule(2*time.Millisecond, func() { ticks.Add(1) })
	require.Eventually(t, func() bool { return ticks.Load() >= 1 }, time.Second, time.Millisecond)
	handle.Cancel()
	handle.Cancel()

	settled := ticks.Load()
	time.Sleep(20 * time.Millisecond)
	assert.Equal(t, settled, ticks.Load())
}

func TestTickerScheduler_DropsTickCancelledBeforeDelivery(t *testing.T) {
	pending := make(chan func(), 8)
	scheduler := countdown.NewTickerScheduler(func(fn func()) { pending <- fn })

	var ticks atomic.Int32
	handle := scheduler.Schedule(2*time.Millisecond, func() { ticks.Add(1) })

	var queued func()
	select {
	case queued = <-pending:
	case <-time.After(time.Second):
		t.Fatal("no tick dispatched")
	}
	handle.Cancel()
	queued()

	assert.Zero(t, ticks.Load())
}

func TestLoop_RunsQueuedFunctionsInOrder(t *testing.T) {
	loop := countdown.NewLoop(4)
	var order []int

	loop.Dispatch(func() { order = append(order, 1) })
	loop.Dispatch(func() { order = append(order, 2) })
	loop.Dispatch(func() {
		order = append(order, 3)
		loop.Stop()
	})

	require.NoError(t, loop.Run(context.Background()))
	assert.Equal(t, []int{1, 2, 3}, order)

	// Dispatch after Stop must not block.
	loop.Dispatch(func() {})
}

func TestLoop_ReturnsContextError(t *testing.T) {
	loop := countdown.NewLoop(1)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := loop.Run(ctx)

	require.ErrorIs(t, err, context.Canceled)
}

func TestEngine_RealDriverOnLoop(t *testing.T) {
	loop := countdown.NewLoop(8)
	scheduler := countdown.NewTickerScheduler(loop.Dispatch)
	engine := countdown.New(scheduler)

	var counts []int
	engine.SetListener(countdown.ListenerFuncs{
		OnCount: func(remaining int) { counts = append(counts, remaining) },
		OnEnded: loop.Stop,
	})
	engine.Configure(model.CountdownConfig{DelaySeconds: 1, IntervalSeconds: 1, TotalRepetitions: 1})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	loop.Dispatch(func() { require.NoError(t, engine.Start()) })

	require.NoError(t, loop.Run(ctx))
	assert.Equal(t, []int{0, 0}, counts)
	assert.Equal(t, countdown.PhaseEnded, engine.Phase())
}
