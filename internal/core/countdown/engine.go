package countdown

import (
	"errors"
	"log/slog"
	"time"

	"rtimer/internal/core/model"
)

// TickPeriod is the interval between two engine ticks.
const TickPeriod = time.Second

// ErrNotConfigured indicates Start was called before Configure.
var ErrNotConfigured = errors.New("countdown not configured")

// Engine is the interval countdown state machine.
//
// Engine is not safe for concurrent use. Every method, including the tick
// callback handed to the Scheduler, must run on the same thread.
type Engine struct {
	scheduler Scheduler
	listener  Listener
	logger    *slog.Logger

	config     model.CountdownConfig
	configured bool

	phase         Phase
	remaining     int
	completed     int
	handle        Handle
	active        bool
	wasEverPaused bool
}

// New creates an idle Engine driven by scheduler.
func New(scheduler Scheduler) *Engine {
	return &Engine{
		scheduler: scheduler,
		phase:     PhaseIdle,
	}
}

// SetListener replaces the listener. A nil listener silences notifications.
func (engine *Engine) SetListener(listener Listener) {
	engine.listener = listener
}

// SetLogger injects a logger for transition tracing.
func (engine *Engine) SetLogger(logger *slog.Logger) {
	engine.logger = logger
}

// Configure stores config and prepares a fresh run without starting it.
func (engine *Engine) Configure(config model.CountdownConfig) {
	engine.config = config
	engine.configured = true
	engine.prime()
	engine.log().Debug("countdown configured",
		slog.Int("delay", config.DelaySeconds),
		slog.Int("interval", config.IntervalSeconds),
		slog.Int("repetitions", config.TotalRepetitions),
		slog.String("phase", string(engine.phase)))
}

// Start schedules ticking. From Idle or Ended it begins a fresh run; otherwise
// it continues from the current counters.
func (engine *Engine) Start() error {
	if !engine.configured {
		return ErrNotConfigured
	}
	if engine.phase == PhaseIdle || engine.phase == PhaseEnded {
		engine.prime()
	}
	engine.cancel()
	engine.handle = engine.scheduler.Schedule(TickPeriod, engine.Tick)
	engine.active = true
	engine.log().Debug("countdown started",
		slog.String("phase", string(engine.phase)),
		slog.Int("remaining", engine.remaining),
		slog.Int("completed", engine.completed))
	return nil
}

// Resume is Start; it exists for callers toggling a paused run.
func (engine *Engine) Resume() error {
	return engine.Start()
}

// Pause stops ticking and keeps the run position.
func (engine *Engine) Pause() {
	engine.cancel()
	engine.active = false
	engine.wasEverPaused = true
}

// Reset stops ticking and returns to Idle with zeroed counters. The stored
// configuration is kept, so a following Start begins a new run.
func (engine *Engine) Reset() {
	engine.cancel()
	engine.active = false
	engine.wasEverPaused = false
	engine.phase = PhaseIdle
	engine.remaining = 0
	engine.completed = 0
}

// Tick advances the state machine by one second. Ticks arriving while the
// engine is inactive are dropped.
func (engine *Engine) Tick() {
	if !engine.active {
		return
	}

	switch engine.phase {
	case PhaseDelay:
		engine.advanceDelay()
	case PhaseMain:
		engine.advanceMain()
	}
}

// Phase returns the current phase.
func (engine *Engine) Phase() Phase {
	return engine.phase
}

// RemainingSeconds returns the seconds left in the current phase or repetition.
func (engine *Engine) RemainingSeconds() int {
	return engine.remaining
}

// CompletedRepetitions returns the number of finished repetitions.
func (engine *Engine) CompletedRepetitions() int {
	return engine.completed
}

// IsActive reports whether ticks are scheduled.
func (engine *Engine) IsActive() bool {
	return engine.active
}

// WasEverPaused reports whether Pause was called since the last Reset.
func (engine *Engine) WasEverPaused() bool {
	return engine.wasEverPaused
}

// Config returns the stored configuration.
func (engine *Engine) Config() model.CountdownConfig {
	return engine.config
}

// Snapshot returns a copy of the run state.
func (engine *Engine) Snapshot() Snapshot {
	return Snapshot{
		Phase:                engine.phase,
		RemainingSeconds:     engine.remaining,
		CompletedRepetitions: engine.completed,
		TotalRepetitions:     engine.config.TotalRepetitions,
		Active:               engine.active,
		WasEverPaused:        engine.wasEverPaused,
	}
}

func (engine *Engine) advanceDelay() {
	if engine.remaining > 0 {
		engine.remaining--
	}
	engine.notifyCount()

	if engine.remaining == 0 {
		engine.enterMain()
	}
}

func (engine *Engine) advanceMain() {
	total := engine.config.TotalRepetitions
	if engine.completed >= total {
		engine.finish()
		return
	}

	if engine.remaining > 0 {
		engine.remaining--
	}
	engine.notifyCount()
	if engine.remaining > 0 {
		return
	}

	engine.completed++
	if engine.completed >= total {
		engine.finish()
		return
	}

	if engine.listener != nil {
		engine.listener.RepetitionsUpdated(engine.completed, total)
	}
	engine.remaining = max(engine.config.IntervalSeconds, 0)
}

func (engine *Engine) enterMain() {
	engine.phase = PhaseMain
	engine.remaining = max(engine.config.IntervalSeconds, 0)
	engine.log().Debug("countdown delay finished", slog.Int("interval", engine.remaining))
}

// finish stops the driver before notifying so a listener may start a new run
// from CountingEnded.
func (engine *Engine) finish() {
	engine.cancel()
	engine.active = false
	engine.phase = PhaseEnded
	engine.log().Debug("countdown ended", slog.Int("completed", engine.completed))

	if engine.listener != nil {
		engine.listener.CountingEnded()
	}
}

func (engine *Engine) prime() {
	engine.completed = 0
	if engine.config.DelaySeconds > 0 {
		engine.phase = PhaseDelay
		engine.remaining = engine.config.DelaySeconds
		return
	}
	engine.phase = PhaseMain
	engine.remaining = max(engine.config.IntervalSeconds, 0)
}

func (engine *Engine) notifyCount() {
	if engine.listener != nil {
		engine.listener.CountUpdated(engine.remaining)
	}
}

func (engine *Engine) cancel() {
	if engine.handle != nil {
		engine.handle.Cancel()
		engine.handle = nil
	}
}

func (engine *Engine) log() *slog.Logger {
	if engine.logger != nil {
		return engine.logger
	}
	return slog.Default()
}
