package countdown

// Phase represents the current Engine mode.
type Phase string

const (
	PhaseIdle  Phase = "idle"
	PhaseDelay Phase = "delay"
	PhaseMain  Phase = "main"
	PhaseEnded Phase = "ended"
)

// Listener receives Engine notifications on the thread that delivers ticks.
type Listener interface {
	// CountUpdated reports the seconds left in the current phase or repetition.
	CountUpdated(remaining int)
	// RepetitionsUpdated reports a finished repetition other than the last one.
	RepetitionsUpdated(completed, total int)
	// CountingEnded reports that every repetition is done.
	CountingEnded()
}

// ListenerFuncs adapts optional functions to a Listener.
type ListenerFuncs struct {
	OnCount       func(remaining int)
	OnRepetitions func(completed, total int)
	OnEnded       func()
}

func (funcs ListenerFuncs) CountUpdated(remaining int) {
	if funcs.OnCount != nil {
		funcs.OnCount(remaining)
	}
}

func (funcs ListenerFuncs) RepetitionsUpdated(completed, total int) {
	if funcs.OnRepetitions != nil {
		funcs.OnRepetitions(completed, total)
	}
}

func (funcs ListenerFuncs) CountingEnded() {
	if funcs.OnEnded != nil {
		funcs.OnEnded()
	}
}

type multiListener []Listener

// Multi returns a Listener that forwards every notification to each non-nil
// listener in order.
func Multi(listeners ...Listener) Listener {
	filtered := make(multiListener, 0, len(listeners))
	for _, listener := range listeners {
		if listener != nil {
			filtered = append(filtered, listener)
		}
	}
	return filtered
}

func (listeners multiListener) CountUpdated(remaining int) {
	for _, listener := range listeners {
		listener.CountUpdated(remaining)
	}
}

func (listeners multiListener) RepetitionsUpdated(completed, total int) {
	for _, listener := range listeners {
		listener.RepetitionsUpdated(completed, total)
	}
}

func (listeners multiListener) CountingEnded() {
	for _, listener := range listeners {
		listener.CountingEnded()
	}
}

// Snapshot is a read-only copy of the Engine run state.
type Snapshot struct {
	Phase                Phase
	RemainingSeconds     int
	CompletedRepetitions int
	TotalRepetitions     int
	Active               bool
	WasEverPaused        bool
}
