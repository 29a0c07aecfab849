// Package term renders countdown progress on a terminal.
package term

import (
	"fmt"
	"io"

	"rtimer/internal/core/countdown"
	"rtimer/internal/core/model"
	"rtimer/internal/ui/display"

	"github.com/fatih/color"
)

// Runner prints engine notifications as terminal lines.
type Runner struct {
	engine *countdown.Engine
	out    io.Writer
	done   chan struct{}

	delay  *color.Color
	work   *color.Color
	reps   *color.Color
	finish *color.Color
}

// NewRunner creates a Runner driving its own engine on scheduler.
func NewRunner(out io.Writer, scheduler countdown.Scheduler) *Runner {
	runner := &Runner{
		engine: countdown.New(scheduler),
		out:    out,
		done:   make(chan struct{}),
		delay:  color.New(color.FgYellow),
		work:   color.New(color.FgCyan, color.Bold),
		reps:   color.New(color.FgMagenta),
		finish: color.New(color.FgGreen, color.Bold),
	}
	runner.engine.SetListener(runner)
	return runner
}

// Engine exposes the underlying engine for logger injection and control.
func (runner *Runner) Engine() *countdown.Engine {
	return runner.engine
}

// Start configures and starts a run. It must be called on the tick thread.
func (runner *Runner) Start(config model.CountdownConfig) error {
	if err := config.Validate(); err != nil {
		return err
	}
	runner.engine.Configure(config)
	if err := runner.engine.Start(); err != nil {
		return err
	}

	fmt.Fprintf(runner.out, "%d x %s", config.TotalRepetitions, display.FormatCount(config.IntervalSeconds))
	if config.DelaySeconds > 0 {
		fmt.Fprintf(runner.out, " after %s", display.FormatCount(config.DelaySeconds))
	}
	fmt.Fprintln(runner.out)
	return nil
}

// Done is closed once the run ends.
func (runner *Runner) Done() <-chan struct{} {
	return runner.done
}

func (runner *Runner) CountUpdated(remaining int) {
	if runner.engine.Phase() == countdown.PhaseDelay {
		runner.delay.Fprintf(runner.out, "get ready  %s\n", display.FormatCount(remaining))
		return
	}
	snapshot := runner.engine.Snapshot()
	label := fmt.Sprintf("rep %d/%d", snapshot.CompletedRepetitions+1, snapshot.TotalRepetitions)
	runner.work.Fprintf(runner.out, "%-10s %s\n", label, display.FormatCount(remaining))
}

func (runner *Runner) RepetitionsUpdated(completed, total int) {
	runner.reps.Fprintf(runner.out, "repetition %s done\n", display.FormatRepetitions(completed, total))
}

func (runner *Runner) CountingEnded() {
	runner.finish.Fprintln(runner.out, "finished")
	select {
	case <-runner.done:
	default:
		close(runner.done)
	}
}
