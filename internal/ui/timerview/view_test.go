package timerview

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rtimer/internal/core/countdown"
	"rtimer/internal/core/countdown/countdowntest"
	"rtimer/internal/core/model"
	"rtimer/internal/ui/preferences"

	"fyne.io/fyne/v2/test"
)

type fixture struct {
	view      *View
	engine    *countdown.Engine
	scheduler *countdowntest.ManualScheduler
	settings  preferences.Settings
	errs      []error
	statuses  []string
}

func newFixture(t *testing.T, settings preferences.Settings) *fixture {
	t.Helper()
	test.NewTempApp(t)

	fx := &fixture{
		scheduler: countdowntest.NewManualScheduler(),
		settings:  settings,
	}
	fx.engine = countdown.New(fx.scheduler)
	fx.view = New(fx.engine, func() preferences.Settings { return fx.settings })
	fx.engine.SetListener(fx.view)
	fx.view.SetOnError(func(err error) { fx.errs = append(fx.errs, err) })
	fx.view.SetOnStatus(func(status string, _ bool) { fx.statuses = append(fx.statuses, status) })
	return fx
}

func shortSettings() preferences.Settings {
	settings := preferences.DefaultSettings()
	settings.Interval = 3 * time.Second
	settings.Repetitions = 2
	settings.Delay = 2 * time.Second
	return settings
}

func TestView_ShowsInitialState(t *testing.T) {
	fx := newFixture(t, shortSettings())

	assert.Equal(t, "00:02", fx.view.count.Text)
	assert.Equal(t, "0 / 2", fx.view.repetitions.Text)
	assert.Equal(t, labelReady, fx.view.phase.Text)
	assert.Equal(t, buttonStart, fx.view.runButton.Text)
}

func TestView_RunsToCompletion(t *testing.T) {
	fx := newFixture(t, shortSettings())

	test.Tap(fx.view.runButton)
	require.True(t, fx.engine.IsActive())
	assert.Equal(t, buttonPause, fx.view.runButton.Text)

	fx.scheduler.Fire()
	assert.Equal(t, "00:01", fx.view.count.Text)
	assert.Equal(t, labelDelay, fx.view.phase.Text)

	fx.scheduler.FireN(4)
	assert.Equal(t, "00:00", fx.view.count.Text)
	assert.Equal(t, "1 / 2", fx.view.repetitions.Text)
	assert.Equal(t, labelWork, fx.view.phase.Text)

	fx.scheduler.FireN(3)
	assert.Equal(t, "2 / 2", fx.view.repetitions.Text)
	assert.Equal(t, labelDone, fx.view.phase.Text)
	assert.Equal(t, buttonStart, fx.view.runButton.Text)
	assert.Equal(t, labelDone, fx.statuses[len(fx.statuses)-1])
}

func TestView_PauseAndResume(t *testing.T) {
	fx := newFixture(t, shortSettings())
	test.Tap(fx.view.runButton)
	fx.scheduler.FireN(3)

	test.Tap(fx.view.runButton)
	assert.False(t, fx.engine.IsActive())
	assert.Equal(t, buttonResume, fx.view.runButton.Text)
	assert.Equal(t, labelPaused, fx.view.phase.Text)
	remaining := fx.engine.RemainingSeconds()

	// Invalid settings must not block a resume.
	fx.settings.Repetitions = 0
	test.Tap(fx.view.runButton)

	assert.Empty(t, fx.errs)
	assert.True(t, fx.engine.IsActive())
	assert.Equal(t, remaining, fx.engine.RemainingSeconds())
	assert.Equal(t, model.CountdownConfig{DelaySeconds: 2, IntervalSeconds: 3, TotalRepetitions: 2}, fx.engine.Config())
}

func TestView_InvalidSettingsBlockFreshStart(t *testing.T) {
	settings := shortSettings()
	settings.Interval = 0
	fx := newFixture(t, settings)

	test.Tap(fx.view.runButton)

	require.Len(t, fx.errs, 1)
	assert.ErrorIs(t, fx.errs[0], model.ErrIntervalRequired)
	assert.False(t, fx.engine.IsActive())
	assert.Zero(t, fx.scheduler.Scheduled())
}

func TestView_ResetReloadsSettings(t *testing.T) {
	fx := newFixture(t, shortSettings())
	test.Tap(fx.view.runButton)
	fx.scheduler.FireN(4)
	test.Tap(fx.view.runButton)

	fx.settings.Delay = 0
	fx.settings.Interval = 90 * time.Second
	test.Tap(fx.view.resetButton)

	assert.False(t, fx.engine.IsActive())
	assert.False(t, fx.engine.WasEverPaused())
	assert.Equal(t, countdown.PhaseMain, fx.engine.Phase())
	assert.Equal(t, "01:30", fx.view.count.Text)
	assert.Equal(t, "0 / 2", fx.view.repetitions.Text)
	assert.Equal(t, buttonStart, fx.view.runButton.Text)
	assert.Zero(t, fx.scheduler.Live())
}

func TestView_ApplySettingsSkipsPausedRun(t *testing.T) {
	fx := newFixture(t, shortSettings())
	test.Tap(fx.view.runButton)
	fx.scheduler.Fire()
	test.Tap(fx.view.runButton)

	updated := shortSettings()
	updated.Repetitions = 9
	fx.view.ApplySettings(updated)
	assert.Equal(t, 2, fx.engine.Config().TotalRepetitions)

	test.Tap(fx.view.resetButton)
	fx.view.ApplySettings(updated)
	assert.Equal(t, 9, fx.engine.Config().TotalRepetitions)
	assert.Equal(t, "0 / 9", fx.view.repetitions.Text)
}
