package timerview

import (
	"image/color"

	"rtimer/internal/core/countdown"
	"rtimer/internal/ui/display"
	"rtimer/internal/ui/preferences"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
)

const (
	labelReady   = "Ready"
	labelDelay   = "Get ready"
	labelWork    = "Work"
	labelPaused  = "Paused"
	labelDone    = "Done"
	buttonStart  = "Start"
	buttonPause  = "Pause"
	buttonResume = "Resume"
)

// View is the main timer panel. It drives the engine from its buttons and
// renders the engine notifications.
type View struct {
	engine   *countdown.Engine
	settings func() preferences.Settings
	onError  func(error)
	onStatus func(status string, active bool)

	count       *canvas.Text
	phase       *widget.Label
	repetitions *widget.Label
	runButton   *widget.Button
	resetButton *widget.Button
	content     fyne.CanvasObject
}

// New creates the view. settings is consulted on every fresh run.
func New(engine *countdown.Engine, settings func() preferences.Settings) *View {
	count := canvas.NewText("00:00", color.NRGBA{R: 232, G: 190, B: 66, A: 255})
	count.Alignment = fyne.TextAlignCenter
	count.TextStyle = fyne.TextStyle{Bold: true, Monospace: true}
	count.TextSize = 64

	phase := widget.NewLabelWithStyle(labelReady, fyne.TextAlignCenter, fyne.TextStyle{Bold: true})
	repetitions := widget.NewLabelWithStyle("0 / 0", fyne.TextAlignCenter, fyne.TextStyle{})

	view := &View{
		engine:      engine,
		settings:    settings,
		count:       count,
		phase:       phase,
		repetitions: repetitions,
	}

	view.runButton = widget.NewButtonWithIcon(buttonStart, theme.MediaPlayIcon(), view.ToggleRun)
	view.runButton.Importance = widget.HighImportance
	view.resetButton = widget.NewButtonWithIcon("Reset", theme.MediaReplayIcon(), view.Reset)

	view.content = container.NewBorder(
		phase,
		container.NewGridWithColumns(2, view.runButton, view.resetButton),
		nil, nil,
		container.NewVBox(container.NewCenter(count), repetitions),
	)

	view.ApplySettings(settings())
	return view
}

// Content returns the canvas object to place in a window.
func (view *View) Content() fyne.CanvasObject {
	return view.content
}

// SetOnError sets the handler for validation failures.
func (view *View) SetOnError(handler func(error)) {
	view.onError = handler
}

// SetOnStatus sets the handler notified whenever the displayed state changes.
func (view *View) SetOnStatus(handler func(status string, active bool)) {
	view.onStatus = handler
}

// ToggleRun starts, pauses or resumes the countdown. Settings are validated
// only when a fresh run begins.
func (view *View) ToggleRun() {
	if view.engine.IsActive() {
		view.engine.Pause()
		view.phase.SetText(labelPaused)
		view.refresh()
		return
	}

	if view.isFreshRun() {
		settings := view.settings()
		if err := settings.Validate(); err != nil {
			if view.onError != nil {
				view.onError(err)
			}
			return
		}
		view.engine.Configure(settings.CountdownConfig())
		view.showInitial()
	}

	if err := view.engine.Start(); err != nil {
		if view.onError != nil {
			view.onError(err)
		}
		return
	}
	view.phase.SetText(phaseLabel(view.engine.Phase()))
	view.refresh()
}

// Reset stops the countdown and reloads the current settings.
func (view *View) Reset() {
	view.engine.Reset()
	view.engine.Configure(view.settings().CountdownConfig())
	view.showInitial()
	view.refresh()
}

// ApplySettings reconfigures the engine unless a run is in progress.
func (view *View) ApplySettings(settings preferences.Settings) {
	if !view.isFreshRun() || view.engine.IsActive() {
		return
	}
	view.engine.Configure(settings.CountdownConfig())
	view.showInitial()
	view.refresh()
}

func (view *View) CountUpdated(remaining int) {
	view.count.Text = display.FormatCount(remaining)
	view.count.Refresh()
	view.phase.SetText(phaseLabel(view.engine.Phase()))
	view.notifyStatus()
}

func (view *View) RepetitionsUpdated(completed, total int) {
	view.repetitions.SetText(display.FormatRepetitions(completed, total))
	view.notifyStatus()
}

func (view *View) CountingEnded() {
	snapshot := view.engine.Snapshot()
	view.repetitions.SetText(display.FormatRepetitions(snapshot.CompletedRepetitions, snapshot.TotalRepetitions))
	view.phase.SetText(labelDone)
	view.refresh()
}

func (view *View) isFreshRun() bool {
	phase := view.engine.Phase()
	if phase == countdown.PhaseIdle || phase == countdown.PhaseEnded {
		return true
	}
	return !view.engine.WasEverPaused()
}

func (view *View) showInitial() {
	snapshot := view.engine.Snapshot()
	view.count.Text = display.FormatCount(snapshot.RemainingSeconds)
	view.count.Refresh()
	view.repetitions.SetText(display.FormatRepetitions(0, snapshot.TotalRepetitions))
	view.phase.SetText(labelReady)
}

func (view *View) refresh() {
	switch {
	case view.engine.IsActive():
		view.runButton.SetText(buttonPause)
		view.runButton.SetIcon(theme.MediaPauseIcon())
	case view.engine.WasEverPaused() && view.engine.Phase() != countdown.PhaseEnded:
		view.runButton.SetText(buttonResume)
		view.runButton.SetIcon(theme.MediaPlayIcon())
	default:
		view.runButton.SetText(buttonStart)
		view.runButton.SetIcon(theme.MediaPlayIcon())
	}
	view.notifyStatus()
}

func (view *View) notifyStatus() {
	if view.onStatus == nil {
		return
	}
	snapshot := view.engine.Snapshot()
	status := display.Status(snapshot.RemainingSeconds, snapshot.CompletedRepetitions, snapshot.TotalRepetitions)
	if snapshot.Phase == countdown.PhaseEnded {
		status = labelDone
	}
	view.onStatus(status, snapshot.Active)
}

func phaseLabel(phase countdown.Phase) string {
	switch phase {
	case countdown.PhaseDelay:
		return labelDelay
	case countdown.PhaseMain:
		return labelWork
	case countdown.PhaseEnded:
		return labelDone
	default:
		return labelReady
	}
}
