package preferences

import (
	"strconv"
	"strings"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/widget"
)

const noSound = "(none)"

// Window handles the preferences UI.
type Window struct {
	window      fyne.Window
	settings    Settings
	onSave      func(Settings)
	interval    *widget.Entry
	repetitions *widget.Entry
	delay       *widget.Entry
	sound       *widget.Select
	playsSound  *widget.Check
	notifies    *widget.Check
}

// New creates a preferences window. sounds lists the selectable sound names.
func New(app fyne.App, settings Settings, sounds []string, onSave func(Settings)) *Window {
	window := app.NewWindow("rTimer Settings")

	interval := widget.NewEntry()
	repetitions := widget.NewEntry()
	delay := widget.NewEntry()

	sound := widget.NewSelect(append([]string{noSound}, sounds...), nil)
	playsSound := widget.NewCheck("Play sound", nil)
	notifies := widget.NewCheck("Show notification", nil)

	form := container.NewVBox(
		widget.NewLabelWithStyle("Countdown", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		container.NewHBox(widget.NewLabel("Interval"), interval, widget.NewLabel("min")),
		container.NewHBox(widget.NewLabel("Repetitions"), repetitions),
		container.NewHBox(widget.NewLabel("Delay"), delay, widget.NewLabel("sec")),
		widget.NewLabelWithStyle("Feedback", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		container.NewHBox(widget.NewLabel("Sound"), sound),
		playsSound,
		notifies,
	)

	saveButton := widget.NewButton("Save", nil)
	cancelButton := widget.NewButton("Cancel", nil)
	buttons := container.NewHBox(saveButton, layout.NewSpacer(), cancelButton)

	window.SetContent(container.NewBorder(nil, buttons, nil, nil, form))
	window.Resize(fyne.NewSize(360, 380))
	window.SetCloseIntercept(window.Hide)

	prefs := &Window{
		window:      window,
		onSave:      onSave,
		interval:    interval,
		repetitions: repetitions,
		delay:       delay,
		sound:       sound,
		playsSound:  playsSound,
		notifies:    notifies,
	}
	prefs.UpdateSettings(settings)

	saveButton.OnTapped = prefs.handleSave
	cancelButton.OnTapped = func() {
		prefs.UpdateSettings(prefs.settings)
		window.Hide()
	}

	return prefs
}

// Show displays the preferences window.
func (prefs *Window) Show() {
	prefs.window.Show()
	prefs.window.RequestFocus()
}

// UpdateSettings replaces window values.
func (prefs *Window) UpdateSettings(settings Settings) {
	prefs.settings = settings
	prefs.interval.SetText(strconv.Itoa(int(settings.Interval / time.Minute)))
	prefs.repetitions.SetText(strconv.Itoa(settings.Repetitions))
	prefs.delay.SetText(strconv.Itoa(int(settings.Delay / time.Second)))
	if settings.SoundName == "" {
		prefs.sound.SetSelected(noSound)
	} else {
		prefs.sound.SetSelected(settings.SoundName)
	}
	prefs.playsSound.SetChecked(settings.PlaysSound)
	prefs.notifies.SetChecked(settings.Notifies)
}

// SetSounds replaces the selectable sound names.
func (prefs *Window) SetSounds(sounds []string) {
	prefs.sound.Options = append([]string{noSound}, sounds...)
	prefs.sound.Refresh()
}

// Settings returns the last saved settings.
func (prefs *Window) Settings() Settings {
	return prefs.settings
}

func (prefs *Window) handleSave() {
	settings, err := prefs.collect()
	if err == nil {
		err = settings.Validate()
	}
	if err != nil {
		dialog.ShowError(err, prefs.window)
		return
	}

	prefs.settings = settings
	if prefs.onSave != nil {
		prefs.onSave(settings)
	}
	prefs.window.Hide()
}

func (prefs *Window) collect() (Settings, error) {
	settings := prefs.settings

	minutes, err := parseCount(prefs.interval.Text, 1)
	if err != nil {
		return settings, ErrIntervalInput
	}
	repetitions, err := parseCount(prefs.repetitions.Text, 1)
	if err != nil {
		return settings, ErrRepetitionsInput
	}
	seconds, err := parseCount(prefs.delay.Text, 0)
	if err != nil {
		return settings, ErrDelayInput
	}

	settings.Interval = time.Duration(minutes) * time.Minute
	settings.Repetitions = repetitions
	settings.Delay = time.Duration(seconds) * time.Second
	settings.SoundName = prefs.sound.Selected
	if settings.SoundName == noSound {
		settings.SoundName = ""
	}
	settings.PlaysSound = prefs.playsSound.Checked
	settings.Notifies = prefs.notifies.Checked
	return settings, nil
}

func parseCount(value string, minimum int) (int, error) {
	parsed, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil {
		return 0, err
	}
	if parsed < minimum {
		return 0, strconv.ErrRange
	}
	return parsed, nil
}
