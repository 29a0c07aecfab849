package tray

import (
	"testing"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/driver/desktop"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeTray struct {
	desktop.App
	menus []*fyne.Menu
}

func (tray *fakeTray) SetSystemTrayMenu(menu *fyne.Menu) {
	tray.menus = append(tray.menus, menu)
}

func (tray *fakeTray) last() *fyne.Menu {
	return tray.menus[len(tray.menus)-1]
}

func itemLabels(menu *fyne.Menu) []string {
	labels := make([]string, 0, len(menu.Items))
	for _, item := range menu.Items {
		if item.IsSeparator {
			continue
		}
		labels = append(labels, item.Label)
	}
	return labels
}

func TestManager_InitialMenu(t *testing.T) {
	app := &fakeTray{}
	New(app, Callbacks{})

	require.Len(t, app.menus, 1)
	assert.Equal(t,
		[]string{"Status: ready", "Show timer", "Start", "Reset", "Preferences", "Quit"},
		itemLabels(app.last()))
}

func TestManager_StatusAndRunning(t *testing.T) {
	app := &fakeTray{}
	manager := New(app, Callbacks{})

	manager.SetStatus("00:42 · 1 / 3")
	manager.SetRunning(true)
	labels := itemLabels(app.last())
	assert.Equal(t, "Status: 00:42 · 1 / 3", labels[0])
	assert.Equal(t, "Pause", labels[2])

	published := len(app.menus)
	manager.SetRunning(true)
	assert.Len(t, app.menus, published)

	manager.SetRunning(false)
	assert.Equal(t, "Start", itemLabels(app.last())[2])
}

func TestManager_InvokesCallbacks(t *testing.T) {
	var calls []string
	app := &fakeTray{}
	manager := New(app, Callbacks{
		OnShow:        func() { calls = append(calls, "show") },
		OnToggleRun:   func() { calls = append(calls, "toggle") },
		OnReset:       func() { calls = append(calls, "reset") },
		OnPreferences: func() { calls = append(calls, "prefs") },
		OnQuit:        func() { calls = append(calls, "quit") },
	})

	for _, item := range manager.Menu().Items {
		if item.Action != nil {
			item.Action()
		}
	}

	assert.Equal(t, []string{"show", "toggle", "reset", "prefs", "quit"}, calls)
}

func TestManager_NilApp(t *testing.T) {
	manager := New(nil, Callbacks{})
	assert.NotPanics(t, func() {
		manager.SetStatus("idle")
		manager.SetRunning(true)
	})
	assert.NotPanics(t, manager.runItem.Action)
}
