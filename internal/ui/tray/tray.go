package tray

import (
	"fmt"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/driver/desktop"
)

// Callbacks defines tray action handlers.
type Callbacks struct {
	OnShow        func()
	OnToggleRun   func()
	OnReset       func()
	OnPreferences func()
	OnQuit        func()
}

// Manager handles system tray state.
type Manager struct {
	app         desktop.App
	callbacks   Callbacks
	statusItem  *fyne.MenuItem
	runItem     *fyne.MenuItem
	running     bool
	statusLabel string
}

// New creates a tray manager with the provided callbacks.
func New(app desktop.App, callbacks Callbacks) *Manager {
	manager := &Manager{
		app:         app,
		callbacks:   callbacks,
		statusLabel: "ready",
	}

	manager.statusItem = fyne.NewMenuItem("", nil)
	manager.statusItem.Disabled = true
	manager.runItem = fyne.NewMenuItem("Start", manager.call(func() func() { return manager.callbacks.OnToggleRun }))

	manager.refreshStatus()
	return manager
}

// SetStatus updates the status label.
func (manager *Manager) SetStatus(status string) {
	manager.statusLabel = status
	manager.refreshStatus()
}

// SetRunning updates the run item label.
func (manager *Manager) SetRunning(running bool) {
	if manager.running == running {
		return
	}
	manager.running = running
	if running {
		manager.runItem.Label = "Pause"
	} else {
		manager.runItem.Label = "Start"
	}
	manager.refreshMenu()
}

// Menu builds the current tray menu.
func (manager *Manager) Menu() *fyne.Menu {
	return fyne.NewMenu("rTimer",
		manager.statusItem,
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Show timer", manager.call(func() func() { return manager.callbacks.OnShow })),
		manager.runItem,
		fyne.NewMenuItem("Reset", manager.call(func() func() { return manager.callbacks.OnReset })),
		fyne.NewMenuItem("Preferences", manager.call(func() func() { return manager.callbacks.OnPreferences })),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Quit", manager.call(func() func() { return manager.callbacks.OnQuit })),
	)
}

// call resolves the callback at tap time so callbacks may be replaced later.
func (manager *Manager) call(resolve func() func()) func() {
	return func() {
		if callback := resolve(); callback != nil {
			callback()
		}
	}
}

func (manager *Manager) refreshStatus() {
	manager.statusItem.Label = fmt.Sprintf("Status: %s", manager.statusLabel)
	manager.refreshMenu()
}

func (manager *Manager) refreshMenu() {
	if manager.app != nil {
		manager.app.SetSystemTrayMenu(manager.Menu())
	}
}
