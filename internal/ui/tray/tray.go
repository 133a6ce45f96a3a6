package tray

import (
	"fmt"

	"countdown/internal/core/timekeeper"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/driver/desktop"
)

const menuTitle = "Countdown"

// Callbacks defines tray action handlers.
type Callbacks struct {
	OnShow        func()
	OnStop        func()
	OnPreferences func()
	OnQuit        func()
}

// Manager handles system tray state.
type Manager struct {
	app        desktop.App
	callbacks  Callbacks
	statusItem *fyne.MenuItem
	stopItem   *fyne.MenuItem
	showStatus bool
	status     string
}

// New creates a tray manager with the provided callbacks. app may be nil on
// platforms without a system tray; the manager then only tracks state.
func New(app desktop.App, callbacks Callbacks) *Manager {
	manager := &Manager{
		app:        app,
		callbacks:  callbacks,
		showStatus: true,
		status:     StatusText(timekeeper.Session{Phase: timekeeper.PhaseInactive}),
	}

	manager.statusItem = fyne.NewMenuItem("", nil)
	manager.statusItem.Disabled = true
	manager.stopItem = fyne.NewMenuItem("Stop countdown", func() {
		if manager.callbacks.OnStop != nil {
			manager.callbacks.OnStop()
		}
	})
	manager.stopItem.Disabled = true

	manager.refreshStatus()
	return manager
}

// SetShowStatus toggles the remaining-time line.
func (manager *Manager) SetShowStatus(show bool) {
	manager.showStatus = show
	manager.refreshStatus()
}

// SetSession updates the tray from a session snapshot.
func (manager *Manager) SetSession(session timekeeper.Session) {
	status := StatusText(session)
	stopDisabled := !session.Exists() || session.Loading()
	if status == manager.status && stopDisabled == manager.stopItem.Disabled {
		return
	}
	manager.status = status
	manager.stopItem.Disabled = stopDisabled
	manager.refreshStatus()
}

// Status returns the current status line.
func (manager *Manager) Status() string {
	return manager.statusItem.Label
}

// StatusText renders a one-line description of the session.
func StatusText(session timekeeper.Session) string {
	switch {
	case session.Loading():
		return "starting..."
	case session.Phase == timekeeper.PhaseExpired:
		return "time's up!"
	case session.Phase == timekeeper.PhaseActive:
		return fmt.Sprintf("%s left", session.Breakdown)
	case session.Err != nil:
		return "invalid date"
	default:
		return "idle"
	}
}

func (manager *Manager) refreshStatus() {
	if manager.showStatus {
		manager.statusItem.Label = fmt.Sprintf("Status: %s", manager.status)
	} else {
		manager.statusItem.Label = "Countdown"
	}
	manager.refreshMenu()
}

func (manager *Manager) refreshMenu() {
	if manager.app == nil {
		return
	}
	manager.app.SetSystemTrayMenu(fyne.NewMenu(menuTitle,
		manager.statusItem,
		fyne.NewMenuItem("Show", func() {
			if manager.callbacks.OnShow != nil {
				manager.callbacks.OnShow()
			}
		}),
		manager.stopItem,
		fyne.NewMenuItem("Preferences", func() {
			if manager.callbacks.OnPreferences != nil {
				manager.callbacks.OnPreferences()
			}
		}),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Quit", func() {
			if manager.callbacks.OnQuit != nil {
				manager.callbacks.OnQuit()
			}
		}),
	))
}
