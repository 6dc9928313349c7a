// internal/ui/tray.go
package ui

import (
	"fmt"

	"github.com/SiirRandall/monic/internal/logging"

	"fyne.io/fyne/v2"
)

// EnableSystemTray installs the tray menu. The icon follows with the first
// monitor update.
func (u *AppUI) EnableSystemTray() {
	if u.tray == nil {
		logging.Debug("[tray] no desktop tray; indicator goes to the log", nil)
		return
	}
	u.mu.Lock()
	u.menu = u.buildTrayMenu()
	menu := u.menu
	u.mu.Unlock()

	if err := guardTray(func() { u.tray.SetSystemTrayMenu(menu) }); err != nil {
		logging.Warn("[tray] could not install tray menu", err, nil)
		return
	}
	logging.Debug("[tray] system tray menu installed", nil)
}

func (u *AppUI) buildTrayMenu() *fyne.Menu {
	u.statusItem = fyne.NewMenuItem(u.status, nil)
	u.statusItem.Disabled = true

	exitItem := fyne.NewMenuItem(u.cfg.Labels.Exit, u.exit)
	exitItem.IsQuit = true

	return fyne.NewMenu(u.cfg.Labels.Title,
		u.statusItem,
		fyne.NewMenuItemSeparator(),
		exitItem,
	)
}

// applyIndicator must run on the fyne thread.
func (u *AppUI) applyIndicator(icon fyne.Resource, tooltip string) {
	u.mu.Lock()
	if u.closed {
		u.mu.Unlock()
		return
	}
	u.icon, u.status = icon, tooltip
	menu := u.menu
	if u.statusItem != nil {
		u.statusItem.Label = tooltip
	}
	u.mu.Unlock()

	err := guardTray(func() {
		u.tray.SetSystemTrayIcon(icon)
		if menu != nil {
			u.tray.SetSystemTrayMenu(menu)
		}
		if u.setTooltip != nil {
			u.setTooltip(tooltip)
		}
	})
	if err != nil {
		logging.Warn("[tray] could not change tray icon ! "+tooltip, err, nil)
	}
}

func (u *AppUI) clearIndicator() {
	u.mu.Lock()
	defer u.mu.Unlock()
	u.closed = true
	u.icon, u.status = nil, ""
}

// guardTray turns a panic from the platform tray into an error. The tray can
// be briefly unavailable (e.g. the notifier host restarting).
func guardTray(fn func()) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("tray unavailable: %v", r)
		}
	}()
	fn()
	return nil
}
