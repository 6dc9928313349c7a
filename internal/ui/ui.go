package ui

import (
	"fmt"
	"sync"
	"time"

	"github.com/SiirRandall/monic/internal/config"
	"github.com/SiirRandall/monic/internal/logging"
	"github.com/SiirRandall/monic/internal/monitor"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/systray"
)

const appID = "io.github.siirrandall.monic"

// trayHost is the part of desktop.App the indicator needs.
type trayHost interface {
	SetSystemTrayIcon(icon fyne.Resource)
	SetSystemTrayMenu(menu *fyne.Menu)
}

// AppUI owns the fyne app, the tray indicator and the reachability monitor
// for the lifetime of the process.
type AppUI struct {
	cfg  *config.Config
	app  fyne.App
	tray trayHost // nil when the desktop tray is unavailable
	mon  *monitor.Monitor

	setTooltip func(string)
	quit       func()

	mu         sync.Mutex
	icon       fyne.Resource
	status     string
	closed     bool
	menu       *fyne.Menu
	statusItem *fyne.MenuItem
}

func NewAppUI(cfg *config.Config, target config.Target, prober monitor.Prober) *AppUI {
	a := app.NewWithID(appID)
	var tray trayHost
	if desk, ok := a.(desktop.App); ok {
		tray = desk
	}
	u := newAppUI(cfg, a, tray, target, prober, monitor.Interval)
	if tray != nil {
		u.setTooltip = systray.SetTooltip
	}
	return u
}

func newAppUI(cfg *config.Config, a fyne.App, tray trayHost, target config.Target, prober monitor.Prober, interval time.Duration) *AppUI {
	u := &AppUI{
		cfg:  cfg,
		app:  a,
		tray: tray,
		quit: a.Quit,
	}
	var sink monitor.Sink = monitor.LogSink{}
	if tray != nil {
		sink = u
	} else {
		logging.Info("System tray not supported. Watch the logs !", nil)
	}
	u.mon = monitor.New(target.Addr(), prober, sink, interval)
	return u
}

// Run installs the tray and blocks in the fyne event loop until exit.
// The first check starts once the loop is up so the tray exists to receive it.
func (u *AppUI) Run() {
	u.EnableSystemTray()
	u.app.Lifecycle().SetOnStarted(u.mon.Start)
	u.app.Lifecycle().SetOnStopped(u.mon.Stop)
	u.app.Run()
}

func (u *AppUI) Monitor() *monitor.Monitor { return u.mon }

// Indicator returns the icon and tooltip currently displayed. The icon is nil
// before the first update and after exit.
func (u *AppUI) Indicator() (fyne.Resource, string) {
	u.mu.Lock()
	defer u.mu.Unlock()
	return u.icon, u.status
}

// Unreachable implements monitor.Sink.
func (u *AppUI) Unreachable(target string) {
	u.show(RedIcon, fmt.Sprintf("%s not reached yet...", target))
}

// Reachable implements monitor.Sink.
func (u *AppUI) Reachable(target string, at time.Time) {
	u.show(GreenIcon, fmt.Sprintf("%s reached at %s", target, at.Format(time.TimeOnly)))
}

func (u *AppUI) show(icon fyne.Resource, tooltip string) {
	fyne.Do(func() { u.applyIndicator(icon, tooltip) })
}

// exit is the tray menu action: stop checking, drop the icon, quit.
func (u *AppUI) exit() {
	u.mon.Stop()
	u.clearIndicator()
	logging.Info("exit requested", logging.Fields{"target": u.mon.Target(), "attempts": u.mon.Attempts()})
	u.quit()
}
