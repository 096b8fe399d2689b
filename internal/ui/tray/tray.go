package tray

import (
	"context"

	"fyne.io/systray"

	sessioninadapter "pomo/internal/modules/session/adapter/in"
)

// Callbacks defines tray action handlers.
type Callbacks struct {
	OnFocus func()
	OnBreak func()
	OnStop  func()
	OnQuit  func()
}

type snapshotSource interface {
	Subscribe(buffer int) <-chan sessioninadapter.Snapshot
	Run(ctx context.Context)
}

// Manager keeps the menu-bar title in step with the poller.
type Manager struct {
	source    snapshotSource
	callbacks Callbacks

	statusItem *systray.MenuItem
	focusItem  *systray.MenuItem
	breakItem  *systray.MenuItem
	stopItem   *systray.MenuItem
	quitItem   *systray.MenuItem
}

func New(source snapshotSource, callbacks Callbacks) *Manager {
	return &Manager{source: source, callbacks: callbacks}
}

// Run blocks on the platform event loop until Quit is chosen or ctx ends.
func (m *Manager) Run(ctx context.Context) {
	ctx, cancel := context.WithCancel(ctx)
	systray.Run(func() { m.onReady(ctx, cancel) }, cancel)
}

func (m *Manager) onReady(ctx context.Context, cancel context.CancelFunc) {
	systray.SetTitle("pomo")
	systray.SetTooltip("pomo")

	m.statusItem = systray.AddMenuItem("Idle", "")
	m.statusItem.Disable()
	systray.AddSeparator()
	m.focusItem = systray.AddMenuItem("Start focus session", "")
	m.breakItem = systray.AddMenuItem("Start break", "")
	m.stopItem = systray.AddMenuItem("Stop session", "")
	systray.AddSeparator()
	m.quitItem = systray.AddMenuItem("Quit", "")

	snapshots := m.source.Subscribe(4)
	go m.source.Run(ctx)
	go m.watch(ctx, snapshots)
	go m.clicks(ctx, cancel)
	go func() {
		<-ctx.Done()
		systray.Quit()
	}()
}

func (m *Manager) watch(ctx context.Context, snapshots <-chan sessioninadapter.Snapshot) {
	for {
		select {
		case <-ctx.Done():
			return
		case snapshot, ok := <-snapshots:
			if !ok {
				return
			}
			title, status := Describe(snapshot)
			systray.SetTitle(title)
			m.statusItem.SetTitle(status)
			if snapshot.Result.Status.Type == "Idle" {
				m.stopItem.Disable()
			} else {
				m.stopItem.Enable()
			}
		}
	}
}

func (m *Manager) clicks(ctx context.Context, cancel context.CancelFunc) {
	for {
		select {
		case <-ctx.Done():
			return
		case <-m.focusItem.ClickedCh:
			call(m.callbacks.OnFocus)
		case <-m.breakItem.ClickedCh:
			call(m.callbacks.OnBreak)
		case <-m.stopItem.ClickedCh:
			call(m.callbacks.OnStop)
		case <-m.quitItem.ClickedCh:
			call(m.callbacks.OnQuit)
			cancel()
			return
		}
	}
}

func call(fn func()) {
	if fn != nil {
		fn()
	}
}

// Describe returns the menu-bar title and the status menu line for a poll.
func Describe(snapshot sessioninadapter.Snapshot) (string, string) {
	if snapshot.Err != nil {
		return "pomo ⚠", "Error: " + snapshot.Err.Error()
	}
	status := snapshot.Result.Status
	if status.Type == "" || status.Type == "Idle" {
		return "pomo", "Idle"
	}
	line := status.Type + " until " + status.End.Local().Format("15:04")
	if status.OneShot {
		line += " (one-shot)"
	}
	return status.Label, line
}
