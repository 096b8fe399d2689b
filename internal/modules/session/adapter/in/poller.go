package in

import (
	"context"
	"sync"
	"time"

	"github.com/hashicorp/go-hclog"

	sessiondto "pomo/internal/modules/session/dto"
	sessionin "pomo/internal/modules/session/port/in"
)

const (
	DefaultTickInterval   = time.Second
	DefaultReloadInterval = 600 * time.Second
)

// Reloader refreshes cached settings.
type Reloader interface {
	Reload(ctx context.Context) error
}

type PollerOptions struct {
	TickInterval   time.Duration
	ReloadInterval time.Duration
	Notify         bool
}

// Snapshot is published after every poll.
type Snapshot struct {
	At     time.Time
	Result sessiondto.PollOutput
	Err    error
}

// Poller drives the session usecase for long-running shells: a fast tick for
// labels and alerts and a slow tick for settings reloads, both in one
// goroutine.
type Poller struct {
	usecase  sessionin.Usecase
	reloader Reloader
	options  PollerOptions
	logger   hclog.Logger

	mu          sync.Mutex
	subscribers []chan Snapshot
	stopped     bool
}

func NewPoller(usecase sessionin.Usecase, reloader Reloader, options PollerOptions, logger hclog.Logger) *Poller {
	if options.TickInterval <= 0 {
		options.TickInterval = DefaultTickInterval
	}
	if options.ReloadInterval <= 0 {
		options.ReloadInterval = DefaultReloadInterval
	}
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	return &Poller{usecase: usecase, reloader: reloader, options: options, logger: logger}
}

// Subscribe registers an observer. Slow observers miss snapshots rather
// than block the loop. Once Run has returned the channel comes back closed.
func (p *Poller) Subscribe(buffer int) <-chan Snapshot {
	if buffer <= 0 {
		buffer = 1
	}
	ch := make(chan Snapshot, buffer)
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.stopped {
		close(ch)
		return ch
	}
	p.subscribers = append(p.subscribers, ch)
	return ch
}

// Run polls until ctx is done, then closes every subscription.
func (p *Poller) Run(ctx context.Context) {
	tick := time.NewTicker(p.options.TickInterval)
	defer tick.Stop()
	reload := time.NewTicker(p.options.ReloadInterval)
	defer reload.Stop()
	defer p.closeSubscribers()

	p.Poll(ctx)
	for {
		select {
		case <-ctx.Done():
			return
		case <-tick.C:
			p.Poll(ctx)
		case <-reload.C:
			p.reload(ctx)
		}
	}
}

// Poll runs a single pass and publishes its snapshot.
func (p *Poller) Poll(ctx context.Context) Snapshot {
	result, err := p.usecase.Poll(ctx, sessiondto.PollInput{Notify: p.options.Notify})
	if err != nil {
		p.logger.Warn("poll failed", "error", err)
	}
	snapshot := Snapshot{At: time.Now(), Result: result, Err: err}
	p.emit(snapshot)
	return snapshot
}

func (p *Poller) reload(ctx context.Context) {
	if p.reloader == nil {
		return
	}
	if err := p.reloader.Reload(ctx); err != nil {
		p.logger.Warn("settings reload failed", "error", err)
		return
	}
	p.logger.Debug("settings reloaded")
}

func (p *Poller) emit(snapshot Snapshot) {
	p.mu.Lock()
	defer p.mu.Unlock()
	for _, ch := range p.subscribers {
		select {
		case ch <- snapshot:
		default:
		}
	}
}

func (p *Poller) closeSubscribers() {
	p.mu.Lock()
	subscribers := p.subscribers
	p.subscribers = nil
	p.stopped = true
	p.mu.Unlock()
	for _, ch := range subscribers {
		close(ch)
	}
}
