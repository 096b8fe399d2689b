package service

import (
	"context"
	"sync"
	"time"

	"github.com/hashicorp/go-hclog"

	"pomo/internal/modules/notify/domain"
	notifyout "pomo/internal/modules/notify/port/out"
)

const (
	DefaultQueueDepth      = 16
	DefaultDeliveryTimeout = 5 * time.Second
)

// Dispatcher decouples alert producers from the sink: alerts are queued and
// delivered in order by a single worker. Delivery errors are logged.
type Dispatcher struct {
	sink    notifyout.Sink
	queue   chan domain.Alert
	timeout time.Duration
	logger  hclog.Logger
	done    chan struct{}

	mu     sync.RWMutex
	closed bool
}

func NewDispatcher(sink notifyout.Sink, depth int, logger hclog.Logger) *Dispatcher {
	if depth <= 0 {
		depth = DefaultQueueDepth
	}
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	d := &Dispatcher{
		sink:    sink,
		queue:   make(chan domain.Alert, depth),
		timeout: DefaultDeliveryTimeout,
		logger:  logger,
		done:    make(chan struct{}),
	}
	go d.run()
	return d
}

// Enqueue never blocks. It reports false when the alert was dropped because
// the queue is full or the dispatcher is closed.
func (d *Dispatcher) Enqueue(alert domain.Alert) bool {
	d.mu.RLock()
	defer d.mu.RUnlock()
	if d.closed {
		d.logger.Warn("alert after close dropped", "title", alert.Title)
		return false
	}
	select {
	case d.queue <- alert:
		return true
	default:
		d.logger.Warn("alert queue full, dropping alert", "title", alert.Title)
		return false
	}
}

// Deliver sends alert synchronously, bypassing the queue.
func (d *Dispatcher) Deliver(ctx context.Context, alert domain.Alert) error {
	return d.sink.Deliver(ctx, alert)
}

// Close stops accepting alerts and waits until the queued ones are
// delivered or ctx is done.
func (d *Dispatcher) Close(ctx context.Context) error {
	d.mu.Lock()
	if !d.closed {
		d.closed = true
		close(d.queue)
	}
	d.mu.Unlock()

	select {
	case <-d.done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (d *Dispatcher) run() {
	defer close(d.done)
	for alert := range d.queue {
		d.logger.Debug("delivering alert", "sink", d.sink.Name(), "title", alert.Title)
		ctx, cancel := context.WithTimeout(context.Background(), d.timeout)
		if err := d.sink.Deliver(ctx, alert); err != nil {
			d.logger.Error("alert delivery failed", "sink", d.sink.Name(), "title", alert.Title, "error", err)
		}
		cancel()
	}
}

func (d *Dispatcher) SinkName() string {
	return d.sink.Name()
}

func (d *Dispatcher) Check(ctx context.Context) error {
	return d.sink.Check(ctx)
}
