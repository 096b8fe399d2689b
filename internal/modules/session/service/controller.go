package service

import (
	"context"
	"fmt"
	"time"

	"pomo/internal/modules/session/domain"
	sessionout "pomo/internal/modules/session/port/out"
	"pomo/internal/platform/clock"
	apperrors "pomo/internal/platform/errors"
)

// Controller applies user intents to the status store. Each intent
// replaces the stored record wholesale.
type Controller struct {
	clock clock.Clock
	store sessionout.StatusStore
}

func NewController(clock clock.Clock, store sessionout.StatusStore) *Controller {
	return &Controller{clock: clock, store: store}
}

// StartFocus begins a focus session. A zero duration uses the default.
func (c *Controller) StartFocus(ctx context.Context, duration time.Duration, oneShot bool) (domain.Record, error) {
	if duration == 0 {
		duration = domain.DefaultFocusDuration
	}
	return c.write(ctx, domain.New(domain.TypeFocus, c.clock.Now(), duration, oneShot))
}

// StartBreak begins a break. A zero duration uses the default.
func (c *Controller) StartBreak(ctx context.Context, duration time.Duration, oneShot bool) (domain.Record, error) {
	if duration == 0 {
		duration = domain.DefaultBreakDuration
	}
	return c.write(ctx, domain.New(domain.TypeBreak, c.clock.Now(), duration, oneShot))
}

func (c *Controller) Stop(ctx context.Context) (domain.Record, error) {
	return c.write(ctx, domain.IdleAt(c.clock.Now()))
}

// Reschedule moves the end of a session in progress to now+duration.
func (c *Controller) Reschedule(ctx context.Context, duration time.Duration) (domain.Record, error) {
	now := c.clock.Now()
	current := c.store.Read(ctx)
	if !current.InProgress(now) {
		return domain.Record{}, apperrors.ErrNoActiveSession
	}
	return c.write(ctx, current.WithEnd(now.Add(duration)))
}

// Current returns the stored record.
func (c *Controller) Current(ctx context.Context) domain.Record {
	return c.store.Read(ctx)
}

func (c *Controller) write(ctx context.Context, record domain.Record) (domain.Record, error) {
	if err := c.store.Write(ctx, record); err != nil {
		return domain.Record{}, fmt.Errorf("write %s session: %w", record.Type, err)
	}
	return record, nil
}
