package service

import (
	"context"
	"fmt"

	"pomo/internal/modules/session/domain"
	sessionout "pomo/internal/modules/session/port/out"
	"pomo/internal/platform/clock"
)

// TickResult describes one scheduler pass. Record is the state after the
// pass.
type TickResult struct {
	Record domain.Record
	Fired  bool
	Alert  domain.Alert
}

// Scheduler emits a completion alert once a session reaches its end, then
// again every NotifyDebounce while it stays expired.
type Scheduler struct {
	clock    clock.Clock
	store    sessionout.StatusStore
	notifier sessionout.Notifier
}

func NewScheduler(clock clock.Clock, store sessionout.StatusStore, notifier sessionout.Notifier) *Scheduler {
	return &Scheduler{clock: clock, store: store, notifier: notifier}
}

func (s *Scheduler) Tick(ctx context.Context, prefs domain.Preferences) (TickResult, error) {
	now := s.clock.Now()
	record := s.store.Read(ctx)
	if !record.DueForAlert(now) {
		return TickResult{Record: record}, nil
	}
	alert, ok := domain.CompletionAlert(record, prefs)
	if !ok {
		return TickResult{Record: record}, nil
	}
	if s.notifier != nil {
		s.notifier.Notify(ctx, alert)
	}
	stamped := record.Stamped(now)
	if err := s.store.Write(ctx, stamped); err != nil {
		return TickResult{Record: record, Fired: true, Alert: alert}, fmt.Errorf("stamp notification: %w", err)
	}
	return TickResult{Record: stamped, Fired: true, Alert: alert}, nil
}
