package usecase

import (
	"context"
	"time"

	"github.com/hashicorp/go-hclog"

	"pomo/internal/modules/session/domain"
	sessiondto "pomo/internal/modules/session/dto"
	sessionin "pomo/internal/modules/session/port/in"
	sessionout "pomo/internal/modules/session/port/out"
	"pomo/internal/modules/session/service"
	"pomo/internal/platform/clock"
	"pomo/internal/platform/durfmt"
	"pomo/internal/platform/tx"
)

type Interactor struct {
	clock      clock.Clock
	controller *service.Controller
	scheduler  *service.Scheduler
	prefs      sessionout.PreferencesSource
	notifier   sessionout.Notifier
	tx         tx.Manager
	logger     hclog.Logger
}

type Deps struct {
	Clock       clock.Clock
	Store       sessionout.StatusStore
	Preferences sessionout.PreferencesSource
	Notifier    sessionout.Notifier
	Tx          tx.Manager
	Logger      hclog.Logger
}

func NewInteractor(deps Deps) sessionin.Usecase {
	if deps.Tx == nil {
		deps.Tx = tx.NoopManager{}
	}
	if deps.Logger == nil {
		deps.Logger = hclog.NewNullLogger()
	}
	return &Interactor{
		clock:      deps.Clock,
		controller: service.NewController(deps.Clock, deps.Store),
		scheduler:  service.NewScheduler(deps.Clock, deps.Store, deps.Notifier),
		prefs:      deps.Preferences,
		notifier:   deps.Notifier,
		tx:         deps.Tx,
		logger:     deps.Logger,
	}
}

func (i *Interactor) StartFocus(ctx context.Context, input sessiondto.StartInput) (sessiondto.StatusOutput, error) {
	return i.start(ctx, func(domain.Record) domain.SessionType { return domain.TypeFocus }, input)
}

func (i *Interactor) StartBreak(ctx context.Context, input sessiondto.StartInput) (sessiondto.StatusOutput, error) {
	return i.start(ctx, func(domain.Record) domain.SessionType { return domain.TypeBreak }, input)
}

// Toggle starts a break after focus and a focus session otherwise.
func (i *Interactor) Toggle(ctx context.Context, input sessiondto.StartInput) (sessiondto.StatusOutput, error) {
	return i.start(ctx, func(current domain.Record) domain.SessionType {
		if current.Type == domain.TypeFocus {
			return domain.TypeBreak
		}
		return domain.TypeFocus
	}, input)
}

func (i *Interactor) start(ctx context.Context, choose func(domain.Record) domain.SessionType, input sessiondto.StartInput) (sessiondto.StatusOutput, error) {
	prefs := i.preferences(ctx)
	var override time.Duration
	if input.Duration != "" {
		parsed, err := durfmt.Parse(input.Duration)
		if err != nil {
			return sessiondto.StatusOutput{}, err
		}
		override = parsed
	}

	var record domain.Record
	err := i.tx.Within(ctx, func(ctx context.Context) error {
		var err error
		if choose(i.controller.Current(ctx)) == domain.TypeBreak {
			record, err = i.controller.StartBreak(ctx, pick(override, prefs.BreakDuration), input.OneShot)
		} else {
			record, err = i.controller.StartFocus(ctx, pick(override, prefs.FocusDuration), input.OneShot)
		}
		return err
	})
	if err != nil {
		return sessiondto.StatusOutput{}, err
	}
	i.logger.Debug("session started", "type", record.Type, "end", record.End, "one_shot", record.OneShot)
	if input.Notify {
		if record.Type == domain.TypeBreak {
			i.notify(ctx, domain.NewAlert(prefs.BreakEmoji, domain.MessageBreakStarted, prefs.StartSound))
		} else {
			i.notify(ctx, domain.NewAlert(prefs.FocusEmoji, domain.MessageFocusStarted, prefs.StartSound))
		}
	}
	return toOutput(record, prefs, i.clock.Now(), true), nil
}

func pick(override, configured time.Duration) time.Duration {
	if override > 0 {
		return override
	}
	return configured
}

func (i *Interactor) Stop(ctx context.Context, input sessiondto.StopInput) (sessiondto.StatusOutput, error) {
	prefs := i.preferences(ctx)
	var record domain.Record
	err := i.tx.Within(ctx, func(ctx context.Context) error {
		var err error
		record, err = i.controller.Stop(ctx)
		return err
	})
	if err != nil {
		return sessiondto.StatusOutput{}, err
	}
	i.logger.Debug("session stopped")
	if input.Notify {
		i.notify(ctx, domain.NewAlert(prefs.FocusEmoji, domain.MessageStopped, prefs.EndSound))
	}
	return toOutput(record, prefs, i.clock.Now(), true), nil
}

func (i *Interactor) ChangeDuration(ctx context.Context, input sessiondto.DurationInput) (sessiondto.StatusOutput, error) {
	duration, err := durfmt.Parse(input.Duration)
	if err != nil {
		return sessiondto.StatusOutput{}, err
	}
	var record domain.Record
	err = i.tx.Within(ctx, func(ctx context.Context) error {
		var err error
		record, err = i.controller.Reschedule(ctx, duration)
		return err
	})
	if err != nil {
		return sessiondto.StatusOutput{}, err
	}
	return toOutput(record, i.preferences(ctx), i.clock.Now(), true), nil
}

func (i *Interactor) Status(ctx context.Context, input sessiondto.StatusInput) (sessiondto.StatusOutput, error) {
	record := i.controller.Current(ctx)
	return toOutput(record, i.preferences(ctx), i.clock.Now(), !input.NoEmoji), nil
}

// Poll is the periodic pass behind status lines and long-running shells:
// working-hours automation, then the completion alert, then one-shot reset.
func (i *Interactor) Poll(ctx context.Context, input sessiondto.PollInput) (sessiondto.PollOutput, error) {
	prefs := i.preferences(ctx)
	out := sessiondto.PollOutput{}
	var record domain.Record
	err := i.tx.Within(ctx, func(ctx context.Context) error {
		now := i.clock.Now()
		record = i.controller.Current(ctx)

		if prefs.WorkStart.IsSet() {
			dayStart := prefs.WorkStart.On(now.Local())
			if record.End.Before(dayStart) && now.After(dayStart) {
				started, err := i.controller.StartFocus(ctx, prefs.FocusDuration, false)
				if err != nil {
					return err
				}
				i.logger.Info("working hours started, focus session begun", "end", started.End)
				record, out.AutoStarted = started, true
				return nil
			}
		}
		if prefs.WorkEnd.IsSet() {
			dayEnd := prefs.WorkEnd.On(now.Local())
			if !record.IsIdle() && record.Start.Before(dayEnd) && now.After(dayEnd) {
				stopped, err := i.controller.Stop(ctx)
				if err != nil {
					return err
				}
				i.logger.Info("working hours ended, session cleared")
				record, out.AutoStopped = stopped, true
				return nil
			}
		}

		if input.Notify {
			result, err := i.scheduler.Tick(ctx, prefs)
			if err != nil {
				return err
			}
			record, out.Notified = result.Record, result.Fired
		}

		if record.OneShot && !record.IsIdle() && record.Remaining(i.clock.Now()) <= 0 {
			stopped, err := i.controller.Stop(ctx)
			if err != nil {
				return err
			}
			record, out.OneShotReset = stopped, true
		}
		return nil
	})
	if err != nil {
		return sessiondto.PollOutput{}, err
	}
	out.Status = toOutput(record, prefs, i.clock.Now(), !input.NoEmoji)
	return out, nil
}

func (i *Interactor) preferences(ctx context.Context) domain.Preferences {
	if i.prefs == nil {
		return domain.DefaultPreferences()
	}
	return i.prefs.Preferences(ctx)
}

func (i *Interactor) notify(ctx context.Context, alert domain.Alert) {
	if i.notifier == nil {
		return
	}
	i.notifier.Notify(ctx, alert)
}

func toOutput(record domain.Record, prefs domain.Preferences, now time.Time, withEmoji bool) sessiondto.StatusOutput {
	out := sessiondto.StatusOutput{
		Type:         string(record.Type),
		Start:        record.Start,
		End:          record.End,
		LastNotified: record.LastNotified,
		OneShot:      record.OneShot,
		Label:        domain.Label(record, prefs, now, withEmoji),
	}
	if !record.IsIdle() {
		out.Remaining = durfmt.Format(record.Remaining(now))
	}
	return out
}
