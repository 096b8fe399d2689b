package in

import (
	"context"

	sessiondto "pomo/internal/modules/session/dto"
	sessionin "pomo/internal/modules/session/port/in"
)

type CLIHandler struct {
	usecase sessionin.Usecase
}

func NewCLIHandler(usecase sessionin.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) Focus(ctx context.Context, duration string, oneShot, notify bool) (sessiondto.StatusOutput, error) {
	return h.usecase.StartFocus(ctx, sessiondto.StartInput{Duration: duration, OneShot: oneShot, Notify: notify})
}

func (h CLIHandler) Break(ctx context.Context, duration string, oneShot, notify bool) (sessiondto.StatusOutput, error) {
	return h.usecase.StartBreak(ctx, sessiondto.StartInput{Duration: duration, OneShot: oneShot, Notify: notify})
}

func (h CLIHandler) Toggle(ctx context.Context, duration string, oneShot, notify bool) (sessiondto.StatusOutput, error) {
	return h.usecase.Toggle(ctx, sessiondto.StartInput{Duration: duration, OneShot: oneShot, Notify: notify})
}

func (h CLIHandler) Stop(ctx context.Context, notify bool) (sessiondto.StatusOutput, error) {
	return h.usecase.Stop(ctx, sessiondto.StopInput{Notify: notify})
}

func (h CLIHandler) Duration(ctx context.Context, duration string) (sessiondto.StatusOutput, error) {
	return h.usecase.ChangeDuration(ctx, sessiondto.DurationInput{Duration: duration})
}

// Poll runs one pass of the status engine.
func (h CLIHandler) Poll(ctx context.Context, noEmoji, notify bool) (sessiondto.PollOutput, error) {
	return h.usecase.Poll(ctx, sessiondto.PollInput{Notify: notify, NoEmoji: noEmoji})
}

// Line runs one poll and returns the status-bar label.
func (h CLIHandler) Line(ctx context.Context, noEmoji, notify bool) (string, error) {
	out, err := h.Poll(ctx, noEmoji, notify)
	if err != nil {
		return "", err
	}
	return out.Status.Label, nil
}

// Status reads the record without polling.
func (h CLIHandler) Status(ctx context.Context, noEmoji bool) (sessiondto.StatusOutput, error) {
	return h.usecase.Status(ctx, sessiondto.StatusInput{NoEmoji: noEmoji})
}
