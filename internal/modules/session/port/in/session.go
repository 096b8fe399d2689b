package in

import (
	"context"

	"pomo/internal/modules/session/dto"
)

type Usecase interface {
	StartFocus(ctx context.Context, input dto.StartInput) (dto.StatusOutput, error)
	StartBreak(ctx context.Context, input dto.StartInput) (dto.StatusOutput, error)
	Toggle(ctx context.Context, input dto.StartInput) (dto.StatusOutput, error)
	Stop(ctx context.Context, input dto.StopInput) (dto.StatusOutput, error)
	ChangeDuration(ctx context.Context, input dto.DurationInput) (dto.StatusOutput, error)
	Status(ctx context.Context, input dto.StatusInput) (dto.StatusOutput, error)
	Poll(ctx context.Context, input dto.PollInput) (dto.PollOutput, error)
}
