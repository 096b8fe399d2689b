package in

import (
	"context"

	"pomo/internal/modules/settings/dto"
)

type Usecase interface {
	Current(ctx context.Context) dto.SettingsOutput
	Reload(ctx context.Context) error
	Init(ctx context.Context, input dto.InitInput) (dto.InitOutput, error)
	Render(ctx context.Context) ([]byte, error)
}
