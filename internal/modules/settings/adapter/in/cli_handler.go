package in

import (
	"context"

	settingsdto "pomo/internal/modules/settings/dto"
	settingsin "pomo/internal/modules/settings/port/in"
)

type CLIHandler struct {
	usecase settingsin.Usecase
}

func NewCLIHandler(usecase settingsin.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) Init(ctx context.Context, input settingsdto.InitInput) (settingsdto.InitOutput, error) {
	return h.usecase.Init(ctx, input)
}

func (h CLIHandler) Show(ctx context.Context) (string, error) {
	payload, err := h.usecase.Render(ctx)
	if err != nil {
		return "", err
	}
	return string(payload), nil
}

func (h CLIHandler) Current(ctx context.Context) settingsdto.SettingsOutput {
	return h.usecase.Current(ctx)
}
