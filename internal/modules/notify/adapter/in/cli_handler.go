package in

import (
	"context"

	"pomo/internal/modules/notify/dto"
	notifyin "pomo/internal/modules/notify/port/in"
)

type CLIHandler struct {
	usecase notifyin.Usecase
}

func NewCLIHandler(usecase notifyin.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) Backend() dto.BackendInfo {
	return h.usecase.Backend()
}

func (h CLIHandler) List(ctx context.Context) ([]dto.PluginInfo, error) {
	return h.usecase.ListPlugins(ctx)
}

func (h CLIHandler) Doctor(ctx context.Context) (dto.DoctorReport, error) {
	return h.usecase.Doctor(ctx)
}

func (h CLIHandler) Test(ctx context.Context, title, subtitle, sound string) error {
	return h.usecase.Test(ctx, dto.AlertInput{Title: title, Subtitle: subtitle, Sound: sound})
}
