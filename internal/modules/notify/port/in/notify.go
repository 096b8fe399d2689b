package in

import (
	"context"

	"pomo/internal/modules/notify/dto"
)

type Usecase interface {
	// Send queues an alert; delivery failures are logged, never returned.
	Send(ctx context.Context, input dto.AlertInput)
	Test(ctx context.Context, input dto.AlertInput) error
	Backend() dto.BackendInfo
	ListPlugins(ctx context.Context) ([]dto.PluginInfo, error)
	Doctor(ctx context.Context) (dto.DoctorReport, error)
	Close(ctx context.Context) error
}
