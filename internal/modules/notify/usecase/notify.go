package usecase

import (
	"context"
	"fmt"

	"github.com/hashicorp/go-hclog"

	"pomo/internal/modules/notify/domain"
	"pomo/internal/modules/notify/dto"
	notifyin "pomo/internal/modules/notify/port/in"
	"pomo/internal/modules/notify/service"
	apperrors "pomo/internal/platform/errors"
)

type Interactor struct {
	dispatcher *service.Dispatcher
	plugins    *service.PluginService
	configured string
	resolved   string
	logger     hclog.Logger
}

func NewInteractor(dispatcher *service.Dispatcher, plugins *service.PluginService, configured, resolved string, logger hclog.Logger) notifyin.Usecase {
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	return &Interactor{dispatcher: dispatcher, plugins: plugins, configured: configured, resolved: resolved, logger: logger}
}

func (i *Interactor) Send(_ context.Context, input dto.AlertInput) {
	alert := toAlert(input)
	if err := alert.Validate(); err != nil {
		i.logger.Warn("alert rejected", "error", err)
		return
	}
	i.dispatcher.Enqueue(alert)
}

func (i *Interactor) Test(ctx context.Context, input dto.AlertInput) error {
	alert := toAlert(input)
	if err := alert.Validate(); err != nil {
		return fmt.Errorf("%w: %v", apperrors.ErrInvalidInput, err)
	}
	if err := i.dispatcher.Deliver(ctx, alert); err != nil {
		return fmt.Errorf("deliver test alert via %s: %w", i.dispatcher.SinkName(), err)
	}
	return nil
}

func (i *Interactor) Backend() dto.BackendInfo {
	return dto.BackendInfo{Configured: i.configured, Resolved: i.resolved, Sink: i.dispatcher.SinkName()}
}

func (i *Interactor) ListPlugins(ctx context.Context) ([]dto.PluginInfo, error) {
	return i.plugins.List(ctx)
}

func (i *Interactor) Doctor(ctx context.Context) (dto.DoctorReport, error) {
	report := dto.DoctorReport{Backend: i.Backend(), BackendReady: true}
	if err := i.dispatcher.Check(ctx); err != nil {
		report.BackendReady = false
		report.BackendError = err.Error()
	}
	plugins, err := i.plugins.Doctor(ctx)
	if err != nil {
		return dto.DoctorReport{}, err
	}
	report.Plugins = plugins
	return report, nil
}

func (i *Interactor) Close(ctx context.Context) error {
	return i.dispatcher.Close(ctx)
}

func toAlert(input dto.AlertInput) domain.Alert {
	return domain.Alert{Title: input.Title, Subtitle: input.Subtitle, Sound: input.Sound}
}
