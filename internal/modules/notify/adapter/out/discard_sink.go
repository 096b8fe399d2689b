package out

import (
	"context"

	"github.com/hashicorp/go-hclog"

	"pomo/internal/modules/notify/domain"
)

// DiscardSink drops alerts, logging them at debug level.
type DiscardSink struct {
	logger hclog.Logger
}

func NewDiscardSink(logger hclog.Logger) *DiscardSink {
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	return &DiscardSink{logger: logger}
}

func (s *DiscardSink) Name() string {
	return domain.KindNone
}

func (s *DiscardSink) Deliver(_ context.Context, alert domain.Alert) error {
	s.logger.Debug("alert discarded", "title", alert.Title, "subtitle", alert.Subtitle)
	return nil
}

func (s *DiscardSink) Check(context.Context) error {
	return nil
}
