package out

import (
	"context"

	notifydto "pomo/internal/modules/notify/dto"
	notifyin "pomo/internal/modules/notify/port/in"
	"pomo/internal/modules/session/domain"
	sessionout "pomo/internal/modules/session/port/out"
)

// AlertNotifier queues session alerts on the notify module.
type AlertNotifier struct {
	notify notifyin.Usecase
}

func NewAlertNotifier(notify notifyin.Usecase) sessionout.Notifier {
	return &AlertNotifier{notify: notify}
}

func (n *AlertNotifier) Notify(ctx context.Context, alert domain.Alert) {
	n.notify.Send(ctx, notifydto.AlertInput{
		Title:    alert.Title,
		Subtitle: alert.Subtitle,
		Sound:    alert.Sound,
	})
}
