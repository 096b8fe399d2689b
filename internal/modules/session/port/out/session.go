package out

import (
	"context"

	"pomo/internal/modules/session/domain"
)

// StatusStore holds the single session record. Read never fails: a missing
// or unusable record reads as Idle at the current time.
type StatusStore interface {
	Read(ctx context.Context) domain.Record
	Write(ctx context.Context, record domain.Record) error
}

// Notifier hands an alert to the desktop. Delivery is best effort and not
// observable by the caller.
type Notifier interface {
	Notify(ctx context.Context, alert domain.Alert)
}

type PreferencesSource interface {
	Preferences(ctx context.Context) domain.Preferences
	Reload(ctx context.Context) error
}
