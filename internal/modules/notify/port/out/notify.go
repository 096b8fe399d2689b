package out

import (
	"context"

	"pomo/internal/modules/notify/domain"
)

// Sink delivers an alert to the desktop.
type Sink interface {
	Name() string
	Deliver(ctx context.Context, alert domain.Alert) error
	Check(ctx context.Context) error
}

type ManifestStore interface {
	Load(ctx context.Context) ([]domain.Manifest, error)
}

type Host interface {
	CheckLifecycle(ctx context.Context, manifest domain.Manifest) error
	GetMetadata(ctx context.Context, manifest domain.Manifest) (domain.Metadata, error)
	Notify(ctx context.Context, manifest domain.Manifest, alert domain.Alert) error
}
