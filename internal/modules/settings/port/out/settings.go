package out

import (
	"context"

	"pomo/internal/modules/settings/domain"
)

// FileStore reads and writes the config file. Load reports apperrors.ErrNotFound
// when no config file exists.
type FileStore interface {
	Load(ctx context.Context) (domain.File, string, error)
	Save(ctx context.Context, file domain.File) (string, error)
	Exists(ctx context.Context) bool
}
