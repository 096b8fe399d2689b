package service

import (
	"context"
	"errors"
	"sync"

	"github.com/hashicorp/go-hclog"

	"pomo/internal/modules/settings/domain"
	settingsout "pomo/internal/modules/settings/port/out"
	apperrors "pomo/internal/platform/errors"
)

// SettingsService caches the resolved settings between reloads. A missing
// or unreadable file is never fatal; defaults apply.
type SettingsService struct {
	store  settingsout.FileStore
	logger hclog.Logger

	mu     sync.RWMutex
	loaded bool
	cached domain.Settings
	source string
}

func NewSettingsService(store settingsout.FileStore, logger hclog.Logger) *SettingsService {
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	return &SettingsService{store: store, logger: logger}
}

// Current returns the cached settings, loading them on first use.
func (s *SettingsService) Current(ctx context.Context) (domain.Settings, string) {
	s.mu.RLock()
	if s.loaded {
		defer s.mu.RUnlock()
		return s.cached, s.source
	}
	s.mu.RUnlock()
	_ = s.Reload(ctx)
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cached, s.source
}

// Reload re-reads the config file. The returned error is informational: the
// cache always holds usable settings afterwards.
func (s *SettingsService) Reload(ctx context.Context) error {
	settings, source, err := s.load(ctx)
	s.mu.Lock()
	s.cached, s.source, s.loaded = settings, source, true
	s.mu.Unlock()
	return err
}

func (s *SettingsService) load(ctx context.Context) (domain.Settings, string, error) {
	file, source, err := s.store.Load(ctx)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			s.logger.Debug("no config file, using defaults")
			return domain.Defaults(), "", nil
		}
		s.logger.Warn("config unreadable, using defaults", "error", err)
		return domain.Defaults(), "", err
	}
	settings, problems := domain.Resolve(file)
	for _, problem := range problems {
		s.logger.Warn("config value ignored", "path", source, "error", problem)
	}
	return settings, source, nil
}
