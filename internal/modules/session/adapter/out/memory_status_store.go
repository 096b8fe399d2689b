package out

import (
	"context"
	"sync"

	"pomo/internal/modules/session/domain"
	"pomo/internal/platform/clock"
)

type MemoryStatusStore struct {
	mu     sync.Mutex
	clock  clock.Clock
	record *domain.Record
}

func NewMemoryStatusStore(clock clock.Clock) *MemoryStatusStore {
	return &MemoryStatusStore{clock: clock}
}

func (s *MemoryStatusStore) Read(_ context.Context) domain.Record {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.record == nil {
		return domain.IdleAt(s.clock.Now())
	}
	return *s.record
}

func (s *MemoryStatusStore) Write(_ context.Context, record domain.Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.record = &record
	return nil
}
