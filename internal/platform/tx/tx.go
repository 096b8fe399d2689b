package tx

import (
	"context"
	"sync"
)

// Manager scopes a read-decide-write sequence against shared state.
type Manager interface {
	Within(ctx context.Context, fn func(context.Context) error) error
}

type NoopManager struct{}

func (NoopManager) Within(ctx context.Context, fn func(context.Context) error) error {
	return fn(ctx)
}

// Serial runs sequences one at a time inside this process. Other processes
// writing the same store still race, and the last write wins.
type Serial struct {
	mu sync.Mutex
}

func (s *Serial) Within(ctx context.Context, fn func(context.Context) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := ctx.Err(); err != nil {
		return err
	}
	return fn(ctx)
}
