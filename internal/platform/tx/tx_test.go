package tx_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	"pomo/internal/platform/tx"
)

func TestSerialRunsOneAtATime(t *testing.T) {
	t.Parallel()
	manager := &tx.Serial{}
	var (
		wg      sync.WaitGroup
		active  int
		maxSeen int
		mu      sync.Mutex
	)
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = manager.Within(context.Background(), func(context.Context) error {
				mu.Lock()
				active++
				if active > maxSeen {
					maxSeen = active
				}
				mu.Unlock()
				mu.Lock()
				active--
				mu.Unlock()
				return nil
			})
		}()
	}
	wg.Wait()
	if maxSeen != 1 {
		t.Fatalf("expected serial execution, saw %d concurrent", maxSeen)
	}
}

func TestSerialSkipsCancelledContext(t *testing.T) {
	t.Parallel()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	called := false
	err := (&tx.Serial{}).Within(ctx, func(context.Context) error {
		called = true
		return nil
	})
	if !errors.Is(err, context.Canceled) || called {
		t.Fatalf("expected cancelled context to short-circuit, err=%v called=%v", err, called)
	}
}
