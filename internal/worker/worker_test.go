package worker

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

func TestNewSemaphore(t *testing.T) {
	tests := []struct {
		count int
		want  int
	}{
		{4, 4},
		{1, 1},
		{0, 1},
		{-3, 1},
	}

	for _, tt := range tests {
		s := NewSemaphore(tt.count)
		if got := s.Available(); got != tt.want {
			t.Errorf("NewSemaphore(%d).Available() = %d, want %d", tt.count, got, tt.want)
		}
	}
}

func TestSemaphoreLimitsConcurrency(t *testing.T) {
	const limit = 3
	s := NewSemaphore(limit)

	var inFlight, peak int32
	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := s.Acquire(context.Background()); err != nil {
				t.Error(err)
				return
			}
			defer s.Release()

			n := atomic.AddInt32(&inFlight, 1)
			for {
				p := atomic.LoadInt32(&peak)
				if n <= p || atomic.CompareAndSwapInt32(&peak, p, n) {
					break
				}
			}
			time.Sleep(2 * time.Millisecond)
			atomic.AddInt32(&inFlight, -1)
		}()
	}
	wg.Wait()

	if peak > limit {
		t.Errorf("peak concurrency = %d, want <= %d", peak, limit)
	}
	if s.Available() != limit {
		t.Errorf("Available() = %d after all releases, want %d", s.Available(), limit)
	}
}

func TestSemaphoreAcquireCancelled(t *testing.T) {
	s := NewSemaphore(1)
	if err := s.Acquire(context.Background()); err != nil {
		t.Fatal(err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := s.Acquire(ctx); !errors.Is(err, context.Canceled) {
		t.Errorf("Acquire() error = %v, want context.Canceled", err)
	}

	s.Release()
	s.Release() // extra release is dropped
	if s.Available() != 1 {
		t.Errorf("Available() = %d, want 1", s.Available())
	}
}
