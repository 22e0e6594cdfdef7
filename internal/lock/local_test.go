package lock

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

func TestLocal(t *testing.T) {
	ctx := context.Background()

	t.Run("second acquire waits for release", func(t *testing.T) {
		l := NewLocal()

		release, err := l.Acquire(ctx, "group-1")
		if err != nil {
			t.Fatalf("Acquire failed: %v", err)
		}

		acquired := make(chan struct{})
		go func() {
			r, err := l.Acquire(ctx, "group-1")
			if err != nil {
				t.Errorf("second Acquire failed: %v", err)
				close(acquired)
				return
			}
			close(acquired)
			r()
		}()

		select {
		case <-acquired:
			t.Fatal("second Acquire returned while lock was held")
		case <-time.After(50 * time.Millisecond):
		}

		release()

		select {
		case <-acquired:
		case <-time.After(time.Second):
			t.Fatal("second Acquire did not return after release")
		}
	})

	t.Run("different keys do not block", func(t *testing.T) {
		l := NewLocal()

		r1, err := l.Acquire(ctx, "group-1")
		if err != nil {
			t.Fatalf("Acquire group-1 failed: %v", err)
		}
		defer r1()

		tctx, cancel := context.WithTimeout(ctx, time.Second)
		defer cancel()
		r2, err := l.Acquire(tctx, "group-2")
		if err != nil {
			t.Fatalf("Acquire group-2 failed: %v", err)
		}
		r2()
	})

	t.Run("context cancellation returns ErrNotAcquired", func(t *testing.T) {
		l := NewLocal()

		release, err := l.Acquire(ctx, "group-1")
		if err != nil {
			t.Fatalf("Acquire failed: %v", err)
		}
		defer release()

		tctx, cancel := context.WithTimeout(ctx, 20*time.Millisecond)
		defer cancel()
		_, err = l.Acquire(tctx, "group-1")
		if !errors.Is(err, ErrNotAcquired) {
			t.Errorf("expected ErrNotAcquired, got %v", err)
		}
		if !errors.Is(err, context.DeadlineExceeded) {
			t.Errorf("expected DeadlineExceeded in chain, got %v", err)
		}
	})

	t.Run("release is idempotent and entries are dropped", func(t *testing.T) {
		l := NewLocal()

		release, err := l.Acquire(ctx, "group-1")
		if err != nil {
			t.Fatalf("Acquire failed: %v", err)
		}
		release()
		release()

		l.mu.Lock()
		n := len(l.slots)
		l.mu.Unlock()
		if n != 0 {
			t.Errorf("expected no slots after release, got %d", n)
		}
	})

	t.Run("holders never overlap", func(t *testing.T) {
		l := NewLocal()

		var inside, maxInside int32
		var wg sync.WaitGroup
		for i := 0; i < 20; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				release, err := l.Acquire(ctx, "group-1")
				if err != nil {
					t.Errorf("Acquire failed: %v", err)
					return
				}
				n := atomic.AddInt32(&inside, 1)
				for {
					m := atomic.LoadInt32(&maxInside)
					if n <= m || atomic.CompareAndSwapInt32(&maxInside, m, n) {
						break
					}
				}
				time.Sleep(time.Millisecond)
				atomic.AddInt32(&inside, -1)
				release()
			}()
		}
		wg.Wait()

		if maxInside != 1 {
			t.Errorf("expected at most 1 concurrent holder, got %d", maxInside)
		}
	})
}
