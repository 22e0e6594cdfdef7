// Package lock provides per-key mutual exclusion for suggestion generation.
//
// Two implementations are available:
//   - Local: in-process, for a single server
//   - Redis: shared through Redis, for several server replicas
package lock

import (
	"context"
	"errors"
)

var (
	// ErrNotAcquired is returned when the lock could not be taken before the
	// context was done.
	ErrNotAcquired = errors.New("lock not acquired")

	// ErrUnavailable is returned when the lock backend cannot be reached.
	ErrUnavailable = errors.New("lock backend unavailable")
)

// Locker serializes work per key.
type Locker interface {
	// Acquire blocks until the lock for key is held or ctx is done.
	// The returned release function is safe to call more than once.
	Acquire(ctx context.Context, key string) (release func(), err error)
}
