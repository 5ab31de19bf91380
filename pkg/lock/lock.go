// Package lock serializes commits so that a stock read and the write that depends
// on it never interleave with another commit.
package lock

import (
	"context"
	"errors"
	"time"
)

var ErrTimeout = errors.New("timed out waiting for commit lock")

type Locker interface {
	// Acquire blocks until the lock is held, ctx is done or the wait budget runs
	// out. The returned release func must be called exactly once.
	Acquire(ctx context.Context) (release func(), err error)
}

// Local is a single in-process lock with a bounded wait.
type Local struct {
	sem  chan struct{}
	wait time.Duration
}

func NewLocal(wait time.Duration) *Local {
	return &Local{sem: make(chan struct{}, 1), wait: wait}
}

func (l *Local) Acquire(ctx context.Context) (func(), error) {
	timer := time.NewTimer(l.wait)
	defer timer.Stop()

	select {
	case l.sem <- struct{}{}:
		return func() { <-l.sem }, nil
	case <-timer.C:
		return nil, ErrTimeout
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}
