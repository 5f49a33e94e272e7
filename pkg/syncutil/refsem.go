// Package syncutil provides the synchronization primitives the intersection is
// coordinated with: a reference-counted semaphore, a single-slot signal mailbox
// with read receipts and a one-shot barrier
package syncutil

import (
	"context"
	"errors"
	"math"
	"sync"
	"time"

	"golang.org/x/sync/semaphore"
)

// ErrNegativeRefCount is the panic value raised when a RefSemaphore is released
// more times than it was acquired
var ErrNegativeRefCount = errors.New("syncutil: reference count dropped below zero")

// ErrDestroyed is returned by Wait, and raised by Acquire, on a semaphore whose
// last reference is gone
var ErrDestroyed = errors.New("syncutil: semaphore already destroyed")

// capacity is the size of the inner weighted semaphore. Tokens not handed out
// are held by the RefSemaphore itself, so Post never releases more than was
// acquired
const capacity = math.MaxInt64

// RefSemaphore is a counting semaphore shared by several owners, none of
// which can tell locally whether it is the last user. The inner semaphore is
// torn down by whichever owner drops the final reference
type RefSemaphore struct {
	mu        sync.Mutex
	refs      int
	inner     *semaphore.Weighted
	onDestroy func()
}

// NewRefSemaphore creates a semaphore with the given initial count and a
// reference count of one
func NewRefSemaphore(value int64) *RefSemaphore {
	if value < 0 {
		value = 0
	}

	inner := semaphore.NewWeighted(capacity)
	inner.TryAcquire(capacity - value)

	return &RefSemaphore{
		refs:  1,
		inner: inner,
	}
}

// OnDestroy registers fn to run once, when the last reference is released
func (s *RefSemaphore) OnDestroy(fn func()) *RefSemaphore {
	s.mu.Lock()
	s.onDestroy = fn
	s.mu.Unlock()
	return s
}

// Acquire takes an additional reference and returns s. It is a no-op on nil
// and panics with ErrDestroyed once the last reference has been released
func (s *RefSemaphore) Acquire() *RefSemaphore {
	if s == nil {
		return nil
	}

	s.mu.Lock()
	if s.refs <= 0 {
		s.mu.Unlock()
		panic(ErrDestroyed)
	}
	s.refs++
	s.mu.Unlock()
	return s
}

// Release drops a reference. Dropping the last one destroys the inner
// semaphore. It is a no-op on nil and panics with ErrNegativeRefCount when the
// calls are unbalanced
func (s *RefSemaphore) Release() {
	if s == nil {
		return
	}

	s.mu.Lock()
	s.refs--
	refs := s.refs
	var hook func()
	if refs == 0 {
		s.inner = nil
		hook = s.onDestroy
	}
	s.mu.Unlock()

	if refs < 0 {
		panic(ErrNegativeRefCount)
	}

	if hook != nil {
		hook()
	}
}

// Refs returns the number of live references
func (s *RefSemaphore) Refs() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.refs
}

func (s *RefSemaphore) weighted() *semaphore.Weighted {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.inner
}

// Post increments the semaphore, waking one waiter if any. The caller must hold
// a reference
func (s *RefSemaphore) Post() {
	if inner := s.weighted(); inner != nil {
		inner.Release(1)
	}
}

// Wait decrements the semaphore, blocking until it is positive or ctx is done.
// A deadline on ctx turns this into a timed wait
func (s *RefSemaphore) Wait(ctx context.Context) error {
	inner := s.weighted()
	if inner == nil {
		return ErrDestroyed
	}
	return inner.Acquire(ctx, 1)
}

// WaitUntil is Wait bounded by an absolute deadline
func (s *RefSemaphore) WaitUntil(ctx context.Context, deadline time.Time) error {
	ctx, cancel := context.WithDeadline(ctx, deadline)
	defer cancel()
	return s.Wait(ctx)
}
