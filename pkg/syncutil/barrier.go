package syncutil

import "sync"

// Barrier is a one-shot rendezvous: every caller of Wait blocks until the
// required number of callers has arrived. It is not reset after release
type Barrier struct {
	mu        sync.Mutex
	cond      *sync.Cond
	remaining int
}

// NewBarrier creates a barrier that opens after required calls to Wait
func NewBarrier(required int) *Barrier {
	b := &Barrier{remaining: required}
	b.cond = sync.NewCond(&b.mu)
	return b
}

// Wait blocks until the barrier opens. The last arrival wakes the rest
func (b *Barrier) Wait() {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.remaining--
	if b.remaining == 0 {
		b.cond.Broadcast()
	}

	for b.remaining > 0 {
		b.cond.Wait()
	}
}

// Remaining returns how many arrivals are still missing
func (b *Barrier) Remaining() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.remaining
}
