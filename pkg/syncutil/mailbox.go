package syncutil

import (
	"context"
	"sync"
)

// Mailbox is a single-slot signal that is not lost when nobody is waiting yet.
// A signal may carry a receipt semaphore which the recipient posts when it
// releases the mailbox, letting the sender learn that it was consumed.
//
// The zero value is an empty mailbox ready for use
type Mailbox struct {
	mu      sync.Mutex
	cond    *sync.Cond
	pending bool
	receipt *RefSemaphore
}

// NewMailbox returns an empty mailbox
func NewMailbox() *Mailbox {
	m := &Mailbox{}
	m.cond = sync.NewCond(&m.mu)
	return m
}

func (m *Mailbox) lock() {
	m.mu.Lock()
	if m.cond == nil {
		m.cond = sync.NewCond(&m.mu)
	}
}

// Signal marks the mailbox pending and wakes one waiter. The mailbox takes its
// own reference on receipt, which may be nil. An unconsumed earlier signal is
// overwritten and its receipt released
func (m *Mailbox) Signal(receipt *RefSemaphore) {
	fresh := receipt.Acquire()

	m.lock()
	old := m.receipt
	m.receipt = fresh
	m.pending = true
	m.cond.Signal()
	m.mu.Unlock()

	old.Release()
}

// Retract withdraws an unconsumed signal and releases its receipt
func (m *Mailbox) Retract() {
	m.lock()
	old := m.receipt
	m.receipt = nil
	m.pending = false
	m.mu.Unlock()

	old.Release()
}

// WaitLock blocks until a signal is pending, consumes it and returns with the
// mailbox locked. A signal sent before the call is observed immediately. When
// ctx is done first the mailbox is left unlocked and ctx.Err() is returned
func (m *Mailbox) WaitLock(ctx context.Context) error {
	m.lock()

	if ctx.Done() != nil {
		stop := context.AfterFunc(ctx, func() {
			m.mu.Lock()
			m.cond.Broadcast()
			m.mu.Unlock()
		})
		defer stop()
	}

	for !m.pending {
		if err := ctx.Err(); err != nil {
			m.mu.Unlock()
			return err
		}
		m.cond.Wait()
	}

	m.pending = false
	return nil
}

// Unlock posts the attached receipt, if any, and releases the mailbox. It must
// only follow a successful WaitLock
func (m *Mailbox) Unlock() {
	if m.receipt != nil {
		m.receipt.Post()
	}
	m.mu.Unlock()
}

// Pending reports whether an unconsumed signal is stored
func (m *Mailbox) Pending() bool {
	m.lock()
	defer m.mu.Unlock()
	return m.pending
}
