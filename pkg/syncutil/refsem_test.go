package syncutil_test

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/anggasct/crossroad/pkg/syncutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRefSemaphore_References(t *testing.T) {
	t.Run("New starts with one reference", func(t *testing.T) {
		sem := syncutil.NewRefSemaphore(0)
		assert.Equal(t, 1, sem.Refs())
	})

	t.Run("Acquire returns the same semaphore", func(t *testing.T) {
		sem := syncutil.NewRefSemaphore(0)
		assert.Same(t, sem, sem.Acquire())
		assert.Equal(t, 2, sem.Refs())
	})

	t.Run("nil is tolerated", func(t *testing.T) {
		var sem *syncutil.RefSemaphore
		assert.Nil(t, sem.Acquire())
		assert.NotPanics(t, func() { sem.Release() })
	})

	t.Run("over release panics", func(t *testing.T) {
		sem := syncutil.NewRefSemaphore(0)
		sem.Release()
		assert.PanicsWithValue(t, syncutil.ErrNegativeRefCount, func() { sem.Release() })
	})
}

func TestRefSemaphore_DestroyedOnceAfterLastRelease(t *testing.T) {
	var destroyed atomic.Int32

	sem := syncutil.NewRefSemaphore(0).OnDestroy(func() { destroyed.Add(1) })

	var wg sync.WaitGroup
	for i := 0; i < 64; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				ref := sem.Acquire()
				ref.Post()
				ref.Release()
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(0), destroyed.Load(), "destroyed while the creator still holds a reference")
	assert.Equal(t, 1, sem.Refs())

	sem.Release()
	assert.Equal(t, int32(1), destroyed.Load())
	assert.Equal(t, 0, sem.Refs())
}

func TestRefSemaphore_AcquireAfterDestroy(t *testing.T) {
	var destroyed atomic.Int32

	sem := syncutil.NewRefSemaphore(0).OnDestroy(func() { destroyed.Add(1) })
	sem.Release()

	assert.PanicsWithValue(t, syncutil.ErrDestroyed, func() { sem.Acquire() })
	assert.Equal(t, 0, sem.Refs(), "a destroyed semaphore must not be revived")
	assert.Equal(t, int32(1), destroyed.Load())
}

func TestRefSemaphore_Wait(t *testing.T) {
	t.Run("initial value is available", func(t *testing.T) {
		sem := syncutil.NewRefSemaphore(2)
		defer sem.Release()

		ctx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()

		require.NoError(t, sem.Wait(ctx))
		require.NoError(t, sem.Wait(ctx))
	})

	t.Run("times out when never posted", func(t *testing.T) {
		sem := syncutil.NewRefSemaphore(0)
		defer sem.Release()

		start := time.Now()
		err := sem.WaitUntil(context.Background(), start.Add(50*time.Millisecond))

		assert.ErrorIs(t, err, context.DeadlineExceeded)
		assert.GreaterOrEqual(t, time.Since(start), 40*time.Millisecond)
	})

	t.Run("post wakes a waiter", func(t *testing.T) {
		sem := syncutil.NewRefSemaphore(0)
		defer sem.Release()

		done := make(chan error, 1)
		go func() {
			done <- sem.WaitUntil(context.Background(), time.Now().Add(5*time.Second))
		}()

		select {
		case <-done:
			t.Fatal("wait returned before post")
		case <-time.After(50 * time.Millisecond):
		}

		sem.Post()

		select {
		case err := <-done:
			assert.NoError(t, err)
		case <-time.After(time.Second):
			t.Fatal("waiter was not woken by post")
		}
	})

	t.Run("destroyed semaphore refuses waits", func(t *testing.T) {
		sem := syncutil.NewRefSemaphore(1)
		sem.Release()
		assert.ErrorIs(t, sem.Wait(context.Background()), syncutil.ErrDestroyed)
	})
}
