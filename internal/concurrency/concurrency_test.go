package concurrency

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLockManagerReturnsSameLockPerKey(t *testing.T) {
	lm := NewLockManager()

	a := lm.GetLock("creator-1")
	b := lm.GetLock("creator-1")
	c := lm.GetLock("creator-2")

	assert.Same(t, a, b)
	assert.NotSame(t, a, c)
}

func TestLockManagerSerializes(t *testing.T) {
	lm := NewLockManager()
	var counter int

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			lock := lm.GetLock("shared")
			lock.Lock()
			counter++
			lock.Unlock()
		}()
	}
	wg.Wait()

	assert.Equal(t, 20, counter)
}

func TestRateGateSpacesPasses(t *testing.T) {
	gate := NewRateGate(50 * time.Millisecond)
	var slept []time.Duration
	gate.sleep = func(_ context.Context, d time.Duration) error {
		slept = append(slept, d)
		return nil
	}

	ctx := context.Background()
	require.NoError(t, gate.Wait(ctx)) // first pass is immediate
	require.NoError(t, gate.Wait(ctx))
	require.NoError(t, gate.Wait(ctx))

	require.Len(t, slept, 2)
	assert.Greater(t, slept[0], time.Duration(0))
	assert.Greater(t, slept[1], slept[0])
}

func TestRateGateHonorsCancellation(t *testing.T) {
	gate := NewRateGate(time.Hour)

	ctx, cancel := context.WithCancel(context.Background())
	require.NoError(t, gate.Wait(ctx))

	cancel()
	err := gate.Wait(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}
