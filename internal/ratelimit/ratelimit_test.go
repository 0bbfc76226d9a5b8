package ratelimit

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFirstWaitIsImmediate(t *testing.T) {
	limiter := NewJittered(time.Hour, time.Hour)

	start := time.Now()
	err := limiter.Wait(context.Background())
	require.NoError(t, err)
	assert.Less(t, time.Since(start), time.Second)
}

func TestWaitSpacesConsecutiveCalls(t *testing.T) {
	limiter := NewJittered(20*time.Millisecond, 20*time.Millisecond)

	require.NoError(t, limiter.Wait(context.Background()))

	start := time.Now()
	require.NoError(t, limiter.Wait(context.Background()))
	assert.GreaterOrEqual(t, time.Since(start), 15*time.Millisecond)
}

func TestWaitReturnsOnCancelledContext(t *testing.T) {
	limiter := NewJittered(time.Hour, time.Hour)
	require.NoError(t, limiter.Wait(context.Background()))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := limiter.Wait(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestZeroDelaysDisableWaiting(t *testing.T) {
	limiter := NewJittered(0, 0)

	start := time.Now()
	for i := 0; i < 5; i++ {
		require.NoError(t, limiter.Wait(context.Background()))
	}
	assert.Less(t, time.Since(start), time.Second)
}

func TestMaxBelowMinIsClamped(t *testing.T) {
	limiter := NewJittered(10*time.Millisecond, time.Millisecond)
	assert.Equal(t, 10*time.Millisecond, limiter.delay())
}
