package resilience_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"notekeeper/internal/resilience"
)

var errBoom = errors.New("boom")

type fakeClock struct {
	now time.Time
}

func (c *fakeClock) Now() time.Time { return c.now }

func (c *fakeClock) Advance(d time.Duration) { c.now = c.now.Add(d) }

func TestCircuitBreakerLifecycle(t *testing.T) {
	ctx := context.Background()
	clock := &fakeClock{now: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)}
	cb := resilience.NewCircuitBreakerWithClock("test", resilience.CircuitBreakerConfig{
		ErrorThreshold:   2,
		Timeout:          time.Second,
		SuccessThreshold: 2,
	}, clock.Now)

	failing := func() error { return errBoom }
	ok := func() error { return nil }

	assert.Equal(t, resilience.StateClosed, cb.GetState())

	require.ErrorIs(t, cb.Execute(ctx, failing), errBoom)
	assert.Equal(t, resilience.StateClosed, cb.GetState())
	require.ErrorIs(t, cb.Execute(ctx, failing), errBoom)
	assert.Equal(t, resilience.StateOpen, cb.GetState())

	called := false
	err := cb.Execute(ctx, func() error {
		called = true
		return nil
	})
	require.ErrorIs(t, err, resilience.ErrCircuitOpen)
	assert.False(t, called, "open breaker must not call the operation")

	clock.Advance(2 * time.Second)
	require.NoError(t, cb.Execute(ctx, ok))
	assert.Equal(t, resilience.StateHalfOpen, cb.GetState())
	require.NoError(t, cb.Execute(ctx, ok))
	assert.Equal(t, resilience.StateClosed, cb.GetState())
}

func TestCircuitBreakerHalfOpenFailureReopens(t *testing.T) {
	ctx := context.Background()
	clock := &fakeClock{now: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)}
	cb := resilience.NewCircuitBreakerWithClock("test", resilience.CircuitBreakerConfig{
		ErrorThreshold:   1,
		Timeout:          time.Second,
		SuccessThreshold: 1,
	}, clock.Now)

	require.Error(t, cb.Execute(ctx, func() error { return errBoom }))
	require.Equal(t, resilience.StateOpen, cb.GetState())

	clock.Advance(2 * time.Second)
	require.Error(t, cb.Execute(ctx, func() error { return errBoom }))
	assert.Equal(t, resilience.StateOpen, cb.GetState())
}

func TestCircuitStateString(t *testing.T) {
	assert.Equal(t, "closed", resilience.StateClosed.String())
	assert.Equal(t, "open", resilience.StateOpen.String())
	assert.Equal(t, "half-open", resilience.StateHalfOpen.String())
	assert.Equal(t, "unknown", resilience.CircuitState(42).String())
}

func TestRetryExecute(t *testing.T) {
	cfg := resilience.RetryConfig{
		MaxAttempts:    3,
		InitialBackoff: time.Millisecond,
		MaxBackoff:     2 * time.Millisecond,
		BackoffFactor:  2,
	}

	t.Run("succeeds after transient failures", func(t *testing.T) {
		attempts := 0
		err := resilience.NewRetry("test", cfg).Execute(context.Background(), func() error {
			attempts++
			if attempts < 3 {
				return errBoom
			}
			return nil
		})

		require.NoError(t, err)
		assert.Equal(t, 3, attempts)
	})

	t.Run("gives up after max attempts", func(t *testing.T) {
		attempts := 0
		err := resilience.NewRetry("test", cfg).Execute(context.Background(), func() error {
			attempts++
			return errBoom
		})

		require.ErrorIs(t, err, errBoom)
		assert.Equal(t, 3, attempts)
	})

	t.Run("does not retry non retryable errors", func(t *testing.T) {
		attempts := 0
		err := resilience.NewRetry("test", cfg).Execute(context.Background(), func() error {
			attempts++
			return context.Canceled
		})

		require.ErrorIs(t, err, context.Canceled)
		assert.Equal(t, 1, attempts)
	})

	t.Run("stops when context is canceled", func(t *testing.T) {
		slow := cfg
		slow.InitialBackoff = time.Minute

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		err := resilience.NewRetry("test", slow).Execute(ctx, func() error { return errBoom })
		require.ErrorIs(t, err, resilience.ErrContextCanceled)
	})
}

func TestStartupRetryConfig(t *testing.T) {
	cfg := resilience.StartupRetryConfig(7)
	assert.Equal(t, 7, cfg.MaxAttempts)
	assert.NotNil(t, cfg.ShouldRetry)

	assert.Equal(t, resilience.DefaultRetryConfig().MaxAttempts, resilience.StartupRetryConfig(0).MaxAttempts)
}
