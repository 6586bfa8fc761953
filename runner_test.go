package assist

import (
	"context"
	"errors"
	"log/slog"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLimitedRunner_BoundsConcurrency(t *testing.T) {
	runner := NewLimitedRunner(context.Background(), 2)

	var current, peak int32
	for i := 0; i < 20; i++ {
		runner.Go(func() error {
			n := atomic.AddInt32(&current, 1)
			for {
				p := atomic.LoadInt32(&peak)
				if n <= p || atomic.CompareAndSwapInt32(&peak, p, n) {
					break
				}
			}
			time.Sleep(time.Millisecond)
			atomic.AddInt32(&current, -1)
			return nil
		})
	}

	require.NoError(t, runner.Wait())
	assert.LessOrEqual(t, atomic.LoadInt32(&peak), int32(2))
}

func TestRunner_PropagatesFirstError(t *testing.T) {
	runner := DefaultRunner(context.Background())
	boom := errors.New("boom")

	runner.Go(func() error { return nil })
	runner.Go(func() error { return boom })

	assert.ErrorIs(t, runner.Wait(), boom)
}

func TestRunner_ContextCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	runner := newGroupRunner(ctx, 4)

	runner.Go(func() error {
		select {
		case <-runner.ctx.Done():
			return runner.ctx.Err()
		case <-time.After(time.Second):
			return nil
		}
	})
	cancel()

	assert.ErrorIs(t, runner.Wait(), context.Canceled)
}

func TestRunner_EmptyWait(t *testing.T) {
	assert.NoError(t, DefaultRunner(context.Background()).Wait())
}

func TestRetryable_SingleAttemptByDefault(t *testing.T) {
	calls := 0
	err := retryable(func() error {
		calls++
		return errors.New("always fails")
	}, 0, 0, slog.Default())

	require.Error(t, err)
	assert.Equal(t, 1, calls)
}

func TestRetryable_RetriesThenSucceeds(t *testing.T) {
	calls := 0
	err := retryable(func() error {
		calls++
		if calls < 3 {
			return errors.New("flaky")
		}
		return nil
	}, 3, time.Millisecond, slog.Default())

	require.NoError(t, err)
	assert.Equal(t, 3, calls)
}

func TestRetryable_ExhaustsAttempts(t *testing.T) {
	calls := 0
	boom := errors.New("boom")
	err := retryable(func() error {
		calls++
		return boom
	}, 2, time.Millisecond, slog.Default())

	assert.ErrorIs(t, err, boom)
	assert.Equal(t, 3, calls) // initial attempt plus two retries
}
