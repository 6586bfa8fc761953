package assist

import (
	"context"
	"log/slog"
	"runtime"
	"time"

	"golang.org/x/sync/errgroup"
)

// Runner schedules the fan-out work of batched operations (embeddings) with
// any concurrency model.
type Runner interface {
	Go(fn func() error) // schedule
	Wait() error        // join / propagate first err
}

// DefaultRunner returns the default implementation backed by errgroup.Group.
func DefaultRunner(ctx context.Context) Runner {
	return newGroupRunner(ctx, runtime.NumCPU())
}

// NewLimitedRunner creates a runner with bounded concurrency.
func NewLimitedRunner(ctx context.Context, maxConcurrency int) Runner {
	return newGroupRunner(ctx, maxConcurrency)
}

type groupRunner struct {
	ctx context.Context // derived ctx shared by all tasks
	eg  *errgroup.Group
	sem chan struct{} // concurrency gate
}

func newGroupRunner(parent context.Context, maxConcurrency int) *groupRunner {
	eg, ctx := errgroup.WithContext(parent)
	return &groupRunner{
		ctx: ctx,
		eg:  eg,
		sem: make(chan struct{}, maxConcurrency),
	}
}

func (r *groupRunner) Go(fn func() error) {
	r.eg.Go(func() error {
		r.sem <- struct{}{}        // acquire
		defer func() { <-r.sem }() // release
		return fn()
	})
}

func (r *groupRunner) Wait() error { return r.eg.Wait() }

// retryable executes a gateway call with exponential backoff. max == 0
// means exactly one attempt, which is the default policy: the orchestrator
// never retries on its own.
func retryable(call func() error, max int, backoff time.Duration, log *slog.Logger) error {
	if max == 0 {
		return call()
	}

	delay := backoff
	var err error
	for i := 0; i <= max; i++ {
		if err = call(); err == nil {
			if i > 0 {
				log.Debug("attempt succeeded", "attempt", i+1)
			}
			return nil
		}
		if i == max {
			break
		}
		log.Debug("attempt failed, retrying", "attempt", i+1, "error", err, "delay", delay)
		time.Sleep(delay)
		delay *= 2
	}
	return err
}
