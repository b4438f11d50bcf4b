package query

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

// DefaultTimeout bounds a single background action
const DefaultTimeout = 30 * time.Second

// AsyncRunner runs each job on its own goroutine and logs failures. Jobs
// inherit the runner's base context, so cancelling it aborts them.
type AsyncRunner struct {
	ctx     context.Context
	timeout time.Duration
	logger  *slog.Logger
	wg      sync.WaitGroup
}

// NewAsyncRunner creates a runner bound to ctx
func NewAsyncRunner(ctx context.Context, logger *slog.Logger) *AsyncRunner {
	if logger == nil {
		logger = slog.Default()
	}
	return &AsyncRunner{ctx: ctx, timeout: DefaultTimeout, logger: logger}
}

// Go starts fn in the background
func (r *AsyncRunner) Go(name string, fn func(ctx context.Context) error) {
	r.wg.Add(1)
	go func() {
		defer r.wg.Done()
		defer func() {
			if p := recover(); p != nil {
				r.logger.Error("runner: job panicked", slog.String("job", name), slog.Any("panic", p))
			}
		}()

		ctx, cancel := context.WithTimeout(r.ctx, r.timeout)
		defer cancel()

		start := time.Now()
		if err := fn(ctx); err != nil {
			r.logger.Error("runner: job failed",
				slog.String("job", name),
				slog.String("error", err.Error()))
			return
		}
		r.logger.Debug("runner: job done",
			slog.String("job", name),
			slog.Duration("took", time.Since(start)))
	}()
}

// Wait blocks until every started job returned
func (r *AsyncRunner) Wait() {
	r.wg.Wait()
}
