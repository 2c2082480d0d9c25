// Package pool provides a worker pool whose concurrency is bounded by a
// [syncs.Semaphore].
package pool

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"runtime"
	"sync"

	"github.com/hashicorp/go-multierror"

	"github.com/macropower/syncs/pkg/syncs"
)

// ErrInvalidLimit indicates a [Pool] was configured with a concurrency limit
// below one.
var ErrInvalidLimit = errors.New("concurrency limit must be positive")

// Pool runs tasks with bounded concurrency, collecting their errors. Create
// instances with [New].
type Pool struct {
	sem    *syncs.Semaphore
	logger *slog.Logger

	wg sync.WaitGroup

	mu   sync.Mutex
	errs *multierror.Error
}

type options struct {
	logger *slog.Logger
	limit  int64
}

// Option configures a [Pool].
type Option func(*options)

// WithLimit sets the maximum number of concurrently running tasks. The
// default is [runtime.GOMAXPROCS](0).
func WithLimit(n int64) Option {
	return func(o *options) { o.limit = n }
}

// WithLogger sets a logger for per-task debug logging. The default discards
// all records.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) { o.logger = logger }
}

// New creates a [Pool]. It returns [ErrInvalidLimit] if the configured limit
// is below one.
func New(opts ...Option) (*Pool, error) {
	o := &options{
		limit:  int64(runtime.GOMAXPROCS(0)),
		logger: slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(o)
	}

	if o.limit < 1 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidLimit, o.limit)
	}

	sem, err := syncs.NewSemaphore(o.limit)
	if err != nil {
		return nil, fmt.Errorf("create semaphore: %w", err)
	}

	return &Pool{sem: sem, logger: o.logger}, nil
}

// Go submits a task, blocking while the pool is at its concurrency limit. It
// returns ctx.Err() if ctx is done before a slot frees up; the task is then
// never run. The task's error, if any, is reported by [Pool.Wait].
func (p *Pool) Go(ctx context.Context, name string, task func(context.Context) error) error {
	if err := p.sem.Acquire(ctx, 1, syncs.Unbounded()); err != nil {
		return fmt.Errorf("acquire slot: %w", err)
	}

	p.wg.Add(1)

	go func() {
		defer p.wg.Done()
		defer p.sem.Release(1)

		p.logger.Debug("task start", "task", name)

		if err := task(ctx); err != nil {
			p.logger.Debug("task failed", "task", name, "err", err)

			p.mu.Lock()
			p.errs = multierror.Append(p.errs, fmt.Errorf("%s: %w", name, err))
			p.mu.Unlock()

			return
		}

		p.logger.Debug("task done", "task", name)
	}()

	return nil
}

// Wait blocks until every submitted task has finished and returns their
// accumulated errors, if any.
func (p *Pool) Wait() error {
	p.wg.Wait()

	p.mu.Lock()
	defer p.mu.Unlock()

	return p.errs.ErrorOrNil()
}
