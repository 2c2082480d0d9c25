package syncs

import (
	"context"
	"fmt"
)

// Semaphore is a counting semaphore over a [Monitor]. Permits are acquired
// in whole requests: an acquire of n permits either deducts all n at once or
// leaves the count untouched. The permit count never goes negative.
type Semaphore struct {
	mon     Monitor
	permits int64
}

// NewSemaphore creates a [Semaphore] holding initial permits. It returns
// [ErrNegativePermits] if initial is negative.
func NewSemaphore(initial int64) (*Semaphore, error) {
	if initial < 0 {
		return nil, fmt.Errorf("%w: %d", ErrNegativePermits, initial)
	}

	return &Semaphore{permits: initial}, nil
}

// Acquire blocks until n permits are available, then deducts them all at
// once. n must be positive.
//
// It returns [ErrTimeout] if the budget is exhausted first, or ctx.Err() if
// ctx is done while waiting; in both cases the permit count is unchanged.
func (s *Semaphore) Acquire(ctx context.Context, n int64, b Budget) error {
	return acquire(ctx, &s.mon, b,
		func() bool { return s.permits >= n },
		func() { s.permits -= n },
	)
}

// Release returns n permits. A single release can make several pending
// acquires satisfiable at once (two waiters each wanting one permit after a
// release of two), so every waiter is woken to re-check. Release never
// blocks.
func (s *Semaphore) Release(n int64) {
	release(&s.mon, true, func() { s.permits += n })
}

// Permits returns the current permit count.
func (s *Semaphore) Permits() int64 {
	s.mon.Lock()
	defer s.mon.Unlock()

	return s.permits
}
