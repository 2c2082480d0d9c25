package syncs

import (
	"context"
	"fmt"
)

// Latch is a one-shot countdown gate over a [Monitor]. Wait blocks until
// CountDown has been called the number of times given at construction; once
// open, the latch stays open.
type Latch struct {
	mon   Monitor
	count int
}

// NewLatch creates a [Latch] that opens after n calls to CountDown. A latch
// with n == 0 starts open. It returns [ErrNegativeCount] if n is negative.
func NewLatch(n int) (*Latch, error) {
	if n < 0 {
		return nil, fmt.Errorf("%w: %d", ErrNegativeCount, n)
	}

	return &Latch{count: n}, nil
}

// CountDown decrements the count, waking every waiter when it reaches zero
// (the one opening event satisfies all of them). Calls on an open latch are
// no-ops. CountDown never blocks.
func (l *Latch) CountDown() {
	l.mon.Lock()
	defer l.mon.Unlock()

	if l.count == 0 {
		return
	}

	l.count--
	if l.count == 0 {
		l.mon.NotifyAll()
	}
}

// Wait blocks until the latch is open.
//
// It returns [ErrTimeout] if the budget is exhausted first, or ctx.Err() if
// ctx is done while waiting.
func (l *Latch) Wait(ctx context.Context, b Budget) error {
	return acquire(ctx, &l.mon, b,
		func() bool { return l.count == 0 },
		func() {},
	)
}

// Count returns the number of CountDown calls still required to open the
// latch.
func (l *Latch) Count() int {
	l.mon.Lock()
	defer l.mon.Unlock()

	return l.count
}
