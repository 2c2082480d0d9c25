package syncs

import "time"

// Budget bounds the total time a blocking operation may spend waiting.
// The zero value is an unbounded budget.
//
// A Budget is established once at the start of an operation and is
// decremented by elapsed wall-clock time across repeated waits, so a
// predicate re-check after a spurious wakeup never restarts the clock.
type Budget struct {
	remaining time.Duration
	bounded   bool
}

// Unbounded returns a [Budget] that never expires.
func Unbounded() Budget {
	return Budget{}
}

// Within returns a [Budget] allowing at most d of total waiting. A
// non-positive d yields an already-exhausted budget, so a blocking operation
// fails immediately unless it can complete without waiting at all.
func Within(d time.Duration) Budget {
	if d < 0 {
		d = 0
	}

	return Budget{remaining: d, bounded: true}
}

// Exhausted reports whether no waiting time remains.
func (b Budget) Exhausted() bool {
	return b.bounded && b.remaining <= 0
}

// Remaining returns the waiting time left and whether the budget is bounded
// at all. An unbounded budget returns (0, false).
func (b Budget) Remaining() (time.Duration, bool) {
	return b.remaining, b.bounded
}

// spend deducts elapsed waiting time, clamping at zero.
func (b Budget) spend(elapsed time.Duration) Budget {
	if !b.bounded {
		return b
	}

	b.remaining -= elapsed
	if b.remaining < 0 {
		b.remaining = 0
	}

	return b
}
