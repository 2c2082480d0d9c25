package syncs

import "context"

// Queue is an unbounded FIFO queue over a [Monitor]. Send never blocks;
// Receive blocks until a message is pending. Each message is delivered to
// exactly one receiver, in send order.
//
// The zero value is an empty, ready-to-use queue.
type Queue[T any] struct {
	mon   Monitor
	items []T
}

// NewQueue creates an empty [Queue].
func NewQueue[T any]() *Queue[T] {
	return &Queue[T]{}
}

// Send appends v and wakes one pending receiver. A send makes exactly one
// more receive possible, so a single notification suffices; waking every
// receiver would only have the rest find the queue empty again. Send never
// blocks.
func (q *Queue[T]) Send(v T) {
	release(&q.mon, false, func() { q.items = append(q.items, v) })
}

// Receive blocks until a message is pending, then removes and returns the
// oldest one.
//
// It returns [ErrTimeout] if the budget is exhausted first, or ctx.Err() if
// ctx is done while waiting; in both cases the queue is unchanged.
func (q *Queue[T]) Receive(ctx context.Context, b Budget) (T, error) {
	var msg T

	err := acquire(ctx, &q.mon, b,
		func() bool { return len(q.items) > 0 },
		func() {
			msg = q.items[0]

			var zero T
			q.items[0] = zero // drop the reference for GC
			q.items = q.items[1:]
		},
	)

	return msg, err
}

// Len returns the number of pending messages.
func (q *Queue[T]) Len() int {
	q.mon.Lock()
	defer q.mon.Unlock()

	return len(q.items)
}
