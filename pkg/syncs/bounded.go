package syncs

import (
	"context"
	"fmt"
)

// BoundedQueue is a fixed-capacity FIFO queue over a [Monitor]. Unlike
// [Queue], Send blocks while the queue is full.
//
// Senders and receivers share one monitor, so a single notification could
// land on a waiter of the wrong kind and be wasted; both sides broadcast
// after committing.
type BoundedQueue[T any] struct {
	mon      Monitor
	capacity int
	items    []T
}

// NewBoundedQueue creates a [BoundedQueue] holding at most capacity
// messages. It returns [ErrInvalidCapacity] if capacity is below one.
func NewBoundedQueue[T any](capacity int) (*BoundedQueue[T], error) {
	if capacity < 1 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidCapacity, capacity)
	}

	return &BoundedQueue[T]{capacity: capacity}, nil
}

// Send blocks until space is available, then appends v.
//
// It returns [ErrTimeout] if the budget is exhausted first, or ctx.Err() if
// ctx is done while waiting; in both cases the queue is unchanged.
func (q *BoundedQueue[T]) Send(ctx context.Context, v T, b Budget) error {
	return acquire(ctx, &q.mon, b,
		func() bool { return len(q.items) < q.capacity },
		func() {
			q.items = append(q.items, v)
			q.mon.NotifyAll()
		},
	)
}

// Receive blocks until a message is pending, then removes and returns the
// oldest one. Failure semantics match [Queue.Receive].
func (q *BoundedQueue[T]) Receive(ctx context.Context, b Budget) (T, error) {
	var msg T

	err := acquire(ctx, &q.mon, b,
		func() bool { return len(q.items) > 0 },
		func() {
			msg = q.items[0]

			var zero T
			q.items[0] = zero
			q.items = q.items[1:]
			q.mon.NotifyAll()
		},
	)

	return msg, err
}

// Len returns the number of pending messages.
func (q *BoundedQueue[T]) Len() int {
	q.mon.Lock()
	defer q.mon.Unlock()

	return len(q.items)
}

// Cap returns the queue's capacity.
func (q *BoundedQueue[T]) Cap() int {
	return q.capacity
}
