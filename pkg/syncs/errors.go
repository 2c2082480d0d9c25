package syncs

import "errors"

var (
	// ErrTimeout indicates a blocking operation exhausted its [Budget] before
	// its condition became satisfiable. It is an expected outcome rather than
	// a failure of the synchronizer; state is left unchanged.
	ErrTimeout = errors.New("budget exhausted")

	// ErrNegativePermits indicates a [Semaphore] was constructed with a
	// negative initial permit count.
	ErrNegativePermits = errors.New("negative initial permits")

	// ErrInvalidCapacity indicates a [BoundedQueue] was constructed with a
	// capacity below one.
	ErrInvalidCapacity = errors.New("capacity must be positive")

	// ErrNegativeCount indicates a [Latch] was constructed with a negative
	// count.
	ErrNegativeCount = errors.New("negative initial count")
)
