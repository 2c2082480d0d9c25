package syncs

import "context"

// acquire is the blocking half of the synchronizer protocol shared by every
// primitive in this package. It holds m's lock, loops until canAcquire
// reports the state is satisfiable, and runs commit under the same lock
// before returning.
//
// Between checks it waits on m under the remaining budget. An exhausted
// budget returns [ErrTimeout], but only after a final check: a state change
// that races with budget exhaustion still wins.
//
// Cancellation needs one extra step. Notification is advisory and addressed
// to an arbitrary waiter, so a waiter that is notified and then cancelled
// before it resumes would otherwise swallow that notification. On
// cancellation the state is re-checked under the lock, and if it is now
// satisfiable a single notification is re-issued for another waiter before
// the cancellation propagates.
func acquire(ctx context.Context, m *Monitor, b Budget, canAcquire func() bool, commit func()) error {
	m.Lock()
	defer m.Unlock()

	for {
		if canAcquire() {
			commit()

			return nil
		}

		if b.Exhausted() {
			return ErrTimeout
		}

		var err error

		b, err = m.Wait(ctx, b)
		if err != nil {
			if canAcquire() {
				m.NotifyOne()
			}

			return err
		}
	}
}

// release is the non-blocking half: apply a state change under m's lock and
// wake waiters. Broadcast when a single release can satisfy more than one
// waiter; a single notification suffices otherwise.
func release(m *Monitor, broadcast bool, apply func()) {
	m.Lock()
	defer m.Unlock()

	apply()

	if broadcast {
		m.NotifyAll()
	} else {
		m.NotifyOne()
	}
}
