package syncs

import (
	"context"
	"sync"
	"time"
)

// Monitor pairs a mutex with an advisory wait/notify mechanism. At most one
// goroutine executes inside the monitor at a time; a goroutine that calls
// [Monitor.Wait] releases the lock atomically with suspension and holds it
// again when Wait returns.
//
// Notification is advisory in the Lampson–Redell style: a woken waiter is
// guaranteed only that it may reacquire the lock, not that the condition it
// waits for now holds, and other goroutines may enter the monitor ahead of
// it. Callers must therefore re-check their condition in a loop around Wait.
//
// The zero value is ready to use.
type Monitor struct {
	mu      sync.Mutex
	waiters []chan struct{}
}

// Lock acquires the monitor's lock.
func (m *Monitor) Lock() {
	m.mu.Lock()
}

// Unlock releases the monitor's lock.
func (m *Monitor) Unlock() {
	m.mu.Unlock()
}

// WithLock runs fn while holding the monitor's lock, releasing it on every
// exit path.
func (m *Monitor) WithLock(fn func()) {
	m.mu.Lock()
	defer m.mu.Unlock()

	fn()
}

// Wait suspends the calling goroutine until it is notified, the budget is
// exhausted, or ctx is done. The monitor's lock must be held; Wait releases
// it while suspended and holds it again on return.
//
// Wait returns the budget less the time spent suspended. The returned error
// is non-nil only for cancellation (ctx.Err()); budget exhaustion is not an
// error here, so the caller re-checks its condition one final time before
// deciding it timed out.
func (m *Monitor) Wait(ctx context.Context, b Budget) (Budget, error) {
	wake := make(chan struct{})
	m.waiters = append(m.waiters, wake)

	var timeout <-chan time.Time
	if d, bounded := b.Remaining(); bounded {
		t := time.NewTimer(d)
		defer t.Stop()

		timeout = t.C
	}

	start := time.Now()
	m.mu.Unlock()

	var (
		err      error
		notified bool
	)

	select {
	case <-wake:
		notified = true
	case <-timeout:
	case <-ctx.Done():
		err = ctx.Err()
	}

	m.mu.Lock()

	if !notified && !m.forget(wake) {
		// A notification landed while this waiter was already leaving on the
		// timeout or cancellation path. It would otherwise be lost; hand it
		// to another waiter.
		m.NotifyOne()
	}

	return b.spend(time.Since(start)), err
}

// NotifyOne wakes at most one goroutine suspended in [Monitor.Wait]. The
// monitor's lock must be held.
func (m *Monitor) NotifyOne() {
	if len(m.waiters) == 0 {
		return
	}

	wake := m.waiters[0]
	m.waiters = m.waiters[1:]
	close(wake)
}

// NotifyAll wakes every goroutine suspended in [Monitor.Wait]. The monitor's
// lock must be held.
func (m *Monitor) NotifyAll() {
	for _, wake := range m.waiters {
		close(wake)
	}

	m.waiters = nil
}

// forget removes wake from the waiter list, reporting whether it was still
// registered. A missing entry means the waiter was already notified.
func (m *Monitor) forget(wake chan struct{}) bool {
	for i, w := range m.waiters {
		if w == wake {
			m.waiters = append(m.waiters[:i], m.waiters[i+1:]...)

			return true
		}
	}

	return false
}
