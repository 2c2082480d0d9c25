package syncs_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/macropower/syncs/pkg/syncs"
)

// enterWait blocks m's caller in [syncs.Monitor.Wait] and closes entered
// once the waiter is registered. The returned channel yields the Wait error
// after the waiter resumes and has released the lock again.
func enterWait(ctx context.Context, m *syncs.Monitor, b syncs.Budget, entered chan<- struct{}) <-chan error {
	done := make(chan error, 1)

	go func() {
		m.Lock()
		// The lock is held from here until Wait has registered the waiter
		// and suspended, so once the lock is observed free again the waiter
		// is guaranteed to be registered.
		close(entered)

		_, err := m.Wait(ctx, b)

		m.Unlock()
		done <- err
	}()

	return done
}

func TestMonitorWithLock(t *testing.T) {
	t.Parallel()

	var (
		m       syncs.Monitor
		counter int
	)

	const n = 100

	var wg sync.WaitGroup
	wg.Add(n)

	for range n {
		go func() {
			defer wg.Done()

			m.WithLock(func() {
				counter++
			})
		}()
	}

	wg.Wait()

	assert.Equal(t, n, counter)
}

func TestMonitorNotifyOneWakesExactlyOne(t *testing.T) {
	t.Parallel()

	var m syncs.Monitor

	ctx := context.Background()

	enteredA := make(chan struct{})
	doneA := enterWait(ctx, &m, syncs.Unbounded(), enteredA)
	<-enteredA

	enteredB := make(chan struct{})
	doneB := enterWait(ctx, &m, syncs.Unbounded(), enteredB)
	<-enteredB

	m.WithLock(m.NotifyOne)

	select {
	case err := <-doneA:
		require.NoError(t, err)
	case err := <-doneB:
		require.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("no waiter woke up")
	}

	// The other waiter must still be suspended.
	select {
	case <-doneA:
		t.Fatal("both waiters woke up")
	case <-doneB:
		t.Fatal("both waiters woke up")
	case <-time.After(50 * time.Millisecond):
	}

	m.WithLock(m.NotifyOne)

	select {
	case err := <-doneA:
		require.NoError(t, err)
	case err := <-doneB:
		require.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("second waiter never woke up")
	}
}

func TestMonitorNotifyAllWakesEveryone(t *testing.T) {
	t.Parallel()

	var m syncs.Monitor

	ctx := context.Background()

	const n = 5

	dones := make([]<-chan error, 0, n)
	for range n {
		entered := make(chan struct{})
		dones = append(dones, enterWait(ctx, &m, syncs.Unbounded(), entered))
		<-entered
	}

	m.WithLock(m.NotifyAll)

	for _, done := range dones {
		select {
		case err := <-done:
			require.NoError(t, err)
		case <-time.After(time.Second):
			t.Fatal("a waiter never woke up")
		}
	}
}

func TestMonitorWaitBudgetExpires(t *testing.T) {
	t.Parallel()

	var m syncs.Monitor

	const d = 50 * time.Millisecond

	start := time.Now()

	m.Lock()
	b, err := m.Wait(context.Background(), syncs.Within(d))
	m.Unlock()

	require.NoError(t, err)
	assert.True(t, b.Exhausted(), "budget should be spent after the timer fires")
	assert.GreaterOrEqual(t, time.Since(start), d)
}

func TestMonitorWaitCancellation(t *testing.T) {
	t.Parallel()

	var m syncs.Monitor

	ctx, cancel := context.WithCancel(context.Background())

	entered := make(chan struct{})
	done := enterWait(ctx, &m, syncs.Unbounded(), entered)
	<-entered

	cancel()

	select {
	case err := <-done:
		require.ErrorIs(t, err, context.Canceled)
	case <-time.After(time.Second):
		t.Fatal("cancelled waiter never returned")
	}
}

func TestMonitorWaitReacquiresLock(t *testing.T) {
	t.Parallel()

	var (
		m     syncs.Monitor
		state int
	)

	entered := make(chan struct{})
	done := make(chan struct{})

	go func() {
		defer close(done)

		m.Lock()
		close(entered)

		_, err := m.Wait(context.Background(), syncs.Unbounded())
		assert.NoError(t, err)

		// Wait returns with the lock held, so this read is ordered after the
		// notifier's write below.
		assert.Equal(t, 1, state)

		m.Unlock()
	}()

	<-entered

	m.WithLock(func() {
		state = 1
		m.NotifyOne()
	})

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("waiter never resumed")
	}
}
