package syncs

import "sync"

// KeyLocker provides per-key mutual exclusion.
// See [KeyLock] for an implementation.
type KeyLocker[K comparable] interface {
	Lock(key K)
	Unlock(key K)
}

// KeyLock is a per-key mutex that allows independent keys to be locked
// concurrently while serializing access to the same key. Create instances
// with [NewKeyLock], or use the zero value directly.
type KeyLock[K comparable] struct {
	locks map[K]*sync.Mutex
	mu    sync.Mutex
}

// NewKeyLock creates a new [KeyLock].
func NewKeyLock[K comparable]() *KeyLock[K] {
	return &KeyLock[K]{
		locks: make(map[K]*sync.Mutex),
	}
}

func (kl *KeyLock[K]) getLock(key K) *sync.Mutex {
	kl.mu.Lock()
	defer kl.mu.Unlock()

	if kl.locks == nil {
		kl.locks = make(map[K]*sync.Mutex)
	}

	l, ok := kl.locks[key]
	if !ok {
		l = &sync.Mutex{}
		kl.locks[key] = l
	}

	return l
}

// Lock acquires the mutex for the given key, blocking if it is already held.
func (kl *KeyLock[K]) Lock(key K) {
	kl.getLock(key).Lock()
}

// TryLock attempts to acquire the mutex for the given key without blocking,
// reporting whether it succeeded.
func (kl *KeyLock[K]) TryLock(key K) bool {
	return kl.getLock(key).TryLock()
}

// Unlock releases the mutex for the given key.
func (kl *KeyLock[K]) Unlock(key K) {
	kl.getLock(key).Unlock()
}

// WithKey runs fn while holding the mutex for the given key, releasing it on
// every exit path.
func (kl *KeyLock[K]) WithKey(key K, fn func()) {
	kl.Lock(key)
	defer kl.Unlock(key)

	fn()
}
