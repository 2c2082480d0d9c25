// Package syncs provides monitor-based blocking synchronization primitives.
//
// Every blocking primitive in this package shares one construction: a
// [Monitor] (a mutex paired with an advisory wait/notify mechanism) guards a
// piece of synchronization state, and blocking operations loop over a
// predicate on that state, waiting between checks under a [Budget].
// [Semaphore], [Queue], [BoundedQueue], and [Latch] are instances of that
// pattern.
package syncs
