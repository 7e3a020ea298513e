// Package batch implements the bounded single-writer/single-reader
// batching channel (§4.6): producers push items without blocking,
// truncating on overflow; a single receiver drains accumulated batches
// through a user callback with retry and exponential backoff, driven
// by either a dedicated goroutine (the Go analogue of a dedicated OS
// thread) or a context-aware variant standing in for a cooperative
// async runtime.
package batch

import "sync"

// shared is the state a Sender and Receiver pair both touch, guarded
// by a single mutex as the spec requires (every operation completes in
// bounded time — one lock acquisition — so there is no reason to reach
// for anything more elaborate than sync.Mutex here).
type shared[T any] struct {
	mu        sync.Mutex
	nextBatch []T
	onTake    []func()
	onFlush   []func()
	isOpen    bool
	isInBatch bool
}

func newShared[T any]() *shared[T] {
	return &shared[T]{isOpen: true}
}
