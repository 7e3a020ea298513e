package batch

import (
	"errors"
	"time"
)

// BatchError is returned by an on_batch callback to report failure.
// Retryable, when non-empty, is the subset of the batch that should be
// retried (the rest is considered delivered or permanently lost); a
// nil/empty Retryable means the whole batch is discarded.
type BatchError[T any] struct {
	Retryable []T
}

func (BatchError[T]) Error() string { return "batch: on_batch failed" }

// Receiver drains a batching channel. Exactly one Receiver drains a
// given channel; it is not safe to call Exec/RunSync/RunAsync
// concurrently from multiple goroutines on the same Receiver.
type Receiver[T any] struct {
	shared        *shared[T]
	metrics       Metrics
	idleDelay     *Delay
	retryDelay    *Delay
	retryAttempts int
	window        *window
}

// take atomically swaps out the pending batch (if any) and the
// registered watchers, matching step 1–2 of Receiver::exec.
func (r *Receiver[T]) take() (current []T, onTake, onFlush []func(), isOpen bool) {
	r.shared.mu.Lock()
	isOpen = r.shared.isOpen
	if len(r.shared.nextBatch) > 0 {
		r.shared.isInBatch = true
		current = r.shared.nextBatch
		r.shared.nextBatch = make([]T, 0, r.window.predict())
	} else {
		r.shared.isInBatch = false
	}
	onTake = r.shared.onTake
	r.shared.onTake = nil
	onFlush = r.shared.onFlush
	r.shared.onFlush = nil
	r.shared.mu.Unlock()
	return
}

// Exec runs the receive loop until the channel is closed and its final
// batch (if any) has drained. wait suspends the loop for the given
// duration (time.Sleep for a dedicated goroutine, a
// cancellable-context wait for the cooperative variant — see
// RunSync/RunAsync); onBatch processes one batch, returning a
// BatchError to request a retry of some or all of it.
func (r *Receiver[T]) Exec(wait func(time.Duration), onBatch func([]T) error) {
	for {
		current, onTake, onFlush, isOpen := r.take()
		fireAll(onTake)

		if len(current) == 0 {
			fireAll(onFlush)
			if !isOpen {
				return
			}
			wait(r.idleDelay.Next())
			continue
		}

		r.retryDelay.Reset()
		r.idleDelay.Reset()
		r.window.record(len(current))

		attempt := 0
		for {
			err, panicked := callOnBatch(onBatch, current)
			if panicked {
				r.metrics.BatchPanicked()
				break
			}
			if err == nil {
				r.metrics.BatchProcessed()
				break
			}
			r.metrics.BatchFailed()
			var be BatchError[T]
			if errors.As(err, &be) && len(be.Retryable) > 0 && attempt < r.retryAttempts {
				wait(r.retryDelay.Next())
				current = be.Retryable
				r.metrics.BatchRetry()
				attempt++
				continue
			}
			break
		}
		fireAll(onFlush)
	}
}

func callOnBatch[T any](onBatch func([]T) error, batch []T) (err error, panicked bool) {
	defer func() {
		if recover() != nil {
			panicked = true
		}
	}()
	err = onBatch(batch)
	return
}

func fireAll(fns []func()) {
	for _, f := range fns {
		callWatcher(f)
	}
}

func callWatcher(f func()) {
	defer func() { recover() }()
	f()
}
