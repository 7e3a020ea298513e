package batch

import (
	"context"
	"time"
)

// RunSync drives r to completion using blocking waits and a
// synchronous onBatch, the analogue of the spec's dedicated-OS-thread
// backend. Call it with `go batch.RunSync(r, onBatch)`: Go goroutines,
// unlike OS threads, are cheap enough that "give the receiver its own
// goroutine" is simply the normal way to run one, sync or not.
func RunSync[T any](r *Receiver[T], onBatch func([]T) error) {
	r.Exec(time.Sleep, onBatch)
}

// RunAsync drives r with a context-aware onBatch, the analogue of the
// spec's single-threaded cooperative backend. Go has no single-threaded
// event loop to cooperate with — wait still parks this goroutine — but
// onBatch is handed a context so long-running transport calls can
// honour cancellation the way an async task would, and the loop exits
// promptly once ctx is done (closing the channel, so later Sends are
// dropped).
func RunAsync[T any](ctx context.Context, r *Receiver[T], onBatch func(context.Context, []T) error) {
	wait := func(d time.Duration) {
		t := time.NewTimer(d)
		defer t.Stop()
		select {
		case <-t.C:
		case <-ctx.Done():
			r.shared.mu.Lock()
			r.shared.isOpen = false
			r.shared.mu.Unlock()
		}
	}
	wrapped := func(batch []T) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		return onBatch(ctx, batch)
	}
	r.Exec(wait, wrapped)
}
