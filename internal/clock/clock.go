// Package clock provides the production core.Clock implementations:
// Wall, backed by the system clock, and Fake, a deterministic
// stand-in for tests. core itself only defines the Clock contract
// (§4.3/C3 of the component design); a concrete implementation is
// deliberately kept out of core so call sites choose it explicitly.
package clock

import (
	"sync"
	"time"

	"go.emit.dev/emit/core"
)

// Wall is the real-time core.Clock, backed by time.Now. The zero
// value is ready to use.
type Wall struct{}

// Now returns the current wall-clock time as a core.Timestamp.
func (Wall) Now() core.Timestamp {
	ts, err := core.FromTime(time.Now())
	if err != nil {
		// time.Now() is always within core.Timestamp's representable
		// range on any system clock that isn't badly misconfigured;
		// fall back to the epoch rather than propagate an error from a
		// method the core.Clock contract declares infallible.
		ts, _ = core.FromUnixNanos(0)
	}
	return ts
}

// Fake is a deterministic, mutable core.Clock for tests: Now reports
// whatever time was last set (or the time the Fake was created with),
// and Advance moves it forward without touching the real clock.
type Fake struct {
	mu  sync.Mutex
	now time.Time
}

// NewFake returns a Fake clock reporting t until Set or Advance move it.
func NewFake(t time.Time) *Fake {
	return &Fake{now: t}
}

func (f *Fake) Now() core.Timestamp {
	f.mu.Lock()
	defer f.mu.Unlock()
	ts, _ := core.FromTime(f.now)
	return ts
}

// Set pins the fake clock to t.
func (f *Fake) Set(t time.Time) {
	f.mu.Lock()
	f.now = t
	f.mu.Unlock()
}

// Advance moves the fake clock forward by d.
func (f *Fake) Advance(d time.Duration) {
	f.mu.Lock()
	f.now = f.now.Add(d)
	f.mu.Unlock()
}
