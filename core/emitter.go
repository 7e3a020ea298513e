package core

import "time"

// Emitter hands events to a sink. Emit never returns an error — the
// contract is fire-and-forget; failures are accounted for internally
// (see internal/metrics) rather than propagated to the call site.
type Emitter interface {
	Emit(evt Event)
	// BlockingFlush waits up to timeout for in-flight work to drain.
	// Sinks with no async work return true immediately; sinks that do
	// not support flushing return false.
	BlockingFlush(timeout time.Duration) bool
}

// AndTo composes two emitters: Emit forwards to both; BlockingFlush
// waits on both concurrently, splitting the timeout evenly between
// them, and returns the AND of their results.
type AndTo struct {
	A, B Emitter
}

func (c AndTo) Emit(evt Event) {
	c.A.Emit(evt)
	c.B.Emit(evt)
}

func (c AndTo) BlockingFlush(timeout time.Duration) bool {
	half := timeout / 2
	type result struct{ ok bool }
	done := make(chan result, 2)
	go func() { done <- result{c.A.BlockingFlush(half)} }()
	go func() { done <- result{c.B.BlockingFlush(half)} }()
	r1 := <-done
	r2 := <-done
	return r1.ok && r2.ok
}

// Wrapping transforms or filters an event before an inner Emitter sees
// it. Returning ok=false from Transform drops the event. Flush always
// defers to the inner emitter.
type Wrapping struct {
	Inner     Emitter
	Transform func(Event) (Event, bool)
}

func (w Wrapping) Emit(evt Event) {
	if w.Transform != nil {
		var ok bool
		evt, ok = w.Transform(evt)
		if !ok {
			return
		}
	}
	w.Inner.Emit(evt)
}

func (w Wrapping) BlockingFlush(timeout time.Duration) bool {
	return w.Inner.BlockingFlush(timeout)
}

// DiscardEmitter drops every event; BlockingFlush always succeeds
// instantly. cmd/emitctl uses it as the sink when no emitter is
// enabled.
type DiscardEmitter struct{}

func (DiscardEmitter) Emit(Event)                         {}
func (DiscardEmitter) BlockingFlush(time.Duration) bool    { return true }

// FuncEmitter adapts a plain function into a synchronous Emitter whose
// BlockingFlush always returns true (no async work to wait for).
type FuncEmitter func(Event)

func (f FuncEmitter) Emit(evt Event)               { f(evt) }
func (FuncEmitter) BlockingFlush(time.Duration) bool { return true }
