package trace

import (
	"sync"

	"go.emit.dev/emit/internal/goid"
)

// ActiveTraceparent is what the per-goroutine stack actually holds: the
// wire-format Traceparent plus the span id it was derived from (the W3C
// header itself has no parent-id field, so that side channel is kept
// here for SpanCtxt reconstruction).
type ActiveTraceparent struct {
	TP         Traceparent
	SpanParent SpanID
}

// The distributed trace context lives in a goroutine-keyed stack,
// standing in for the thread-local a single-threaded runtime would use
// (see internal/goid). It is process-wide and independent of any
// particular Ctxt value, matching the W3C header's role as ambient
// request-scoped state rather than an application property.
var (
	activeMu    sync.Mutex
	activeStack = map[uint64][]ActiveTraceparent{}
)

func pushActive(gid uint64, a ActiveTraceparent) {
	activeMu.Lock()
	activeStack[gid] = append(activeStack[gid], a)
	activeMu.Unlock()
}

func popActive(gid uint64) {
	activeMu.Lock()
	s := activeStack[gid]
	if n := len(s); n > 0 {
		s = s[:n-1]
		if len(s) == 0 {
			delete(activeStack, gid)
		} else {
			activeStack[gid] = s
		}
	}
	activeMu.Unlock()
}

func currentActiveForGID(gid uint64) (ActiveTraceparent, bool) {
	activeMu.Lock()
	defer activeMu.Unlock()
	s := activeStack[gid]
	if len(s) == 0 {
		return ActiveTraceparent{}, false
	}
	return s[len(s)-1], true
}

func currentActive() (ActiveTraceparent, bool) {
	return currentActiveForGID(goid.Current())
}

// Current returns the Traceparent active on the calling goroutine, or
// the empty-but-sampled sentinel ("00-0..0-0..0-01") when none is
// active — matching the common default of "trace everything until told
// otherwise".
func Current() Traceparent {
	a, ok := currentActive()
	if !ok {
		return Traceparent{Flags: FlagSampled}
	}
	return a.TP
}

// Push stacks tp as the active traceparent on the calling goroutine and
// returns a function that pops it. If there is already an active
// traceparent for the same trace id, the pushed ActiveTraceparent
// adopts its span id as SpanParent; otherwise tp is treated as the root
// of a new trace in this process (no parent).
//
// Use Push directly when propagating an inbound header at the start of
// a request, independent of any Ctxt frame; TraceparentCtxt manages its
// own push/pop tied to frame Enter/Exit for the ambient-context path.
func (tp Traceparent) Push() func() {
	gid := goid.Current()
	var parent SpanID
	if active, ok := currentActiveForGID(gid); ok && !tp.TraceID.IsZero() && active.TP.TraceID == tp.TraceID {
		parent = active.TP.SpanID
	}
	pushActive(gid, ActiveTraceparent{TP: tp, SpanParent: parent})
	return func() { popActive(gid) }
}
