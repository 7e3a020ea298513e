package trace

import "go.emit.dev/emit/core"

// Well-known property keys under which a SpanCtxt's fields travel
// through an event's Props and the ambient context.
const (
	TraceIDKey    = "trace_id"
	SpanIDKey     = "span_id"
	SpanParentKey = "span_parent"
)

// SpanCtxt is the identity of one span: its trace, its own span id, and
// the id of the span that created it (if any). A zero field means
// "absent" — this is safe because TraceID{} and SpanID{} are never
// valid non-zero identities.
type SpanCtxt struct {
	TraceID    TraceID
	SpanParent SpanID
	SpanID     SpanID
}

// IsEmpty reports whether no part of sc is populated.
func (sc SpanCtxt) IsEmpty() bool {
	return sc.TraceID.IsZero() && sc.SpanParent.IsZero() && sc.SpanID.IsZero()
}

// NewChild derives the SpanCtxt of a child span: same trace id (minted
// fresh if sc has none), this span's id becomes the child's parent, and
// a fresh span id is minted for the child. Returns false if rng cannot
// produce the ids needed.
func (sc SpanCtxt) NewChild(rng core.Rng) (SpanCtxt, bool) {
	tid := sc.TraceID
	if tid.IsZero() {
		var ok bool
		tid, ok = NewTraceID(rng)
		if !ok {
			return SpanCtxt{}, false
		}
	}
	sid, ok := NewSpanID(rng)
	if !ok {
		return SpanCtxt{}, false
	}
	return SpanCtxt{TraceID: tid, SpanParent: sc.SpanID, SpanID: sid}, true
}

// Current pulls the trace_id/span_id/span_parent properties visible
// through ambient's current frame.
func Current(ambient core.AmbientProps) SpanCtxt {
	var sc SpanCtxt
	if ambient == nil {
		return sc
	}
	ambient.WithCurrent(func(p core.Props) { sc = SpanCtxtFromProps(p) })
	return sc
}

// ToProps renders sc as a Props, omitting any field that is absent.
func (sc SpanCtxt) ToProps() core.Props {
	var out core.SliceProps
	if !sc.TraceID.IsZero() {
		out = append(out, core.Pair{Key: core.NewStaticStr(TraceIDKey), Val: ValueOfTraceID(sc.TraceID)})
	}
	if !sc.SpanID.IsZero() {
		out = append(out, core.Pair{Key: core.NewStaticStr(SpanIDKey), Val: ValueOfSpanID(sc.SpanID)})
	}
	if !sc.SpanParent.IsZero() {
		out = append(out, core.Pair{Key: core.NewStaticStr(SpanParentKey), Val: ValueOfSpanID(sc.SpanParent)})
	}
	return out
}

// SpanCtxtFromProps reconstructs a SpanCtxt from a Props, reading
// whichever of the three well-known keys are present.
func SpanCtxtFromProps(p core.Props) SpanCtxt {
	var sc SpanCtxt
	if tid, ok := pullTraceID(p, TraceIDKey); ok {
		sc.TraceID = tid
	}
	if sid, ok := pullSpanID(p, SpanIDKey); ok {
		sc.SpanID = sid
	}
	if sid, ok := pullSpanID(p, SpanParentKey); ok {
		sc.SpanParent = sid
	}
	return sc
}

// ValueOfTraceID captures a TraceID, retaining it for Downcast[TraceID].
func ValueOfTraceID(t TraceID) core.Value { return core.OfDisplay(t) }

// ValueOfSpanID captures a SpanID, retaining it for Downcast[SpanID].
func ValueOfSpanID(s SpanID) core.Value { return core.OfDisplay(s) }

func pullTraceID(p core.Props, key string) (TraceID, bool) {
	v, ok := core.Get(p, key)
	if !ok {
		return TraceID{}, false
	}
	if t, ok := core.Downcast[TraceID](v); ok {
		return t, true
	}
	t, err := TraceIDFromHex(v.Display())
	if err != nil {
		return TraceID{}, false
	}
	return t, true
}

func pullSpanID(p core.Props, key string) (SpanID, bool) {
	v, ok := core.Get(p, key)
	if !ok {
		return SpanID{}, false
	}
	if s, ok := core.Downcast[SpanID](v); ok {
		return s, true
	}
	s, err := SpanIDFromHex(v.Display())
	if err != nil {
		return SpanID{}, false
	}
	return s, true
}
