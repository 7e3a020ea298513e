package trace

import (
	"go.emit.dev/emit/core"
	"go.emit.dev/emit/ctxt"
	"go.emit.dev/emit/internal/goid"
)

// TraceparentCtxt wraps an ambient context so that trace_id/span_id/
// span_parent are tracked through the process-wide traceparent stack
// (active.go) rather than as ordinary pushed properties, and overlaid
// back onto whatever the inner context exposes. This is how a single
// process-wide distributed-trace identity stays consistent even though
// the ordinary Ctxt stack is otherwise independent per open/push call.
//
// The inner context is a concrete *ctxt.Ctxt rather than a generic
// "any Ctxt-shaped backend" — Go has no clean way to be generic over a
// family of backends whose Frame types differ, short of an interface
// wide enough to erase that difference, so this specializes to the one
// production backend rather than modeling a type parameter nothing else
// would ever instantiate.
type TraceparentCtxt struct {
	Inner   *ctxt.Ctxt
	Sampler Sampler
}

// TraceparentFrame is the frame type produced by TraceparentCtxt's
// Open* methods.
type TraceparentFrame struct {
	inner      *ctxt.Frame
	active     ActiveTraceparent
	hasActive  bool
	enteredGID uint64
	entered    bool
}

func (tc TraceparentCtxt) OpenRoot(p core.Props) *TraceparentFrame {
	return tc.open(p, tc.Inner.OpenRoot)
}

func (tc TraceparentCtxt) OpenPush(p core.Props) *TraceparentFrame {
	return tc.open(p, tc.Inner.OpenPush)
}

func (tc TraceparentCtxt) OpenDisabled(p core.Props) *TraceparentFrame {
	return tc.open(p, tc.Inner.OpenDisabled)
}

func (tc TraceparentCtxt) open(p core.Props, openInner func(core.Props) *ctxt.Frame) *TraceparentFrame {
	requested := SpanCtxtFromProps(p)
	active, hasActive := currentActive()

	tf := &TraceparentFrame{}
	switch {
	case requested.SpanID.IsZero():
		// P does not ask for a span id change; carry the active value
		// forward unchanged (no new push needed on Enter).
	case hasActive && requested.SpanID == active.TP.SpanID:
		// Already the active value.
	case hasActive && !active.TP.TraceID.IsZero():
		tf.active = ActiveTraceparent{
			TP:         Traceparent{TraceID: active.TP.TraceID, SpanID: requested.SpanID, Flags: active.TP.Flags},
			SpanParent: active.TP.SpanID,
		}
		tf.hasActive = true
	default:
		sampled := true
		if tc.Sampler != nil {
			sampled = tc.Sampler(SpanCtxt{TraceID: requested.TraceID, SpanID: requested.SpanID})
		}
		var flags byte
		if sampled {
			flags = FlagSampled
		}
		tf.active = ActiveTraceparent{TP: Traceparent{TraceID: requested.TraceID, SpanID: requested.SpanID, Flags: flags}}
		tf.hasActive = true
	}

	tf.inner = openInner(stripSpanKeys(p))
	return tf
}

func (tc TraceparentCtxt) Enter(f *TraceparentFrame) {
	if f == nil || f.entered {
		return
	}
	if f.hasActive {
		gid := goid.Current()
		pushActive(gid, f.active)
		f.enteredGID = gid
	}
	tc.Inner.Enter(f.inner)
	f.entered = true
}

func (tc TraceparentCtxt) Exit(f *TraceparentFrame) {
	if f == nil || !f.entered {
		return
	}
	tc.Inner.Exit(f.inner)
	if f.hasActive {
		popActive(f.enteredGID)
	}
	f.entered = false
}

func (tc TraceparentCtxt) Close(f *TraceparentFrame) {
	if f != nil {
		tc.Inner.Close(f.inner)
	}
}

// WithCurrent overlays trace_id/span_id/span_parent from the active
// traceparent onto whatever the inner context exposes: if the active
// traceparent is sampled, its SpanCtxt is overlaid; if unsampled, the
// three keys are left absent (an unsampled trace is invisible to
// consumers that key off those properties) regardless of what the
// inner context happens to hold.
func (tc TraceparentCtxt) WithCurrent(fn func(core.Props)) {
	tc.Inner.WithCurrent(func(inner core.Props) {
		var overlay core.Props = core.Empty{}
		if active, ok := currentActive(); ok && active.TP.Sampled() {
			sc := SpanCtxt{TraceID: active.TP.TraceID, SpanParent: active.SpanParent, SpanID: active.TP.SpanID}
			overlay = sc.ToProps()
		}
		fn(overlayProps{Base: stripSpanKeys(inner), Overlay: overlay})
	})
}

// overlayProps yields Base's pairs then Overlay's, but Lookup always
// prefers Overlay — the trace identity is authoritative over whatever
// the wrapped inner context happens to still carry.
type overlayProps struct {
	Base, Overlay core.Props
}

func (o overlayProps) ForEach(fn func(core.Str, core.Value) bool) {
	stopped := false
	o.Base.ForEach(func(k core.Str, v core.Value) bool {
		if fn(k, v) {
			stopped = true
			return true
		}
		return false
	})
	if stopped {
		return
	}
	o.Overlay.ForEach(fn)
}

func (overlayProps) IsUnique() bool { return false }

func (o overlayProps) Lookup(key string) (core.Value, bool) {
	if v, ok := core.Get(o.Overlay, key); ok {
		return v, true
	}
	return core.Get(o.Base, key)
}

func stripSpanKeys(p core.Props) core.Props {
	return core.FuncProps{
		Visit: func(fn func(core.Str, core.Value) bool) {
			p.ForEach(func(k core.Str, v core.Value) bool {
				switch k.String() {
				case TraceIDKey, SpanIDKey, SpanParentKey:
					return false
				}
				return fn(k, v)
			})
		},
	}
}
