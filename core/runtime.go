package core

import "time"

// AmbientProps is satisfied by the ambient context stack (ctxt.Ctxt);
// defined here rather than imported to avoid a core<->ctxt import
// cycle, since ctxt builds on core's Props/Value types.
type AmbientProps interface {
	WithCurrent(fn func(Props))
}

// Runtime assembles an Emitter, Filter, ambient context, Clock, and
// Rng into the single object call sites emit through.
type Runtime struct {
	Emitter Emitter
	Filter  Filter
	Ctxt    AmbientProps
	Clock   Clock
	Rng     Rng
}

// Emit builds an Event from mdl/tpl/props, merges in the ambient
// context's props (behind the event's own — the event's own Props win
// lookups on a duplicate key), timestamps it using Clock if extent is
// absent, evaluates Filter, and on acceptance forwards to Emitter.
func (r Runtime) Emit(mdl Path, tpl Template, props Props, extent Extent) {
	combined := Props(props)
	if r.Ctxt != nil {
		r.Ctxt.WithCurrent(func(ambient Props) {
			combined = AndProps(props, ambient)
		})
	}
	if !extent.HasExtent() && r.Clock != nil {
		extent = PointExtent(r.Clock.Now())
	}
	evt := Event{Mdl: mdl, Tpl: tpl, Extent: extent, Props: combined}
	if r.Filter != nil && !r.Filter.Matches(evt) {
		return
	}
	if r.Emitter != nil {
		r.Emitter.Emit(evt)
	}
}

// BlockingFlush delegates to the assembled Emitter, or returns true
// immediately if none is configured.
func (r Runtime) BlockingFlush(timeout time.Duration) bool {
	if r.Emitter == nil {
		return true
	}
	return r.Emitter.BlockingFlush(timeout)
}
