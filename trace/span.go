package trace

import (
	"go.emit.dev/emit/core"
)

// Span represents one in-flight unit of work: a name, a start time, a
// SpanCtxt derived from whatever was ambient when it started, and a set
// of properties accumulated until Finish emits the completed span as an
// Event with EventKindSpan.
type Span struct {
	rt    core.Runtime
	mdl   core.Path
	tpl   core.Template
	start core.Timestamp
	props core.SliceProps
	sctx  SpanCtxt
}

// StartSpan begins a span: its SpanCtxt is a child of whatever SpanCtxt
// is current in rt.Ctxt (or a fresh root trace if none is current), and
// its start time comes from rt.Clock. rng supplies the new span/trace
// ids; if it fails to produce them, the span silently carries an empty
// SpanCtxt rather than panicking — callers that require a populated
// trace identity should check Span.Ctxt().IsEmpty() themselves.
func StartSpan(rt core.Runtime, rng core.Rng, mdl core.Path, tpl core.Template, props core.Props) *Span {
	parent := Current(rt.Ctxt)
	child, ok := parent.NewChild(rng)
	if !ok {
		child = SpanCtxt{}
	}
	var start core.Timestamp
	if rt.Clock != nil {
		start = rt.Clock.Now()
	}
	return &Span{
		rt:    rt,
		mdl:   mdl,
		tpl:   tpl,
		start: start,
		props: core.Collect(props, false),
		sctx:  child,
	}
}

// Ctxt returns the span's own identity, usable to start further child
// spans or to propagate as a Traceparent.
func (s *Span) Ctxt() SpanCtxt { return s.sctx }

// Traceparent renders the span's identity as a W3C header, always
// marked sampled — a Span has no direct notion of sampling, so callers that need it should
// derive the Traceparent from the active trace.Current() instead when
// propagating outbound, and reserve this for logging/debugging.
func (s *Span) Traceparent() Traceparent {
	return Traceparent{TraceID: s.sctx.TraceID, SpanID: s.sctx.SpanID, Flags: FlagSampled}
}

// AddProps appends additional properties, visible to Finish but not to
// any event already emitted.
func (s *Span) AddProps(p core.Props) {
	s.props = append(s.props, core.Collect(p, false)...)
}

// Finish emits the span as a completed Event: a [start, end) extent,
// EventKindSpan, the span's own SpanCtxt fields, its accumulated props,
// and any extraProps layered on top (useful for an outcome/error caught
// right at the finish point).
func (s *Span) Finish(end core.Timestamp, extraProps core.Props) {
	if extraProps == nil {
		extraProps = core.Empty{}
	}
	ext, ok := core.RangeExtent(s.start, end)
	if !ok {
		ext = core.PointExtent(end)
	}
	kindVal, hasKind := core.WithEventKind(core.EventKindSpan)
	var kindProps core.SliceProps
	if hasKind {
		kindProps = core.SliceProps{{Key: core.NewStaticStr(core.EventKindKey), Val: kindVal}}
	}
	full := core.AndProps(extraProps, core.AndProps(core.Props(kindProps), core.AndProps(core.Props(s.props), s.sctx.ToProps())))
	evt := core.NewEvent(s.mdl, s.tpl, full).WithExtent(ext)
	if s.rt.Filter != nil && !s.rt.Filter.Matches(evt) {
		return
	}
	if s.rt.Emitter != nil {
		s.rt.Emitter.Emit(evt)
	}
}
