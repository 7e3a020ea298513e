package otlp

import (
	commonv1 "go.opentelemetry.io/proto/otlp/common/v1"
	tracev1 "go.opentelemetry.io/proto/otlp/trace/v1"

	"go.emit.dev/emit/core"
	"go.emit.dev/emit/trace"
)

var spanSkipKeys = map[string]bool{
	core.LevelKey:       true,
	core.EventKindKey:   true,
	trace.TraceIDKey:    true,
	trace.SpanIDKey:     true,
	trace.SpanParentKey: true,
	spanKindKey:         true,
	errKey:              true,
}

func otlpSpanKind(k spanKind) tracev1.Span_SpanKind {
	switch k {
	case spanKindInternal:
		return tracev1.Span_SPAN_KIND_INTERNAL
	case spanKindServer:
		return tracev1.Span_SPAN_KIND_SERVER
	case spanKindClient:
		return tracev1.Span_SPAN_KIND_CLIENT
	case spanKindProducer:
		return tracev1.Span_SPAN_KIND_PRODUCER
	case spanKindConsumer:
		return tracev1.Span_SPAN_KIND_CONSUMER
	default:
		return tracev1.Span_SPAN_KIND_UNSPECIFIED
	}
}

// eligibleSpan reports whether evt satisfies §4.8's span-signal
// precondition: EventKindSpan, a valid (non-zero) trace id and span
// id, and a range extent (a point can never be a completed span).
func eligibleSpan(evt core.Event) (trace.SpanCtxt, bool) {
	if evt.EventKind() != core.EventKindSpan || !evt.Extent.IsRange() {
		return trace.SpanCtxt{}, false
	}
	sc := trace.SpanCtxtFromProps(evt.Props)
	if sc.TraceID.IsZero() || sc.SpanID.IsZero() {
		return trace.SpanCtxt{}, false
	}
	return sc, true
}

// encodeSpan implements §4.8's span encoding: SpanKind from the
// span_kind property, an err property turned into a conventional
// "exception" span event plus ERROR status, and absent that a status
// derived from the event's level (Debug/Info -> OK, Warn/Error -> ERROR).
func encodeSpan(evt core.Event, sc trace.SpanCtxt) *tracev1.Span {
	tid := sc.TraceID.Bytes()
	sid := sc.SpanID.Bytes()

	span := &tracev1.Span{
		TraceId:           tid[:],
		SpanId:            sid[:],
		Name:              evt.Tpl.AsStr(),
		Kind:              otlpSpanKind(parseSpanKind(propString(evt.Props, spanKindKey))),
		StartTimeUnixNano: uint64(evt.Extent.Start().UnixNanos()),
		EndTimeUnixNano:   uint64(evt.Extent.End().UnixNanos()),
		Attributes:        attributesOf(evt.Props, spanSkipKeys),
	}
	if !sc.SpanParent.IsZero() {
		parent := sc.SpanParent.Bytes()
		span.ParentSpanId = parent[:]
	}

	if errVal, ok := core.Get(evt.Props, errKey); ok {
		span.Status = &tracev1.Status{Code: tracev1.Status_STATUS_CODE_ERROR, Message: errVal.Display()}
		span.Events = append(span.Events, &tracev1.Span_Event{
			TimeUnixNano: uint64(evt.Extent.End().UnixNanos()),
			Name:         "exception",
			Attributes: []*commonv1.KeyValue{
				{Key: "exception.message", Value: anyValueOf(errVal)},
			},
		})
	} else {
		span.Status = &tracev1.Status{Code: statusCodeForLevel(evt.Level())}
	}
	return span
}

func statusCodeForLevel(l core.Level) tracev1.Status_StatusCode {
	if l >= core.Warn {
		return tracev1.Status_STATUS_CODE_ERROR
	}
	return tracev1.Status_STATUS_CODE_OK
}

func propString(p core.Props, key string) string {
	v, ok := core.Get(p, key)
	if !ok {
		return ""
	}
	return v.Display()
}
