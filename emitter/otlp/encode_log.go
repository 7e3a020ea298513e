package otlp

import (
	logsv1 "go.opentelemetry.io/proto/otlp/logs/v1"

	"go.emit.dev/emit/core"
	"go.emit.dev/emit/trace"
)

var logSkipKeys = map[string]bool{
	core.LevelKey:        true,
	core.EventKindKey:    true,
	trace.TraceIDKey:     true,
	trace.SpanIDKey:      true,
	trace.SpanParentKey:  true,
}

func severityNumberOf(l core.Level) logsv1.SeverityNumber {
	switch l {
	case core.Debug:
		return logsv1.SeverityNumber_SEVERITY_NUMBER_DEBUG
	case core.Info:
		return logsv1.SeverityNumber_SEVERITY_NUMBER_INFO
	case core.Warn:
		return logsv1.SeverityNumber_SEVERITY_NUMBER_WARN
	case core.Error:
		return logsv1.SeverityNumber_SEVERITY_NUMBER_ERROR
	case core.Critical:
		return logsv1.SeverityNumber_SEVERITY_NUMBER_FATAL
	default:
		return logsv1.SeverityNumber_SEVERITY_NUMBER_UNSPECIFIED
	}
}

// encodeLogRecord implements §4.8's logs-signal fallback encoding:
// every event not claimed by the metric or span rules becomes a
// LogRecord, its message rendered from the template, its level mapped
// to a SeverityNumber, and any ambient trace identity carried in the
// dedicated TraceId/SpanId fields rather than as attributes.
func encodeLogRecord(evt core.Event) *logsv1.LogRecord {
	sc := trace.SpanCtxtFromProps(evt.Props)
	rec := &logsv1.LogRecord{
		SeverityNumber: severityNumberOf(evt.Level()),
		SeverityText:   evt.Level().String(),
		Body:           anyValueOf(core.OfStringLiteral(evt.Msg())),
		Attributes:     attributesOf(evt.Props, logSkipKeys),
	}
	if evt.Extent.HasExtent() {
		rec.TimeUnixNano = uint64(evt.Extent.Collapse().UnixNanos())
	}
	if !sc.TraceID.IsZero() {
		tid := sc.TraceID.Bytes()
		rec.TraceId = tid[:]
	}
	if !sc.SpanID.IsZero() {
		sid := sc.SpanID.Bytes()
		rec.SpanId = sid[:]
	}
	return rec
}
