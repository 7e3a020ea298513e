package otlp

// Well-known property keys consumed by the metric and span encoders
// (§3's Metric auxiliaries and §4.8's SpanKind/err conventions,
// restored per SPEC_FULL.md §3 from original_source/src/metric.rs and
// span.rs). These are domain-specific to the OTLP signal mapping, not
// general core vocabulary, so they live here rather than in core.
const (
	metricValueKey  = "metric_value"
	metricAggKey    = "agg"
	metricUnitKey   = "metric_unit"
	distBucketScale = "dist_bucket_scale"
	distBucketPts   = "dist_bucket_points"

	spanKindKey = "span_kind"
	errKey      = "err"
)

// aggKind is the Metric.agg classification from spec §3.
type aggKind int

const (
	aggGauge aggKind = iota
	aggCount
	aggSum
)

func parseAgg(s string) aggKind {
	switch s {
	case "count":
		return aggCount
	case "sum":
		return aggSum
	case "last", "":
		return aggGauge
	default:
		return aggGauge
	}
}

// spanKind mirrors the 5-variant SpanKind enum restored from
// original_source (client/server/consumer/producer/internal).
type spanKind int

const (
	spanKindUnspecified spanKind = iota
	spanKindInternal
	spanKindServer
	spanKindClient
	spanKindProducer
	spanKindConsumer
)

func parseSpanKind(s string) spanKind {
	switch s {
	case "internal":
		return spanKindInternal
	case "server":
		return spanKindServer
	case "client":
		return spanKindClient
	case "producer":
		return spanKindProducer
	case "consumer":
		return spanKindConsumer
	default:
		return spanKindUnspecified
	}
}
