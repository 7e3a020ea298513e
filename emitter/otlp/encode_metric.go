package otlp

import (
	"math"

	commonv1 "go.opentelemetry.io/proto/otlp/common/v1"
	metricsv1 "go.opentelemetry.io/proto/otlp/metrics/v1"

	"go.emit.dev/emit/core"
)

var metricSkipKeys = map[string]bool{
	core.LevelKey:     true,
	core.EventKindKey: true,
	metricValueKey:    true,
	metricAggKey:      true,
	metricUnitKey:     true,
	distBucketScale:   true,
	distBucketPts:     true,
}

// eligibleMetric reports whether evt satisfies §4.8's metric-signal
// precondition: EventKindMetric with a recognised, numeric
// metric_value property.
func eligibleMetric(evt core.Event) (float64, bool) {
	if evt.EventKind() != core.EventKindMetric {
		return 0, false
	}
	v, ok := core.Get(evt.Props, metricValueKey)
	if !ok {
		return 0, false
	}
	f := v.AsFloat64()
	if math.IsNaN(f) && v.Kind() != core.KindFloat {
		return 0, false
	}
	return f, true
}

// temporalityFor derives the Delta/Cumulative split from the event's
// extent shape (§4.8: range extent implies Delta, point extent implies
// Cumulative).
func temporalityFor(evt core.Event) metricsv1.AggregationTemporality {
	if evt.Extent.IsRange() {
		return metricsv1.AggregationTemporality_AGGREGATION_TEMPORALITY_DELTA
	}
	return metricsv1.AggregationTemporality_AGGREGATION_TEMPORALITY_CUMULATIVE
}

// encodeMetric implements §4.8's metric encoding: count is a monotonic
// sum, sum a non-monotonic sum, anything else (including the
// original's explicit "last" spelling) a gauge; a count aggregation
// additionally carrying valid dist_bucket_scale/dist_bucket_points
// properties is emitted as an ExponentialHistogram instead of a Sum.
func encodeMetric(evt core.Event, value float64, maxBuckets int) *metricsv1.Metric {
	agg := parseAgg(propString(evt.Props, metricAggKey))
	attrs := attributesOf(evt.Props, metricSkipKeys)

	m := &metricsv1.Metric{
		Name: evt.Tpl.AsStr(),
		Unit: propString(evt.Props, metricUnitKey),
	}

	ts := uint64(0)
	if evt.Extent.HasExtent() {
		ts = uint64(evt.Extent.Collapse().UnixNanos())
	}

	if agg == aggCount {
		if scale, points, ok := histogramInputs(evt.Props); ok {
			m.Data = &metricsv1.Metric_ExponentialHistogram{
				ExponentialHistogram: buildHistogramDataPoint(attrs, ts, scale, points, maxBuckets, temporalityFor(evt)),
			}
			return m
		}
	}

	switch agg {
	case aggCount, aggSum:
		m.Data = &metricsv1.Metric_Sum{Sum: &metricsv1.Sum{
			AggregationTemporality: temporalityFor(evt),
			IsMonotonic:            agg == aggCount,
			DataPoints: []*metricsv1.NumberDataPoint{{
				Attributes:   attrs,
				TimeUnixNano: ts,
				Value:        &metricsv1.NumberDataPoint_AsDouble{AsDouble: value},
			}},
		}}
	default:
		m.Data = &metricsv1.Metric_Gauge{Gauge: &metricsv1.Gauge{
			DataPoints: []*metricsv1.NumberDataPoint{{
				Attributes:   attrs,
				TimeUnixNano: ts,
				Value:        &metricsv1.NumberDataPoint_AsDouble{AsDouble: value},
			}},
		}}
	}
	return m
}

// histogramInputs pulls dist_bucket_scale/dist_bucket_points from p;
// points is expected to be a sequence of numeric Values (the raw
// samples backing the histogram, per original_source's metric.rs).
func histogramInputs(p core.Props) (scale int32, points []float64, ok bool) {
	scaleVal, hasScale := core.Get(p, distBucketScale)
	ptsVal, hasPts := core.Get(p, distBucketPts)
	if !hasScale || !hasPts || ptsVal.Kind() != core.KindSeq {
		return 0, nil, false
	}
	scale = int32(scaleVal.AsFloat64())
	jv := ptsVal.JSONValue()
	elems, isSeq := jv.([]any)
	if !isSeq || len(elems) == 0 {
		return 0, nil, false
	}
	for _, e := range elems {
		switch n := e.(type) {
		case float64:
			points = append(points, n)
		case int64:
			points = append(points, float64(n))
		case uint64:
			points = append(points, float64(n))
		}
	}
	return scale, points, len(points) > 0
}

func buildHistogramDataPoint(attrs []*commonv1.KeyValue, ts uint64, scale int32, points []float64, maxBuckets int, temporality metricsv1.AggregationTemporality) *metricsv1.ExponentialHistogram {
	finalScale, zeroCount, pos, neg := buildExponentialHistogram(points, scale, maxBuckets)

	var sum float64
	min, max := points[0], points[0]
	for _, p := range points {
		sum += p
		if p < min {
			min = p
		}
		if p > max {
			max = p
		}
	}

	dp := &metricsv1.ExponentialHistogramDataPoint{
		Attributes:   attrs,
		TimeUnixNano: ts,
		Count:        uint64(len(points)),
		Sum:          &sum,
		Scale:        finalScale,
		ZeroCount:    zeroCount,
		Min:          &min,
		Max:          &max,
	}
	if len(pos.Counts) > 0 {
		dp.Positive = &metricsv1.ExponentialHistogramDataPoint_Buckets{Offset: pos.Offset, BucketCounts: pos.Counts}
	}
	if len(neg.Counts) > 0 {
		dp.Negative = &metricsv1.ExponentialHistogramDataPoint_Buckets{Offset: neg.Offset, BucketCounts: neg.Counts}
	}
	return &metricsv1.ExponentialHistogram{
		DataPoints:             []*metricsv1.ExponentialHistogramDataPoint{dp},
		AggregationTemporality: temporality,
	}
}
