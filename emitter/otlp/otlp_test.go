package otlp

import (
	"testing"
	"time"

	metricsv1 "go.opentelemetry.io/proto/otlp/metrics/v1"
	tracev1 "go.opentelemetry.io/proto/otlp/trace/v1"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go.emit.dev/emit/core"
	"go.emit.dev/emit/trace"
)

var fixedTime = time.Date(2026, 7, 31, 0, 0, 0, 0, time.UTC)

type fakeRng struct{}

func (fakeRng) Fill(dst []byte) bool {
	for i := range dst {
		dst[i] = byte(i) + 1
	}
	return true
}

func metricEvent(agg string, value float64) core.Event {
	props := core.SliceProps{
		{Key: core.NewStaticStr(core.EventKindKey), Val: core.OfStringLiteral("metric")},
		{Key: core.NewStaticStr(metricValueKey), Val: core.OfFloat(value)},
		{Key: core.NewStaticStr(metricAggKey), Val: core.OfStringLiteral(agg)},
	}
	tpl := core.ParseTemplate("requests_total")
	return core.NewEvent(core.NewPath("svc"), tpl, props)
}

func TestEligibleMetricRequiresMetricKindAndNumericValue(t *testing.T) {
	evt := metricEvent("count", 3)
	v, ok := eligibleMetric(evt)
	require.True(t, ok)
	assert.Equal(t, float64(3), v)

	logEvt := core.NewEvent(core.NewPath("svc"), core.ParseTemplate("hello"), core.Empty{})
	_, ok = eligibleMetric(logEvt)
	assert.False(t, ok)
}

func TestEncodeMetricCountIsMonotonicSum(t *testing.T) {
	evt := metricEvent("count", 5)
	m := encodeMetric(evt, 5, defaultMaxExpHistogramBuckets)
	sum, ok := m.Data.(*metricsv1.Metric_Sum)
	require.True(t, ok)
	assert.True(t, sum.Sum.IsMonotonic)
}

func TestEncodeMetricGaugeForLastAndUnrecognizedAgg(t *testing.T) {
	for _, agg := range []string{"last", "", "unknown"} {
		evt := metricEvent(agg, 1)
		m := encodeMetric(evt, 1, defaultMaxExpHistogramBuckets)
		_, ok := m.Data.(*metricsv1.Metric_Gauge)
		assert.True(t, ok, "agg=%q should encode as a Gauge", agg)
	}
}

func spanEvent(t *testing.T, withErr bool) (core.Event, trace.SpanCtxt) {
	t.Helper()
	tid, ok := trace.NewTraceID(fakeRng{})
	require.True(t, ok)
	sid, ok := trace.NewSpanID(fakeRng{})
	require.True(t, ok)
	sc := trace.SpanCtxt{TraceID: tid, SpanID: sid}

	props := sc.ToProps().(core.SliceProps)
	props = append(props, core.Pair{Key: core.NewStaticStr(core.EventKindKey), Val: core.OfStringLiteral("span")})
	if withErr {
		props = append(props, core.Pair{Key: core.NewStaticStr(errKey), Val: core.OfStringLiteral("boom")})
	}

	start, err := core.FromTime(fixedTime)
	require.NoError(t, err)
	end, err := core.FromTime(fixedTime.Add(time.Second))
	require.NoError(t, err)
	ext, ok := core.RangeExtent(start, end)
	require.True(t, ok)

	evt := core.NewEvent(core.NewPath("svc"), core.ParseTemplate("op"), props).WithExtent(ext)
	return evt, sc
}

func TestEligibleSpanRequiresRangeExtentAndNonZeroIDs(t *testing.T) {
	evt, _ := spanEvent(t, false)
	_, ok := eligibleSpan(evt)
	assert.True(t, ok)

	start, _ := core.FromTime(fixedTime)
	pointEvt := evt.WithExtent(core.PointExtent(start))
	_, ok = eligibleSpan(pointEvt)
	assert.False(t, ok, "a point extent is never a completed span")
}

func TestEncodeSpanSetsErrorStatusAndExceptionEvent(t *testing.T) {
	evt, sc := spanEvent(t, true)
	span := encodeSpan(evt, sc)
	assert.Equal(t, tracev1.Status_STATUS_CODE_ERROR, span.Status.Code)
	require.Len(t, span.Events, 1)
	assert.Equal(t, "exception", span.Events[0].Name)
}

func TestEncodeSpanDerivesStatusFromLevelWithoutErr(t *testing.T) {
	evt, sc := spanEvent(t, false)
	span := encodeSpan(evt, sc)
	assert.Equal(t, tracev1.Status_STATUS_CODE_OK, span.Status.Code)
	assert.Empty(t, span.Events)
}

func TestBucketByBudgetSplitsOnSize(t *testing.T) {
	spans := []*tracev1.Span{{Name: "a"}, {Name: "b"}, {Name: "c"}}
	buckets := bucketByBudget(spans, 1)
	assert.Greater(t, len(buckets), 1, "a 1-byte budget should force one span per bucket")

	unbounded := bucketByBudget(spans, 1<<20)
	require.Len(t, unbounded, 1)
	assert.Len(t, unbounded[0], 3)
}

func TestBuildExponentialHistogramRescalesToFitMaxBuckets(t *testing.T) {
	points := make([]float64, 0, 50)
	for i := 1; i <= 50; i++ {
		points = append(points, float64(i))
	}
	scale, _, pos, neg := buildExponentialHistogram(points, 20, 4)
	assert.Less(t, scale, int32(20), "scale must rescale down from the unreasonably high starting point")
	assert.LessOrEqual(t, len(pos.Counts)+len(neg.Counts), 4)
}

func TestSeverityNumberOfMapsLevels(t *testing.T) {
	assert.Contains(t, severityNumberOf(core.Error).String(), "ERROR")
	assert.Contains(t, severityNumberOf(core.Debug).String(), "DEBUG")
}

func TestBuildResourcePutsServiceNameFirstAndSkipsDuplicate(t *testing.T) {
	r := buildResource("svc", map[string]string{"service.name": "ignored", "env": "prod"})
	require.NotEmpty(t, r.Attributes)
	assert.Equal(t, "service.name", r.Attributes[0].Key)
	assert.Equal(t, "svc", r.Attributes[0].Value.GetStringValue())
	assert.Len(t, r.Attributes, 2)
}
