package otlp

import (
	"time"

	"go.emit.dev/emit/batch"
	"go.emit.dev/emit/core"
	metricspkg "go.emit.dev/emit/internal/metrics"
)

// Emitter implements core.Emitter by routing each event to at most one
// of the three OTLP signals, per §4.8's priority rule: a recognised
// metric first, a completed span second, and everything else as a log
// record; an event matching none of the enabled signals is dropped and
// counted as EventDiscarded.
type Emitter struct {
	cfg Config

	metrics *metricspkg.Counters

	logs    *logsChannel
	traces  *tracesChannel
	metricC *metricsChannel

	maxBuckets int
}

// Receivers holds the per-signal drain loops a caller must Run (each
// on its own goroutine) for the Emitter returned alongside it to
// actually ship anything.
type Receivers struct {
	Logs    *logsReceiver
	Traces  *tracesReceiver
	Metrics *metricsReceiver
}

// Run starts every configured receiver's drain loop on its own
// goroutine and returns immediately.
func (r *Receivers) Run() {
	if r.Logs != nil {
		go r.Logs.Run()
	}
	if r.Traces != nil {
		go r.Traces.Run()
	}
	if r.Metrics != nil {
		go r.Metrics.Run()
	}
}

// New builds an Emitter and its Receivers for every signal cfg enables.
// metrics is the shared pipeline-level counter sink (see
// internal/metrics); pass one Counters per process, not one per
// signal, so EventDiscarded/EventFormatFailed are process-wide totals.
func New(cfg Config, metrics *metricspkg.Counters) (*Emitter, *Receivers) {
	resource := buildResource(cfg.ServiceName, cfg.ResourceAttributes)

	e := &Emitter{cfg: cfg, metrics: metrics, maxBuckets: cfg.maxExpHistogramBuckets()}
	recv := &Receivers{}

	bm := channelMetrics(metrics)
	if cfg.Logs.Enabled {
		e.logs, recv.Logs = newLogsChannel(cfg, resource, bm)
	}
	if cfg.Traces.Enabled {
		e.traces, recv.Traces = newTracesChannel(cfg, resource, bm)
	}
	if cfg.Metrics.Enabled {
		e.metricC, recv.Metrics = newMetricsChannel(cfg, resource, bm)
	}
	return e, recv
}

// channelMetrics adapts the shared pipeline Counters to batch.Metrics;
// nil falls back to batch.NopMetrics (batch.New already does this, so
// this just documents the pass-through). All three signals share one
// Counters instance — callers wanting per-signal batch counters can
// construct separate internal/metrics.Counters and build signals by
// hand instead of through New.
func channelMetrics(m *metricspkg.Counters) batch.Metrics {
	if m == nil {
		return batch.NopMetrics{}
	}
	return m
}

// Emit implements core.Emitter. It never blocks: every signal's send
// is a non-blocking enqueue onto its batching channel.
func (e *Emitter) Emit(evt core.Event) {
	if e.metricC != nil {
		if value, ok := eligibleMetric(evt); ok {
			e.metricC.send(encodeMetric(evt, value, e.maxBuckets))
			return
		}
	}
	if e.traces != nil {
		if sc, ok := eligibleSpan(evt); ok {
			e.traces.send(encodeSpan(evt, sc))
			return
		}
	}
	if e.logs != nil {
		e.logs.send(encodeLogRecord(evt))
		return
	}
	if e.metrics != nil {
		e.metrics.EventDiscarded()
	}
}

// BlockingFlush waits up to timeout for every enabled signal to drain,
// splitting the timeout evenly (following core.AndTo's pattern for
// composing more than one child) and returning the AND of their
// results. A signal that was never enabled is vacuously flushed.
func (e *Emitter) BlockingFlush(timeout time.Duration) bool {
	var channels []interface {
		BlockingFlush(time.Duration) bool
	}
	if e.logs != nil {
		channels = append(channels, e.logs)
	}
	if e.traces != nil {
		channels = append(channels, e.traces)
	}
	if e.metricC != nil {
		channels = append(channels, e.metricC)
	}
	if len(channels) == 0 {
		return true
	}
	share := timeout / time.Duration(len(channels))
	ok := true
	for _, c := range channels {
		if !c.BlockingFlush(share) {
			ok = false
		}
	}
	return ok
}

// Close closes every enabled signal's channel so its receiver drains
// and exits.
func (e *Emitter) Close() {
	if e.logs != nil {
		e.logs.Close()
	}
	if e.traces != nil {
		e.traces.Close()
	}
	if e.metricC != nil {
		e.metricC.Close()
	}
}

var _ core.Emitter = (*Emitter)(nil)
