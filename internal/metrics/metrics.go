// Package metrics is the real collector behind the §7 counter
// surface: every batching channel built by emitter/file and
// emitter/otlp records into a Counters value instead of
// batch.NopMetrics. Of the event-pipeline-level counters, only
// event_discarded is recorded (by emitter/otlp, for an event that
// matches no signal); nothing in this module records
// event_format_failed or configuration_failed. Counters
// are always readable in-process via the Snapshot methods; wiring a
// *Counters into a prometheus.Registerer additionally exposes them on
// a scrapeable /metrics surface, matching the optional exporter the
// teacher's contrib packages (and kubernetes-dns/willnorris-imageproxy
// in the retrieval pack) register alongside their own business
// metrics.
package metrics

import (
	"sync/atomic"

	"github.com/prometheus/client_golang/prometheus"

	"go.emit.dev/emit/batch"
)

// Counters implements batch.Metrics with plain atomic counters, one
// set per signal/sink name (so a process running both the file
// emitter and the OTLP emitter's three signals gets independently
// readable counts). It also exposes the pipeline-level counters from
// spec §7 that sit above any single batching channel.
type Counters struct {
	name string

	queueLength    int64
	batchProcessed uint64
	batchFailed    uint64
	batchRetry     uint64
	batchPanicked  uint64
	fullTruncated  uint64
	fullBlocked    uint64

	eventDiscarded      uint64
	eventFormatFailed   uint64
	configurationFailed uint64

	promVec *prometheusVec
}

// New returns a Counters for one named sink ("file", "otlp-logs",
// "otlp-traces", "otlp-metrics", …). The name is used only as the
// Prometheus label value when Register is called.
func New(name string) *Counters {
	return &Counters{name: name}
}

func (c *Counters) QueueLength(n int) {
	atomic.StoreInt64(&c.queueLength, int64(n))
	c.observe("queue_length", float64(n))
}
func (c *Counters) BatchProcessed() { atomic.AddUint64(&c.batchProcessed, 1); c.inc("queue_batch_processed") }
func (c *Counters) BatchFailed()    { atomic.AddUint64(&c.batchFailed, 1); c.inc("queue_batch_failed") }
func (c *Counters) BatchRetry()     { atomic.AddUint64(&c.batchRetry, 1); c.inc("queue_batch_retry") }
func (c *Counters) BatchPanicked()  { atomic.AddUint64(&c.batchPanicked, 1); c.inc("queue_batch_panicked") }
func (c *Counters) FullTruncated()  { atomic.AddUint64(&c.fullTruncated, 1); c.inc("queue_full_truncated") }
func (c *Counters) FullBlocked()    { atomic.AddUint64(&c.fullBlocked, 1); c.inc("queue_full_blocked") }

// EventDiscarded records an event that matched no configured OTLP
// signal (§4.8 priority rule's final "else" branch).
func (c *Counters) EventDiscarded() { atomic.AddUint64(&c.eventDiscarded, 1); c.inc("event_discarded") }

// EventFormatFailed records a per-event capture/encode failure (§7.1).
func (c *Counters) EventFormatFailed() {
	atomic.AddUint64(&c.eventFormatFailed, 1)
	c.inc("event_format_failed")
}

// ConfigurationFailed records a construction-time configuration
// failure (§7.3). No constructor in this module calls it: file.New and
// otlp.New detect no configuration failure.
func (c *Counters) ConfigurationFailed() {
	atomic.AddUint64(&c.configurationFailed, 1)
	c.inc("configuration_failed")
}

// Snapshot is a point-in-time read of every counter, for tests and
// for a process's own diagnostics endpoint.
type Snapshot struct {
	QueueLength                                                    int64
	BatchProcessed, BatchFailed, BatchRetry, BatchPanicked          uint64
	FullTruncated, FullBlocked                                      uint64
	EventDiscarded, EventFormatFailed, ConfigurationFailed          uint64
}

func (c *Counters) Snapshot() Snapshot {
	return Snapshot{
		QueueLength:         atomic.LoadInt64(&c.queueLength),
		BatchProcessed:      atomic.LoadUint64(&c.batchProcessed),
		BatchFailed:         atomic.LoadUint64(&c.batchFailed),
		BatchRetry:          atomic.LoadUint64(&c.batchRetry),
		BatchPanicked:       atomic.LoadUint64(&c.batchPanicked),
		FullTruncated:       atomic.LoadUint64(&c.fullTruncated),
		FullBlocked:         atomic.LoadUint64(&c.fullBlocked),
		EventDiscarded:      atomic.LoadUint64(&c.eventDiscarded),
		EventFormatFailed:   atomic.LoadUint64(&c.eventFormatFailed),
		ConfigurationFailed: atomic.LoadUint64(&c.configurationFailed),
	}
}

// prometheusVec lazily holds the shared GaugeVec/CounterVec pair
// registered for this Counters, keyed by the "sink" label so multiple
// Counters (one per signal) can share one registration.
type prometheusVec struct {
	gauges   *prometheus.GaugeVec
	counters *prometheus.CounterVec
}

func (c *Counters) inc(metric string) {
	if c.promVec == nil {
		return
	}
	c.promVec.counters.WithLabelValues(c.name, metric).Inc()
}

func (c *Counters) observe(metric string, v float64) {
	if c.promVec == nil {
		return
	}
	c.promVec.gauges.WithLabelValues(c.name, metric).Set(v)
}

// Register wires c (and every other Counters sharing reg) into a
// Prometheus registry under the "emit_" namespace:
// emit_queue_counter_total{sink,metric} for the monotonic counters
// and emit_queue_gauge{sink,metric} for queue_length. Safe to call
// once per process per registry; a second Counters created with a
// different name can share the same *prometheus.Registry by passing
// it to Register again — an AlreadyRegisteredError from reg.Register
// is handled by reusing the collector already registered.
func Register(reg prometheus.Registerer, c *Counters) error {
	counters := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "emit",
		Subsystem: "queue",
		Name:      "counter_total",
		Help:      "Batching-channel and pipeline event counters (see spec §7).",
	}, []string{"sink", "metric"})
	gauges := prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: "emit",
		Subsystem: "queue",
		Name:      "gauge",
		Help:      "Batching-channel point-in-time gauges (currently only queue_length).",
	}, []string{"sink", "metric"})

	if err := reg.Register(counters); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			counters = are.ExistingCollector.(*prometheus.CounterVec)
		} else {
			return err
		}
	}
	if err := reg.Register(gauges); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			gauges = are.ExistingCollector.(*prometheus.GaugeVec)
		} else {
			return err
		}
	}
	c.promVec = &prometheusVec{gauges: gauges, counters: counters}
	return nil
}

var _ batch.Metrics = (*Counters)(nil)
