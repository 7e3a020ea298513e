package otlp

import (
	"context"
	"time"

	colmetricspb "go.opentelemetry.io/proto/otlp/collector/metrics/v1"
	metricsv1 "go.opentelemetry.io/proto/otlp/metrics/v1"
	resourcev1 "go.opentelemetry.io/proto/otlp/resource/v1"

	"go.emit.dev/emit/batch"
)

// metricsChannel is the metrics signal's batching channel: one encoded
// Metric per item, bucketed by byte budget before shipping.
type metricsChannel struct {
	sender *batch.Sender[*metricsv1.Metric]
}

type metricsReceiver struct {
	receiver  *batch.Receiver[*metricsv1.Metric]
	transport transport
	resource  *resourcev1.Resource
	maxBytes  int
}

func newMetricsChannel(cfg Config, resource *resourcev1.Resource, metrics batch.Metrics) (*metricsChannel, *metricsReceiver) {
	sender, receiver := batch.New[*metricsv1.Metric](cfg.maxChannelCapacity(), metrics)
	return &metricsChannel{sender: sender},
		&metricsReceiver{
			receiver:  receiver,
			transport: newTransport(cfg.Metrics),
			resource:  resource,
			maxBytes:  cfg.maxRequestSizeBytes(),
		}
}

func (c *metricsChannel) send(m *metricsv1.Metric) { c.sender.Send(m) }

func (c *metricsChannel) BlockingFlush(timeout time.Duration) bool {
	return c.sender.BlockingFlush(timeout)
}

func (c *metricsChannel) Close() { c.sender.Close() }

func (r *metricsReceiver) Run() {
	batch.RunSync(r.receiver, r.onBatch)
}

func (r *metricsReceiver) onBatch(metrics []*metricsv1.Metric) error {
	buckets := bucketByBudget(metrics, r.maxBytes)
	var retryable []*metricsv1.Metric
	for _, bucket := range buckets {
		req := &colmetricspb.ExportMetricsServiceRequest{
			ResourceMetrics: []*metricsv1.ResourceMetrics{{
				Resource:      r.resource,
				ScopeMetrics: []*metricsv1.ScopeMetrics{{Scope: scope, Metrics: bucket}},
			}},
		}
		retry, err := r.transport.SendMetrics(context.Background(), req)
		if err != nil && retry {
			retryable = append(retryable, bucket...)
		}
	}
	if len(retryable) > 0 {
		return batch.BatchError[*metricsv1.Metric]{Retryable: retryable}
	}
	return nil
}
