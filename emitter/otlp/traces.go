package otlp

import (
	"context"
	"time"

	coltracepb "go.opentelemetry.io/proto/otlp/collector/trace/v1"
	resourcev1 "go.opentelemetry.io/proto/otlp/resource/v1"
	tracev1 "go.opentelemetry.io/proto/otlp/trace/v1"

	"go.emit.dev/emit/batch"
)

// tracesChannel is the traces signal's batching channel: one encoded
// Span per item, bucketed by byte budget before shipping.
type tracesChannel struct {
	sender *batch.Sender[*tracev1.Span]
}

type tracesReceiver struct {
	receiver  *batch.Receiver[*tracev1.Span]
	transport transport
	resource  *resourcev1.Resource
	maxBytes  int
}

func newTracesChannel(cfg Config, resource *resourcev1.Resource, metrics batch.Metrics) (*tracesChannel, *tracesReceiver) {
	sender, receiver := batch.New[*tracev1.Span](cfg.maxChannelCapacity(), metrics)
	return &tracesChannel{sender: sender},
		&tracesReceiver{
			receiver:  receiver,
			transport: newTransport(cfg.Traces),
			resource:  resource,
			maxBytes:  cfg.maxRequestSizeBytes(),
		}
}

func (c *tracesChannel) send(span *tracev1.Span) { c.sender.Send(span) }

func (c *tracesChannel) BlockingFlush(timeout time.Duration) bool {
	return c.sender.BlockingFlush(timeout)
}

func (c *tracesChannel) Close() { c.sender.Close() }

func (r *tracesReceiver) Run() {
	batch.RunSync(r.receiver, r.onBatch)
}

func (r *tracesReceiver) onBatch(spans []*tracev1.Span) error {
	buckets := bucketByBudget(spans, r.maxBytes)
	var retryable []*tracev1.Span
	for _, bucket := range buckets {
		req := &coltracepb.ExportTraceServiceRequest{
			ResourceSpans: []*tracev1.ResourceSpans{{
				Resource:   r.resource,
				ScopeSpans: []*tracev1.ScopeSpans{{Scope: scope, Spans: bucket}},
			}},
		}
		retry, err := r.transport.SendTraces(context.Background(), req)
		if err != nil && retry {
			retryable = append(retryable, bucket...)
		}
	}
	if len(retryable) > 0 {
		return batch.BatchError[*tracev1.Span]{Retryable: retryable}
	}
	return nil
}
