package otlp

import (
	"context"
	"time"

	collogspb "go.opentelemetry.io/proto/otlp/collector/logs/v1"
	logsv1 "go.opentelemetry.io/proto/otlp/logs/v1"
	resourcev1 "go.opentelemetry.io/proto/otlp/resource/v1"

	"go.emit.dev/emit/batch"
)

// logsChannel is the logs signal's batching channel: one pre-encoded
// LogRecord per item, bucketed by byte budget before shipping.
type logsChannel struct {
	sender *batch.Sender[*logsv1.LogRecord]
}

type logsReceiver struct {
	receiver  *batch.Receiver[*logsv1.LogRecord]
	transport transport
	resource  *resourcev1.Resource
	maxBytes  int
}

func newLogsChannel(cfg Config, resource *resourcev1.Resource, metrics batch.Metrics) (*logsChannel, *logsReceiver) {
	sender, receiver := batch.New[*logsv1.LogRecord](cfg.maxChannelCapacity(), metrics)
	return &logsChannel{sender: sender},
		&logsReceiver{
			receiver:  receiver,
			transport: newTransport(cfg.Logs),
			resource:  resource,
			maxBytes:  cfg.maxRequestSizeBytes(),
		}
}

func (c *logsChannel) send(rec *logsv1.LogRecord) { c.sender.Send(rec) }

func (c *logsChannel) BlockingFlush(timeout time.Duration) bool {
	return c.sender.BlockingFlush(timeout)
}

func (c *logsChannel) Close() { c.sender.Close() }

func (r *logsReceiver) Run() {
	batch.RunSync(r.receiver, r.onBatch)
}

func (r *logsReceiver) onBatch(records []*logsv1.LogRecord) error {
	buckets := bucketByBudget(records, r.maxBytes)
	var retryable []*logsv1.LogRecord
	for _, bucket := range buckets {
		req := &collogspb.ExportLogsServiceRequest{
			ResourceLogs: []*logsv1.ResourceLogs{{
				Resource:  r.resource,
				ScopeLogs: []*logsv1.ScopeLogs{{Scope: scope, LogRecords: bucket}},
			}},
		}
		retry, err := r.transport.SendLogs(context.Background(), req)
		if err != nil && retry {
			retryable = append(retryable, bucket...)
		}
	}
	if len(retryable) > 0 {
		return batch.BatchError[*logsv1.LogRecord]{Retryable: retryable}
	}
	return nil
}
