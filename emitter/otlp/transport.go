package otlp

import (
	"context"

	collogspb "go.opentelemetry.io/proto/otlp/collector/logs/v1"
	colmetricspb "go.opentelemetry.io/proto/otlp/collector/metrics/v1"
	coltracepb "go.opentelemetry.io/proto/otlp/collector/trace/v1"
)

// transport ships one signal's export request and reports whether a
// failure should be retried (§4.8 "Retry": HTTP 2xx / gRPC status 0
// are success; everything else, including a transport-level error, is
// retryable).
type transport interface {
	SendTraces(ctx context.Context, req *coltracepb.ExportTraceServiceRequest) (retryable bool, err error)
	SendLogs(ctx context.Context, req *collogspb.ExportLogsServiceRequest) (retryable bool, err error)
	SendMetrics(ctx context.Context, req *colmetricspb.ExportMetricsServiceRequest) (retryable bool, err error)
}

// newTransport builds the transport configured for one signal.
func newTransport(cfg SignalConfig) transport {
	if cfg.Transport == TransportGRPC {
		return newGRPCTransport(cfg)
	}
	return newHTTPTransport(cfg)
}
