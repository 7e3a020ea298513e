// Package otlp implements the OTLP emitter (§4.8, C11): logs, traces,
// and metrics encoded as protobuf or JSON, shipped over OTLP/HTTP or
// gRPC, each signal batched independently on top of package batch.
// Both transports speak HTTP/2 (cleartext h2c, or TLS for https
// endpoints); the OTLP/HTTP transport does not use HTTP/1.1. Signal
// selection, channel bucketing, metric/span encoding, and the
// resource/env wiring all follow the core specification's
// §4.8/§6 description; the transports are grounded on the pack's own
// OTLP reference files (see DESIGN.md).
package otlp

import (
	"go.emit.dev/emit/core"
	"go.emit.dev/emit/trace"
)

// Transport selects how a signal's requests are shipped.
type Transport int

const (
	TransportHTTP Transport = iota
	TransportGRPC
)

// Encoding selects the wire representation of a signal's requests.
// gRPC transport always implies protobuf; HTTP may use either.
type Encoding int

const (
	EncodingProtobuf Encoding = iota
	EncodingJSON
)

// SignalConfig configures one of the three OTLP signals independently,
// matching OTEL_EXPORTER_OTLP_{SIGNAL}_* overriding
// OTEL_EXPORTER_OTLP_* (see internal/env.OTLPSignal).
type SignalConfig struct {
	Enabled   bool
	Endpoint  string
	Transport Transport
	Encoding  Encoding
	Headers   map[string]string
	Compress  bool
}

// defaultMaxRequestSizeBytes is the §4.8 default bucket size: once a
// channel's accumulated payload reaches this many bytes, it opens a
// new outgoing request rather than growing the current one further.
const defaultMaxRequestSizeBytes = 1 << 20 // 1 MiB

// defaultMaxExpHistogramBuckets is the §4.8 target bucket count an
// exponential histogram rescales down to fit.
const defaultMaxExpHistogramBuckets = 160

// Config assembles everything the OTLP emitter needs: per-signal
// transport settings, the shared resource identity, and the batching
// channels' capacity, request-size and histogram-bucket limits.
// Sampler, Clock and Rng are accepted but not read by this package:
// the emitter makes no sampling decision of its own for span-kind
// events and uses no clock or random source.
type Config struct {
	Logs, Traces, Metrics SignalConfig

	MaxRequestSizeBytes   int
	MaxExpHistogramBuckets int

	ServiceName        string
	ResourceAttributes map[string]string

	Sampler trace.Sampler
	Clock   core.Clock
	Rng     core.Rng

	MaxChannelCapacity int
}

func (c Config) maxRequestSizeBytes() int {
	if c.MaxRequestSizeBytes > 0 {
		return c.MaxRequestSizeBytes
	}
	return defaultMaxRequestSizeBytes
}

func (c Config) maxExpHistogramBuckets() int {
	if c.MaxExpHistogramBuckets > 0 {
		return c.MaxExpHistogramBuckets
	}
	return defaultMaxExpHistogramBuckets
}

func (c Config) maxChannelCapacity() int {
	if c.MaxChannelCapacity > 0 {
		return c.MaxChannelCapacity
	}
	return 2048
}
