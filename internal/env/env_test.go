package env

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func fixed(m map[string]string) Lookup {
	return func(key string) (string, bool) {
		v, ok := m[key]
		return v, ok
	}
}

func TestTypedGettersFallBackToDefault(t *testing.T) {
	l := fixed(map[string]string{"A": "true", "B": "7", "C": "1500ms"})
	assert.True(t, Bool(l, "A", false))
	assert.False(t, Bool(l, "MISSING", false))
	assert.Equal(t, 7, Int(l, "B", 0))
	assert.Equal(t, 0, Int(l, "MISSING", 0))
	assert.Equal(t, 1500*time.Millisecond, Duration(l, "C", 0))
}

func TestParseAttributesSkipsMalformedSegments(t *testing.T) {
	got := ParseAttributes("service.name=checkout, , =novalue,region=us-east-1")
	assert.Equal(t, map[string]string{"service.name": "checkout", "region": "us-east-1"}, got)
}

func TestOTLPSignalPerSignalOverridesGeneric(t *testing.T) {
	l := fixed(map[string]string{
		"OTEL_EXPORTER_OTLP_ENDPOINT":        "http://generic:4317",
		"OTEL_EXPORTER_OTLP_TRACES_ENDPOINT": "http://traces:4317",
		"OTEL_EXPORTER_OTLP_PROTOCOL":        "http/protobuf",
		"OTEL_EXPORTER_OTLP_TRACES_PROTOCOL": "grpc",
		"OTEL_EXPORTER_OTLP_HEADERS":         "x-api-key=shared",
		"OTEL_EXPORTER_OTLP_TRACES_HEADERS":  "x-trace-only=1",
	})
	cfg := OTLPSignal(l, "TRACES")
	assert.Equal(t, "http://traces:4317", cfg.Endpoint)
	assert.Equal(t, ProtocolGRPC, cfg.Protocol)
	assert.Equal(t, "shared", cfg.Headers["x-api-key"])
	assert.Equal(t, "1", cfg.Headers["x-trace-only"])
}

func TestOTLPSignalFallsBackToGenericWhenNoOverride(t *testing.T) {
	l := fixed(map[string]string{"OTEL_EXPORTER_OTLP_ENDPOINT": "http://generic:4317"})
	cfg := OTLPSignal(l, "METRICS")
	assert.Equal(t, "http://generic:4317", cfg.Endpoint)
	assert.Equal(t, ProtocolHTTPProtobuf, cfg.Protocol)
}
