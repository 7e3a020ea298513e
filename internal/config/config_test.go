package config

import (
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go.emit.dev/emit/emitter/otlp"
)

func fixed(m map[string]string) func(string) (string, bool) {
	return func(k string) (string, bool) {
		v, ok := m[k]
		return v, ok
	}
}

func TestFromEnvResolvesServiceNameAndResourceAttributes(t *testing.T) {
	lookup := fixed(map[string]string{
		"OTEL_SERVICE_NAME":         "checkout",
		"OTEL_RESOURCE_ATTRIBUTES":  "env=prod,team=payments",
	})
	cfg := FromEnv(lookup)
	assert.Equal(t, "checkout", cfg.ServiceName)
	assert.Equal(t, map[string]string{"env": "prod", "team": "payments"}, cfg.ResourceAttributes)
}

func TestFromEnvEnablesSignalOnlyWhenEndpointResolved(t *testing.T) {
	lookup := fixed(map[string]string{
		"OTEL_EXPORTER_OTLP_TRACES_ENDPOINT": "https://collector:4318",
	})
	cfg := FromEnv(lookup)
	assert.True(t, cfg.OTLP.Traces.Enabled)
	assert.False(t, cfg.OTLP.Metrics.Enabled)
	assert.False(t, cfg.OTLP.Logs.Enabled)
}

func TestFromEnvMapsProtocolToTransportAndEncoding(t *testing.T) {
	lookup := fixed(map[string]string{
		"OTEL_EXPORTER_OTLP_ENDPOINT":  "http://localhost:4317",
		"OTEL_EXPORTER_OTLP_PROTOCOL":  "grpc",
	})
	cfg := signalFromEnv(lookup, "TRACES")
	assert.Equal(t, otlp.TransportGRPC, cfg.Transport)
	assert.Equal(t, otlp.EncodingProtobuf, cfg.Encoding)
}

func TestRegisterFlagsOverridesEnvResolvedDefaults(t *testing.T) {
	cfg := FromEnv(fixed(nil))
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	RegisterFlags(fs, &cfg)

	require.NoError(t, fs.Parse([]string{"--service-name=override", "--otlp-traces-enabled", "--otlp-traces-endpoint=http://localhost:4317"}))
	assert.Equal(t, "override", cfg.ServiceName)
	assert.True(t, cfg.OTLP.Traces.Enabled)
	assert.Equal(t, "http://localhost:4317", cfg.OTLP.Traces.Endpoint)
}
