// Package config assembles the emitter/file and emitter/otlp wiring
// the rest of this module needs from environment variables (§6),
// generalizing internal/env's typed OTEL_* lookups the way
// dd-trace-go/internal/env backs the teacher's own configuration
// surface. RegisterFlags additionally layers github.com/spf13/pflag
// CLI flags on top, for cmd/emitctl: flags default to whatever FromEnv
// already resolved and override it once the command line is parsed.
package config

import (
	"github.com/spf13/pflag"

	"go.emit.dev/emit/emitter/file"
	"go.emit.dev/emit/emitter/otlp"
	"go.emit.dev/emit/internal/env"
)

// Config is everything needed to build a Runtime's emitter stack.
type Config struct {
	ServiceName        string
	ResourceAttributes map[string]string

	FileEnabled bool
	File        file.Config

	OTLP otlp.Config
}

// FromEnv resolves a Config from process environment (or a fixed-map
// Lookup in tests) per §6: OTEL_SERVICE_NAME, OTEL_RESOURCE_ATTRIBUTES,
// OTEL_EXPORTER_OTLP_* generic and per-signal overrides, plus an
// EMIT_FILE_DIR escape hatch for the file emitter (outside the OTEL
// table, since OpenTelemetry's env spec has no notion of a local
// ndjson sink).
func FromEnv(lookup env.Lookup) Config {
	cfg := Config{
		ServiceName:        env.ServiceName(lookup, "emit"),
		ResourceAttributes: env.ResourceAttributes(lookup),
		OTLP: otlp.Config{
			Traces:  signalFromEnv(lookup, "TRACES"),
			Metrics: signalFromEnv(lookup, "METRICS"),
			Logs:    signalFromEnv(lookup, "LOGS"),
		},
	}
	cfg.OTLP.ServiceName = cfg.ServiceName
	cfg.OTLP.ResourceAttributes = cfg.ResourceAttributes

	if dir, ok := lookup("EMIT_FILE_DIR"); ok && dir != "" {
		cfg.FileEnabled = true
		cfg.File = file.Config{
			Dir:    dir,
			Prefix: env.String(lookup, "EMIT_FILE_PREFIX", "events"),
			Ext:    env.String(lookup, "EMIT_FILE_EXT", "ndjson"),
		}
	}
	return cfg
}

// signalFromEnv resolves one OTLP signal's SignalConfig, enabling it
// iff OTEL_EXPORTER_OTLP[_SIGNAL]_ENDPOINT resolved to a non-empty
// value — an unset endpoint means this signal was never configured to
// export anywhere.
func signalFromEnv(lookup env.Lookup, signal string) otlp.SignalConfig {
	resolved := env.OTLPSignal(lookup, signal)
	return otlp.SignalConfig{
		Enabled:   resolved.Endpoint != "",
		Endpoint:  resolved.Endpoint,
		Transport: transportOf(resolved.Protocol),
		Encoding:  encodingOf(resolved.Protocol),
		Headers:   resolved.Headers,
		Compress:  env.Bool(lookup, "OTEL_EXPORTER_OTLP_"+signal+"_COMPRESSION", true),
	}
}

func transportOf(p env.Protocol) otlp.Transport {
	if p == env.ProtocolGRPC {
		return otlp.TransportGRPC
	}
	return otlp.TransportHTTP
}

func encodingOf(p env.Protocol) otlp.Encoding {
	if p == env.ProtocolHTTPJSON {
		return otlp.EncodingJSON
	}
	return otlp.EncodingProtobuf
}

// RegisterFlags binds pflag flags onto fs whose defaults are cfg's
// current (environment-resolved) values; calling fs.Parse overwrites
// cfg's fields in place, so CLI flags take final precedence over
// environment variables.
func RegisterFlags(fs *pflag.FlagSet, cfg *Config) {
	fs.StringVar(&cfg.ServiceName, "service-name", cfg.ServiceName, "resource service.name reported on every signal")

	fs.BoolVar(&cfg.FileEnabled, "file-enabled", cfg.FileEnabled, "enable the rolling ndjson file emitter")
	fs.StringVar(&cfg.File.Dir, "file-dir", cfg.File.Dir, "directory the file emitter rolls files into")
	fs.StringVar(&cfg.File.Prefix, "file-prefix", orDefault(cfg.File.Prefix, "events"), "file name prefix")

	fs.BoolVar(&cfg.OTLP.Traces.Enabled, "otlp-traces-enabled", cfg.OTLP.Traces.Enabled, "enable the OTLP traces signal")
	fs.StringVar(&cfg.OTLP.Traces.Endpoint, "otlp-traces-endpoint", cfg.OTLP.Traces.Endpoint, "OTLP traces collector endpoint")

	fs.BoolVar(&cfg.OTLP.Metrics.Enabled, "otlp-metrics-enabled", cfg.OTLP.Metrics.Enabled, "enable the OTLP metrics signal")
	fs.StringVar(&cfg.OTLP.Metrics.Endpoint, "otlp-metrics-endpoint", cfg.OTLP.Metrics.Endpoint, "OTLP metrics collector endpoint")

	fs.BoolVar(&cfg.OTLP.Logs.Enabled, "otlp-logs-enabled", cfg.OTLP.Logs.Enabled, "enable the OTLP logs signal")
	fs.StringVar(&cfg.OTLP.Logs.Endpoint, "otlp-logs-endpoint", cfg.OTLP.Logs.Endpoint, "OTLP logs collector endpoint")
}

func orDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}
