// Package env implements typed environment-variable lookups in the
// teacher's internal/env idiom (a Get-with-default per type), and the
// OpenTelemetry OTEL_* variable table (§6 of the core spec):
// OTEL_EXPORTER_OTLP_* (protocol/endpoint/headers, globally and
// per-signal), OTEL_SERVICE_NAME, and OTEL_RESOURCE_ATTRIBUTES
// (a W3C-baggage-like "k=v,k2=v2" string).
package env

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Lookup abstracts os.LookupEnv so tests can substitute a fixed map
// instead of mutating process environment.
type Lookup func(key string) (string, bool)

// OS is the production Lookup, backed by os.LookupEnv.
func OS(key string) (string, bool) { return os.LookupEnv(key) }

// String returns the value of key, or def if unset.
func String(lookup Lookup, key, def string) string {
	if v, ok := lookup(key); ok {
		return v
	}
	return def
}

// Bool parses key as a bool ("1", "true", "TRUE", …, via
// strconv.ParseBool), returning def on absence or parse failure.
func Bool(lookup Lookup, key string, def bool) bool {
	v, ok := lookup(key)
	if !ok {
		return def
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return def
	}
	return b
}

// Int parses key as a base-10 integer, returning def on absence or
// parse failure.
func Int(lookup Lookup, key string, def int) int {
	v, ok := lookup(key)
	if !ok {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}

// Duration parses key with time.ParseDuration, returning def on
// absence or parse failure.
func Duration(lookup Lookup, key string, def time.Duration) time.Duration {
	v, ok := lookup(key)
	if !ok {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return def
	}
	return d
}

// ParseAttributes parses an OTEL_RESOURCE_ATTRIBUTES-style string:
// comma-separated "key=value" pairs, percent-decoding neither side
// (matching the spec's "W3C-baggage-without-properties" description —
// no ";property=..." suffixes are recognised, just key=value,key=value).
// Malformed segments (no "=", empty key) are skipped rather than
// aborting the whole parse.
func ParseAttributes(s string) map[string]string {
	out := make(map[string]string)
	if s == "" {
		return out
	}
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		k, v, ok := strings.Cut(part, "=")
		k = strings.TrimSpace(k)
		if !ok || k == "" {
			continue
		}
		out[k] = strings.TrimSpace(v)
	}
	return out
}

// Protocol is the OTLP wire protocol selected by
// OTEL_EXPORTER_OTLP_PROTOCOL / OTEL_EXPORTER_OTLP_{SIGNAL}_PROTOCOL.
type Protocol string

const (
	ProtocolGRPC           Protocol = "grpc"
	ProtocolHTTPProtobuf    Protocol = "http/protobuf"
	ProtocolHTTPJSON        Protocol = "http/json"
)

// ParseProtocol maps the OTEL_EXPORTER_OTLP_PROTOCOL values to a
// Protocol, defaulting to http/protobuf (the specification's default)
// on an unrecognized or absent value.
func ParseProtocol(lookup Lookup, key string) Protocol {
	switch String(lookup, key, "") {
	case "grpc":
		return ProtocolGRPC
	case "http/json":
		return ProtocolHTTPJSON
	case "http/protobuf":
		return ProtocolHTTPProtobuf
	default:
		return ProtocolHTTPProtobuf
	}
}

// Headers parses an OTEL_EXPORTER_OTLP_*_HEADERS-style
// "k1=v1,k2=v2" string into a map; it shares the same grammar as
// ParseAttributes.
func Headers(lookup Lookup, key string) map[string]string {
	return ParseAttributes(String(lookup, key, ""))
}

// OTLPSignalConfig is the resolved configuration for one OTLP signal
// (logs, traces, or metrics), after applying the per-signal override
// on top of the generic OTEL_EXPORTER_OTLP_* fallback.
type OTLPSignalConfig struct {
	Endpoint string
	Protocol Protocol
	Headers  map[string]string
}

// OTLPSignal resolves OTEL_EXPORTER_OTLP_{SIGNAL}_* over
// OTEL_EXPORTER_OTLP_* for one signal name ("TRACES", "METRICS",
// "LOGS"), per the OpenTelemetry environment variable specification's
// generic/per-signal precedence.
func OTLPSignal(lookup Lookup, signal string) OTLPSignalConfig {
	generic := String(lookup, "OTEL_EXPORTER_OTLP_ENDPOINT", "")
	specific := String(lookup, "OTEL_EXPORTER_OTLP_"+signal+"_ENDPOINT", "")
	endpoint := generic
	if specific != "" {
		endpoint = specific
	}

	proto := ParseProtocol(lookup, "OTEL_EXPORTER_OTLP_PROTOCOL")
	if v, ok := lookup("OTEL_EXPORTER_OTLP_" + signal + "_PROTOCOL"); ok {
		proto = ParseProtocol(func(string) (string, bool) { return v, true }, "")
	}

	headers := Headers(lookup, "OTEL_EXPORTER_OTLP_HEADERS")
	for k, v := range Headers(lookup, "OTEL_EXPORTER_OTLP_"+signal+"_HEADERS") {
		headers[k] = v
	}

	return OTLPSignalConfig{Endpoint: endpoint, Protocol: proto, Headers: headers}
}

// ServiceName resolves OTEL_SERVICE_NAME, falling back to def.
func ServiceName(lookup Lookup, def string) string {
	return String(lookup, "OTEL_SERVICE_NAME", def)
}

// ResourceAttributes resolves OTEL_RESOURCE_ATTRIBUTES.
func ResourceAttributes(lookup Lookup) map[string]string {
	return ParseAttributes(String(lookup, "OTEL_RESOURCE_ATTRIBUTES", ""))
}
