package otlp

import (
	commonv1 "go.opentelemetry.io/proto/otlp/common/v1"
	resourcev1 "go.opentelemetry.io/proto/otlp/resource/v1"

	"go.emit.dev/emit/core"
)

// buildResource assembles the OTLP Resource message sent once per
// request (§4.8 "Resource"), from the configured service name and
// resource attributes (themselves populated from OTEL_SERVICE_NAME /
// OTEL_RESOURCE_ATTRIBUTES by internal/env, or set directly by a
// caller that isn't driven by environment variables).
func buildResource(serviceName string, attrs map[string]string) *resourcev1.Resource {
	kvs := make([]*commonv1.KeyValue, 0, len(attrs)+1)
	if serviceName != "" {
		kvs = append(kvs, stringKV("service.name", serviceName))
	}
	for k, v := range attrs {
		if k == "service.name" {
			continue
		}
		kvs = append(kvs, stringKV(k, v))
	}
	return &resourcev1.Resource{Attributes: kvs}
}

func stringKV(k, v string) *commonv1.KeyValue {
	return &commonv1.KeyValue{
		Key:   k,
		Value: &commonv1.AnyValue{Value: &commonv1.AnyValue_StringValue{StringValue: v}},
	}
}

// scope is the one InstrumentationScope this module reports under;
// OTLP requires one but nothing in the spec gives it a name we should
// prefer over the module's own identity. Every request carries this
// scope; no per-event scope is derived from the event's mdl.
var scope = &commonv1.InstrumentationScope{Name: "go.emit.dev/emit"}

// anyValueOf converts a core.Value into an OTLP AnyValue. Sequences
// become ArrayValue; anything else (object, error, big int) falls
// back to its Display() text, matching core.Value.JSONValue's own
// fallback rule used by the file emitter.
func anyValueOf(v core.Value) *commonv1.AnyValue {
	switch v.Kind() {
	case core.KindBool:
		b, _ := core.Downcast[bool](v)
		return &commonv1.AnyValue{Value: &commonv1.AnyValue_BoolValue{BoolValue: b}}
	case core.KindInt:
		i, _ := core.Downcast[int64](v)
		return &commonv1.AnyValue{Value: &commonv1.AnyValue_IntValue{IntValue: i}}
	case core.KindUint:
		u, _ := core.Downcast[uint64](v)
		return &commonv1.AnyValue{Value: &commonv1.AnyValue_IntValue{IntValue: int64(u)}}
	case core.KindFloat:
		return &commonv1.AnyValue{Value: &commonv1.AnyValue_DoubleValue{DoubleValue: v.AsFloat64()}}
	case core.KindString:
		return &commonv1.AnyValue{Value: &commonv1.AnyValue_StringValue{StringValue: v.Display()}}
	case core.KindSeq:
		return &commonv1.AnyValue{Value: &commonv1.AnyValue_ArrayValue{ArrayValue: seqValueOf(v)}}
	default:
		return &commonv1.AnyValue{Value: &commonv1.AnyValue_StringValue{StringValue: v.Display()}}
	}
}

func seqValueOf(v core.Value) *commonv1.ArrayValue {
	jv := v.JSONValue()
	elems, ok := jv.([]any)
	if !ok {
		return &commonv1.ArrayValue{}
	}
	out := make([]*commonv1.AnyValue, 0, len(elems))
	for _, e := range elems {
		out = append(out, anyValueOfNative(e))
	}
	return &commonv1.ArrayValue{Values: out}
}

func anyValueOfNative(v any) *commonv1.AnyValue {
	switch t := v.(type) {
	case bool:
		return &commonv1.AnyValue{Value: &commonv1.AnyValue_BoolValue{BoolValue: t}}
	case int64:
		return &commonv1.AnyValue{Value: &commonv1.AnyValue_IntValue{IntValue: t}}
	case uint64:
		return &commonv1.AnyValue{Value: &commonv1.AnyValue_IntValue{IntValue: int64(t)}}
	case float64:
		return &commonv1.AnyValue{Value: &commonv1.AnyValue_DoubleValue{DoubleValue: t}}
	case string:
		return &commonv1.AnyValue{Value: &commonv1.AnyValue_StringValue{StringValue: t}}
	case nil:
		return &commonv1.AnyValue{}
	default:
		return &commonv1.AnyValue{}
	}
}

// attributesOf renders p as OTLP KeyValue attributes, skipping any key
// in skip (the well-known keys already represented as dedicated
// fields — trace_id, span_id, lvl, and so on).
func attributesOf(p core.Props, skip map[string]bool) []*commonv1.KeyValue {
	var out []*commonv1.KeyValue
	seen := make(map[string]bool, 8)
	p.ForEach(func(k core.Str, v core.Value) bool {
		ks := k.String()
		if seen[ks] || skip[ks] {
			return false
		}
		seen[ks] = true
		out = append(out, &commonv1.KeyValue{Key: ks, Value: anyValueOf(v)})
		return false
	})
	return out
}
