package core

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"math/big"
	"strconv"
)

// Kind tags the variant stored in a Value.
type Kind uint8

const (
	KindNull Kind = iota
	KindBool
	KindInt
	KindUint
	KindBigInt // used only when the magnitude does not fit in int64/uint64
	KindFloat
	KindString
	KindError
	KindSeq
	KindObject
)

// Object is anything that can render itself for display. A Value built
// from an Object that also implements StructuredValuer is considered
// "structured-data" captured; otherwise it is "display" captured.
type Object interface {
	fmt.Stringer
}

// StructuredValuer is implemented by objects that can describe
// themselves as a self-describing tree (maps/slices/scalars) rather
// than only a flat string.
type StructuredValuer interface {
	StructuredValue() (any, error)
}

// Value is an anonymous, clone-cheap handle over one of: null, bool,
// signed/unsigned integer (up to 128 bits), float64, string, error
// (with source chain), a sequence of values, or a polymorphic object.
//
// A Value is a plain struct and copies by value; cloning never
// allocates beyond whatever the held variant itself requires (a string
// header copy, an interface copy).
type Value struct {
	kind Kind
	b    bool
	i    int64
	u    uint64
	big  *big.Int
	f    float64
	str  Str
	err  error
	seq  []Value
	obj  Object
	// orig retains the original concrete value for downcast when the
	// captured form above is lossy (e.g. a domain struct captured via
	// Display still downcasts to itself).
	orig any
}

// Null returns the absent/none value. Props treat a Null value as
// semantically missing (see Props.ForEach).
func Null() Value { return Value{kind: KindNull} }

// IsNull reports whether v is the null/missing value.
func (v Value) IsNull() bool { return v.kind == KindNull }

// Kind returns v's variant tag.
func (v Value) Kind() Kind { return v.kind }

// OfBool captures a bool.
func OfBool(b bool) Value { return Value{kind: KindBool, b: b, orig: b} }

// OfInt captures a signed integer (up to 64 bits fast path).
func OfInt(i int64) Value { return Value{kind: KindInt, i: i, orig: i} }

// OfUint captures an unsigned integer (up to 64 bits fast path).
func OfUint(u uint64) Value { return Value{kind: KindUint, u: u, orig: u} }

// OfBigInt captures an arbitrary-precision integer (used for values
// that do not fit in int64/uint64, e.g. 128-bit trace/span math).
func OfBigInt(i *big.Int) Value { return Value{kind: KindBigInt, big: i, orig: i} }

// OfFloat captures a binary float.
func OfFloat(f float64) Value { return Value{kind: KindFloat, f: f, orig: f} }

// OfString captures borrowed, static, or owned text.
func OfString(s Str) Value { return Value{kind: KindString, str: s, orig: s.String()} }

// OfStringLiteral is a convenience for capturing a Go string literal
// as a static Str.
func OfStringLiteral(s string) Value { return OfString(NewStaticStr(s)) }

// OfError captures an error, preserving its source chain for Display.
func OfError(err error) Value { return Value{kind: KindError, err: err, orig: err} }

// OfSeq captures a sequence of values.
func OfSeq(vs []Value) Value { return Value{kind: KindSeq, seq: vs, orig: vs} }

// OfDisplay captures any fmt.Stringer via its Display text, retaining
// the original object for downcast.
func OfDisplay(o Object) Value { return Value{kind: KindObject, obj: o, orig: o} }

// OfDebug captures any value using Go's "%+v" debug rendering,
// retaining the original object for downcast.
func OfDebug(v any) Value {
	return Value{kind: KindObject, obj: debugObject{v}, orig: v}
}

type debugObject struct{ v any }

func (d debugObject) String() string { return fmt.Sprintf("%+v", d.v) }

// OfStructured captures a StructuredValuer, which also satisfies
// Object (fmt.Stringer) for the flat-text rendering path.
func OfStructured(o StructuredValuer) Value {
	obj, _ := o.(Object)
	if obj == nil {
		obj = structuredAsDisplay{o}
	}
	return Value{kind: KindObject, obj: obj, orig: o}
}

type structuredAsDisplay struct{ v StructuredValuer }

func (s structuredAsDisplay) String() string {
	data, err := s.v.StructuredValue()
	if err != nil {
		return fmt.Sprintf("<error: %v>", err)
	}
	b, err := json.Marshal(data)
	if err != nil {
		return fmt.Sprintf("<error: %v>", err)
	}
	return string(b)
}

// OfSerializable captures any value by marshaling it through
// encoding/json, retaining the original for downcast. Use for values
// whose natural capture mode is "serialize me", mirroring the
// macro-level `as_serde`/`as_value` capture choice.
func OfSerializable(v any) Value {
	return Value{kind: KindObject, obj: serializableObject{v}, orig: v}
}

type serializableObject struct{ v any }

func (s serializableObject) String() string {
	b, err := json.Marshal(s.v)
	if err != nil {
		return fmt.Sprintf("<error: %v>", err)
	}
	return string(b)
}

// ErrMissing is returned by accessors that require a concrete typed
// value when the Value is null.
var ErrMissing = errors.New("value is missing")

// Downcast attempts to recover the original concrete Go value that was
// captured into v. It is best-effort: once a Value has been
// round-tripped through a serialisation buffer (e.g. after crossing a
// batching channel), the original pointer is gone and Downcast fails
// even though the textual/numeric forms remain available.
func Downcast[T any](v Value) (T, bool) {
	var zero T
	if v.orig == nil {
		return zero, false
	}
	t, ok := v.orig.(T)
	return t, ok
}

// Display renders v as text. For a captured error, the root cause is
// appended in parentheses, e.g. "dial failed (connection refused)".
func (v Value) Display() string {
	switch v.kind {
	case KindNull:
		return ""
	case KindBool:
		return strconv.FormatBool(v.b)
	case KindInt:
		return strconv.FormatInt(v.i, 10)
	case KindUint:
		return strconv.FormatUint(v.u, 10)
	case KindBigInt:
		if v.big == nil {
			return "0"
		}
		return v.big.String()
	case KindFloat:
		return formatFloat(v.f)
	case KindString:
		return v.str.String()
	case KindError:
		return displayError(v.err)
	case KindSeq:
		parts := make([]string, len(v.seq))
		for i, e := range v.seq {
			parts[i] = e.Display()
		}
		b, _ := json.Marshal(parts)
		return string(b)
	case KindObject:
		if v.obj == nil {
			return ""
		}
		return v.obj.String()
	default:
		return ""
	}
}

func displayError(err error) string {
	if err == nil {
		return ""
	}
	root := rootCause(err)
	if root == err || root == nil {
		return err.Error()
	}
	return fmt.Sprintf("%s (%s)", err.Error(), root.Error())
}

func rootCause(err error) error {
	for {
		unwrapped := errors.Unwrap(err)
		if unwrapped == nil {
			return err
		}
		err = unwrapped
	}
}

func formatFloat(f float64) string {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return "null"
	}
	return strconv.FormatFloat(f, 'g', -1, 64)
}

// String implements fmt.Stringer so a Value prints sensibly in %v/%s.
func (v Value) String() string { return v.Display() }

// AsFloat64 performs a lossy numeric conversion: numeric kinds convert
// directly; a bool converts to 1 or 0; strings are parsed, and every
// other kind is parsed from its Display() text. A parse failure
// yields NaN.
func (v Value) AsFloat64() float64 {
	switch v.kind {
	case KindInt:
		return float64(v.i)
	case KindUint:
		return float64(v.u)
	case KindBigInt:
		if v.big == nil {
			return 0
		}
		f, _ := new(big.Float).SetInt(v.big).Float64()
		return f
	case KindFloat:
		return v.f
	case KindBool:
		if v.b {
			return 1
		}
		return 0
	case KindString:
		f, err := strconv.ParseFloat(v.str.String(), 64)
		if err != nil {
			return math.NaN()
		}
		return f
	default:
		text := v.Display()
		f, err := strconv.ParseFloat(text, 64)
		if err != nil {
			return math.NaN()
		}
		return f
	}
}

// TextParser is implemented by types that can parse themselves from
// text, matching the standard library's encoding.TextUnmarshaler
// shape so existing parsers compose for free.
type TextParser interface {
	UnmarshalText(text []byte) error
}

// ParseInto parses v's textual form into dst, which must implement
// TextParser. The textual form is the captured string when v holds a
// string, otherwise v's rendered Display() text.
func ParseInto(v Value, dst TextParser) error {
	var text string
	if v.kind == KindString {
		text = v.str.String()
	} else {
		text = v.Display()
	}
	return dst.UnmarshalText([]byte(text))
}

// JSONValue renders v as a native Go value suitable for
// encoding/json: bool/int64/uint64/float64/string pass through
// directly, a seq becomes a []any of recursively-rendered elements,
// and anything else (object, error, big int) falls back to its
// Display() text. Used by emitters that serialize events as JSON
// (ndjson file output, OTLP attribute values).
func (v Value) JSONValue() any {
	switch v.kind {
	case KindNull:
		return nil
	case KindBool:
		return v.b
	case KindInt:
		return v.i
	case KindUint:
		return v.u
	case KindFloat:
		return v.f
	case KindString:
		return v.str.String()
	case KindSeq:
		out := make([]any, len(v.seq))
		for i, e := range v.seq {
			out[i] = e.JSONValue()
		}
		return out
	default:
		return v.Display()
	}
}

// ToOwned returns a Value guaranteed not to borrow any caller-owned
// memory beyond this call. For strings this upgrades a non-static Str
// to an owned one; every other variant is already self-contained.
func (v Value) ToOwned() Value {
	if v.kind == KindString {
		if _, static := v.str.GetStatic(); !static {
			v.str = NewOwnedStr(v.str.String())
		}
	}
	return v
}
