package core

import (
	"errors"
	"fmt"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

type customErr struct{ cause error }

func (c customErr) Error() string { return "request failed" }
func (c customErr) Unwrap() error { return c.cause }

func TestValueDisplayAppendsRootCauseForErrors(t *testing.T) {
	err := customErr{cause: errors.New("connection refused")}
	v := OfError(err)
	assert.Equal(t, "request failed (connection refused)", v.Display())
}

func TestValueDisplayErrorWithNoCause(t *testing.T) {
	v := OfError(errors.New("boom"))
	assert.Equal(t, "boom", v.Display())
}

func TestValueAsFloat64(t *testing.T) {
	assert.Equal(t, 3.0, OfInt(3).AsFloat64())
	assert.Equal(t, 3.0, OfUint(3).AsFloat64())
	assert.Equal(t, 3.5, OfFloat(3.5).AsFloat64())
	assert.Equal(t, 3.0, OfString(NewStr("3")).AsFloat64())
	assert.True(t, math.IsNaN(OfString(NewStr("nope")).AsFloat64()))
	assert.True(t, math.IsNaN(Null().AsFloat64()))
}

type point struct{ X, Y int }

func TestValueDowncastRoundtrips(t *testing.T) {
	p := point{1, 2}
	v := OfDebug(p)
	got, ok := Downcast[point](v)
	assert.True(t, ok)
	assert.Equal(t, p, got)

	_, ok = Downcast[string](v)
	assert.False(t, ok)
}

func TestValueDowncastFailsAfterLosingOrig(t *testing.T) {
	v := OfInt(5)
	v.orig = nil // simulates round-tripping through a serialization buffer
	_, ok := Downcast[int64](v)
	assert.False(t, ok)
	assert.Equal(t, "5", v.Display())
}

func TestValueOfStructured(t *testing.T) {
	sv := structuredStub{data: map[string]any{"a": 1}}
	v := OfStructured(sv)
	assert.JSONEq(t, `{"a":1}`, v.Display())
}

type structuredStub struct{ data any }

func (s structuredStub) StructuredValue() (any, error) { return s.data, nil }

func TestValueFormatFloat(t *testing.T) {
	assert.Equal(t, "null", OfFloat(math.NaN()).Display())
	assert.Equal(t, "null", OfFloat(math.Inf(1)).Display())
	assert.Equal(t, fmt.Sprintf("%v", 1.5), OfFloat(1.5).Display())
}

func TestValueOfSeqDisplay(t *testing.T) {
	v := OfSeq([]Value{OfInt(1), OfInt(2)})
	assert.Equal(t, `["1","2"]`, v.Display())
}
