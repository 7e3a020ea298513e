// Package trace implements distributed-trace identity: strongly typed
// W3C trace/span ids, traceparent parsing/propagation, and their
// interaction with the ambient context (§4.4–4.5 of the core spec).
package trace

import (
	"encoding/hex"
	"errors"

	"go.emit.dev/emit/core"
)

// TraceID is a 128-bit trace identifier. The zero value represents
// "no trace id" everywhere in this package, which is consistent with
// the invariant that a valid TraceID is never all-zero.
type TraceID [16]byte

// ErrZeroID is returned when a parsed or supplied id is all-zero,
// which is never a valid trace/span identity (only a "none" sentinel).
var ErrZeroID = errors.New("trace: id is all-zero")

// ErrBadHex is returned when a hex string is the wrong length or
// contains non-hex characters.
var ErrBadHex = errors.New("trace: malformed hex id")

// TraceIDFromBytes builds a TraceID from 16 big-endian bytes, failing
// if the result would be all-zero.
func TraceIDFromBytes(b [16]byte) (TraceID, error) {
	if b == ([16]byte{}) {
		return TraceID{}, ErrZeroID
	}
	return TraceID(b), nil
}

// TraceIDFromUint128 builds a TraceID from a 128-bit integer expressed
// as (high, low) 64-bit halves.
func TraceIDFromUint128(hi, lo uint64) (TraceID, error) {
	var b [16]byte
	putUint64(b[0:8], hi)
	putUint64(b[8:16], lo)
	return TraceIDFromBytes(b)
}

// TraceIDFromHex parses a 32-character lowercase hex string.
func TraceIDFromHex(s string) (TraceID, error) {
	if len(s) != 32 {
		return TraceID{}, ErrBadHex
	}
	var b [16]byte
	if _, err := hex.Decode(b[:], []byte(s)); err != nil {
		return TraceID{}, ErrBadHex
	}
	return TraceIDFromBytes(b)
}

// NewTraceID generates a random TraceID using rng, returning false if
// the Rng fails or yields an all-zero value; retrying is the caller's
// choice.
func NewTraceID(rng core.Rng) (TraceID, bool) {
	var b [16]byte
	if !rng.Fill(b[:]) {
		return TraceID{}, false
	}
	if b == ([16]byte{}) {
		return TraceID{}, false
	}
	return TraceID(b), true
}

// Bytes returns the 16 big-endian bytes of t.
func (t TraceID) Bytes() [16]byte { return t }

// Hex renders t (including the zero value) as 32 lowercase hex chars.
func (t TraceID) Hex() string { return hex.EncodeToString(t[:]) }

// String implements fmt.Stringer so a TraceID can be captured directly
// into a core.Value via core.OfDisplay and still downcast to itself.
func (t TraceID) String() string { return t.Hex() }

// IsZero reports whether t is the "no trace id" sentinel.
func (t TraceID) IsZero() bool { return t == TraceID{} }

func putUint64(b []byte, v uint64) {
	for i := 7; i >= 0; i-- {
		b[i] = byte(v)
		v >>= 8
	}
}
