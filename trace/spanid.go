package trace

import (
	"encoding/hex"

	"go.emit.dev/emit/core"
)

// SpanID is a 64-bit span identifier. The zero value represents "no
// span id", matching TraceID's convention.
type SpanID [8]byte

// SpanIDFromBytes builds a SpanID from 8 big-endian bytes.
func SpanIDFromBytes(b [8]byte) (SpanID, error) {
	if b == ([8]byte{}) {
		return SpanID{}, ErrZeroID
	}
	return SpanID(b), nil
}

// SpanIDFromUint64 builds a SpanID from a 64-bit integer.
func SpanIDFromUint64(v uint64) (SpanID, error) {
	var b [8]byte
	putUint64(b[:], v)
	return SpanIDFromBytes(b)
}

// SpanIDFromHex parses a 16-character lowercase hex string.
func SpanIDFromHex(s string) (SpanID, error) {
	if len(s) != 16 {
		return SpanID{}, ErrBadHex
	}
	var b [8]byte
	if _, err := hex.Decode(b[:], []byte(s)); err != nil {
		return SpanID{}, ErrBadHex
	}
	return SpanIDFromBytes(b)
}

// NewSpanID generates a random SpanID, returning false on RNG failure
// or an all-zero result.
func NewSpanID(rng core.Rng) (SpanID, bool) {
	var b [8]byte
	if !rng.Fill(b[:]) {
		return SpanID{}, false
	}
	if b == ([8]byte{}) {
		return SpanID{}, false
	}
	return SpanID(b), true
}

// Bytes returns the 8 big-endian bytes of s.
func (s SpanID) Bytes() [8]byte { return s }

// Hex renders s (including the zero value) as 16 lowercase hex chars.
func (s SpanID) Hex() string { return hex.EncodeToString(s[:]) }

// String implements fmt.Stringer, matching TraceID.
func (s SpanID) String() string { return s.Hex() }

// IsZero reports whether s is the "no span id" sentinel.
func (s SpanID) IsZero() bool { return s == SpanID{} }
