package trace

import (
	"encoding/hex"
	"errors"
)

// FlagSampled is the one bit of the W3C trace-flags byte this package
// interprets; the other 7 bits round-trip but are otherwise ignored.
const FlagSampled byte = 0x01

// traceparentLen is the exact wire length of a W3C traceparent header:
// "00" "-" 32 hex "-" 16 hex "-" 2 hex.
const traceparentLen = 2 + 1 + 32 + 1 + 16 + 1 + 2

// ErrBadTraceparent is returned by ParseTraceparent for any input that
// does not match the W3C grammar exactly.
var ErrBadTraceparent = errors.New("trace: malformed traceparent header")

// Traceparent is the W3C-format distributed trace carrier: a version
// byte (always 00 here), a trace id, a span id, and a flags byte. A
// zero TraceID/SpanID serializes as all-zero hex and is read back as
// "no id" rather than rejected, unlike TraceIDFromHex/SpanIDFromHex.
type Traceparent struct {
	TraceID TraceID
	SpanID  SpanID
	Flags   byte
}

// Sampled reports whether the sampled bit is set.
func (tp Traceparent) Sampled() bool { return tp.Flags&FlagSampled != 0 }

// IsEmpty reports whether tp carries no trace identity at all.
func (tp Traceparent) IsEmpty() bool { return tp.TraceID.IsZero() && tp.SpanID.IsZero() }

// String renders tp in the canonical "00-<traceid>-<spanid>-<flags>"
// form, 55 bytes exactly.
func (tp Traceparent) String() string {
	buf := make([]byte, 0, traceparentLen)
	buf = append(buf, '0', '0', '-')
	buf = append(buf, []byte(tp.TraceID.Hex())...)
	buf = append(buf, '-')
	buf = append(buf, []byte(tp.SpanID.Hex())...)
	buf = append(buf, '-')
	buf = append(buf, hex.EncodeToString([]byte{tp.Flags})...)
	return string(buf)
}

// ParseTraceparent parses the standard "version-traceid-spanid-flags"
// header. Only version "00" is accepted; an all-zero trace or span id
// field parses successfully as the zero (absent) id, matching the
// "Zero IDs are represented as None" convention used when exposing a
// Traceparent as a SpanCtxt.
func ParseTraceparent(s string) (Traceparent, error) {
	if len(s) != traceparentLen {
		return Traceparent{}, ErrBadTraceparent
	}
	if s[0:2] != "00" || s[2] != '-' || s[35] != '-' || s[52] != '-' {
		return Traceparent{}, ErrBadTraceparent
	}
	for i := 3; i < traceparentLen; i++ {
		if c := s[i]; c >= 'A' && c <= 'F' {
			return Traceparent{}, ErrBadTraceparent
		}
	}
	var tid [16]byte
	if _, err := hex.Decode(tid[:], []byte(s[3:35])); err != nil {
		return Traceparent{}, ErrBadTraceparent
	}
	var sid [8]byte
	if _, err := hex.Decode(sid[:], []byte(s[36:52])); err != nil {
		return Traceparent{}, ErrBadTraceparent
	}
	var flags [1]byte
	if _, err := hex.Decode(flags[:], []byte(s[53:55])); err != nil {
		return Traceparent{}, ErrBadTraceparent
	}
	return Traceparent{TraceID: TraceID(tid), SpanID: SpanID(sid), Flags: flags[0]}, nil
}
