package core

import (
	"errors"
	"time"
)

// Timestamp is a Unix epoch time in nanoseconds, restricted to
// [1970-01-01T00:00:00Z, 2262-04-11T23:47:16.854775807Z], the span of a
// non-negative int64 nanosecond count. Later instants, up to
// 9999-12-31T23:59:59.999999999Z and beyond, are not representable and
// are rejected with ErrOutOfRange.
type Timestamp struct {
	nanos int64
}

// minTimestampNanos/maxTimestampNanos bound the representable range.
// maxTime.Sub(minTime) exceeds time.Duration and saturates at
// math.MaxInt64, so maxTimestampNanos is the int64 limit, not maxTime.
var (
	minTime           = time.Date(1970, 1, 1, 0, 0, 0, 0, time.UTC)
	maxTime           = time.Date(9999, 12, 31, 23, 59, 59, 999999999, time.UTC)
	minTimestampNanos = int64(0)
	maxTimestampNanos = maxTime.Sub(minTime).Nanoseconds()
)

// ErrOutOfRange is returned when a Timestamp would fall outside the
// representable range.
var ErrOutOfRange = errors.New("timestamp out of representable range")

// FromUnixNanos constructs a Timestamp from nanoseconds since epoch,
// failing if out of range.
func FromUnixNanos(nanos int64) (Timestamp, error) {
	if nanos < minTimestampNanos || nanos > maxTimestampNanos {
		return Timestamp{}, ErrOutOfRange
	}
	return Timestamp{nanos: nanos}, nil
}

// FromTime converts a time.Time to a Timestamp (truncating to UTC),
// failing if t is outside the representable range.
func FromTime(t time.Time) (Timestamp, error) {
	u := t.UTC()
	if u.Before(minTime) || u.After(minTime.Add(time.Duration(maxTimestampNanos))) {
		return Timestamp{}, ErrOutOfRange
	}
	return FromUnixNanos(u.Sub(minTime).Nanoseconds())
}

// UnixNanos returns the nanoseconds since epoch.
func (t Timestamp) UnixNanos() int64 { return t.nanos }

// Time converts back to a standard library time.Time (UTC).
func (t Timestamp) Time() time.Time {
	return minTime.Add(time.Duration(t.nanos))
}

// String formats t as RFC3339 with nanosecond precision, always UTC
// with a "Z" suffix.
func (t Timestamp) String() string {
	return t.Time().Format("2006-01-02T15:04:05.999999999Z")
}

// ErrBadTimestamp is returned by ParseTimestamp on malformed input.
var ErrBadTimestamp = errors.New("malformed RFC3339 timestamp")

// ParseTimestamp parses an RFC3339 string. Only the UTC "Z" suffix is
// accepted; any explicit non-Z offset is rejected.
func ParseTimestamp(s string) (Timestamp, error) {
	if len(s) == 0 || s[len(s)-1] != 'Z' {
		return Timestamp{}, ErrBadTimestamp
	}
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return Timestamp{}, ErrBadTimestamp
	}
	return FromTime(t)
}

// Parts is the Y/M/D h:m:s.ns decomposition of a Timestamp.
type Parts struct {
	Year                      int
	Month                     int
	Day                       int
	Hour, Minute, Second      int
	Nanosecond                int
}

// ToParts decomposes t into its calendar/clock components (UTC).
func (t Timestamp) ToParts() Parts {
	tt := t.Time()
	return Parts{
		Year:       tt.Year(),
		Month:      int(tt.Month()),
		Day:        tt.Day(),
		Hour:       tt.Hour(),
		Minute:     tt.Minute(),
		Second:     tt.Second(),
		Nanosecond: tt.Nanosecond(),
	}
}

// FromParts recomposes a Timestamp from its calendar/clock components.
// Returns false if the parts fall outside the representable range.
func FromParts(p Parts) (Timestamp, bool) {
	tt := time.Date(p.Year, time.Month(p.Month), p.Day, p.Hour, p.Minute, p.Second, p.Nanosecond, time.UTC)
	ts, err := FromTime(tt)
	if err != nil {
		return Timestamp{}, false
	}
	return ts, true
}

// Add returns t advanced by d, failing if the result is out of range.
func (t Timestamp) Add(d time.Duration) (Timestamp, error) {
	return FromUnixNanos(t.nanos + int64(d))
}

// Sub returns t moved back by d, failing if the result is out of
// range.
func (t Timestamp) Sub(d time.Duration) (Timestamp, error) {
	return FromUnixNanos(t.nanos - int64(d))
}

// Diff returns the duration from other to t (t - other).
func (t Timestamp) Diff(other Timestamp) time.Duration {
	return time.Duration(t.nanos - other.nanos)
}

// Before reports whether t is strictly earlier than other.
func (t Timestamp) Before(other Timestamp) bool { return t.nanos < other.nanos }

// Equal reports whether t and other represent the same instant.
func (t Timestamp) Equal(other Timestamp) bool { return t.nanos == other.nanos }
