// Package goid extracts the calling goroutine's runtime-assigned id.
// Go deliberately has no native goroutine-local storage; this parses
// the header line of runtime.Stack, the long-standing (if unofficial)
// technique other ambient-context libraries use in its place — the
// Go analogue of a thread-local slot keyed by OS thread id.
package goid

import (
	"bytes"
	"runtime"
	"strconv"
)

// Current returns the id of the calling goroutine.
func Current() uint64 {
	buf := make([]byte, 64)
	n := runtime.Stack(buf, false)
	buf = buf[:n]
	buf = bytes.TrimPrefix(buf, []byte("goroutine "))
	i := bytes.IndexByte(buf, ' ')
	if i < 0 {
		return 0
	}
	id, err := strconv.ParseUint(string(buf[:i]), 10, 64)
	if err != nil {
		return 0
	}
	return id
}
