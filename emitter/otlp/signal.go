package otlp

import "google.golang.org/protobuf/proto"

// bucketByBudget splits items into groups whose accumulated
// proto.Size() does not exceed maxBytes, opening a new group once the
// current one would exceed it (§4.8 "Channel framing"). A single item
// larger than maxBytes gets its own group rather than being dropped.
func bucketByBudget[T proto.Message](items []T, maxBytes int) [][]T {
	if len(items) == 0 {
		return nil
	}
	var out [][]T
	var cur []T
	curBytes := 0
	for _, item := range items {
		sz := proto.Size(item)
		if len(cur) > 0 && curBytes+sz > maxBytes {
			out = append(out, cur)
			cur = nil
			curBytes = 0
		}
		cur = append(cur, item)
		curBytes += sz
	}
	if len(cur) > 0 {
		out = append(out, cur)
	}
	return out
}
