package batch

// window implements the sliding-window capacity prediction rule
// (§4.6.a): the next batch's pre-allocation is the max of the last N
// observed batch sizes, which grows quickly but never oscillates down
// on a single quiet batch. Owned exclusively by one Receiver, which is
// itself single-consumer, so it needs no locking of its own.
type window struct {
	sizes [16]int
	n     int
	idx   int
}

// predict returns the allocation hint for the next swapped-in batch.
func (w *window) predict() int {
	max := 0
	for i := 0; i < w.n; i++ {
		if w.sizes[i] > max {
			max = w.sizes[i]
		}
	}
	return max
}

// record folds size into the window, evicting the oldest entry once
// full.
func (w *window) record(size int) {
	w.sizes[w.idx] = size
	w.idx = (w.idx + 1) % len(w.sizes)
	if w.n < len(w.sizes) {
		w.n++
	}
}
