package file

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"go.emit.dev/emit/batch"
)

// writer owns the currently-open file and the rollover/retention state
// machine described in §4.7. It is driven exclusively by the batching
// channel's single Receiver goroutine, so it needs no locking of its
// own.
type writer struct {
	cfg Config

	f             *os.File
	path          string
	size          int64
	intervalStart time.Time
	wroteAny      bool // whether this process has written to f yet (reuse-file recovery)
}

func newWriter(cfg Config) *writer {
	return &writer{cfg: cfg}
}

// OnBatch is the batch.Receiver callback: it writes every line in
// lines to the current file, rolling over first if required, and
// reports a retryable error carrying the whole batch on write failure
// (so it is retried against a freshly rolled file) or a non-retryable
// error on flush/fsync failure (already-written lines may be
// duplicated on restart, which the spec accepts).
func (w *writer) OnBatch(lines [][]byte) error {
	now := w.now()
	if err := w.ensureFile(now); err != nil {
		return batch.BatchError[[]byte]{Retryable: lines}
	}

	sep := w.cfg.separator()
	for _, line := range lines {
		buf := make([]byte, 0, len(line)+1)
		buf = append(buf, line...)
		buf = append(buf, sep)
		n, err := w.f.Write(buf)
		w.size += int64(n)
		if err != nil {
			w.abandon()
			return batch.BatchError[[]byte]{Retryable: lines}
		}
		w.wroteAny = true
	}

	if err := w.f.Sync(); err != nil {
		// flush/fsync failure: not retried, may duplicate on restart.
		return fmt.Errorf("file: fsync failed: %w", err)
	}
	if w.cfg.MaxFileSizeBytes > 0 && w.size >= w.cfg.MaxFileSizeBytes {
		w.abandon()
	}
	return nil
}

func (w *writer) now() time.Time {
	if w.cfg.Clock != nil {
		return w.cfg.Clock.Now().Time()
	}
	return time.Now()
}

// ensureFile opens a file if none is open, or rolls over if the
// current interval has changed.
func (w *writer) ensureFile(now time.Time) error {
	interval := w.cfg.RollBy.truncate(now)
	if w.f != nil && interval.Equal(w.intervalStart) {
		return nil
	}
	if w.f != nil {
		w.f.Close()
	}
	return w.roll(now, interval)
}

func (w *writer) abandon() {
	if w.f != nil {
		w.f.Close()
		w.f = nil
	}
}

func (w *writer) roll(now, interval time.Time) error {
	if err := w.enforceRetention(); err != nil {
		return err
	}
	id := newID(w.cfg.Rng)
	name := fileName(w.cfg, interval, now, id)
	path := filepath.Join(w.cfg.Dir, name)

	flags := os.O_CREATE | os.O_WRONLY
	if w.cfg.ReuseFiles {
		flags |= os.O_APPEND
	} else {
		flags |= os.O_TRUNC
	}
	f, err := os.OpenFile(path, flags, 0o644)
	if err != nil {
		return err
	}
	info, err := f.Stat()
	if err != nil {
		f.Close()
		return err
	}

	w.f = f
	w.path = path
	w.intervalStart = interval
	w.size = info.Size()
	w.wroteAny = false

	syncDir(w.cfg.Dir)

	// reuse-file recovery: if reopening an existing non-empty file,
	// defensively prepend the separator before the next write in case
	// the previous process crashed mid-line.
	if w.cfg.ReuseFiles && w.size > 0 {
		sep := w.cfg.separator()
		if n, werr := w.f.Write([]byte{sep}); werr == nil {
			w.size += int64(n)
		}
	}
	return nil
}

// enforceRetention deletes the oldest files (by descending-name sort,
// i.e. oldest last) until fewer than MaxFiles remain before the new
// one is created.
func (w *writer) enforceRetention() error {
	if w.cfg.MaxFiles <= 0 {
		return nil
	}
	names, err := listFiles(w.cfg.Dir, w.cfg)
	if err != nil {
		return nil // best-effort: a listing failure must not block rollover
	}
	for len(names) >= w.cfg.MaxFiles {
		oldest := names[len(names)-1]
		os.Remove(filepath.Join(w.cfg.Dir, oldest))
		names = names[:len(names)-1]
	}
	return nil
}

// Close releases the currently-open file, if any.
func (w *writer) Close() error {
	if w.f == nil {
		return nil
	}
	err := w.f.Close()
	w.f = nil
	return err
}
