package file

import (
	"time"

	"go.emit.dev/emit/batch"
	"go.emit.dev/emit/core"
)

// Emitter hands encoded event lines to the batching channel. It
// implements core.Emitter.
type Emitter struct {
	sender *batch.Sender[[]byte]
}

// Receiver drains the batching channel, rolling and writing files.
// Run it on a dedicated goroutine via Run (or batch.RunSync directly).
type Receiver struct {
	receiver *batch.Receiver[[]byte]
	writer   *writer
}

// New builds a connected Emitter/Receiver pair per cfg. maxCapacity
// bounds how many encoded lines may accumulate between receiver
// drains before Send starts truncating; pass 0 for the default.
func New(cfg Config, maxCapacity int, metrics batch.Metrics) (*Emitter, *Receiver) {
	if maxCapacity <= 0 {
		maxCapacity = defaultMaxCapacity
	}
	sender, receiver := batch.New[[]byte](maxCapacity, metrics)
	return &Emitter{sender: sender}, &Receiver{receiver: receiver, writer: newWriter(cfg)}
}

// Emit encodes evt as one ndjson line and enqueues it.
func (e *Emitter) Emit(evt core.Event) {
	e.sender.Send(encodeLine(evt))
}

// BlockingFlush waits up to timeout for every line sent before the
// call to have been written and fsynced.
func (e *Emitter) BlockingFlush(timeout time.Duration) bool {
	return e.sender.BlockingFlush(timeout)
}

// Close marks the channel closed so Run's receiver loop drains and
// exits.
func (e *Emitter) Close() { e.sender.Close() }

// Run drives the receiver to completion on the calling goroutine
// (typically invoked as `go receiver.Run()`), closing the current file
// when the channel closes.
func (r *Receiver) Run() {
	batch.RunSync(r.receiver, r.writer.OnBatch)
	r.writer.Close()
}
