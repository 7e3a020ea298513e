package core

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

type countingEmitter struct {
	count      int
	flushOK    bool
	flushCalls int
}

func (c *countingEmitter) Emit(Event) { c.count++ }
func (c *countingEmitter) BlockingFlush(time.Duration) bool {
	c.flushCalls++
	return c.flushOK
}

func TestAndToEmitsToBoth(t *testing.T) {
	a := &countingEmitter{flushOK: true}
	b := &countingEmitter{flushOK: true}
	c := AndTo{A: a, B: b}
	c.Emit(Event{})
	assert.Equal(t, 1, a.count)
	assert.Equal(t, 1, b.count)
}

func TestAndToFlushIsAND(t *testing.T) {
	a := &countingEmitter{flushOK: true}
	b := &countingEmitter{flushOK: false}
	c := AndTo{A: a, B: b}
	assert.False(t, c.BlockingFlush(10*time.Millisecond))

	a.flushOK, b.flushOK = true, true
	assert.True(t, c.BlockingFlush(10*time.Millisecond))
}

func TestWrappingDropsFilteredEvents(t *testing.T) {
	inner := &countingEmitter{flushOK: true}
	w := Wrapping{
		Inner: inner,
		Transform: func(e Event) (Event, bool) {
			return e, e.Mdl.String() != "drop-me"
		},
	}
	w.Emit(Event{Mdl: NewPath("keep")})
	w.Emit(Event{Mdl: NewPath("drop-me")})
	assert.Equal(t, 1, inner.count)
}

func TestDiscardEmitterAlwaysFlushesTrue(t *testing.T) {
	var d DiscardEmitter
	d.Emit(Event{})
	assert.True(t, d.BlockingFlush(0))
}
