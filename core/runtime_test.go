package core

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

type fixedAmbient struct{ p Props }

func (f fixedAmbient) WithCurrent(fn func(Props)) { fn(f.p) }

type capturingEmitter struct{ last Event }

func (c *capturingEmitter) Emit(evt Event)                  { c.last = evt }
func (c *capturingEmitter) BlockingFlush(time.Duration) bool { return true }

func TestRuntimeEventPropsWinOverAmbient(t *testing.T) {
	e := &capturingEmitter{}
	r := Runtime{
		Emitter: e,
		Ctxt:    fixedAmbient{p: SliceProps{{Key: NewStr("k"), Val: OfInt(1)}}},
	}
	r.Emit(NewPath("mod"), ParseTemplate("x"), SliceProps{{Key: NewStr("k"), Val: OfInt(2)}}, NoExtent())

	v, ok := Get(e.last.Props, "k")
	assert.True(t, ok)
	assert.Equal(t, int64(2), v.i)
}

func TestRuntimeFilterBlocksEmit(t *testing.T) {
	e := &capturingEmitter{}
	r := Runtime{
		Emitter: e,
		Filter:  FuncFilter(func(Event) bool { return false }),
	}
	r.Emit(NewPath("mod"), ParseTemplate("x"), Empty{}, NoExtent())
	assert.Equal(t, Event{}, e.last)
}
