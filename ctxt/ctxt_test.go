package ctxt

import (
	"sync"
	"testing"

	"go.emit.dev/emit/core"

	"github.com/stretchr/testify/assert"
)

func TestOpenRootDropsInheritedContext(t *testing.T) {
	c := New()
	outer := c.OpenRoot(core.SliceProps{{Key: core.NewStr("a"), Val: core.OfInt(1)}})
	c.Enter(outer)
	defer c.Exit(outer)

	inner := c.OpenRoot(core.SliceProps{{Key: core.NewStr("b"), Val: core.OfInt(2)}})
	c.Enter(inner)
	defer c.Exit(inner)

	var got core.Props
	c.WithCurrent(func(p core.Props) { got = p })
	_, hasA := core.Get(got, "a")
	_, hasB := core.Get(got, "b")
	assert.False(t, hasA)
	assert.True(t, hasB)
}

func TestOpenPushMergesAndNewWinsLookup(t *testing.T) {
	c := New()
	base := c.OpenRoot(core.SliceProps{{Key: core.NewStr("k"), Val: core.OfInt(1)}})
	c.Enter(base)
	defer c.Exit(base)

	pushed := c.OpenPush(core.SliceProps{{Key: core.NewStr("k"), Val: core.OfInt(2)}})
	c.Enter(pushed)
	defer c.Exit(pushed)

	var keys []string
	var got core.Props
	c.WithCurrent(func(p core.Props) {
		got = p
		p.ForEach(func(k core.Str, v core.Value) bool {
			keys = append(keys, k.String())
			return false
		})
	})
	assert.Equal(t, []string{"k", "k"}, keys, "iteration order must be current-then-new")

	v, ok := core.Get(got, "k")
	assert.True(t, ok)
	i, _ := core.Downcast[int64](v)
	assert.Equal(t, int64(2), i, "lookup must resolve to the new (pushed) value")
}

func TestOpenDisabledIsInvisible(t *testing.T) {
	c := New()
	f := c.OpenDisabled(core.SliceProps{{Key: core.NewStr("secret"), Val: core.OfInt(1)}})
	c.Enter(f)
	defer c.Exit(f)

	var got core.Props
	c.WithCurrent(func(p core.Props) { got = p })
	_, ok := core.Get(got, "secret")
	assert.False(t, ok)
}

func TestWithCurrentExactlyOnceEvenWhenEmpty(t *testing.T) {
	c := New()
	calls := 0
	c.WithCurrent(func(core.Props) { calls++ })
	assert.Equal(t, 1, calls)
}

func TestEnterExitNestLIFO(t *testing.T) {
	c := New()
	f1 := c.OpenRoot(core.SliceProps{{Key: core.NewStr("a"), Val: core.OfInt(1)}})
	f2 := c.OpenRoot(core.SliceProps{{Key: core.NewStr("b"), Val: core.OfInt(2)}})
	c.Enter(f1)
	c.Enter(f2)

	var got core.Props
	c.WithCurrent(func(p core.Props) { got = p })
	_, hasB := core.Get(got, "b")
	assert.True(t, hasB)

	c.Exit(f2)
	c.WithCurrent(func(p core.Props) { got = p })
	_, hasA := core.Get(got, "a")
	assert.True(t, hasA)

	c.Exit(f1)
	c.WithCurrent(func(p core.Props) { got = p })
	_, stillHasA := core.Get(got, "a")
	assert.False(t, stillHasA)
}

func TestFrameMovesBetweenGoroutines(t *testing.T) {
	c := New()
	f := c.OpenRoot(core.SliceProps{{Key: core.NewStr("x"), Val: core.OfInt(42)}})
	c.Enter(f)

	var wg sync.WaitGroup
	wg.Add(1)
	var sawOnOtherGoroutine bool
	go func() {
		defer wg.Done()
		// f is still entered on the original goroutine here, so it
		// must not be visible on this one.
		var got core.Props
		c.WithCurrent(func(p core.Props) { got = p })
		_, ok := core.Get(got, "x")
		sawOnOtherGoroutine = ok
	}()
	wg.Wait()
	assert.False(t, sawOnOtherGoroutine)

	c.Exit(f)
	wg.Add(1)
	var sawAfterMove bool
	go func() {
		defer wg.Done()
		c.Enter(f)
		defer c.Exit(f)
		var got core.Props
		c.WithCurrent(func(p core.Props) { got = p })
		_, ok := core.Get(got, "x")
		sawAfterMove = ok
	}()
	wg.Wait()
	assert.True(t, sawAfterMove)
}
