package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPropsGetReturnsFirstOccurrence(t *testing.T) {
	p := SliceProps{
		{Key: NewStr("a"), Val: OfInt(1)},
		{Key: NewStr("a"), Val: OfInt(2)},
	}
	v, ok := Get(p, "a")
	assert.True(t, ok)
	assert.Equal(t, int64(1), v.i)
}

func TestPropsSkipsNullDuringIteration(t *testing.T) {
	p := SliceProps{
		{Key: NewStr("a"), Val: Null()},
		{Key: NewStr("b"), Val: OfInt(2)},
	}
	_, ok := Get(p, "a")
	assert.False(t, ok)

	var seen []string
	p.ForEach(func(k Str, v Value) bool {
		seen = append(seen, k.String())
		return false
	})
	assert.Equal(t, []string{"b"}, seen)
}

func TestDedupYieldsEachKeyOnce(t *testing.T) {
	p := SliceProps{
		{Key: NewStr("a"), Val: OfInt(1)},
		{Key: NewStr("b"), Val: OfInt(2)},
		{Key: NewStr("a"), Val: OfInt(3)},
	}
	d := Dedup{Inner: p}
	var keys []string
	var vals []int64
	d.ForEach(func(k Str, v Value) bool {
		keys = append(keys, k.String())
		vals = append(vals, v.i)
		return false
	})
	assert.Equal(t, []string{"a", "b"}, keys)
	assert.Equal(t, []int64{1, 2}, vals)
	assert.True(t, d.IsUnique())
}

func TestAndIterationIsLeftThenRight(t *testing.T) {
	left := SliceProps{{Key: NewStr("a"), Val: OfInt(1)}}
	right := SliceProps{{Key: NewStr("b"), Val: OfInt(2)}, {Key: NewStr("a"), Val: OfInt(9)}}
	c := AndProps(left, right)

	var keys []string
	c.ForEach(func(k Str, v Value) bool {
		keys = append(keys, k.String())
		return false
	})
	assert.Equal(t, []string{"a", "b", "a"}, keys)

	v, ok := Get(c, "a")
	assert.True(t, ok)
	assert.Equal(t, int64(1), v.i, "Get on And must consult the left side first")

	assert.False(t, c.IsUnique())
}

func TestAndGetBreaksEarlyAcrossBoundary(t *testing.T) {
	left := SliceProps{{Key: NewStr("x"), Val: OfInt(1)}}
	right := SliceProps{{Key: NewStr("y"), Val: OfInt(2)}}
	c := AndProps(left, right)
	v, ok := Get(c, "y")
	assert.True(t, ok)
	assert.Equal(t, int64(2), v.i)
}

func TestMapPropsIsUnique(t *testing.T) {
	m := MapProps{"a": OfInt(1)}
	assert.True(t, m.IsUnique())
}

func TestCollectWithDedup(t *testing.T) {
	p := SliceProps{
		{Key: NewStr("a"), Val: OfInt(1)},
		{Key: NewStr("a"), Val: OfInt(2)},
	}
	out := Collect(p, true)
	assert.Len(t, out, 1)
	assert.Equal(t, int64(1), out[0].Val.i)
}
