package clock

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestWallNowIsCloseToRealTime(t *testing.T) {
	before := time.Now()
	got := Wall{}.Now().Time()
	after := time.Now()
	assert.False(t, got.Before(before))
	assert.False(t, got.After(after))
}

func TestFakeAdvanceAndSet(t *testing.T) {
	base := time.Date(2026, 7, 31, 0, 0, 0, 0, time.UTC)
	f := NewFake(base)
	assert.Equal(t, base, f.Now().Time())

	f.Advance(time.Minute)
	assert.Equal(t, base.Add(time.Minute), f.Now().Time())

	other := base.Add(24 * time.Hour)
	f.Set(other)
	assert.Equal(t, other, f.Now().Time())
}
