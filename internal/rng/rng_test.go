package rng

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCryptoFillsNonZeroBuffer(t *testing.T) {
	var buf [16]byte
	ok := Crypto{}.Fill(buf[:])
	assert.True(t, ok)
	assert.NotEqual(t, [16]byte{}, buf)
}

func TestFakeProducesDistinctConsecutiveSequences(t *testing.T) {
	f := NewFake(0)
	var a, b [4]byte
	f.Fill(a[:])
	f.Fill(b[:])
	assert.NotEqual(t, a, b)
	assert.Equal(t, [4]byte{1, 2, 3, 4}, a)
	assert.Equal(t, [4]byte{5, 6, 7, 8}, b)
}
