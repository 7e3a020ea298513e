// Package rng provides the production core.Rng implementations:
// Crypto, backed by crypto/rand, and Fake, a deterministic sequence
// generator for tests. Concrete clock/RNG platform implementations
// are the one piece of spec.md's component table deliberately left
// outside core itself (§1 Non-goals: "concrete clock/RNG platform
// implementations beyond their trait contracts"), so they live here
// instead.
package rng

import (
	"crypto/rand"
	"sync"

	"go.emit.dev/emit/core"
)

// Crypto is the production core.Rng, backed by crypto/rand. The zero
// value is ready to use. Fill reports false only if the system
// entropy source itself returns an error, which crypto/rand treats as
// fatal in practice but core.Rng's contract allows callers to retry.
type Crypto struct{}

func (Crypto) Fill(dst []byte) bool {
	_, err := rand.Read(dst)
	return err == nil
}

// Fake is a deterministic core.Rng for tests: each call to Fill writes
// consecutive bytes continuing after the last byte written (the first
// byte ever written is seed+1; values wrap at 256), so distinct calls
// produce distinct, reproducible output without real entropy.
type Fake struct {
	mu   sync.Mutex
	next byte
}

// NewFake returns a Fake whose byte sequence starts at seed+1.
func NewFake(seed byte) *Fake {
	return &Fake{next: seed}
}

func (f *Fake) Fill(dst []byte) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range dst {
		f.next++
		dst[i] = f.next
	}
	return true
}

var _ core.Rng = Crypto{}
var _ core.Rng = (*Fake)(nil)
