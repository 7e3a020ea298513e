package core

// Clock is the time source trait. Concrete platform implementations
// (wall clock, fakes for tests) live outside core; core only defines
// the contract consumers depend on.
type Clock interface {
	Now() Timestamp
}

// Rng is the random source trait used for id generation (trace/span
// ids, file-rollover ids). Fill reports false if it could not
// produce randomness (e.g. exhausted entropy source); callers decide
// whether to retry.
type Rng interface {
	Fill(dst []byte) bool
}
