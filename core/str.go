package core

// Str is a clone-cheap string. It holds either a borrowed (non-static)
// string, a 'static-borrowed string, or an owned copy; cloning a static
// or owned Str never allocates because the underlying bytes are shared
// (Go strings are themselves immutable and reference-counted by the
// runtime, so "owned" here just means "came from a copy, not a borrow
// of caller-supplied transient data").
type Str struct {
	s        string
	isStatic bool
}

// NewStr wraps a non-static borrowed string. Prefer NewStaticStr for
// string literals and other values with program lifetime.
func NewStr(s string) Str {
	return Str{s: s}
}

// NewStaticStr wraps a string known to live for the life of the
// program (string literals, interned constants).
func NewStaticStr(s string) Str {
	return Str{s: s, isStatic: true}
}

// NewOwnedStr returns a Str that owns its bytes.
func NewOwnedStr(s string) Str {
	return Str{s: s, isStatic: true}
}

// String returns the underlying text.
func (s Str) String() string { return s.s }

// GetStatic returns the text and true only if this Str was constructed
// from a 'static (or owned) source; a plain borrowed Str returns false.
func (s Str) GetStatic() (string, bool) {
	if s.isStatic {
		return s.s, true
	}
	return "", false
}

// IsEmpty reports whether the underlying text has zero length.
func (s Str) IsEmpty() bool { return len(s.s) == 0 }
