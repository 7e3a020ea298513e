package core

// Props is a collection that iterates (Str, Value) pairs.
//
//   - Duplicate keys are permitted. Get returns the first occurrence.
//   - IsUnique may advertise "no duplicate keys", permitting callers to
//     skip de-duplication; an implementation that cannot guarantee
//     this must return false.
//   - A property whose Value IsNull MUST be skipped during ForEach, as
//     if the key were absent.
//
// ForEach calls fn for each pair in iteration order, stopping early if
// fn returns true ("break").
type Props interface {
	ForEach(fn func(key Str, val Value) (brk bool))
	IsUnique() bool
}

// Empty is the zero-length Props.
type Empty struct{}

func (Empty) ForEach(func(Str, Value) bool) {}
func (Empty) IsUnique() bool                { return true }

// Lookuper is an optional refinement of Props for implementations
// whose lookup priority differs from their iteration order (the
// ambient context's "push" frame: iteration must stay current-then-new
// for serialization, but a duplicate key must resolve to the new
// value). Get prefers Lookup when the Props implements it.
type Lookuper interface {
	Lookup(key string) (Value, bool)
}

// Get scans p in iteration order and returns the value of the first
// pair whose key equals key, skipping null values (ForEach already
// skips them, so this is automatic) — unless p implements Lookuper, in
// which case its Lookup method decides.
func Get(p Props, key string) (Value, bool) {
	if l, ok := p.(Lookuper); ok {
		return l.Lookup(key)
	}
	var (
		found Value
		ok    bool
	)
	p.ForEach(func(k Str, v Value) bool {
		if k.String() == key {
			found, ok = v, true
			return true
		}
		return false
	})
	return found, ok
}

// Pull is Get composed with a downcast to T. It never returns a
// partial result: either the key is present and downcasts cleanly, or
// Pull reports false.
func Pull[T any](p Props, key string) (T, bool) {
	var zero T
	v, ok := Get(p, key)
	if !ok {
		return zero, false
	}
	return Downcast[T](v)
}

// Pair is one (key, value) entry of a SliceProps.
type Pair struct {
	Key Str
	Val Value
}

// SliceProps is an ordered Props backed by a slice; it permits
// duplicate keys and never claims uniqueness unless wrapped in
// AssertUnique.
type SliceProps []Pair

func (s SliceProps) ForEach(fn func(Str, Value) bool) {
	for _, p := range s {
		if p.Val.IsNull() {
			continue
		}
		if fn(p.Key, p.Val) {
			return
		}
	}
}

func (SliceProps) IsUnique() bool { return false }

// MapProps is a Props backed by a Go map. Map keys are inherently
// unique, so IsUnique reports true; iteration order is unspecified
// (matching Go map iteration), which is safe because there can be no
// duplicate-key ordering ambiguity to resolve.
type MapProps map[string]Value

func (m MapProps) ForEach(fn func(Str, Value) bool) {
	for k, v := range m {
		if v.IsNull() {
			continue
		}
		if fn(NewStr(k), v) {
			return
		}
	}
}

func (MapProps) IsUnique() bool { return true }

// FuncProps adapts a plain visitor function into a Props. IsUnique
// must be supplied explicitly since a function has no static guarantee
// either way.
type FuncProps struct {
	Visit  func(fn func(Str, Value) bool)
	Unique bool
}

func (f FuncProps) ForEach(fn func(Str, Value) bool) { f.Visit(fn) }
func (f FuncProps) IsUnique() bool                   { return f.Unique }

// And concatenates two Props: iteration yields all of A's pairs then
// all of B's; Get consults A first. Per spec this is conservatively
// non-unique unless both operands are unique AND known disjoint — this
// implementation has no disjointness channel, so it is always false.
type And struct {
	A, B Props
}

func AndProps(a, b Props) And { return And{A: a, B: b} }

func (c And) ForEach(fn func(Str, Value) bool) {
	stopped := false
	c.A.ForEach(func(k Str, v Value) bool {
		if fn(k, v) {
			stopped = true
			return true
		}
		return false
	})
	if stopped {
		return
	}
	c.B.ForEach(fn)
}

func (And) IsUnique() bool { return false }

// Dedup wraps a Props so ForEach yields each key at most once,
// preserving first-value-wins semantics and the order of first
// occurrence.
type Dedup struct {
	Inner Props
}

func (d Dedup) ForEach(fn func(Str, Value) bool) {
	seen := make(map[string]struct{})
	d.Inner.ForEach(func(k Str, v Value) bool {
		ks := k.String()
		if _, ok := seen[ks]; ok {
			return false
		}
		seen[ks] = struct{}{}
		return fn(k, v)
	})
}

// IsUnique is always true: by construction Dedup never yields a
// repeated key.
func (Dedup) IsUnique() bool { return true }

// Collect materializes p into a SliceProps, applying Dedup if dedup is
// true. Useful for handing Props to a streaming serializer that wants
// a concrete slice.
func Collect(p Props, dedup bool) SliceProps {
	if dedup {
		p = Dedup{Inner: p}
	}
	var out SliceProps
	p.ForEach(func(k Str, v Value) bool {
		out = append(out, Pair{Key: k, Val: v})
		return false
	})
	return out
}
