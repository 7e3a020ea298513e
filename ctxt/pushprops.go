package ctxt

import "go.emit.dev/emit/core"

// pushProps is the effective Props of an open_push frame: iteration
// yields current's pairs then new's (so serialization preserves the
// ambient-then-local order), but a duplicate-key lookup must resolve
// to new's value since it is logically the override. Get prefers
// Lookup (core.Lookuper) over the generic iteration-order scan, so
// this type implements both independently.
type pushProps struct {
	Current core.Props
	New     core.Props
}

func (p pushProps) ForEach(fn func(core.Str, core.Value) bool) {
	stopped := false
	p.Current.ForEach(func(k core.Str, v core.Value) bool {
		if fn(k, v) {
			stopped = true
			return true
		}
		return false
	})
	if stopped {
		return
	}
	p.New.ForEach(fn)
}

func (pushProps) IsUnique() bool { return false }

func (p pushProps) Lookup(key string) (core.Value, bool) {
	if v, ok := core.Get(p.New, key); ok {
		return v, true
	}
	return core.Get(p.Current, key)
}
