package core

import "strings"

// Filter is a boolean predicate over events.
type Filter interface {
	Matches(evt Event) bool
}

// FuncFilter adapts a plain function into a Filter.
type FuncFilter func(Event) bool

func (f FuncFilter) Matches(evt Event) bool { return f(evt) }

// AndFilter matches only if every filter matches.
type AndFilter []Filter

func (a AndFilter) Matches(evt Event) bool {
	for _, f := range a {
		if !f.Matches(evt) {
			return false
		}
	}
	return true
}

// OrFilter matches if any filter matches.
type OrFilter []Filter

func (o OrFilter) Matches(evt Event) bool {
	for _, f := range o {
		if f.Matches(evt) {
			return true
		}
	}
	return false
}

// NotFilter inverts an inner filter.
type NotFilter struct{ Inner Filter }

func (n NotFilter) Matches(evt Event) bool { return !n.Inner.Matches(evt) }

// LevelFilter matches events at or above MinLevel. DefaultForUnleveled
// governs events with no "lvl" property at all (§4.3).
type LevelFilter struct {
	MinLevel           Level
	DefaultForUnleveled bool
}

func (f LevelFilter) Matches(evt Event) bool {
	lvl, ok := LevelOf(evt.Props)
	if !ok {
		return f.DefaultForUnleveled
	}
	return lvl.AtLeast(f.MinLevel)
}

// ModuleLevelFilter dispatches to the LevelFilter whose key is the
// longest "::"-prefix of the event's module that matches, falling
// back to Default when nothing matches.
type ModuleLevelFilter struct {
	ByModule map[string]LevelFilter
	Default  LevelFilter
}

func (f ModuleLevelFilter) Matches(evt Event) bool {
	mdl := evt.Mdl.String()
	best := -1
	var bestFilter LevelFilter
	found := false
	for prefix, lf := range f.ByModule {
		if mdl == prefix || strings.HasPrefix(mdl, prefix+PathSep) {
			if len(prefix) > best {
				best = len(prefix)
				bestFilter = lf
				found = true
			}
		}
	}
	if found {
		return bestFilter.Matches(evt)
	}
	return f.Default.Matches(evt)
}
