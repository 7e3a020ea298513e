package core

// Event is the core diagnostic record: an origin module, a message
// template, an optional time extent, and a property bag.
type Event struct {
	Mdl    Path
	Tpl    Template
	Extent Extent
	Props  Props
}

// NewEvent constructs an Event with no extent (unknown time); call
// WithExtent to attach one.
func NewEvent(mdl Path, tpl Template, props Props) Event {
	return Event{Mdl: mdl, Tpl: tpl, Props: props}
}

// WithExtent returns a copy of e with its Extent replaced.
func (e Event) WithExtent(ext Extent) Event {
	e.Extent = ext
	return e
}

// Msg renders e's template against its own Props.
func (e Event) Msg() string { return e.Tpl.Msg(e.Props) }

// Level returns the event's level, defaulting to Info when absent or
// unparseable ("unleveled").
func (e Event) Level() Level {
	lvl, ok := LevelOf(e.Props)
	if !ok {
		return Info
	}
	return lvl
}

// EventKind returns the event's kind, defaulting to EventKindLog.
func (e Event) EventKind() EventKind { return EventKindOf(e.Props) }

// ToOwned returns an Event safe to retain beyond the current call: its
// Props are materialized into a SliceProps of owned Values.
func (e Event) ToOwned() Event {
	var out SliceProps
	e.Props.ForEach(func(k Str, v Value) bool {
		ks := k.String()
		owned := NewStr(ks)
		if _, static := k.GetStatic(); static {
			owned = k
		}
		out = append(out, Pair{Key: owned, Val: v.ToOwned()})
		return false
	})
	e.Props = out
	return e
}
