package core

// Kind (event kind, not to be confused with Value's Kind) tags an
// Event as span-like or metric-like; absence from Props means
// "log-like". Stored under the key "evt_kind".
type EventKind uint8

const (
	EventKindLog EventKind = iota
	EventKindSpan
	EventKindMetric
)

const EventKindKey = "evt_kind"

func (k EventKind) String() string {
	switch k {
	case EventKindSpan:
		return "span"
	case EventKindMetric:
		return "metric"
	default:
		return "log"
	}
}

// WithEventKind returns a Value for storing k under EventKindKey.
// EventKindLog is never stored — its absence is the representation.
func WithEventKind(k EventKind) (Value, bool) {
	if k == EventKindLog {
		return Value{}, false
	}
	return OfString(NewStaticStr(k.String())), true
}

// EventKindOf pulls the "evt_kind" property, defaulting to
// EventKindLog when absent or unrecognized.
func EventKindOf(p Props) EventKind {
	v, ok := Get(p, EventKindKey)
	if !ok {
		return EventKindLog
	}
	switch v.Display() {
	case "span":
		return EventKindSpan
	case "metric":
		return EventKindMetric
	default:
		return EventKindLog
	}
}
