package core

import (
	"fmt"
	"strings"
)

// Level is a totally-ordered event severity. Stored in an Event's
// Props under the key "lvl".
type Level uint8

const (
	Debug Level = iota
	Info
	Warn
	Error
	Critical
)

const LevelKey = "lvl"

func (l Level) String() string {
	switch l {
	case Debug:
		return "debug"
	case Info:
		return "info"
	case Warn:
		return "warn"
	case Error:
		return "error"
	case Critical:
		return "critical"
	default:
		return "info"
	}
}

// UnmarshalText parses a level name case-insensitively, satisfying
// core.TextParser so a Level can be pulled out of an event's Props via
// Value.ParseInto-style conversion.
func (l *Level) UnmarshalText(text []byte) error {
	switch strings.ToLower(string(text)) {
	case "debug":
		*l = Debug
	case "info":
		*l = Info
	case "warn", "warning":
		*l = Warn
	case "error":
		*l = Error
	case "critical", "fatal":
		*l = Critical
	default:
		return fmt.Errorf("unrecognized level %q", text)
	}
	return nil
}

// AtLeast reports whether l is at least as severe as min.
func (l Level) AtLeast(min Level) bool { return l >= min }

// LevelOf pulls the "lvl" property out of props, returning ok=false if
// absent or unparseable.
func LevelOf(p Props) (Level, bool) {
	v, ok := Get(p, LevelKey)
	if !ok {
		return 0, false
	}
	var lvl Level
	if err := ParseInto(v, &lvl); err != nil {
		return 0, false
	}
	return lvl, true
}

// WithLevel returns a Value suitable for storing a Level under
// LevelKey in an event's Props.
func WithLevel(l Level) Value { return OfString(NewStaticStr(l.String())) }
