package core

import (
	"fmt"
	"strings"
)

// Part is one fragment of a parsed Template: either literal text or a
// hole naming a property (with an optional formatter name, e.g.
// "{user:debug}").
type Part struct {
	Text      string
	IsHole    bool
	Hole      string
	Formatter string
}

// Template is an ordered sequence of text/hole fragments, parsed once
// and rendered many times against different Props.
type Template struct {
	raw   string
	parts []Part
}

// AsStr returns the raw, un-rendered template text. Used e.g. as a
// span's name so spans aren't stamped with per-call-site interpolated
// text.
func (t Template) AsStr() string { return t.raw }

// Parts exposes the parsed fragments for structural inspection.
func (t Template) Parts() []Part { return t.parts }

// ParseTemplate parses "literal {hole} literal {hole:formatter}" text.
// An unterminated "{" is treated as literal text.
func ParseTemplate(raw string) Template {
	var parts []Part
	var buf strings.Builder
	i := 0
	for i < len(raw) {
		c := raw[i]
		if c == '{' {
			end := strings.IndexByte(raw[i+1:], '}')
			if end < 0 {
				buf.WriteByte(c)
				i++
				continue
			}
			if buf.Len() > 0 {
				parts = append(parts, Part{Text: buf.String()})
				buf.Reset()
			}
			inner := raw[i+1 : i+1+end]
			hole, formatter, _ := strings.Cut(inner, ":")
			parts = append(parts, Part{IsHole: true, Hole: hole, Formatter: formatter})
			i = i + 1 + end + 1
			continue
		}
		buf.WriteByte(c)
		i++
	}
	if buf.Len() > 0 {
		parts = append(parts, Part{Text: buf.String()})
	}
	return Template{raw: raw, parts: parts}
}

// Formatter renders a captured Value as text for a named hole
// formatter, e.g. ":debug" or a user-registered quoting formatter.
type Formatter func(Value) string

// DefaultFormatters are always available: "display" (the default,
// same as no formatter) and "debug".
var DefaultFormatters = map[string]Formatter{
	"display": func(v Value) string { return v.Display() },
	"debug": func(v Value) string {
		if v.orig != nil {
			return fmt.Sprintf("%+v", v.orig)
		}
		return v.Display()
	},
}

// Render substitutes each hole in t against props, applying the named
// formatter if present (falling back to DefaultFormatters, then to
// plain Display). A hole whose property is absent renders as its
// literal source text, e.g. "{user}", so missing data is visible
// rather than silently dropped.
func (t Template) Render(props Props, formatters map[string]Formatter) string {
	var out strings.Builder
	for _, p := range t.parts {
		if !p.IsHole {
			out.WriteString(p.Text)
			continue
		}
		v, ok := Get(props, p.Hole)
		if !ok {
			out.WriteByte('{')
			out.WriteString(p.Hole)
			if p.Formatter != "" {
				out.WriteByte(':')
				out.WriteString(p.Formatter)
			}
			out.WriteByte('}')
			continue
		}
		if p.Formatter != "" {
			if fn, ok := formatters[p.Formatter]; ok {
				out.WriteString(fn(v))
				continue
			}
			if fn, ok := DefaultFormatters[p.Formatter]; ok {
				out.WriteString(fn(v))
				continue
			}
		}
		out.WriteString(v.Display())
	}
	return out.String()
}

// Msg renders t against props using only the built-in formatters; this
// is the Event.Msg() convenience used by emitters that don't register
// custom formatters.
func (t Template) Msg(props Props) string { return t.Render(props, nil) }
