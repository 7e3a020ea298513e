package file

import (
	"encoding/json"

	"go.emit.dev/emit/core"
)

// encodeLine renders evt as one ndjson object: msg/mdl/tpl/ts plus
// every property, first-occurrence-wins on a duplicate key (matching
// Props.Get's own semantics).
func encodeLine(evt core.Event) []byte {
	obj := make(map[string]any, 8)
	if evt.Extent.HasExtent() {
		obj["ts"] = evt.Extent.Collapse().String()
		if evt.Extent.IsRange() {
			obj["ts_start"] = evt.Extent.Start().String()
			obj["ts_end"] = evt.Extent.End().String()
		}
	}
	obj["mdl"] = evt.Mdl.String()
	obj["msg"] = evt.Msg()
	obj["tpl"] = evt.Tpl.AsStr()

	seen := make(map[string]bool, 8)
	evt.Props.ForEach(func(k core.Str, v core.Value) bool {
		ks := k.String()
		if seen[ks] {
			return false
		}
		seen[ks] = true
		obj[ks] = v.JSONValue()
		return false
	})

	b, err := json.Marshal(obj)
	if err != nil {
		return []byte(`{"err":"event encode failed"}`)
	}
	return b
}
