package eventflow

import (
	"bytes"
	"encoding/json"

	"github.com/tidwall/pretty"
)

// OpenAPIVersion is written at the top of the documentation JSON.
const OpenAPIVersion = "3.0.0"

// Info describes the documented application.
type Info struct {
	Title   string `json:"title"`
	Version string `json:"version"`
}

// Mapping lists what one handler emits and listens to.
type Mapping struct {
	Emit   []string `json:"emit"`
	Listen []string `json:"listen"`
}

// Mappings is the event mapping table, keyed by owner id in collector order.
// It is immutable once built; slices returned from it must not be modified.
type Mappings struct {
	owners  []string
	entries map[string]Mapping
}

// Get returns the mapping for an owner.
func (m Mappings) Get(owner string) (Mapping, bool) {
	v, ok := m.entries[owner]
	return v, ok
}

// Owners returns all owner ids in table order.
func (m Mappings) Owners() []string {
	out := make([]string, len(m.owners))
	copy(out, m.owners)
	return out
}

// Len returns the number of handlers in the table.
func (m Mappings) Len() int {
	return len(m.owners)
}

// Range calls fn for every entry in table order until fn returns false.
func (m Mappings) Range(fn func(owner string, mapping Mapping) bool) {
	for _, owner := range m.owners {
		if !fn(owner, m.entries[owner]) {
			return
		}
	}
}

// EventRecord is the aggregated entry for one emitted event name.
type EventRecord struct {
	Name        string   `json:"-"`
	Description string   `json:"description"`
	Emitters    []string `json:"emitters"`
}

// hasEmitter reports whether owner already emits this event.
func (r *EventRecord) hasEmitter(owner string) bool {
	for _, e := range r.Emitters {
		if e == owner {
			return true
		}
	}
	return false
}

// Events is the event registry, keyed by event name in first-insertion order.
type Events struct {
	names   []string
	records map[string]*EventRecord
}

// Get returns a copy of the record for an event name.
func (e Events) Get(name string) (EventRecord, bool) {
	r, ok := e.records[name]
	if !ok {
		return EventRecord{}, false
	}
	out := *r
	out.Emitters = append([]string(nil), r.Emitters...)
	return out, true
}

// Names returns all event names in first-insertion order.
func (e Events) Names() []string {
	out := make([]string, len(e.names))
	copy(out, e.names)
	return out
}

// Len returns the number of distinct emitted events.
func (e Events) Len() int {
	return len(e.names)
}

// Range calls fn for every record in first-insertion order until fn returns false.
func (e Events) Range(fn func(record EventRecord) bool) {
	for _, name := range e.names {
		if !fn(*e.records[name]) {
			return
		}
	}
}

// Documentation is the aggregate root consumed by the artifact generators.
type Documentation struct {
	Info          Info
	EventMappings Mappings
	Events        Events
}

// MarshalJSON writes the documentation with table order preserved.
func (d *Documentation) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer

	buf.WriteString(`{"openapi":`)
	if err := writeJSON(&buf, OpenAPIVersion); err != nil {
		return nil, err
	}
	buf.WriteString(`,"info":`)
	if err := writeJSON(&buf, d.Info); err != nil {
		return nil, err
	}

	buf.WriteString(`,"eventMappings":{`)
	for i, owner := range d.EventMappings.owners {
		if i > 0 {
			buf.WriteByte(',')
		}
		if err := writeJSON(&buf, owner); err != nil {
			return nil, err
		}
		buf.WriteByte(':')
		if err := writeJSON(&buf, d.EventMappings.entries[owner]); err != nil {
			return nil, err
		}
	}

	buf.WriteString(`},"events":{`)
	for i, name := range d.Events.names {
		if i > 0 {
			buf.WriteByte(',')
		}
		if err := writeJSON(&buf, name); err != nil {
			return nil, err
		}
		buf.WriteByte(':')
		if err := writeJSON(&buf, d.Events.records[name]); err != nil {
			return nil, err
		}
	}
	buf.WriteString(`}}`)

	return buf.Bytes(), nil
}

// JSON returns the indented documentation as written to disk.
func (d *Documentation) JSON() ([]byte, error) {
	raw, err := d.MarshalJSON()
	if err != nil {
		return nil, err
	}
	return pretty.PrettyOptions(raw, &pretty.Options{
		Width:    80,
		Indent:   "  ",
		SortKeys: false,
	}), nil
}

func writeJSON(buf *bytes.Buffer, v any) error {
	b, err := json.Marshal(v)
	if err != nil {
		return err
	}
	buf.Write(b)
	return nil
}
