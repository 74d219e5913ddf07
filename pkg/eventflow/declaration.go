package eventflow

import "fmt"

// Field names used in descriptors and error messages.
const (
	FieldEmit   = "emit"
	FieldListen = "listen"
)

// Descriptor is a raw handler declaration as supplied by a collector.
//
// Emit and Listen may each be nil, a string, a []string, or a []any whose
// elements are all strings (the shape YAML and JSON decoding produce).
type Descriptor struct {
	OwnerID string `yaml:"owner" json:"owner"`
	Emit    any    `yaml:"emit,omitempty" json:"emit,omitempty"`
	Listen  any    `yaml:"listen,omitempty" json:"listen,omitempty"`
}

// Declaration is a normalized handler declaration.
// Emits and Listens are never nil.
type Declaration struct {
	OwnerID string
	Emits   []string
	Listens []string
}

// Declaration normalizes d.
func (d Descriptor) Declaration() (Declaration, error) {
	if d.OwnerID == "" {
		return Declaration{}, ErrMissingOwnerID
	}

	emits, err := Normalize(d.Emit)
	if err != nil {
		return Declaration{}, &DescriptorError{OwnerID: d.OwnerID, Field: FieldEmit, Value: d.Emit, Err: err}
	}
	listens, err := Normalize(d.Listen)
	if err != nil {
		return Declaration{}, &DescriptorError{OwnerID: d.OwnerID, Field: FieldListen, Value: d.Listen, Err: err}
	}

	return Declaration{OwnerID: d.OwnerID, Emits: emits, Listens: listens}, nil
}

// Normalize converts an emit or listen value to a list of names.
//
//   - nil: empty list
//   - string: single-element list
//   - []string: copied as-is
//   - []any: each element must be a string
//
// Normalize is idempotent: normalizing its own output returns an equal list.
// Duplicates are preserved.
func Normalize(v any) ([]string, error) {
	switch val := v.(type) {
	case nil:
		return []string{}, nil
	case string:
		return []string{val}, nil
	case []string:
		out := make([]string, len(val))
		copy(out, val)
		return out, nil
	case []any:
		out := make([]string, 0, len(val))
		for i, item := range val {
			s, ok := item.(string)
			if !ok {
				return nil, fmt.Errorf("%w: element %d has type %T", ErrMalformedDescriptor, i, item)
			}
			out = append(out, s)
		}
		return out, nil
	default:
		return nil, fmt.Errorf("%w: type %T", ErrMalformedDescriptor, v)
	}
}

// clone returns a deep copy of d with nil lists replaced by empty ones.
func (d Declaration) clone() Declaration {
	out := Declaration{
		OwnerID: d.OwnerID,
		Emits:   make([]string, len(d.Emits)),
		Listens: make([]string, len(d.Listens)),
	}
	copy(out.Emits, d.Emits)
	copy(out.Listens, d.Listens)
	return out
}
