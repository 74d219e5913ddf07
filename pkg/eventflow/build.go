package eventflow

import (
	"errors"
	"fmt"

	"github.com/randalmurphal/eventflow/pkg/eventflow/registry"
)

// Build normalizes descriptors and aggregates them into Documentation.
//
// Every descriptor is normalized before anything is aggregated; if any of
// them is malformed, Build returns all normalization errors joined and no
// documentation.
//
// A repeated owner id replaces the earlier descriptor (last write wins).
// The replaced descriptor keeps its original position in the mapping table
// and contributes nothing to the event registry.
func Build(descs []Descriptor, opts ...BuildOption) (*Documentation, error) {
	decls := make([]Declaration, 0, len(descs))
	var errs []error

	for i, d := range descs {
		decl, err := d.Declaration()
		if err != nil {
			errs = append(errs, fmt.Errorf("descriptor %d: %w", i, err))
			continue
		}
		decls = append(decls, decl)
	}

	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}

	return BuildDeclarations(decls, opts...)
}

// BuildDeclarations aggregates already-normalized declarations.
// Nil Emits or Listens are treated as empty.
func BuildDeclarations(decls []Declaration, opts ...BuildOption) (*Documentation, error) {
	cfg := defaultBuildConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	table := registry.New[string, Declaration]()
	for i, d := range decls {
		if d.OwnerID == "" {
			return nil, fmt.Errorf("declaration %d: %w", i, ErrMissingOwnerID)
		}
		table.Register(d.OwnerID, d.clone())
	}

	doc := &Documentation{
		Info: Info{Title: cfg.title, Version: cfg.version},
		EventMappings: Mappings{
			owners:  make([]string, 0, table.Len()),
			entries: make(map[string]Mapping, table.Len()),
		},
		Events: Events{
			records: make(map[string]*EventRecord),
		},
	}

	table.Range(func(owner string, d Declaration) bool {
		doc.EventMappings.owners = append(doc.EventMappings.owners, owner)
		doc.EventMappings.entries[owner] = Mapping{Emit: d.Emits, Listen: d.Listens}

		for _, name := range d.Emits {
			doc.Events.add(name, owner)
		}
		return true
	})

	return doc, nil
}

// add records that owner emits name.
func (e *Events) add(name, owner string) {
	rec, ok := e.records[name]
	if !ok {
		e.names = append(e.names, name)
		e.records[name] = &EventRecord{
			Name:        name,
			Description: fmt.Sprintf(`Event "%s" emitted by %s`, name, owner),
			Emitters:    []string{owner},
		}
		return
	}

	if rec.hasEmitter(owner) {
		return
	}
	rec.Description += ", " + owner
	rec.Emitters = append(rec.Emitters, owner)
}
