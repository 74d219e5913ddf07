package typegen

import (
	"github.com/randalmurphal/eventflow/pkg/eventflow"
	"github.com/randalmurphal/eventflow/pkg/eventflow/pattern"
)

// IdentifierSet returns "**" followed by every event name and its wildcard
// prefixes, deduplicated by first insertion.
func IdentifierSet(events eventflow.Events, matcher pattern.Matcher) []string {
	set := newOrderedSet()
	set.add(pattern.All)

	events.Range(func(rec eventflow.EventRecord) bool {
		set.add(rec.Name)
		for _, p := range matcher.Expand(rec.Name) {
			set.add(p)
		}
		return true
	})

	return set.items
}

type orderedSet struct {
	seen  map[string]struct{}
	items []string
}

func newOrderedSet() *orderedSet {
	return &orderedSet{seen: make(map[string]struct{})}
}

func (s *orderedSet) add(v string) {
	if _, ok := s.seen[v]; ok {
		return
	}
	s.seen[v] = struct{}{}
	s.items = append(s.items, v)
}
