package pattern

import "strings"

const (
	// All matches every event name.
	All = "**"

	// Wildcard marks the start of an ignored suffix in a pattern.
	Wildcard = "*"

	// DefaultDelimiter separates event name segments.
	DefaultDelimiter = "."
)

// Match reports whether an emitted event name satisfies a listener pattern.
func Match(name, pattern string) bool {
	if pattern == All {
		return true
	}
	if i := strings.Index(pattern, Wildcard); i >= 0 {
		return strings.HasPrefix(name, pattern[:i])
	}
	return name == pattern
}

// MatchAny reports whether name satisfies at least one of patterns.
func MatchAny(name string, patterns []string) bool {
	for _, p := range patterns {
		if Match(name, p) {
			return true
		}
	}
	return false
}

// Matcher carries the delimiter used to split event names into segments.
// The zero value uses DefaultDelimiter.
type Matcher struct {
	Delimiter string
}

// New creates a Matcher for the given delimiter.
// An empty delimiter selects DefaultDelimiter.
func New(delimiter string) Matcher {
	return Matcher{Delimiter: delimiter}
}

// delimiter returns the effective delimiter.
func (m Matcher) delimiter() string {
	if m.Delimiter == "" {
		return DefaultDelimiter
	}
	return m.Delimiter
}

// Match reports whether name satisfies pattern.
// Matching does not depend on the delimiter.
func (m Matcher) Match(name, pattern string) bool {
	return Match(name, pattern)
}

// Segments splits name on the delimiter.
func (m Matcher) Segments(name string) []string {
	if name == "" {
		return nil
	}
	return strings.Split(name, m.delimiter())
}

// Expand returns the wildcard prefixes of name, shortest first.
// A name with n segments yields n-1 patterns; the full name never gets
// a trailing wildcard.
//
// Example: "a.b.c" -> ["a.*", "a.b.*"]
func (m Matcher) Expand(name string) []string {
	d := m.delimiter()
	if !strings.Contains(name, d) {
		return nil
	}

	segments := strings.Split(name, d)
	out := make([]string, 0, len(segments)-1)
	for i := 1; i < len(segments); i++ {
		out = append(out, strings.Join(segments[:i], d)+d+Wildcard)
	}
	return out
}
