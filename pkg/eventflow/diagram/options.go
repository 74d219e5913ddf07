package diagram

import "github.com/randalmurphal/eventflow/pkg/eventflow/pattern"

// Option configures a Generator.
type Option func(*Generator)

// WithMatcher sets the pattern matcher used to connect emitters and listeners.
func WithMatcher(m pattern.Matcher) Option {
	return func(g *Generator) {
		g.matcher = m
	}
}

// WithMermaidVersion sets the Mermaid release referenced by the page.
//
// Default: "10"
func WithMermaidVersion(version string) Option {
	return func(g *Generator) {
		if version != "" {
			g.mermaidVersion = version
		}
	}
}

// WithDirection sets the flowchart direction (LR, RL, TB, TD or BT).
//
// Default: LR
func WithDirection(direction string) Option {
	return func(g *Generator) {
		g.direction = direction
	}
}
