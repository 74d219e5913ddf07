package typegen

import "github.com/randalmurphal/eventflow/pkg/eventflow/pattern"

// Option configures a Generator.
type Option func(*Generator)

// WithMatcher sets the matcher whose delimiter drives wildcard expansion.
func WithMatcher(m pattern.Matcher) Option {
	return func(g *Generator) {
		g.matcher = m
	}
}

// WithFormat sets the output language.
//
// Default: FormatGo
func WithFormat(f Format) Option {
	return func(g *Generator) {
		g.format = f
	}
}

// WithPackage sets the Go package clause. Ignored for TypeScript.
//
// Default: DefaultPackage
func WithPackage(name string) Option {
	return func(g *Generator) {
		g.pkg = name
	}
}
