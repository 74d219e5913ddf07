package typegen

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/randalmurphal/eventflow/pkg/eventflow"
	"github.com/randalmurphal/eventflow/pkg/eventflow/pattern"
)

// Format selects the language of the identifier-set artifact.
type Format int

const (
	// FormatGo renders a Go source file.
	FormatGo Format = iota

	// FormatTypeScript renders a TypeScript declaration file.
	FormatTypeScript
)

// String returns the format name.
func (f Format) String() string {
	switch f {
	case FormatGo:
		return "go"
	case FormatTypeScript:
		return "typescript"
	default:
		return fmt.Sprintf("format(%d)", int(f))
	}
}

var (
	// ErrNilDocumentation is returned when Render receives no documentation.
	ErrNilDocumentation = errors.New("typegen: nil documentation")

	// ErrInvalidPackage is returned for a package name that is not a Go identifier.
	ErrInvalidPackage = errors.New("typegen: invalid package name")

	// ErrUnknownFormat is returned for a type file with an unsupported extension.
	ErrUnknownFormat = errors.New("typegen: unknown type file format")
)

// FormatForPath picks the format from a type file name.
// ".go" selects Go; ".ts" (including ".d.ts") selects TypeScript.
func FormatForPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".go":
		return FormatGo, nil
	case ".ts":
		return FormatTypeScript, nil
	default:
		return 0, fmt.Errorf("%w: %s", ErrUnknownFormat, filepath.Base(path))
	}
}

// Generator renders the identifier-set artifact.
type Generator struct {
	matcher pattern.Matcher
	format  Format
	pkg     string
}

// New creates a Generator. It renders Go in package DefaultPackage unless
// configured otherwise.
func New(opts ...Option) *Generator {
	g := &Generator{
		matcher: pattern.New(pattern.DefaultDelimiter),
		format:  FormatGo,
		pkg:     DefaultPackage,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Identifiers returns the identifier set of doc.
func (g *Generator) Identifiers(doc *eventflow.Documentation) ([]string, error) {
	if doc == nil {
		return nil, ErrNilDocumentation
	}
	return IdentifierSet(doc.Events, g.matcher), nil
}

// Render returns the identifier-set declaration for doc.
func (g *Generator) Render(doc *eventflow.Documentation) ([]byte, error) {
	ids, err := g.Identifiers(doc)
	if err != nil {
		return nil, err
	}

	switch g.format {
	case FormatGo:
		return RenderGo(g.pkg, ids)
	case FormatTypeScript:
		return RenderTypeScript(ids), nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownFormat, g.format)
	}
}
