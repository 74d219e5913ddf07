package diagram

import (
	"errors"
	"fmt"
	"html"
	"strings"

	"github.com/randalmurphal/eventflow/pkg/eventflow"
	"github.com/randalmurphal/eventflow/pkg/eventflow/pattern"
	"github.com/randalmurphal/eventflow/pkg/eventflow/template"
)

// Flowchart directions accepted by Mermaid.
const (
	DirectionLR = "LR"
	DirectionRL = "RL"
	DirectionTB = "TB"
	DirectionTD = "TD"
	DirectionBT = "BT"
)

// DefaultMermaidVersion is the major Mermaid release loaded by the page.
const DefaultMermaidVersion = "10"

var (
	// ErrNilDocumentation is returned when Render receives no documentation.
	ErrNilDocumentation = errors.New("diagram: nil documentation")

	// ErrInvalidDirection is returned for an unknown flowchart direction.
	ErrInvalidDirection = errors.New("diagram: invalid direction")
)

// Edge is one directed emitter → listener connection.
type Edge struct {
	Emitter  string
	Event    string
	Listener string
}

// String returns the Mermaid statement for the edge, without terminator.
func (e Edge) String() string {
	return e.Emitter + " -- " + e.Event + " --> " + e.Listener
}

// Edges derives the flow edges of a mapping table.
//
// Order follows nested iteration: emitters in table order, their emit
// list, listeners in table order, their listen list. A listener with two
// patterns matching the same event gets two edges. A handler listening to
// its own emission gets a self-loop.
func Edges(m eventflow.Mappings, matcher pattern.Matcher) []Edge {
	var edges []Edge
	m.Range(func(emitter string, em eventflow.Mapping) bool {
		for _, event := range em.Emit {
			m.Range(func(listener string, lm eventflow.Mapping) bool {
				for _, p := range lm.Listen {
					if matcher.Match(event, p) {
						edges = append(edges, Edge{Emitter: emitter, Event: event, Listener: listener})
					}
				}
				return true
			})
		}
		return true
	})
	return edges
}

// Mermaid renders edges as a left-to-right Mermaid flowchart.
func Mermaid(edges []Edge) string {
	return mermaid(edges, DirectionLR)
}

func mermaid(edges []Edge, direction string) string {
	var b strings.Builder
	b.WriteString("graph ")
	b.WriteString(direction)
	b.WriteString(";")
	for _, e := range edges {
		b.WriteString("\n")
		b.WriteString(e.String())
		b.WriteString(";")
	}
	return b.String()
}

var pageSkeleton = template.MustParse("events-flow.html", `<!DOCTYPE html>
<html>
<head>
  <meta charset="UTF-8">
  <title>${title}</title>
  <script type="module">
    import mermaid from 'https://cdn.jsdelivr.net/npm/mermaid@${mermaid_version}/dist/mermaid.esm.min.mjs';
    mermaid.initialize({ startOnLoad: true });
  </script>
  <script nomodule src="https://cdn.jsdelivr.net/npm/mermaid@${mermaid_version}/dist/mermaid.min.js"></script>
  <style>
    body { font-family: Arial, sans-serif; }
    .mermaid { margin: 20px; }
  </style>
</head>
<body>
  <div class="mermaid">
${diagram}
  </div>
</body>
</html>
`)

// Generator renders the diagram artifact.
type Generator struct {
	matcher        pattern.Matcher
	mermaidVersion string
	direction      string
}

// New creates a Generator.
func New(opts ...Option) *Generator {
	g := &Generator{
		matcher:        pattern.New(pattern.DefaultDelimiter),
		mermaidVersion: DefaultMermaidVersion,
		direction:      DirectionLR,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Mermaid returns the flowchart source for doc.
func (g *Generator) Mermaid(doc *eventflow.Documentation) (string, error) {
	if doc == nil {
		return "", ErrNilDocumentation
	}
	if !validDirection(g.direction) {
		return "", fmt.Errorf("%w: %q", ErrInvalidDirection, g.direction)
	}
	return mermaid(Edges(doc.EventMappings, g.matcher), g.direction), nil
}

// Render returns the HTML page for doc.
func (g *Generator) Render(doc *eventflow.Documentation) ([]byte, error) {
	chart, err := g.Mermaid(doc)
	if err != nil {
		return nil, err
	}

	out, err := pageSkeleton.Render(map[string]string{
		"title":           html.EscapeString(doc.Info.Title),
		"mermaid_version": html.EscapeString(g.mermaidVersion),
		"diagram":         html.EscapeString(chart),
	})
	if err != nil {
		return nil, err
	}
	return []byte(out), nil
}

// HTML renders doc with a Generator built from opts.
func HTML(doc *eventflow.Documentation, opts ...Option) ([]byte, error) {
	return New(opts...).Render(doc)
}

func validDirection(d string) bool {
	switch d {
	case DirectionLR, DirectionRL, DirectionTB, DirectionTD, DirectionBT:
		return true
	}
	return false
}
