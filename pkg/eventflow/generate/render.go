package generate

import (
	"path/filepath"

	"github.com/randalmurphal/eventflow/pkg/eventflow"
	"github.com/randalmurphal/eventflow/pkg/eventflow/artifact"
	"github.com/randalmurphal/eventflow/pkg/eventflow/config"
	"github.com/randalmurphal/eventflow/pkg/eventflow/diagram"
	"github.com/randalmurphal/eventflow/pkg/eventflow/pattern"
	"github.com/randalmurphal/eventflow/pkg/eventflow/typegen"
)

// Rendered holds the rendered artifacts of a run, in artifact.Kinds order,
// and the identifier set behind the declaration.
type Rendered struct {
	Artifacts   []artifact.Artifact
	Identifiers []string
}

// Render produces all three artifacts for doc without writing anything.
// The first failure is returned as a *RenderError.
func Render(doc *eventflow.Documentation, opts config.Options) (*Rendered, error) {
	if doc == nil {
		return nil, ErrNilDocumentation
	}

	paths := opts.Paths()
	matcher := pattern.New(opts.Delimiter)

	docJSON, err := doc.JSON()
	if err != nil {
		return nil, &RenderError{Kind: artifact.KindDocumentation, Err: err}
	}

	page, err := diagram.New(
		diagram.WithMatcher(matcher),
		diagram.WithMermaidVersion(opts.MermaidVersion),
	).Render(doc)
	if err != nil {
		return nil, &RenderError{Kind: artifact.KindDiagram, Err: err}
	}

	format, err := typegen.FormatForPath(paths.TypeFile)
	if err != nil {
		return nil, &RenderError{Kind: artifact.KindIdentifierSet, Err: err}
	}
	pkg := opts.TypePackage
	if pkg == "" {
		pkg = typegen.PackageName(filepath.Dir(paths.TypeFile))
	}
	types := typegen.New(
		typegen.WithMatcher(matcher),
		typegen.WithFormat(format),
		typegen.WithPackage(pkg),
	)
	ids, err := types.Identifiers(doc)
	if err != nil {
		return nil, &RenderError{Kind: artifact.KindIdentifierSet, Err: err}
	}
	decl, err := types.Render(doc)
	if err != nil {
		return nil, &RenderError{Kind: artifact.KindIdentifierSet, Err: err}
	}

	return &Rendered{
		Artifacts: []artifact.Artifact{
			{Kind: artifact.KindDocumentation, Path: paths.DocFile, Data: docJSON},
			{Kind: artifact.KindDiagram, Path: paths.HTMLFile, Data: page},
			{Kind: artifact.KindIdentifierSet, Path: paths.TypeFile, Data: decl},
		},
		Identifiers: ids,
	}, nil
}
