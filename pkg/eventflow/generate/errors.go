package generate

import (
	"errors"
	"fmt"

	"github.com/randalmurphal/eventflow/pkg/eventflow/artifact"
)

// Sentinel errors for generation.
var (
	// ErrNilDocumentation indicates Run was called without documentation.
	ErrNilDocumentation = errors.New("documentation cannot be nil")

	// ErrNilContext indicates Run was called with a nil context.
	ErrNilContext = errors.New("context cannot be nil")

	// ErrRender marks every *RenderError.
	ErrRender = errors.New("render failed")
)

// RenderError reports an artifact that could not be rendered.
// Nothing is written when rendering fails.
type RenderError struct {
	// Kind is the artifact being rendered.
	Kind artifact.Kind
	// Err is the underlying error.
	Err error
}

// Error implements the error interface.
func (e *RenderError) Error() string {
	return fmt.Sprintf("render %s: %v", e.Kind, e.Err)
}

// Unwrap returns the underlying error for errors.Is/As support.
func (e *RenderError) Unwrap() error {
	return e.Err
}

// Is reports whether target is ErrRender.
func (e *RenderError) Is(target error) bool {
	return target == ErrRender
}

// ArtifactError reports an artifact that could not be written.
type ArtifactError struct {
	// Kind is the artifact that failed.
	Kind artifact.Kind
	// Path is the destination that was attempted.
	Path string
	// Err is the underlying error.
	Err error
}

// Error implements the error interface.
func (e *ArtifactError) Error() string {
	return fmt.Sprintf("write %s artifact to %s: %v", e.Kind, e.Path, e.Err)
}

// Unwrap returns the underlying error for errors.Is/As support.
func (e *ArtifactError) Unwrap() error {
	return e.Err
}

// FailedKinds lists the artifact kinds named by the *ArtifactErrors in err,
// following both single and joined wrapping.
func FailedKinds(err error) []artifact.Kind {
	switch e := err.(type) {
	case nil:
		return nil
	case *ArtifactError:
		return []artifact.Kind{e.Kind}
	case interface{ Unwrap() []error }:
		var kinds []artifact.Kind
		for _, inner := range e.Unwrap() {
			kinds = append(kinds, FailedKinds(inner)...)
		}
		return kinds
	default:
		return FailedKinds(errors.Unwrap(err))
	}
}
