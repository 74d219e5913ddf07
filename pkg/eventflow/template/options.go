package template

// MissingAction specifies how to handle missing variables.
type MissingAction int

const (
	// MissingError returns an error when a variable is not found.
	// This is the default behavior.
	MissingError MissingAction = iota

	// MissingKeep keeps the placeholder as-is when the variable is not found.
	MissingKeep

	// MissingEmpty replaces the placeholder with an empty string when
	// the variable is not found.
	MissingEmpty
)

// Option configures an Expander.
type Option func(*Expander)

// WithMissingAction sets how missing variables are handled.
//
// Default: MissingError
//
// Example:
//
//	exp := NewExpander(WithMissingAction(MissingEmpty))
//	out, _ := exp.Expand("a${missing}b", nil)
//	// out: "ab"
func WithMissingAction(action MissingAction) Option {
	return func(e *Expander) {
		e.missingAction = action
	}
}
