package template

import (
	"fmt"
	"regexp"
	"strings"
)

// bracePattern matches ${varname} - varname can contain alphanumeric and underscore.
var bracePattern = regexp.MustCompile(`\$\{([a-zA-Z_][a-zA-Z0-9_]*)\}`)

// Expander expands ${var} placeholders in strings.
//
// Create with NewExpander() and configure with Option functions.
type Expander struct {
	missingAction MissingAction
}

// NewExpander creates a new Expander with the given options.
func NewExpander(opts ...Option) *Expander {
	e := &Expander{missingAction: MissingError}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Expand replaces every ${name} in s with vars[name].
//
// Errors are only returned when MissingAction is MissingError and
// a variable is not found.
func (e *Expander) Expand(s string, vars map[string]string) (string, error) {
	if s == "" {
		return "", nil
	}

	var missing []string
	result := bracePattern.ReplaceAllStringFunc(s, func(match string) string {
		name := match[2 : len(match)-1]
		if val, ok := vars[name]; ok {
			return val
		}
		switch e.missingAction {
		case MissingEmpty:
			return ""
		case MissingError:
			missing = appendUnique(missing, name)
			return match
		default: // MissingKeep
			return match
		}
	})

	if len(missing) > 0 {
		return result, &UndefinedVariableError{Names: missing}
	}
	return result, nil
}

// Skeleton is a parsed document with named placeholders.
type Skeleton struct {
	name     string
	text     string
	vars     []string
	expander *Expander
}

// Parse records the placeholders of text. name identifies the skeleton in
// error messages.
func Parse(name, text string, opts ...Option) (*Skeleton, error) {
	if text == "" {
		return nil, fmt.Errorf("template %s: empty skeleton", name)
	}

	var vars []string
	for _, m := range bracePattern.FindAllStringSubmatch(text, -1) {
		vars = appendUnique(vars, m[1])
	}

	return &Skeleton{
		name:     name,
		text:     text,
		vars:     vars,
		expander: NewExpander(opts...),
	}, nil
}

// MustParse is like Parse but panics on error.
// Use it for skeletons declared as package-level variables.
func MustParse(name, text string, opts ...Option) *Skeleton {
	sk, err := Parse(name, text, opts...)
	if err != nil {
		panic(fmt.Sprintf("template: %v", err))
	}
	return sk
}

// Name returns the skeleton name.
func (s *Skeleton) Name() string {
	return s.name
}

// Vars returns the placeholder names in order of first appearance.
func (s *Skeleton) Vars() []string {
	out := make([]string, len(s.vars))
	copy(out, s.vars)
	return out
}

// Render fills the skeleton with vars.
func (s *Skeleton) Render(vars map[string]string) (string, error) {
	out, err := s.expander.Expand(s.text, vars)
	if err != nil {
		return "", fmt.Errorf("template %s: %w", s.name, err)
	}
	return out, nil
}

// UndefinedVariableError is returned when MissingError is set and
// one or more variables are not found.
type UndefinedVariableError struct {
	// Names is the list of undefined variable names.
	Names []string
}

// Error implements the error interface.
func (e *UndefinedVariableError) Error() string {
	if len(e.Names) == 1 {
		return fmt.Sprintf("undefined variable: %s", e.Names[0])
	}
	return fmt.Sprintf("undefined variables: %s", strings.Join(e.Names, ", "))
}

func appendUnique(list []string, s string) []string {
	for _, v := range list {
		if v == s {
			return list
		}
	}
	return append(list, s)
}
