/*
Package template fills ${var} placeholders in artifact document skeletons.

# Overview

Generated artifacts (the flow diagram page, the TypeScript declaration) are
fixed skeletons with a handful of holes. template finds ${name} placeholders,
records them once at parse time, and substitutes values at render time:

	sk := template.MustParse("page", "<title>${title}</title>")
	out, err := sk.Render(map[string]string{"title": "Events"})
	// out: "<title>Events</title>"

Only the brace form is recognized. A bare "$name" is left alone, so
skeletons may contain JavaScript or shell text freely.

# Missing Variables

Skeletons fail loudly by default: rendering without a value for every
placeholder returns an *UndefinedVariableError. The behavior is configurable
on an Expander:

	exp := template.NewExpander(template.WithMissingAction(template.MissingKeep))
	out, _ := exp.Expand("Hello ${missing}", nil)
	// out: "Hello ${missing}"

Substituted values are inserted verbatim and are never rescanned, so a value
that itself contains "${x}" is not expanded again.

# Thread Safety

Expander and Skeleton are safe for concurrent use after construction.
*/
package template
