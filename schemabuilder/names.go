package schemabuilder

import (
	"regexp"
	"strings"

	"github.com/iancoleman/strcase"
)

// ResolvedNames is the immutable mapping from the declared field names of one
// type to their rendered names. It is computed exactly once per build; key,
// requires and provides selection expressions are rewritten through it before
// any SDL is rendered so that selections always reference final names.
type ResolvedNames struct {
	byDeclared map[string]string
}

// snakeCaseRe matches pure snake_case identifiers: lowercase segments joined
// by single underscores. Anything else (no underscore, mixed case, leading
// capital, all-caps acronyms) is passed through verbatim because re-casing it
// would not unambiguously separate words.
var snakeCaseRe = regexp.MustCompile(`^[a-z][a-z0-9]*(_[a-z0-9]+)+$`)

// camelCase converts a pure snake_case identifier to camelCase and leaves any
// other spelling unchanged.
func camelCase(name string) string {
	if !snakeCaseRe.MatchString(name) {
		return name
	}
	return strcase.ToLowerCamel(name)
}

// resolveNames computes the rendered name of every declared field of a type.
//
// Conversion is applied best-effort per field in isolation. If two distinct
// declared names would render identically, the converted one falls back to
// its declared spelling, guaranteeing one distinct rendered name per declared
// field.
func resolveNames(declared []string, autoCamelCase bool) *ResolvedNames {
	byDeclared := make(map[string]string, len(declared))
	if !autoCamelCase {
		for _, d := range declared {
			byDeclared[d] = d
		}
		return &ResolvedNames{byDeclared: byDeclared}
	}

	rendered := make(map[string]int, len(declared))
	for _, d := range declared {
		rendered[camelCase(d)]++
	}
	for _, d := range declared {
		r := camelCase(d)
		if r != d && rendered[r] > 1 {
			r = d
		}
		byDeclared[d] = r
	}
	return &ResolvedNames{byDeclared: byDeclared}
}

// Resolve returns the rendered name for a declared field name. Names that
// were never declared on the type pass through unchanged.
func (r *ResolvedNames) Resolve(declared string) string {
	if name, ok := r.byDeclared[declared]; ok {
		return name
	}
	return declared
}

// RewriteSelection rewrites a whitespace-separated field-selection expression
// token by token through the resolved names, preserving single spacing.
// Non-field tokens such as braces in nested selections pass through.
func (r *ResolvedNames) RewriteSelection(expr string) string {
	if expr == "" {
		return ""
	}
	tokens := strings.Fields(expr)
	for i, t := range tokens {
		tokens[i] = r.Resolve(t)
	}
	return strings.Join(tokens, " ")
}
