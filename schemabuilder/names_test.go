package schemabuilder

import (
	"testing"

	"github.com/kylelemons/godebug/pretty"
)

func TestCamelCase(t *testing.T) {
	cases := []struct {
		declared string
		want     string
	}{
		{"i_d", "iD"},
		{"a_snake", "aSnake"},
		{"forced_camel", "forcedCamel"},
		{"shipping_estimate", "shippingEstimate"},
		{"field_2_name", "field2Name"},
		{"already", "already"},
		{"aCamel", "aCamel"},
		{"ID", "ID"},
		{"HTMLBody", "HTMLBody"},
		{"Upper_snake", "Upper_snake"},
		{"_leading", "_leading"},
		{"trailing_", "trailing_"},
		{"double__snake", "double__snake"},
	}
	for _, c := range cases {
		if got := camelCase(c.declared); got != c.want {
			t.Errorf("camelCase(%q) = %q, want %q", c.declared, got, c.want)
		}
	}
}

// Converted names are already valid camelCase spellings, so running the
// conversion over its own output must change nothing.
func TestCamelCaseIdempotent(t *testing.T) {
	declared := []string{"i_d", "a_snake", "forced_camel", "aCamel", "ID", "already"}
	for _, d := range declared {
		once := camelCase(d)
		if twice := camelCase(once); twice != once {
			t.Errorf("camelCase not idempotent for %q: %q then %q", d, once, twice)
		}
	}
}

func TestResolveNames(t *testing.T) {
	names := resolveNames([]string{"i_d", "a_snake", "aCamel", "forcedCamel"}, true)

	want := map[string]string{
		"i_d":         "iD",
		"a_snake":     "aSnake",
		"aCamel":      "aCamel",
		"forcedCamel": "forcedCamel",
	}
	for declared, rendered := range want {
		if got := names.Resolve(declared); got != rendered {
			t.Errorf("Resolve(%q) = %q, want %q", declared, got, rendered)
		}
	}
}

// When a converted name would collide with another declared field's rendered
// name, the converted one reverts to its declared spelling so every field
// keeps a distinct rendered name.
func TestResolveNamesCollision(t *testing.T) {
	names := resolveNames([]string{"a_b", "aB"}, true)

	if got := names.Resolve("a_b"); got != "a_b" {
		t.Errorf("Resolve(a_b) = %q, want declared spelling back", got)
	}
	if got := names.Resolve("aB"); got != "aB" {
		t.Errorf("Resolve(aB) = %q, want aB", got)
	}

	names = resolveNames([]string{"i_d", "iD"}, true)

	if got := names.Resolve("i_d"); got != "i_d" {
		t.Errorf("Resolve(i_d) = %q, want declared spelling back", got)
	}
	if got := names.Resolve("iD"); got != "iD" {
		t.Errorf("Resolve(iD) = %q, want iD", got)
	}
}

func TestResolveNamesDisabled(t *testing.T) {
	names := resolveNames([]string{"i_d", "a_snake", "aCamel"}, false)

	for _, d := range []string{"i_d", "a_snake", "aCamel"} {
		if got := names.Resolve(d); got != d {
			t.Errorf("Resolve(%q) = %q, want passthrough", d, got)
		}
	}
}

func TestRewriteSelection(t *testing.T) {
	names := resolveNames([]string{"i_d", "price", "weight_kg"}, true)

	cases := []struct {
		expr string
		want string
	}{
		{"i_d", "iD"},
		{"price weight_kg", "price weightKg"},
		{"  price   weight_kg ", "price weightKg"},
		{"", ""},
		{"unknown_field", "unknown_field"},
	}
	for _, c := range cases {
		if diff := pretty.Compare(names.RewriteSelection(c.expr), c.want); diff != "" {
			t.Errorf("RewriteSelection(%q) mismatch: %s", c.expr, diff)
		}
	}
}
