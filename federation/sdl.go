package federation

import (
	"fmt"
	"strings"

	"go.appointy.com/subgraph/schemabuilder"
)

// Render produces the federation service document for a built schema. Types
// are rendered in declaration order with the fields each was declared with;
// the federation scaffolding (_Service, _Any, _Entity and the _service and
// _entities fields) never appears, since a gateway supplies those itself.
func Render(built *schemabuilder.Built) string {
	var blocks []string

	for _, obj := range built.Objects {
		blocks = append(blocks, renderObject(obj))
	}
	for _, u := range built.Unions {
		blocks = append(blocks, fmt.Sprintf("union %s = %s\n", u.Name, strings.Join(u.Types, " | ")))
	}
	for _, e := range built.Enums {
		blocks = append(blocks, renderEnum(e))
	}
	for _, in := range built.Inputs {
		blocks = append(blocks, renderInput(in))
	}
	for _, name := range built.Scalars {
		blocks = append(blocks, fmt.Sprintf("scalar %s\n", name))
	}

	return strings.Join(blocks, "\n")
}

func renderObject(obj *schemabuilder.BuiltObject) string {
	var b strings.Builder

	if obj.Extended {
		b.WriteString("extend ")
	}
	b.WriteString("type ")
	b.WriteString(obj.Name)
	for _, key := range obj.Keys {
		fmt.Fprintf(&b, " @key(fields: %q)", key)
	}
	b.WriteString(" {\n")

	for _, f := range obj.Fields {
		b.WriteString("  ")
		b.WriteString(f.Name)
		if len(f.Args) > 0 {
			parts := make([]string, 0, len(f.Args))
			for _, a := range f.Args {
				parts = append(parts, fmt.Sprintf("%s: %s", a.Name, a.Type.String()))
			}
			fmt.Fprintf(&b, "(%s)", strings.Join(parts, ", "))
		}
		b.WriteString(": ")
		b.WriteString(f.Type.String())
		if f.External {
			b.WriteString(" @external")
		}
		if f.Requires != "" {
			fmt.Fprintf(&b, " @requires(fields: %q)", f.Requires)
		}
		if f.Provides != "" {
			fmt.Fprintf(&b, " @provides(fields: %q)", f.Provides)
		}
		b.WriteString("\n")
	}

	b.WriteString("}\n")
	return b.String()
}

func renderEnum(e *schemabuilder.BuiltEnum) string {
	var b strings.Builder
	fmt.Fprintf(&b, "enum %s {\n", e.Name)
	for _, v := range e.Values {
		fmt.Fprintf(&b, "  %s\n", v)
	}
	b.WriteString("}\n")
	return b.String()
}

func renderInput(in *schemabuilder.BuiltInput) string {
	var b strings.Builder
	fmt.Fprintf(&b, "input %s {\n", in.Name)
	for _, f := range in.Fields {
		fmt.Fprintf(&b, "  %s: %s\n", f.Name, f.Type.String())
	}
	b.WriteString("}\n")
	return b.String()
}
