package graph

import (
	"strings"

	"github.com/iancoleman/strcase"
)

// sanitize maps an arbitrary table or column name onto [_a-zA-Z][_a-zA-Z0-9]*
func sanitize(name string) string {
	var b strings.Builder
	for i, r := range name {
		switch {
		case r == '_', r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z':
			b.WriteRune(r)
		case r >= '0' && r <= '9':
			if i == 0 {
				b.WriteByte('_')
			}
			b.WriteRune(r)
		default:
			b.WriteByte('_')
		}
	}
	out := b.String()
	// names starting with __ are reserved for introspection
	if strings.HasPrefix(out, "__") {
		out = "_" + strings.TrimLeft(out, "_")
	}
	if out == "" {
		return "_"
	}
	return out
}

// typeName is the base GraphQL type name of a table
func typeName(table string) string {
	name := strcase.ToCamel(sanitize(table))
	if name == "" || (name[0] >= '0' && name[0] <= '9') {
		name = "T" + name
	}
	return name
}
