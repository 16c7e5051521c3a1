package compiler

import (
	"go/token"
	"strings"

	"github.com/stealthrocket/cornflakes/schema"
)

// storageName returns the name of the unexported struct field holding the
// value of a schema field.
func storageName(field string) string {
	name := schema.CamelCase(field)
	name = strings.ToLower(name[:1]) + name[1:]
	if token.IsKeyword(name) || name == "bitmap" {
		name += "_"
	}
	return name
}
