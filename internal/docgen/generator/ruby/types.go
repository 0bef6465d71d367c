package ruby

import (
	"strings"

	"github.com/Alia5/bindoc/internal/schema"

	"github.com/cockroachdb/errors"
)

const (
	tokenInt    = "int"
	tokenBool   = "bool"
	tokenString = "str"
	tokenFloat  = "float"
	tokenNil    = "nil"
)

// All integer widths collapse to Ruby's Integer.
var typeTokens = map[string]string{
	"int8":   tokenInt,
	"uint8":  tokenInt,
	"int16":  tokenInt,
	"uint16": tokenInt,
	"int32":  tokenInt,
	"uint32": tokenInt,
	"int64":  tokenInt,
	"uint64": tokenInt,
	"bool":   tokenBool,
	"char":   tokenString,
	"string": tokenString,
	"float":  tokenFloat,
}

// MapType returns the Ruby type token for an element. Arrays render as
// "[int, int, ...]" with one entry per value; strings never do.
func MapType(e schema.Element) (string, error) {
	t, ok := typeTokens[e.Type]
	if !ok {
		err := errors.Newf("element %q: no Ruby type for %q", e.Name, e.Type)
		return "", errors.Mark(errors.WithHint(err, "use one of the scalar types listed in the schema format"), schema.ErrSchema)
	}
	if e.Length > schema.MaxElementLength {
		err := errors.Newf("element %q: length %d exceeds the maximum of %d", e.Name, e.Length, schema.MaxElementLength)
		return "", errors.Mark(err, schema.ErrSchema)
	}
	if e.Length <= 1 || t == tokenString {
		return t, nil
	}
	return list(repeat(t, e.Length)), nil
}

func repeat(s string, n int) []string {
	out := make([]string, n)
	for i := range out {
		out[i] = s
	}
	return out
}

func list(items []string) string {
	return "[" + strings.Join(items, ", ") + "]"
}
