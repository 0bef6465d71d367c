package schema

import (
	"encoding/json"
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"

	"github.com/cockroachdb/errors"
	"gopkg.in/yaml.v3"
)

// ScalarTypes is the closed set of element type tags.
var ScalarTypes = map[string]bool{
	"int8":   true,
	"uint8":  true,
	"int16":  true,
	"uint16": true,
	"int32":  true,
	"uint32": true,
	"int64":  true,
	"uint64": true,
	"bool":   true,
	"char":   true,
	"string": true,
	"float":  true,
}

// MaxElementLength bounds array cardinality.
const MaxElementLength = 4096

func scalarTypeList() string {
	names := make([]string, 0, len(ScalarTypes))
	for n := range ScalarTypes {
		names = append(names, n)
	}
	sort.Strings(names)
	return strings.Join(names, ", ")
}

// rawElement keeps an element in whatever shape the file used until it is
// converted by parseElement.
type rawElement struct {
	v any
}

func (e *rawElement) UnmarshalYAML(node *yaml.Node) error {
	return node.Decode(&e.v)
}

func (e *rawElement) UnmarshalJSON(data []byte) error {
	return json.Unmarshal(data, &e.v)
}

// parseElement accepts the three element notations:
//
//	[name, type, length, direction]
//	"name:type*length:direction"
//	{name: ..., type: ..., length: ..., direction: ...}
func parseElement(v any) (Element, error) {
	switch t := v.(type) {
	case string:
		return parseElementSpec(t)
	case []any:
		return parseElementTuple(t)
	case map[string]any:
		return parseElementObject(t)
	default:
		return Element{}, schemaError(
			errors.Newf("malformed element %v", v),
			"write elements as [name, type, length, direction], \"name:type*length:direction\" or an object")
	}
}

// parseElementSpec parses the compact form, e.g. "values:uint8*4:in".
func parseElementSpec(spec string) (Element, error) {
	parts := strings.Split(spec, ":")
	if len(parts) != 3 {
		return Element{}, schemaError(
			errors.Newf("malformed element %q", spec),
			"compact elements look like \"name:type:direction\" or \"name:type*length:direction\"")
	}

	typeSpec, length := parts[1], 1
	if idx := strings.IndexByte(typeSpec, '*'); idx >= 0 {
		n, err := strconv.Atoi(typeSpec[idx+1:])
		if err != nil {
			return Element{}, schemaError(
				errors.Newf("element %q: invalid length %q", parts[0], typeSpec[idx+1:]),
				"the array length after '*' must be a number")
		}
		typeSpec, length = typeSpec[:idx], n
	}
	return newElement(parts[0], typeSpec, length, parts[2])
}

func parseElementTuple(items []any) (Element, error) {
	if len(items) != 4 {
		return Element{}, schemaError(
			errors.Newf("element tuple %v has %d items, want 4", items, len(items)),
			"element tuples are [name, type, length, direction]")
	}
	name, ok1 := items[0].(string)
	typ, ok2 := items[1].(string)
	dir, ok3 := items[3].(string)
	if !ok1 || !ok2 || !ok3 {
		return Element{}, schemaError(
			errors.Newf("malformed element tuple %v", items),
			"name, type and direction must be strings")
	}
	length, err := toLength(items[2])
	if err != nil {
		return Element{}, errors.Wrapf(err, "element %q", name)
	}
	return newElement(name, typ, length, dir)
}

func parseElementObject(m map[string]any) (Element, error) {
	str := func(key string) string {
		s, _ := m[key].(string)
		return s
	}
	length := 1
	if raw, ok := m["length"]; ok {
		n, err := toLength(raw)
		if err != nil {
			return Element{}, errors.Wrapf(err, "element %q", str("name"))
		}
		length = n
	}
	return newElement(str("name"), str("type"), length, str("direction"))
}

// toLength converts the numeric types produced by the YAML and JSON decoders.
func toLength(v any) (int, error) {
	switch n := v.(type) {
	case int:
		return n, nil
	case int64:
		if n > MaxElementLength {
			return 0, lengthTooLarge(n)
		}
		return int(n), nil
	case uint64:
		if n > MaxElementLength {
			return 0, lengthTooLarge(n)
		}
		return int(n), nil
	case float64:
		if n != math.Trunc(n) {
			return 0, schemaError(errors.Newf("length %v is not an integer", n), "")
		}
		if n > MaxElementLength {
			return 0, lengthTooLarge(n)
		}
		return int(n), nil
	default:
		return 0, schemaError(
			errors.Newf("invalid length %v", v),
			"the element length must be a positive integer")
	}
}

func newElement(name, typ string, length int, dir string) (Element, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return Element{}, schemaError(errors.New("element without a name"), "")
	}
	typ = strings.TrimSpace(typ)
	if !ScalarTypes[typ] {
		return Element{}, schemaError(
			errors.Newf("element %q: unknown type %q", name, typ),
			fmt.Sprintf("supported types: %s", scalarTypeList()))
	}
	if length < 1 {
		return Element{}, schemaError(
			errors.Newf("element %q: length %d is less than 1", name, length),
			"scalars have length 1, arrays a length above 1")
	}
	if length > MaxElementLength {
		return Element{}, errors.Wrapf(lengthTooLarge(length), "element %q", name)
	}
	d, err := ParseDirection(dir)
	if err != nil {
		return Element{}, errors.Wrapf(err, "element %q", name)
	}
	return Element{Name: name, Type: typ, Length: length, Direction: d}, nil
}

func lengthTooLarge(n any) error {
	return schemaError(
		errors.Newf("length %v exceeds the maximum of %d", n, MaxElementLength),
		"check the element length for a typo")
}
