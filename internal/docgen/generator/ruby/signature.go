package ruby

import (
	"strings"

	"github.com/Alia5/bindoc/internal/schema"

	"github.com/cockroachdb/errors"
)

// parameterList joins the input element names in declaration order.
func parameterList(p *schema.Packet) string {
	var names []string
	for _, e := range p.In() {
		names = append(names, e.Name)
	}
	return strings.Join(names, ", ")
}

// returnType is nil for no outputs, the single output's type for one, and a
// list of types otherwise.
func returnType(p *schema.Packet) (string, error) {
	out := p.Out()
	types := make([]string, 0, len(out))
	for _, e := range out {
		t, err := MapType(e)
		if err != nil {
			return "", err
		}
		types = append(types, t)
	}
	switch len(types) {
	case 0:
		return tokenNil, nil
	case 1:
		return types[0], nil
	default:
		return list(types), nil
	}
}

// functionSignature renders e.g.
// ".. rb:function:: BrickletTemperature#set_period(period) -> nil".
func functionSignature(cls string, p *schema.Packet) (string, error) {
	ret, err := returnType(p)
	if err != nil {
		return "", errors.Wrapf(err, "function %s", p.Name)
	}
	params := parameterList(p)
	if params != "" {
		params = "(" + params + ")"
	}
	return ".. rb:function:: " + cls + "#" + p.UnderscoreName + params + " -> " + ret, nil
}

// callbackSignature renders e.g.
// ".. rb:attribute:: BrickletTemperature::CALLBACK_TEMPERATURE".
func callbackSignature(cls string, p *schema.Packet) string {
	return ".. rb:attribute:: " + cls + "::" + callbackConstant(p)
}

// parameterDesc renders one ":param name: type" line per element.
func parameterDesc(elements []schema.Element) (string, error) {
	var b strings.Builder
	for _, e := range elements {
		t, err := MapType(e)
		if err != nil {
			return "", err
		}
		b.WriteString(" :param " + e.Name + ": " + t + "\n")
	}
	return b.String(), nil
}
