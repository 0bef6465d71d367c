package ruby

import (
	"strings"

	"github.com/Alia5/bindoc/internal/docgen/common"
	"github.com/Alia5/bindoc/internal/docmarkup"
	"github.com/Alia5/bindoc/internal/i18n"
	"github.com/Alia5/bindoc/internal/schema"

	"github.com/cockroachdb/errors"
)

// className is the binding class of a device, e.g. BrickletTemperature.
func className(d *schema.Device) string {
	return d.Category + d.Name
}

// callbackConstant is the event constant of a callback, e.g. CALLBACK_TEMPERATURE.
func callbackConstant(p *schema.Packet) string {
	return "CALLBACK_" + p.UpperCaseName()
}

// refTable maps every packet name of d to its Ruby cross-reference:
// callbacks link their constant, functions their method.
func refTable(d *schema.Device) map[string]string {
	cls := className(d)
	refs := make(map[string]string, len(d.Packets))
	for _, p := range d.Packets {
		switch p.Kind {
		case schema.KindCallback:
			c := callbackConstant(p)
			refs[p.Name] = common.Role("rb:attr", "::"+c, cls+"::"+c)
		default:
			refs[p.Name] = common.Role("rb:func", "#"+p.UnderscoreName, cls+"#"+p.UnderscoreName)
		}
	}
	return refs
}

// resolver builds the reference resolver for one device and language.
func resolver(d *schema.Device, lang i18n.Lang) (docmarkup.Resolver, error) {
	words := make(map[string]string, len(wordForms))
	for w, forms := range wordForms {
		s, err := forms.Select(lang)
		if err != nil {
			return docmarkup.Resolver{}, errors.Wrapf(err, "word %q", w)
		}
		words[w] = s
	}
	return docmarkup.Resolver{Funcs: refTable(d), Words: words}, nil
}

// formatDoc turns a packet's documentation into indented block text:
// references resolved, conditionals applied, firmware note appended.
func (r *renderer) formatDoc(p *schema.Packet) (string, error) {
	text, err := r.ctx.Select(p.Doc.Text)
	if err != nil {
		return "", errors.Wrapf(err, "%s %s doc", p.Kind, p.Name)
	}

	text = r.refs.Resolve(text)
	text, err = docmarkup.ApplyConditionals(text, r.dev.Flags())
	if err != nil {
		return "", errors.Mark(errors.Wrapf(err, "%s %s doc", p.Kind, p.Name), schema.ErrSchema)
	}

	label, err := r.ctx.Select(firmwareLabel(r.dev))
	if err != nil {
		return "", err
	}
	text = docmarkup.SinceFirmware(text, p.SinceFirmware, r.dev.Baseline(), label)

	return common.ShiftRight(strings.Trim(text, "\n"), 1), nil
}

func firmwareLabel(d *schema.Device) i18n.Text {
	if d.Category == "Brick" {
		return labelFirmware
	}
	return labelPlugin
}
