package ruby

import (
	"strings"

	"github.com/Alia5/bindoc/internal/schema"

	"github.com/cockroachdb/errors"
)

// sections holds the rendered blocks of one device, grouped by the document
// section they belong to.
type sections struct {
	basic     []string
	advanced  []string
	ccf       []string
	callbacks []string
}

func (r *renderer) functionBlock(p *schema.Packet) (string, error) {
	sig, err := functionSignature(r.cls, p)
	if err != nil {
		return "", err
	}
	params, err := parameterDesc(p.In())
	if err != nil {
		return "", errors.Wrapf(err, "function %s", p.Name)
	}
	doc, err := r.formatDoc(p)
	if err != nil {
		return "", err
	}
	return block(sig, params, doc), nil
}

func (r *renderer) callbackBlock(p *schema.Packet) (string, error) {
	params, err := parameterDesc(p.Out())
	if err != nil {
		return "", errors.Wrapf(err, "callback %s", p.Name)
	}
	doc, err := r.formatDoc(p)
	if err != nil {
		return "", err
	}
	return block(callbackSignature(r.cls, p), params, doc), nil
}

// block joins a declaration, its parameter list and its prose with blank
// lines, skipping empty parts.
func block(parts ...string) string {
	var b strings.Builder
	for _, part := range parts {
		part = strings.TrimRight(part, "\n")
		if part == "" {
			continue
		}
		b.WriteString(part)
		b.WriteString("\n\n")
	}
	return b.String()
}

// assemble renders every packet of the device into its section.
func (r *renderer) assemble() (*sections, error) {
	s := &sections{}
	for _, p := range r.dev.Packets {
		if p.Kind == schema.KindCallback {
			blk, err := r.callbackBlock(p)
			if err != nil {
				return nil, err
			}
			s.callbacks = append(s.callbacks, blk)
			continue
		}

		blk, err := r.functionBlock(p)
		if err != nil {
			return nil, err
		}
		switch p.Doc.Class {
		case schema.ClassBasic:
			s.basic = append(s.basic, blk)
		case schema.ClassAdvanced:
			s.advanced = append(s.advanced, blk)
		case schema.ClassCallbackConfig:
			s.ccf = append(s.ccf, blk)
		case schema.ClassNone:
			return nil, errors.Mark(
				errors.Newf("function %s has no section classification", p.Name), schema.ErrSchema)
		}
	}
	return s, nil
}
