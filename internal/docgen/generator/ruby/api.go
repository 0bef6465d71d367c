// Package ruby renders reStructuredText API references for the Ruby bindings.
package ruby

import (
	"strings"

	"github.com/Alia5/bindoc/internal/docgen/common"
	"github.com/Alia5/bindoc/internal/docgen/meta"
	"github.com/Alia5/bindoc/internal/docmarkup"
	"github.com/Alia5/bindoc/internal/i18n"
	"github.com/Alia5/bindoc/internal/schema"

	"github.com/cockroachdb/errors"
)

// Binding describes the Ruby bindings.
var Binding = meta.Binding{
	Name:          "ruby",
	Title:         "Ruby",
	DocTitle:      i18n.Text{"en": "Ruby bindings", "de": "Ruby Bindings"},
	CodeLanguage:  "ruby",
	ExamplePrefix: "example_",
	ExampleExt:    ".rb",
	OutputExt:     ".rst",
}

// renderer renders one document. It is created per (language, device).
type renderer struct {
	ctx  *meta.DocContext
	dev  *schema.Device
	cls  string
	refs docmarkup.Resolver
	data templateData
}

func newRenderer(ctx *meta.DocContext) (*renderer, error) {
	refs, err := resolver(ctx.Device, ctx.Lang)
	if err != nil {
		return nil, err
	}
	cls := className(ctx.Device)
	return &renderer{
		ctx:  ctx,
		dev:  ctx.Device,
		cls:  cls,
		refs: refs,
		data: templateData{
			Cls:            cls,
			Device:         ctx.Device.UnderscoreName,
			ExamplesLabel:  ctx.Anchor("examples"),
			HasExamples:    ctx.Examples != "",
			CallbacksLabel: ctx.Anchor("callbacks"),
			RegisterTarget: cls + "#register_callback",
		},
	}, nil
}

// Render produces the complete document for ctx: header, summary, examples
// and API reference.
func Render(ctx *meta.DocContext) (string, error) {
	r, err := newRenderer(ctx)
	if err != nil {
		return "", err
	}

	var b strings.Builder
	common.WriteHeader(&b, ctx)
	if err := common.WriteSummary(&b, ctx); err != nil {
		return "", err
	}
	b.WriteString(ctx.Examples)
	b.WriteString("\n")
	if err := r.writeAPI(&b); err != nil {
		return "", err
	}
	return common.TidyBlankLines(b.String()), nil
}

// writeAPI writes the API section. Section order is fixed: basic, advanced,
// callback configuration, callbacks. Only the callback sections are optional.
func (r *renderer) writeAPI(b *strings.Builder) error {
	s, err := r.assemble()
	if err != nil {
		return err
	}

	b.WriteString(common.Label(r.ctx.Anchor("api")))
	b.WriteString("\n")
	b.WriteString(common.Heading("API", '-'))
	b.WriteString("\n")
	if err := r.execute(b, apiIntro); err != nil {
		return err
	}
	b.WriteString("\n")
	if !r.dev.API.IsEmpty() {
		desc, err := r.ctx.Select(r.dev.API)
		if err != nil {
			return errors.Wrap(err, "device api description")
		}
		b.WriteString(strings.TrimSpace(desc))
		b.WriteString("\n\n")
	}

	if len(s.basic) > 0 {
		if err := r.heading(b, titleBasic); err != nil {
			return err
		}
	}
	if err := r.execute(b, constructorText); err != nil {
		return err
	}
	b.WriteString("\n")
	writeBlocks(b, s.basic)

	if err := r.heading(b, titleAdvanced); err != nil {
		return err
	}
	writeBlocks(b, s.advanced)
	if err := r.execute(b, versionText); err != nil {
		return err
	}
	b.WriteString("\n")

	if len(s.callbacks) == 0 {
		return nil
	}

	if err := r.heading(b, titleCCF); err != nil {
		return err
	}
	if err := r.execute(b, registerText); err != nil {
		return err
	}
	b.WriteString("\n")
	writeBlocks(b, s.ccf)

	b.WriteString(common.Label(r.ctx.Anchor("callbacks")))
	b.WriteString("\n")
	if err := r.heading(b, titleCallback); err != nil {
		return err
	}
	if err := r.execute(b, callbacksText); err != nil {
		return err
	}
	b.WriteString("\n")
	writeBlocks(b, s.callbacks)
	return nil
}

func (r *renderer) execute(b *strings.Builder, t common.Localized) error {
	s, err := t.Execute(r.ctx.Lang, r.data)
	if err != nil {
		return err
	}
	b.WriteString(s)
	return nil
}

func (r *renderer) heading(b *strings.Builder, title common.Localized) error {
	s, err := title.Execute(r.ctx.Lang, nil)
	if err != nil {
		return err
	}
	b.WriteString(common.Heading(s, '^'))
	b.WriteString("\n")
	return nil
}

func writeBlocks(b *strings.Builder, blocks []string) {
	for _, blk := range blocks {
		b.WriteString(blk)
	}
}
