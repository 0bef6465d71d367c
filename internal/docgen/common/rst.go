package common

import (
	"strings"
	"text/template"
	"unicode/utf8"

	"github.com/Alia5/bindoc/internal/docgen/meta"
	"github.com/Alia5/bindoc/internal/i18n"

	"github.com/cockroachdb/errors"
)

// Heading underlines title with c, matching the title's width in runes.
func Heading(title string, c rune) string {
	return title + "\n" + strings.Repeat(string(c), utf8.RuneCountInString(title)) + "\n"
}

// Label renders a reST reference target.
func Label(name string) string {
	return ".. _" + name + ":\n"
}

// ShiftRight indents every non-blank line of text by n spaces.
func ShiftRight(text string, n int) string {
	pad := strings.Repeat(" ", n)
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		if strings.TrimSpace(line) != "" {
			lines[i] = pad + line
		}
	}
	return strings.Join(lines, "\n")
}

// TidyBlankLines strips trailing whitespace, collapses runs of blank lines
// into one and ends the text with exactly one newline. Blank lines inside
// literal blocks (after "::" or a code directive) are kept as written.
func TidyBlankLines(text string) string {
	lines := strings.Split(text, "\n")
	out := make([]string, 0, len(lines))
	// blank starts true to drop leading blank lines.
	blank := true
	// literal is the indent of the line opening a literal block, or -1.
	literal := -1
	started := false
	// pending counts blank lines held back inside a literal block.
	pending := 0
	for _, line := range lines {
		line = strings.TrimRight(line, " \t\r")
		if line == "" {
			if literal >= 0 {
				pending++
				continue
			}
			if blank {
				continue
			}
			blank = true
			out = append(out, line)
			continue
		}

		indent := len(line) - len(strings.TrimLeft(line, " \t"))
		if literal >= 0 {
			if indent > literal {
				if !started && pending > 1 {
					pending = 1
				}
				for ; pending > 0; pending-- {
					out = append(out, "")
				}
				started = true
				out = append(out, line)
				continue
			}
			if pending > 0 {
				out = append(out, "")
			}
			literal, started, pending = -1, false, 0
		}

		blank = false
		out = append(out, line)
		if opensLiteral(line) {
			literal = indent
		}
	}
	for len(out) > 0 && out[len(out)-1] == "" {
		out = out[:len(out)-1]
	}
	return strings.Join(out, "\n") + "\n"
}

func opensLiteral(line string) bool {
	trimmed := strings.TrimSpace(line)
	if !strings.HasPrefix(trimmed, ".. ") {
		return strings.HasSuffix(trimmed, "::")
	}
	for _, d := range []string{".. code-block::", ".. code::", ".. sourcecode::"} {
		if strings.HasPrefix(trimmed, d) {
			return true
		}
	}
	return false
}

// Localized is a text/template source per language.
type Localized i18n.Text

var templateFuncs = template.FuncMap{
	// ref renders :ref:`text <label>`
	"ref": func(text, label string) string {
		return Role("ref", text, label)
	},
	// role renders :name:`text <target>`
	"role": Role,
}

// Role renders an interpreted-text role with an explicit target.
func Role(name, text, target string) string {
	return ":" + name + ":`" + text + " <" + target + ">`"
}

// Execute renders the active language's template with data. Missing keys
// are errors.
func (l Localized) Execute(lang i18n.Lang, data any) (string, error) {
	src, err := i18n.Text(l).Select(lang)
	if err != nil {
		return "", err
	}
	tmpl, err := template.New(string(lang)).Funcs(templateFuncs).Option("missingkey=error").Parse(src)
	if err != nil {
		return "", errors.Wrap(err, "parse template")
	}
	var b strings.Builder
	if err := tmpl.Execute(&b, data); err != nil {
		return "", errors.Wrap(err, "execute template")
	}
	return b.String(), nil
}

var summaryText = Localized{
	"en": `This is the description of the {{ref .Title .BindingLabel}} for the
{{ref .Device .DeviceLabel}}. General information and technical
specifications for the {{.Device}} are summarized in its
{{ref "hardware description" .HardwareLabel}}.

An {{ref "installation guide" .InstallLabel}} for the {{.Title}} is part of
their general description.
`,
	"de": `Dies ist die Beschreibung der {{ref .Title .BindingLabel}} für das
{{ref .Device .DeviceLabel}}. Allgemeine Informationen und technische
Spezifikationen des {{.Device}} sind in dessen
{{ref "Hardware Beschreibung" .HardwareLabel}} zusammengefasst.

Eine {{ref "Installationsanleitung" .InstallLabel}} für die {{.Title}} ist
Teil deren allgemeine Beschreibung.
`,
}

// WriteHeader writes the generated-file comment box, the document anchor and
// the page title.
func WriteHeader(b *strings.Builder, ctx *meta.DocContext) {
	lines := []string{
		"This file was automatically generated on " + ctx.Generated.Format("2006-01-02") + ".",
		"",
		"bindoc version " + ctx.Version,
		"",
		"Changes to this file are lost on the next run. Fix the",
		"device schema or the generator instead.",
	}
	width := 0
	for _, l := range lines {
		width = max(width, utf8.RuneCountInString(l))
	}

	border := " " + strings.Repeat("#", width+4) + "\n"
	b.WriteString("..\n")
	b.WriteString(border)
	for _, l := range lines {
		b.WriteString(" # " + l + strings.Repeat(" ", width-utf8.RuneCountInString(l)) + " #\n")
	}
	b.WriteString(border)
	b.WriteString("\n")

	b.WriteString(Label(ctx.Anchor("")))
	b.WriteString("\n")
	b.WriteString(Heading(ctx.Device.DisplayName+" "+ctx.Device.Category+" - "+ctx.Binding.Title+" API", '#'))
	b.WriteString("\n")
}

// WriteSummary writes the localized introduction linking the hardware
// description and the installation guide.
func WriteSummary(b *strings.Builder, ctx *meta.DocContext) error {
	title, err := ctx.Select(ctx.Binding.DocTitle)
	if err != nil {
		return errors.Wrap(err, "binding title")
	}
	dev := ctx.Device
	prefix := dev.UnderscoreName + "_" + dev.CategoryLower()
	s, err := summaryText.Execute(ctx.Lang, map[string]string{
		"Title":         title,
		"Device":        dev.DisplayName + " " + dev.Category,
		"BindingLabel":  "api_bindings_" + ctx.Binding.Name,
		"InstallLabel":  "api_bindings_" + ctx.Binding.Name + "_install",
		"DeviceLabel":   prefix,
		"HardwareLabel": prefix + "_description",
	})
	if err != nil {
		return errors.Wrap(err, "summary")
	}
	b.WriteString(s)
	b.WriteString("\n")
	return nil
}
