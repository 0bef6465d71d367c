package meta

import (
	"strings"
	"time"

	"github.com/Alia5/bindoc/internal/i18n"
	"github.com/Alia5/bindoc/internal/schema"
)

// Binding describes one documented client binding.
type Binding struct {
	Name          string    // "ruby"; used in anchors
	Title         string    // "Ruby"; used in file names and headings
	DocTitle      i18n.Text // "Ruby bindings"
	CodeLanguage  string    // language of code-block directives
	ExamplePrefix string    // "example_"
	ExampleExt    string    // ".rb"
	OutputExt     string    // ".rst"
}

// DocContext carries everything needed to render one document. It is built
// once per (language, device) pair and never modified afterwards.
type DocContext struct {
	Device    *schema.Device
	Lang      i18n.Lang
	Binding   Binding
	Generated time.Time
	Version   string

	// Examples is the rendered example section, inserted verbatim.
	Examples string
}

// Select picks the active language's variant of t.
func (c *DocContext) Select(t i18n.Text) (string, error) {
	return t.Select(c.Lang)
}

// Anchor builds a reference label: <device>_<category>_<binding>[_<suffix>].
func (c *DocContext) Anchor(suffix string) string {
	label := c.Device.UnderscoreName + "_" + c.Device.CategoryLower() + "_" + c.Binding.Name
	if suffix != "" {
		label += "_" + suffix
	}
	return label
}

// FileName is the output file name: <Name>_<Category>_<Binding>.<ext>.
func (c *DocContext) FileName() string {
	ext := c.Binding.OutputExt
	if ext != "" && !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}
	return c.Device.Name + "_" + c.Device.Category + "_" + c.Binding.Title + ext
}
