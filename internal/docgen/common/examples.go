package common

import (
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"

	"github.com/Alia5/bindoc/internal/docgen/meta"
	"github.com/Alia5/bindoc/internal/schema"

	"github.com/cockroachdb/errors"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Example is one example program shipped for a device.
type Example struct {
	Title string // "Callback Threshold"
	File  string // "example_callback_threshold.rb"
	Path  string // path on disk
}

// ExampleDir is where examples for dev live below root:
// <root>/<category>/<device>.
func ExampleDir(root string, dev *schema.Device) string {
	return filepath.Join(root, dev.CategoryLower(), dev.UnderscoreName)
}

// FindExamples lists the binding's example files for dev, sorted by file
// name. A missing directory yields no examples.
func FindExamples(root string, dev *schema.Device, b meta.Binding) ([]Example, error) {
	if root == "" {
		return nil, nil
	}
	dir := ExampleDir(root, dev)
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, errors.Wrapf(err, "read examples for %s", dev.Name)
	}

	var out []Example
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || !strings.HasPrefix(name, b.ExamplePrefix) || !strings.HasSuffix(name, b.ExampleExt) {
			continue
		}
		out = append(out, Example{
			Title: ExampleTitle(name, b),
			File:  name,
			Path:  filepath.Join(dir, name),
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].File < out[j].File })
	return out, nil
}

// ExampleTitle derives a heading from an example file name:
// "example_callback_threshold.rb" -> "Callback Threshold".
func ExampleTitle(file string, b meta.Binding) string {
	name := strings.TrimSuffix(strings.TrimPrefix(file, b.ExamplePrefix), b.ExampleExt)
	return cases.Title(language.Und, cases.NoLower).String(strings.ReplaceAll(name, "_", " "))
}

var examplesHeading = Localized{"en": "Examples", "de": "Beispiele"}

var examplesIntro = Localized{
	"en": "The example code below is ready to run once the UID of your device is filled in.\n",
	"de": "Der folgende Beispielcode ist lauffähig, sobald die UID des Gerätes eingetragen ist.\n",
}

// RenderExamples renders the example section for a document written to
// docDir. It returns an empty string when there are no examples. With a
// download base URL every example gets a download link below
// <url>/<category>/<device>/.
func RenderExamples(ctx *meta.DocContext, examples []Example, downloadURL, docDir string) (string, error) {
	if len(examples) == 0 {
		return "", nil
	}
	heading, err := examplesHeading.Execute(ctx.Lang, nil)
	if err != nil {
		return "", err
	}
	intro, err := examplesIntro.Execute(ctx.Lang, nil)
	if err != nil {
		return "", err
	}

	var b strings.Builder
	b.WriteString(Label(ctx.Anchor("examples")))
	b.WriteString("\n")
	b.WriteString(Heading(heading, '-'))
	b.WriteString("\n")
	b.WriteString(intro)
	b.WriteString("\n")

	for _, ex := range examples {
		include, err := IncludePath(docDir, ex.Path)
		if err != nil {
			return "", err
		}
		b.WriteString("\n")
		b.WriteString(Heading(ex.Title, '^'))
		b.WriteString("\n")
		if downloadURL != "" {
			u := strings.TrimRight(downloadURL, "/") + "/" +
				path.Join(ctx.Device.CategoryLower(), ctx.Device.UnderscoreName, ex.File)
			b.WriteString("`Download (" + ex.File + ") <" + u + ">`__\n\n")
		}
		b.WriteString(".. literalinclude:: " + include + "\n")
		b.WriteString(" :language: " + ctx.Binding.CodeLanguage + "\n")
		b.WriteString(" :linenos:\n")
		b.WriteString(" :tab-width: 4\n")
	}
	b.WriteString("\n")
	return b.String(), nil
}

// IncludePath returns the path of file relative to docDir, with forward
// slashes. literalinclude resolves relative paths against the directory of
// the including document.
func IncludePath(docDir, file string) (string, error) {
	absDir, err := filepath.Abs(docDir)
	if err != nil {
		return "", errors.Wrapf(err, "resolve %s", docDir)
	}
	absFile, err := filepath.Abs(file)
	if err != nil {
		return "", errors.Wrapf(err, "resolve %s", file)
	}
	rel, err := filepath.Rel(absDir, absFile)
	if err != nil {
		return "", errors.Wrapf(err, "include %s from %s", file, docDir)
	}
	return filepath.ToSlash(rel), nil
}
