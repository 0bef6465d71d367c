package generator

import (
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/Alia5/bindoc/internal/docgen/common"
	"github.com/Alia5/bindoc/internal/docgen/generator/ruby"
	"github.com/Alia5/bindoc/internal/docgen/meta"
	"github.com/Alia5/bindoc/internal/i18n"
	"github.com/Alia5/bindoc/internal/log"
	"github.com/Alia5/bindoc/internal/schema"

	"github.com/cockroachdb/errors"
)

// ErrOutput marks failures to write generated documents.
var ErrOutput = errors.New("output error")

// Renderer renders one complete document.
type Renderer func(ctx *meta.DocContext) (string, error)

// BindingGenerator pairs a binding description with its renderer.
type BindingGenerator struct {
	Binding meta.Binding
	Render  Renderer
}

var generators = map[string]BindingGenerator{
	"ruby": {Binding: ruby.Binding, Render: ruby.Render},
}

// Bindings returns the registered binding names, sorted.
func Bindings() []string {
	names := make([]string, 0, len(generators))
	for k := range generators {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}

// Options configures a generation run.
type Options struct {
	SchemaDir   string
	OutputDir   string
	ExamplesDir string
	ExamplesURL string
	Languages   []i18n.Lang
	// Devices restricts the run to the named devices. Empty means all.
	Devices []string
	// Now stamps document headers; defaults to time.Now.
	Now  func() time.Time
	Dump log.DocDump
}

type Generator struct {
	opts   Options
	logger *slog.Logger
}

func New(opts Options, logger *slog.Logger) *Generator {
	if len(opts.Languages) == 0 {
		opts.Languages = append([]i18n.Lang(nil), i18n.Default...)
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.Dump == nil {
		opts.Dump = log.NewDump(nil)
	}
	return &Generator{
		opts:   opts,
		logger: logger,
	}
}

// GenAll generates documentation for every registered binding.
func (g *Generator) GenAll() error {
	for _, name := range Bindings() {
		if err := g.GenerateBinding(name); err != nil {
			return errors.Wrapf(err, "generate %s documentation", name)
		}
	}
	return nil
}

// GenerateBinding loads the schema set and writes one document per language
// and device. The first error aborts the run.
func (g *Generator) GenerateBinding(name string) error {
	gen, ok := generators[name]
	if !ok {
		return errors.WithHintf(
			errors.Newf("unsupported binding '%s'", name),
			"supported bindings: %s", strings.Join(Bindings(), ", "))
	}

	g.logger.Info("Generating documentation", "binding", name, "languages", g.opts.Languages)

	devices, err := g.LoadDevices()
	if err != nil {
		return err
	}

	version, err := common.GetVersion()
	if err != nil {
		return errors.Wrap(err, "get version")
	}

	written := 0
	for _, lang := range g.opts.Languages {
		outputPath := filepath.Join(g.opts.OutputDir, string(lang))
		if err := os.MkdirAll(outputPath, 0o755); err != nil {
			return errors.Mark(errors.Wrapf(err, "create %s output directory", lang), ErrOutput)
		}

		for _, dev := range devices {
			ctx := &meta.DocContext{
				Device:    dev,
				Lang:      lang,
				Binding:   gen.Binding,
				Generated: g.opts.Now(),
				Version:   version,
			}
			if err := g.writeDocument(gen, ctx, outputPath); err != nil {
				return errors.Wrapf(err, "%s (%s)", dev.Key(), lang)
			}
			written++
		}
	}

	g.logger.Info("Documentation generation complete", "binding", name, "files", written, "output", g.opts.OutputDir)
	return nil
}

// LoadDevices reads the schema directory and applies the device filter.
func (g *Generator) LoadDevices() ([]*schema.Device, error) {
	g.logger.Debug("Loading device schemas", "dir", g.opts.SchemaDir)
	all, err := schema.LoadDir(g.opts.SchemaDir)
	if err != nil {
		return nil, err
	}
	devices, err := schema.Select(all, g.opts.Devices)
	if err != nil {
		return nil, err
	}
	g.logger.Info("Loaded device schemas", "count", len(devices))

	for _, d := range devices {
		if d.HasCallbacks() {
			continue
		}
		for _, p := range d.Functions() {
			if p.Doc.Class == schema.ClassCallbackConfig {
				g.logger.Warn("Callback configuration function on a device without callbacks is left out",
					"device", d.Key(), "function", p.Name)
			}
		}
	}
	return devices, nil
}

// RenderDevice renders one document fully in memory, examples included.
// docDir is the directory the document will be written to. ctx itself is
// left untouched.
func RenderDevice(gen BindingGenerator, ctx *meta.DocContext, examplesDir, examplesURL, docDir string) (string, error) {
	examples, err := common.FindExamples(examplesDir, ctx.Device, gen.Binding)
	if err != nil {
		return "", err
	}
	withExamples := *ctx
	withExamples.Examples, err = common.RenderExamples(ctx, examples, examplesURL, docDir)
	if err != nil {
		return "", errors.Wrap(err, "examples")
	}
	return gen.Render(&withExamples)
}

func (g *Generator) writeDocument(gen BindingGenerator, ctx *meta.DocContext, outputPath string) error {
	g.logger.Debug("Rendering document", "device", ctx.Device.Key(), "lang", ctx.Lang, "binding", gen.Binding.Name)

	doc, err := RenderDevice(gen, ctx, g.opts.ExamplesDir, g.opts.ExamplesURL, outputPath)
	if err != nil {
		return err
	}
	g.opts.Dump.Dump(gen.Binding.Name, string(ctx.Lang), ctx.Device.Name, []byte(doc))

	path := filepath.Join(outputPath, ctx.FileName())
	if err := os.WriteFile(path, []byte(doc), 0o644); err != nil {
		return errors.Mark(errors.Wrapf(err, "write %s", path), ErrOutput)
	}
	g.logger.Info("Wrote document", "file", path)
	return nil
}
