package cmd

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Alia5/bindoc/internal/docgen/generator"
	"github.com/Alia5/bindoc/internal/i18n"
	"github.com/Alia5/bindoc/internal/log"
	"github.com/Alia5/bindoc/internal/watch"

	"github.com/cockroachdb/errors"
)

type Generate struct {
	Schemas     string        `help:"Directory containing device schema files" default:"./schemas" env:"BINDOC_SCHEMAS"`
	Output      string        `help:"Output directory; one subdirectory per language" default:"./doc" env:"BINDOC_OUTPUT"`
	Examples    string        `help:"Directory containing example programs (<category>/<device>/example_*)" default:"./examples" env:"BINDOC_EXAMPLES"`
	ExamplesURL string        `name:"examples-url" help:"Base URL for example download links" env:"BINDOC_EXAMPLES_URL"`
	Binding     string        `help:"Target binding: ruby or 'all'" default:"all" enum:"ruby,all" env:"BINDOC_BINDING"`
	Lang        []string      `help:"Documentation languages" default:"en,de" env:"BINDOC_LANG"`
	Device      []string      `help:"Only generate the named devices" env:"BINDOC_DEVICE"`
	Watch       bool          `help:"Regenerate whenever schema or example files change" env:"BINDOC_WATCH"`
	Debounce    time.Duration `help:"Quiet period before regenerating in watch mode" default:"500ms" env:"BINDOC_DEBOUNCE"`
}

// Run is called by Kong when the generate command is executed.
func (g *Generate) Run(logger *slog.Logger, dump log.DocDump) error {
	opts, err := g.options(dump)
	if err != nil {
		return err
	}
	gen := generator.New(opts, logger)
	run := func() error {
		if g.Binding == "all" {
			return gen.GenAll()
		}
		return gen.GenerateBinding(g.Binding)
	}

	if !g.Watch {
		return run()
	}
	if err := run(); err != nil {
		logger.Error("Generation failed", "error", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	w, err := watch.New(logger, g.Debounce, g.Schemas, g.Examples)
	if err != nil {
		return err
	}
	defer func() { _ = w.Close() }()

	logger.Info("Watching for changes", "schemas", g.Schemas, "examples", g.Examples)
	return w.Run(ctx, run)
}

func (g *Generate) options(dump log.DocDump) (generator.Options, error) {
	langs, err := i18n.ParseLangs(g.Lang)
	if err != nil {
		return generator.Options{}, errors.Wrap(err, "--lang")
	}
	return generator.Options{
		SchemaDir:   g.Schemas,
		OutputDir:   g.Output,
		ExamplesDir: g.Examples,
		ExamplesURL: g.ExamplesURL,
		Languages:   langs,
		Devices:     g.Device,
		Dump:        dump,
	}, nil
}
