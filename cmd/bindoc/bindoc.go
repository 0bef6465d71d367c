package main

import (
	"os"
	"strings"

	"github.com/Alia5/bindoc/internal/config"
	"github.com/Alia5/bindoc/internal/configpaths"
	"github.com/Alia5/bindoc/internal/docgen/common"
	"github.com/Alia5/bindoc/internal/log"

	"github.com/alecthomas/kong"
	kongtoml "github.com/alecthomas/kong-toml"
	kongyaml "github.com/alecthomas/kong-yaml"
	"github.com/cockroachdb/errors"
)

func main() {

	userCfg := findUserConfig(os.Args[1:])
	jsonPaths, yamlPaths, tomlPaths := configpaths.ConfigCandidatePaths(userCfg)

	version, err := common.GetVersion()
	if err != nil {
		version = common.Version
	}

	var cli config.CLI
	ctx := kong.Parse(&cli,
		kong.Name("bindoc"),
		kong.Description("Binding API reference generator"),
		kong.UsageOnError(),
		kong.Vars{"version": version},
		// Load configuration from JSON/YAML/TOML in priority order; flags/env override config values.
		kong.Configuration(kong.JSON, jsonPaths...),
		kong.Configuration(kongyaml.Loader, yamlPaths...),
		kong.Configuration(kongtoml.Loader, tomlPaths...),
	)

	logger, closeFiles, err := log.SetupLogger(cli.Log.Level, cli.Log.File, cli.Log.Format)
	if err != nil {
		_, _ = os.Stderr.WriteString("failed to setup logger: " + err.Error() + "\n")
		os.Exit(2)
	}
	defer func() {
		for _, c := range closeFiles {
			_ = c.Close()
		}
	}()

	var dump log.DocDump
	if cli.Log.DumpFile != "" {
		f, err := os.OpenFile(cli.Log.DumpFile, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0o644)
		if err != nil {
			logger.Error("failed to open dump file", "file", cli.Log.DumpFile, "error", err)
			dump = log.NewDump(nil)
		} else {
			dump = log.NewDump(f)
			closeFiles = append(closeFiles, f)
		}
	} else if cli.Log.Level == "trace" {
		dump = log.NewDump(os.Stdout)
	} else {
		dump = log.NewDump(nil)
	}

	ctx.Bind(logger)
	ctx.BindTo(dump, (*log.DocDump)(nil))

	if err := ctx.Run(); err != nil {
		logger.Error("command failed", "error", err)
		if hints := errors.FlattenHints(err); hints != "" {
			_, _ = os.Stderr.WriteString("hint: " + hints + "\n")
		}
		for _, c := range closeFiles {
			_ = c.Close()
		}
		os.Exit(1)
	}
}

func findUserConfig(args []string) string {
	for i := 0; i < len(args); i++ {
		a := args[i]
		if strings.HasPrefix(a, "--config=") {
			return a[len("--config="):]
		}
		if a == "--config" && i+1 < len(args) {
			return args[i+1]
		}
	}
	if v := os.Getenv("BINDOC_CONFIG"); v != "" {
		return v
	}
	return ""
}
