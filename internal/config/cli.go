package config

import (
	"github.com/Alia5/bindoc/internal/cmd"

	"github.com/alecthomas/kong"
)

// CLI is the root kong command tree.
type CLI struct {
	ConfigFile string `name:"config" help:"Path to a configuration file (json, yaml or toml)" env:"BINDOC_CONFIG"`
	Log        Log    `embed:"" prefix:"log."`

	Version kong.VersionFlag `help:"Print version and exit"`

	Generate cmd.Generate      `cmd:"" help:"Generate binding API reference documents"`
	List     cmd.List          `cmd:"" help:"List the devices found in the schema directory"`
	Config   cmd.ConfigCommand `cmd:"" help:"Configuration helpers"`
}

type Log struct {
	Level    string `help:"Log level" default:"info" enum:"trace,debug,info,warn,error" env:"BINDOC_LOG_LEVEL"`
	File     string `help:"Also write logs to this file" env:"BINDOC_LOG_FILE"`
	Format   string `help:"Log format" default:"text" enum:"text,json" env:"BINDOC_LOG_FORMAT"`
	DumpFile string `name:"dump-file" help:"Write every rendered document to this file" env:"BINDOC_LOG_DUMP_FILE"`
}
