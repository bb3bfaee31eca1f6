// Package config defines the command line surface. Every flag can also come
// from a JSON, YAML or TOML configuration file or a STRUCTGEN_* variable.
package config

import "github.com/Alia5/structgen/internal/cmd"

type CLI struct {
	ConfigFile string `name:"config" help:"Configuration file (JSON, YAML or TOML)" env:"STRUCTGEN_CONFIG"`
	Log        Log    `embed:"" prefix:"log."`

	Generate cmd.Generate      `cmd:"" help:"Generate struct declarations from interface files"`
	Validate cmd.Validate      `cmd:"" help:"Load and validate interface files without writing anything"`
	Check    cmd.Check         `cmd:"" help:"Fail when generated files on disk are out of date"`
	Config   cmd.ConfigCommand `cmd:"" help:"Configuration helpers"`
	Version  cmd.Version       `cmd:"" help:"Print the structgen version"`
}

type Log struct {
	Level  string `help:"Log level" default:"info" enum:"trace,debug,info,warn,error" env:"STRUCTGEN_LOG_LEVEL"`
	File   string `help:"Also write logs to this file" env:"STRUCTGEN_LOG_FILE"`
	Format string `help:"Console log format" default:"auto" enum:"auto,text,json" env:"STRUCTGEN_LOG_FORMAT"`
}
