// Package cmd contains the kong command grammar and the Run implementations
// behind each goxa subcommand.
package cmd

// LogOptions is the shared logging configuration, bound under the log.
// flag prefix.
type LogOptions struct {
	Level string `help:"Log level: trace, debug, info, warn, error" default:"info" env:"GOXA_LOG_LEVEL"`
	File  string `help:"Write logs to this file instead of the console" env:"GOXA_LOG_FILE" type:"path"`
}

// CLI is the root command grammar. Kong layers configuration files,
// environment variables and flags onto it before dispatching.
type CLI struct {
	Log    LogOptions `embed:"" prefix:"log."`
	Config string     `help:"Path to a configuration file" type:"path"`

	Generate  Generate      `cmd:"" help:"Generate typed bindings from an application's scripting dictionary"`
	Inspect   Inspect       `cmd:"" help:"Print an application's binding model as JSON"`
	Apps      Apps          `cmd:"" help:"Discover scriptable applications and manage the bundle registry"`
	ConfigCmd ConfigCommand `cmd:"" name:"config" help:"Configuration file utilities"`
}
