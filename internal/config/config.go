// Package config defines the CLI structure and configuration for joymux.
package config

import (
	"github.com/Alia5/joymux/internal/cmd"
)

type Log struct {
	Level   string `help:"Log level: trace, debug, info, warn, error" default:"info" env:"JOYMUX_LOG_LEVEL"`
	File    string `help:"Log file path (default: none; logs only to console)" env:"JOYMUX_LOG_FILE"`
	RawFile string `help:"Raw report log file path (default: none)" env:"JOYMUX_LOG_RAW_FILE"`
}

// CLI is the root command structure for Kong CLI parsing.
type CLI struct {
	Config string `help:"Config file (json, yaml or toml)" type:"path" env:"JOYMUX_CONFIG"`
	Log    `embed:"" prefix:"log."`

	Run       cmd.Run       `cmd:"" help:"Serve one connected controller"`
	Decode    cmd.Decode    `cmd:"" help:"Decode captured controller data"`
	Install   cmd.Install   `cmd:"" help:"Install a systemd user unit that runs joymux"`
	Uninstall cmd.Uninstall `cmd:"" help:"Remove the systemd user unit"`
	Version   cmd.Version   `cmd:"" help:"Print version information"`
}
