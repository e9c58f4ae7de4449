package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/Alia5/joymux/internal/config"
	"github.com/Alia5/joymux/internal/configpaths"
	"github.com/Alia5/joymux/internal/log"

	"github.com/alecthomas/kong"
	kongtoml "github.com/alecthomas/kong-toml"
	kongyaml "github.com/alecthomas/kong-yaml"
	"golang.org/x/term"
)

func main() {
	handlePlainHelpFlag()

	userCfg := findUserConfig(os.Args[1:])
	jsonPaths, yamlPaths, tomlPaths := configpaths.ConfigCandidatePaths(userCfg)

	var cli config.CLI
	ctx := kong.Parse(&cli,
		kong.Name("joymux"),
		kong.Description(Description()),
		kong.UsageOnError(),
		kong.Help(helpPrinter),
		// Load configuration from JSON/YAML/TOML in priority order; flags/env override config values.
		kong.Configuration(kong.JSON, jsonPaths...),
		kong.Configuration(kongyaml.Loader, yamlPaths...),
		kong.Configuration(kongtoml.Loader, tomlPaths...),
	)

	logger, closeFiles, err := log.SetupLogger(cli.Log.Level, cli.Log.File)
	if err != nil {
		fmt.Fprintln(os.Stderr, "failed to setup logger:", err)
		os.Exit(2)
	}
	defer func() {
		for _, c := range closeFiles {
			_ = c.Close()
		}
	}()

	rawLogger, rawFiles, err := log.SetupRawLogger(cli.Log.Level, cli.Log.RawFile)
	if err != nil {
		logger.Error("failed to open raw log file", "file", cli.Log.RawFile, "error", err)
	}
	closeFiles = append(closeFiles, rawFiles...)

	ctx.Bind(logger)
	ctx.BindTo(rawLogger, (*log.RawLogger)(nil))

	err = ctx.Run()
	ctx.FatalIfErrorf(err)
}

func handlePlainHelpFlag() {
	for i, arg := range os.Args[1:] {
		if arg == "-p" {
			os.Setenv("JOYMUX_HELP_STYLE", "plain")
			os.Args[i+1] = "-h"
			return
		}
	}
}

func findUserConfig(args []string) string {
	for i, a := range args {
		if strings.HasPrefix(a, "--config=") {
			return a[len("--config="):]
		}
		if a == "--config" && i+1 < len(args) {
			return args[i+1]
		}
	}
	return os.Getenv("JOYMUX_CONFIG")
}

// helpPrinter picks the help layout. JOYMUX_HELP_STYLE may force "plain",
// "compact" or "full"; otherwise it follows the terminal width.
func helpPrinter(options kong.HelpOptions, ctx *kong.Context) error {
	style := strings.ToLower(os.Getenv("JOYMUX_HELP_STYLE"))
	width := 0
	if style == "" {
		style, width = detectHelpStyle()
	}
	switch style {
	case "compact":
		options.Compact = true
	case "full":
		options.Tree = true
	}
	if width > 0 {
		options.WrapUpperBound = width
	}
	return kong.DefaultHelpPrinter(options, ctx)
}

func detectHelpStyle() (string, int) {
	fd := int(os.Stdout.Fd())
	if !term.IsTerminal(fd) {
		fd = int(os.Stderr.Fd())
		if !term.IsTerminal(fd) {
			return "plain", 0
		}
	}

	if os.Getenv("TERM") == "dumb" {
		return "plain", 0
	}

	width, _, err := term.GetSize(fd)
	if err != nil || width <= 0 {
		return "compact", 0
	}

	const fullThreshold = 110
	if width >= fullThreshold {
		return "full", width
	}
	return "compact", width
}
