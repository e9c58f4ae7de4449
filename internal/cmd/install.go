package cmd

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
)

const unitName = "joymux.service"

// Install sets up joymux to start with the user session.
type Install struct {
	Args []string `arg:"" optional:"" passthrough:"" help:"Flags for joymux run, e.g. -- --hidraw /dev/hidraw3"`
}

// Uninstall removes joymux startup configuration.
type Uninstall struct{}

func (c *Install) Run(logger *slog.Logger) error {
	exe, err := currentExecutable()
	if err != nil {
		return err
	}
	if strings.Contains(exe, "go-build") {
		return errors.New("cannot install from 'go run'")
	}
	dir, err := unitDir()
	if err != nil {
		return err
	}
	path, err := writeUnit(dir, exe, c.Args)
	if err != nil {
		return err
	}
	logger.Info("installed systemd user unit", "path", path)
	logger.Info("enable it with: systemctl --user enable --now " + unitName)
	return nil
}

func (c *Uninstall) Run(logger *slog.Logger) error {
	dir, err := unitDir()
	if err != nil {
		return err
	}
	path := filepath.Join(dir, unitName)
	if err := os.Remove(path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			logger.Info("nothing to uninstall", "path", path)
			return nil
		}
		return err
	}
	logger.Info("removed systemd user unit", "path", path)
	return nil
}

func currentExecutable() (string, error) {
	exe, err := os.Executable()
	if err != nil {
		return "", err
	}
	return filepath.Abs(exe)
}

func unitDir() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "systemd", "user"), nil
}

func unitContent(exe string, args []string) string {
	cmd := []string{quoteArg(exe), "run"}
	for _, a := range args {
		cmd = append(cmd, quoteArg(a))
	}
	return fmt.Sprintf(`[Unit]
Description=joymux controller multiplexer

[Service]
ExecStart=%s
Restart=on-failure

[Install]
WantedBy=default.target
`, strings.Join(cmd, " "))
}

func quoteArg(s string) string {
	if s != "" && !strings.ContainsAny(s, " \t\"'\\") {
		return s
	}
	return `"` + strings.NewReplacer(`\`, `\\`, `"`, `\"`).Replace(s) + `"`
}

func writeUnit(dir, exe string, args []string) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}
	path := filepath.Join(dir, unitName)
	if err := os.WriteFile(path, []byte(unitContent(exe, args)), 0o644); err != nil {
		return "", fmt.Errorf("write unit: %w", err)
	}
	return path, nil
}
