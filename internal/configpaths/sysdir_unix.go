//go:build !windows

package configpaths

import (
	"os"
	"path/filepath"
)

// SystemConfigDir returns the directory for a system-wide config.
// On Unix, root services use /etc/joymux.
func SystemConfigDir() (string, error) {
	if os.Geteuid() == 0 {
		return filepath.Join(string(os.PathSeparator), "etc", appDir), nil
	}
	return DefaultConfigDir()
}
