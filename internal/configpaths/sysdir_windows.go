//go:build windows

package configpaths

// SystemConfigDir returns the directory for a system-wide config.
func SystemConfigDir() (string, error) {
	return DefaultConfigDir()
}
