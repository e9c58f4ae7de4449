// Package configpaths computes where joymux looks for its config files.
package configpaths

import (
	"os"
	"path/filepath"
	"slices"
	"strings"
)

const (
	appDir   = "joymux"
	baseName = "config"
)

// DefaultConfigDir returns the per-user config directory.
func DefaultConfigDir() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, appDir), nil
}

// ConfigCandidatePaths returns the config files kong should try, per
// format, in priority order. An explicit user path is tried alone, under
// the loader matching its extension.
func ConfigCandidatePaths(user string) (jsonPaths, yamlPaths, tomlPaths []string) {
	if user != "" {
		switch strings.ToLower(filepath.Ext(user)) {
		case ".yaml", ".yml":
			return nil, []string{user}, nil
		case ".toml":
			return nil, nil, []string{user}
		default:
			return []string{user}, nil, nil
		}
	}

	var dirs []string
	if wd, err := os.Getwd(); err == nil {
		dirs = append(dirs, wd)
	}
	if dir, err := DefaultConfigDir(); err == nil {
		dirs = append(dirs, dir)
	}
	if dir, err := SystemConfigDir(); err == nil && !slices.Contains(dirs, dir) {
		dirs = append(dirs, dir)
	}

	for _, d := range dirs {
		base := filepath.Join(d, baseName)
		jsonPaths = append(jsonPaths, base+".json")
		yamlPaths = append(yamlPaths, base+".yaml", base+".yml")
		tomlPaths = append(tomlPaths, base+".toml")
	}
	return jsonPaths, yamlPaths, tomlPaths
}
