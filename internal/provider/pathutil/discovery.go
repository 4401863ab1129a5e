// Package pathutil discovers manifest files in the user's configuration directories.
package pathutil

import (
	"os"
	"path/filepath"

	"github.com/felixgeelhaar/axsetup/internal/ports"
)

// ConfigFinder provides methods for discovering configuration file locations.
type ConfigFinder struct {
	homeDir string
}

// NewConfigFinder creates a ConfigFinder for the current user.
func NewConfigFinder() *ConfigFinder {
	home, _ := os.UserHomeDir()
	return &ConfigFinder{homeDir: home}
}

// NewConfigFinderWithHome creates a ConfigFinder with a custom home directory (for testing).
func NewConfigFinderWithHome(home string) *ConfigFinder {
	return &ConfigFinder{homeDir: home}
}

// ConfigSearchOpts defines options for config file discovery.
type ConfigSearchOpts struct {
	// EnvVar names an environment variable holding an explicit file path.
	EnvVar string

	// XDGSubpaths are paths relative to XDG_CONFIG_HOME, in priority order.
	XDGSubpaths []string

	// LegacyPaths are checked last (supports ~ expansion).
	LegacyPaths []string
}

// FindConfig returns the first candidate that exists as a regular file, or
// "" when none does. An explicit EnvVar path is returned even when missing
// so the caller reports it instead of silently falling back.
func (f *ConfigFinder) FindConfig(opts ConfigSearchOpts) string {
	if opts.EnvVar != "" {
		if envPath := os.Getenv(opts.EnvVar); envPath != "" {
			return f.expandPath(envPath)
		}
	}
	for _, path := range f.GetCandidatePaths(opts) {
		if fileExists(path) {
			return path
		}
	}
	return ""
}

// GetCandidatePaths returns the XDG and legacy candidates in priority order
// without checking whether they exist.
func (f *ConfigFinder) GetCandidatePaths(opts ConfigSearchOpts) []string {
	paths := make([]string, 0, len(opts.XDGSubpaths)+len(opts.LegacyPaths))

	xdgConfig := os.Getenv("XDG_CONFIG_HOME")
	if xdgConfig == "" {
		xdgConfig = filepath.Join(f.homeDir, ".config")
	}
	for _, sub := range opts.XDGSubpaths {
		paths = append(paths, filepath.Join(xdgConfig, sub))
	}

	for _, p := range opts.LegacyPaths {
		paths = append(paths, f.expandPath(p))
	}
	return paths
}

// expandPath expands a leading ~ and environment variables.
func (f *ConfigFinder) expandPath(path string) string {
	return os.ExpandEnv(ports.ExpandHome(path, f.homeDir))
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return !info.IsDir()
}
