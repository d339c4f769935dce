package config

import (
	"path/filepath"

	"github.com/adrg/xdg"
)

// AppName is used for the XDG directory names.
const AppName = "docshell"

// DefaultPath returns the default config file path.
func DefaultPath() string {
	return filepath.Join(xdg.ConfigHome, AppName, "config.toml")
}

// DefaultStatePath returns the default window-state database directory.
func DefaultStatePath() string {
	return filepath.Join(xdg.StateHome, AppName, "state")
}

// DefaultLogPath returns the default log file path.
func DefaultLogPath() string {
	return filepath.Join(xdg.StateHome, AppName, AppName+".log")
}

// DefaultPluginDir returns the directory scanned for Lua scripts.
func DefaultPluginDir() string {
	return filepath.Join(xdg.ConfigHome, AppName, "plugins")
}
