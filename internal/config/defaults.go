package config

import (
	"os"
	"path/filepath"
)

const (
	// Service defaults
	DefaultServerURL = "http://127.0.0.1:5000"

	// Install modes
	ModeStream   = "stream"
	ModeBlocking = "blocking"

	// Request handling
	DefaultRequestTimeoutSecs = 30
	// Blocking installs can legitimately take many minutes; the server
	// itself enforces a 900s ceiling on the agent side.
	DefaultInstallTimeoutSecs = 900

	// Client-side caps
	DefaultLogCap       = 12000
	DefaultHistoryDepth = 6
)

// DefaultConfigPath returns the per-user config file location.
func DefaultConfigPath() string {
	if dir, err := os.UserConfigDir(); err == nil {
		return filepath.Join(dir, "storefront", "config.yml")
	}
	return filepath.Join(".", "storefront.yml")
}
