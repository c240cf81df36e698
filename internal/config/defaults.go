package config

import (
	"os"
	"path/filepath"
	"time"
)

// Default values
const (
	// Server defaults
	DefaultAddr            = ":8080"
	DefaultShutdownTimeout = 10 * time.Second

	// Backend defaults
	DefaultBackendBaseURL = "http://localhost:11434"
	DefaultModel          = "llama3"
	DefaultMaxTokens      = 4096
	DefaultTemperature    = 0.8
	DefaultBackendTimeout = 180 * time.Second

	// Logging defaults
	DefaultLogLevel  = "info"
	DefaultLogFormat = "pretty"
)

// ConfigDir returns the configuration directory
func ConfigDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return filepath.Join(home, ".mirage")
}

// CacheDir returns the default document store directory
func CacheDir() string {
	return filepath.Join(ConfigDir(), "pages")
}
