// Package config loads and validates the storefront client configuration.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config represents the client configuration written to config.yml.
type Config struct {
	ServerURL          string `yaml:"server_url"`
	Mode               string `yaml:"mode"`
	RequestTimeoutSecs int    `yaml:"request_timeout_secs"`
	InstallTimeoutSecs int    `yaml:"install_timeout_secs"`
	LogCap             int    `yaml:"log_cap"`
	HistoryDepth       int    `yaml:"history_depth"`
}

// Default returns a config populated with the built-in defaults.
func Default() *Config {
	return &Config{
		ServerURL:          DefaultServerURL,
		Mode:               ModeStream,
		RequestTimeoutSecs: DefaultRequestTimeoutSecs,
		InstallTimeoutSecs: DefaultInstallTimeoutSecs,
		LogCap:             DefaultLogCap,
		HistoryDepth:       DefaultHistoryDepth,
	}
}

// Load reads and parses a config file from the given path. A missing file is
// not an error: the defaults are returned so the client works out of the box.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Default(), nil
		}
		return nil, fmt.Errorf("reading config: %w", err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	return cfg, nil
}

// Validate checks that all required fields are present and values are in range.
func (c *Config) Validate() error {
	if c.ServerURL == "" {
		return fmt.Errorf("server_url is required")
	}
	if !strings.HasPrefix(c.ServerURL, "http://") && !strings.HasPrefix(c.ServerURL, "https://") {
		return fmt.Errorf("server_url must be a valid http(s) URL")
	}

	switch c.Mode {
	case ModeStream, ModeBlocking:
		// ok
	default:
		return fmt.Errorf("mode must be %q or %q", ModeStream, ModeBlocking)
	}

	if c.RequestTimeoutSecs < 1 {
		return fmt.Errorf("request_timeout_secs must be >= 1")
	}
	if c.InstallTimeoutSecs < 1 {
		return fmt.Errorf("install_timeout_secs must be >= 1")
	}
	if c.LogCap < 1 {
		return fmt.Errorf("log_cap must be >= 1")
	}
	if c.HistoryDepth < 1 {
		return fmt.Errorf("history_depth must be >= 1")
	}

	return nil
}

// Save writes the config to the given path, creating parent directories as needed.
func (c *Config) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0750); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}

	if err := os.WriteFile(path, data, 0640); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}

	return nil
}
