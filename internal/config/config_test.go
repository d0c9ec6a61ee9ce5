package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yml"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.ServerURL != DefaultServerURL {
		t.Errorf("server_url = %q, want default", cfg.ServerURL)
	}
	if cfg.Mode != ModeStream {
		t.Errorf("mode = %q, want stream default", cfg.Mode)
	}
}

func TestLoadOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yml")
	data := "server_url: http://store.local:5000\nmode: blocking\nlog_cap: 4000\n"
	if err := os.WriteFile(path, []byte(data), 0640); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.ServerURL != "http://store.local:5000" {
		t.Errorf("server_url = %q", cfg.ServerURL)
	}
	if cfg.Mode != ModeBlocking {
		t.Errorf("mode = %q, want blocking", cfg.Mode)
	}
	if cfg.LogCap != 4000 {
		t.Errorf("log_cap = %d, want 4000", cfg.LogCap)
	}
	// Unset fields keep their defaults.
	if cfg.HistoryDepth != DefaultHistoryDepth {
		t.Errorf("history_depth = %d, want default", cfg.HistoryDepth)
	}
}

func TestValidateRejectsBadValues(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*Config)
	}{
		{"empty url", func(c *Config) { c.ServerURL = "" }},
		{"bad scheme", func(c *Config) { c.ServerURL = "ftp://x" }},
		{"bad mode", func(c *Config) { c.Mode = "polling" }},
		{"zero timeout", func(c *Config) { c.RequestTimeoutSecs = 0 }},
		{"zero log cap", func(c *Config) { c.LogCap = 0 }},
		{"zero history depth", func(c *Config) { c.HistoryDepth = 0 }},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := Default()
			tc.mutate(cfg)
			if err := cfg.Validate(); err == nil {
				t.Error("expected validation error")
			}
		})
	}
}

func TestSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yml")
	cfg := Default()
	cfg.ServerURL = "https://store.example.com"

	if err := cfg.Save(path); err != nil {
		t.Fatalf("Save: %v", err)
	}
	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if loaded.ServerURL != cfg.ServerURL {
		t.Errorf("server_url = %q, want %q", loaded.ServerURL, cfg.ServerURL)
	}
}
