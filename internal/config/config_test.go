package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("ORDERDESK_CONFIG", filepath.Join(t.TempDir(), "missing.toml"))

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Exchange.BaseURL != "http://localhost:8080" {
		t.Fatalf("default base url = %q", cfg.Exchange.BaseURL)
	}
	if cfg.Exchange.Timeout != 15*time.Second {
		t.Fatalf("default timeout = %v", cfg.Exchange.Timeout)
	}
	if cfg.Logging.ConfigPath != filepath.Join("logging", "config.json") {
		t.Fatalf("default logging config path = %q", cfg.Logging.ConfigPath)
	}
	if cfg.Logging.MaxLines != 0 {
		t.Fatalf("default max lines = %d, want unbounded", cfg.Logging.MaxLines)
	}
}

func TestLoadFromFileAndEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	body := `[exchange]
base_url = "http://engine.internal:9000"
timeout = "3s"

[logging]
max_lines = 500
`
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	t.Setenv("ORDERDESK_CONFIG", path)
	t.Setenv("ORDERDESK_UI_LOG_PANE_HEIGHT", "20")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Exchange.BaseURL != "http://engine.internal:9000" {
		t.Fatalf("base url = %q", cfg.Exchange.BaseURL)
	}
	if cfg.Exchange.Timeout != 3*time.Second {
		t.Fatalf("timeout = %v", cfg.Exchange.Timeout)
	}
	if cfg.Logging.MaxLines != 500 {
		t.Fatalf("max lines = %d", cfg.Logging.MaxLines)
	}
	if cfg.UI.LogPaneHeight != 20 {
		t.Fatalf("log pane height = %d", cfg.UI.LogPaneHeight)
	}
}
