package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/linanwx/chatwidget/widget"
)

func useTempConfigDir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	SetConfigDir(dir)
	t.Cleanup(func() { SetConfigDir("") })
	return dir
}

func TestLoadWithoutFileReturnsDefaults(t *testing.T) {
	useTempConfigDir(t)
	t.Setenv(EnvServerURL, "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Endpoint() != "http://127.0.0.1:8080/chat" {
		t.Fatalf("Endpoint() = %q", cfg.Endpoint())
	}
	if cfg.Widget.Greeting != widget.DefaultGreeting || cfg.Widget.ErrorText != widget.DefaultErrorText {
		t.Fatalf("widget texts = %+v, want defaults", cfg.Widget)
	}
	if cfg.Server.Timeout() != 0 {
		t.Fatalf("Timeout() = %v, want 0", cfg.Server.Timeout())
	}
}

func TestSaveAndLoadRoundTrip(t *testing.T) {
	dir := useTempConfigDir(t)
	t.Setenv(EnvServerURL, "")

	cfg := DefaultConfig()
	cfg.Server.URL = "https://example.com/"
	cfg.Server.TimeoutSeconds = 15
	cfg.Widget.Greeting = "Ask me about the docs"
	cfg.Widget.SingleFlight = true
	if err := cfg.Save(); err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "config.yaml")); err != nil {
		t.Fatalf("config file missing: %v", err)
	}

	got, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if got.Server.URL != "https://example.com" {
		t.Fatalf("Server.URL = %q, want trailing slash trimmed", got.Server.URL)
	}
	if got.Server.Timeout() != 15*time.Second {
		t.Fatalf("Timeout() = %v, want 15s", got.Server.Timeout())
	}
	if got.Widget.Greeting != "Ask me about the docs" || !got.Widget.SingleFlight {
		t.Fatalf("Widget = %+v", got.Widget)
	}
}

func TestEnvOverridesServerURL(t *testing.T) {
	useTempConfigDir(t)
	t.Setenv(EnvServerURL, "http://10.0.0.5:9000/")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Endpoint() != "http://10.0.0.5:9000/chat" {
		t.Fatalf("Endpoint() = %q", cfg.Endpoint())
	}
}

func TestLoadFileFillsPartialConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	data := []byte("server:\n  url: http://localhost:3000\n  path: api/chat\nlogging:\n  level: debug\n")
	if err := os.WriteFile(path, data, 0600); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile() error = %v", err)
	}
	if cfg.Endpoint() != "http://localhost:3000/api/chat" {
		t.Fatalf("Endpoint() = %q", cfg.Endpoint())
	}
	if cfg.Widget.Prompt != defaultPrompt {
		t.Fatalf("Widget.Prompt = %q, want default", cfg.Widget.Prompt)
	}
	lc := cfg.BuildLoggerConfig()
	if !lc.Enabled || lc.Level != "debug" {
		t.Fatalf("BuildLoggerConfig() = %+v", lc)
	}
}

func TestLoadFileRejectsBadYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("server: [unterminated"), 0600); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadFile(path); err == nil {
		t.Fatal("LoadFile() error = nil, want parse error")
	}
}

func TestLoggingDisabledSurvivesDefaults(t *testing.T) {
	off := false
	cfg := &Config{Logging: LoggingConfig{Enabled: &off}}
	cfg.applyDefaults()
	if cfg.BuildLoggerConfig().Enabled {
		t.Fatal("logging re-enabled by defaults")
	}
}
