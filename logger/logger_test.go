package logger

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestInterceptCapturesOutput(t *testing.T) {
	if err := Init(Config{Enabled: true, Level: "debug", Stdout: true}, ""); err != nil {
		t.Fatalf("Init() error = %v", err)
	}
	t.Cleanup(func() {
		Restore()
		_ = Init(Config{}, "")
	})

	var buf bytes.Buffer
	Intercept(&buf)
	Debug("request sent", "seq", 7)

	out := buf.String()
	if !strings.Contains(out, "request sent") || !strings.Contains(out, "seq=7") {
		t.Fatalf("intercepted output = %q, want message and attrs", out)
	}
}

func TestLevelFiltersBelowThreshold(t *testing.T) {
	if err := Init(Config{Enabled: true, Level: "warn"}, ""); err != nil {
		t.Fatalf("Init() error = %v", err)
	}
	t.Cleanup(func() {
		Restore()
		_ = Init(Config{}, "")
	})

	var buf bytes.Buffer
	Intercept(&buf)
	Info("hidden")
	Warn("shown")

	if strings.Contains(buf.String(), "hidden") {
		t.Fatalf("info line leaked through warn level: %q", buf.String())
	}
	if !strings.Contains(buf.String(), "shown") {
		t.Fatalf("warn line missing: %q", buf.String())
	}
}

func TestDisabledDropsEverything(t *testing.T) {
	if err := Init(Config{Enabled: false}, ""); err != nil {
		t.Fatalf("Init() error = %v", err)
	}
	var buf bytes.Buffer
	Intercept(&buf)
	t.Cleanup(Restore)

	Error("nope")
	if buf.Len() != 0 {
		t.Fatalf("disabled logger wrote %q", buf.String())
	}
}

func TestInitWritesRelativeFileUnderBaseDir(t *testing.T) {
	dir := t.TempDir()
	if err := Init(Config{Enabled: true, Level: "info", File: "logs/widget.log"}, dir); err != nil {
		t.Fatalf("Init() error = %v", err)
	}
	Info("to file")
	if err := Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}
	t.Cleanup(func() { _ = Init(Config{}, "") })

	data, err := os.ReadFile(filepath.Join(dir, "logs", "widget.log"))
	if err != nil {
		t.Fatalf("read log file: %v", err)
	}
	if !strings.Contains(string(data), "to file") {
		t.Fatalf("log file = %q, want entry", data)
	}
}

func TestParseLevel(t *testing.T) {
	tests := map[string]slog.Level{
		"debug":   slog.LevelDebug,
		"WARNING": slog.LevelWarn,
		" error ": slog.LevelError,
		"":        slog.LevelInfo,
		"verbose": slog.LevelInfo,
	}
	for in, want := range tests {
		if got := ParseLevel(in); got != want {
			t.Fatalf("ParseLevel(%q) = %v, want %v", in, got, want)
		}
	}
}
