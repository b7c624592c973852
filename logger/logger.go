// Package logger wraps log/slog with process-wide sinks that the terminal UI
// can take over while it owns the screen.
package logger

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

// Config describes logger settings.
type Config struct {
	Enabled bool
	Level   string
	Stdout  bool
	File    string
}

var (
	mu   sync.RWMutex
	base = slog.New(slog.NewTextHandler(io.Discard, nil))
	on   bool

	cfg       Config
	logFile   *os.File
	intercept io.Writer // set while the UI owns stdout
)

// Init configures the sinks. Relative file paths resolve against baseDir.
func Init(c Config, baseDir string) error {
	mu.Lock()
	defer mu.Unlock()

	cfg = c
	if logFile != nil {
		_ = logFile.Close()
		logFile = nil
	}
	if !c.Enabled {
		on = false
		base = slog.New(slog.NewTextHandler(io.Discard, nil))
		return nil
	}

	var openErr error
	if c.File != "" {
		path := resolvePath(c.File, baseDir)
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			return fmt.Errorf("logger: create log dir: %w", err)
		}
		f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
		if err != nil {
			openErr = fmt.Errorf("logger: open log file: %w", err)
		} else {
			logFile = f
		}
	}

	rebuild()
	return openErr
}

// Intercept sends what would go to stdout to w instead. File output is kept.
func Intercept(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	intercept = w
	if on {
		rebuild()
	}
}

// Restore undoes Intercept.
func Restore() {
	mu.Lock()
	defer mu.Unlock()
	intercept = nil
	if on {
		rebuild()
	}
}

// Close releases the log file, if any.
func Close() error {
	mu.Lock()
	defer mu.Unlock()
	if logFile == nil {
		return nil
	}
	err := logFile.Close()
	logFile = nil
	rebuild()
	return err
}

// must hold mu
func rebuild() {
	var sinks []io.Writer
	switch {
	case intercept != nil:
		sinks = append(sinks, intercept)
	case cfg.Stdout:
		sinks = append(sinks, os.Stdout)
	}
	if logFile != nil {
		sinks = append(sinks, logFile)
	}
	if len(sinks) == 0 {
		sinks = append(sinks, os.Stderr)
	}

	opts := &slog.HandlerOptions{Level: ParseLevel(cfg.Level)}
	base = slog.New(slog.NewTextHandler(io.MultiWriter(sinks...), opts))
	on = true
}

func Debug(msg string, args ...any) { emit(slog.LevelDebug, msg, args...) }

func Info(msg string, args ...any) { emit(slog.LevelInfo, msg, args...) }

func Warn(msg string, args ...any) { emit(slog.LevelWarn, msg, args...) }

func Error(msg string, args ...any) { emit(slog.LevelError, msg, args...) }

func emit(level slog.Level, msg string, args ...any) {
	mu.RLock()
	l, enabled := base, on
	mu.RUnlock()
	if !enabled {
		return
	}
	l.Log(context.Background(), level, msg, args...)
}

// ParseLevel maps a config string to a slog level, defaulting to info.
func ParseLevel(level string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func resolvePath(path, baseDir string) string {
	if strings.HasPrefix(path, "~") {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, path[1:])
		}
	}
	if filepath.IsAbs(path) || baseDir == "" {
		return path
	}
	return filepath.Join(baseDir, path)
}
