// Package config handles configuration loading and saving.
package config

import (
	"strings"
	"time"

	"github.com/linanwx/chatwidget/logger"
)

const (
	configFileName = "config.yaml"
	configDirName  = ".chatwidget"

	// EnvServerURL overrides server.url when set.
	EnvServerURL = "CHATWIDGET_SERVER_URL"
)

var configDirOverride string

// SetConfigDir overrides the config directory for the current process.
// Empty value clears the override.
func SetConfigDir(dir string) {
	configDirOverride = strings.TrimSpace(dir)
}

// Config is the root configuration structure.
type Config struct {
	Server  ServerConfig  `json:"server" yaml:"server"`
	Widget  WidgetConfig  `json:"widget" yaml:"widget"`
	Logging LoggingConfig `json:"logging,omitempty" yaml:"logging,omitempty"`
}

// ServerConfig describes the reply endpoint.
type ServerConfig struct {
	URL            string `json:"url" yaml:"url"`                                           // base URL the widget posts to
	Path           string `json:"path,omitempty" yaml:"path,omitempty"`                     // defaults to /chat
	Listen         string `json:"listen,omitempty" yaml:"listen,omitempty"`                 // devserver address
	TimeoutSeconds int    `json:"timeoutSeconds,omitempty" yaml:"timeoutSeconds,omitempty"` // 0 = wait forever
}

// WidgetConfig tunes the chat widget.
type WidgetConfig struct {
	Greeting     string `json:"greeting,omitempty" yaml:"greeting,omitempty"`
	ErrorText    string `json:"errorText,omitempty" yaml:"errorText,omitempty"`
	Prompt       string `json:"prompt,omitempty" yaml:"prompt,omitempty"`
	SingleFlight bool   `json:"singleFlight,omitempty" yaml:"singleFlight,omitempty"` // refuse sends while one is in flight
	ShowLogs     bool   `json:"showLogs,omitempty" yaml:"showLogs,omitempty"`         // start with the log pane visible
}

// LoggingConfig contains logging configuration.
type LoggingConfig struct {
	Enabled *bool  `json:"enabled,omitempty" yaml:"enabled,omitempty"`
	Level   string `json:"level,omitempty" yaml:"level,omitempty"`   // debug, info, warn, error
	Stdout  bool   `json:"stdout,omitempty" yaml:"stdout,omitempty"` // log to stdout
	File    string `json:"file,omitempty" yaml:"file,omitempty"`     // log file path
}

// Timeout returns the request timeout; zero means none.
func (s ServerConfig) Timeout() time.Duration {
	if s.TimeoutSeconds <= 0 {
		return 0
	}
	return time.Duration(s.TimeoutSeconds) * time.Second
}

// BuildLoggerConfig converts the logging section for logger.Init.
func (c *Config) BuildLoggerConfig() logger.Config {
	enabled := true
	if c.Logging.Enabled != nil {
		enabled = *c.Logging.Enabled
	}
	return logger.Config{
		Enabled: enabled,
		Level:   c.Logging.Level,
		Stdout:  c.Logging.Stdout,
		File:    c.Logging.File,
	}
}
