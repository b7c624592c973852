package config

import (
	"strings"

	"github.com/linanwx/chatwidget/widget"
)

const (
	defaultServerURL = "http://127.0.0.1:8080"
	defaultPath      = "/chat"
	defaultListen    = "127.0.0.1:8080"
	defaultPrompt    = "> "
)

// DefaultConfig returns a config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			URL:    defaultServerURL,
			Path:   defaultPath,
			Listen: defaultListen,
		},
		Widget: WidgetConfig{
			Greeting:  widget.DefaultGreeting,
			ErrorText: widget.DefaultErrorText,
			Prompt:    defaultPrompt,
		},
		Logging: defaultLoggingConfig(),
	}
}

func defaultLoggingConfig() LoggingConfig {
	enabled := true
	return LoggingConfig{
		Enabled: &enabled,
		Level:   "info",
		File:    "logs/chatwidget.log",
	}
}

func (c *Config) applyDefaults() {
	c.Server.URL = strings.TrimRight(strings.TrimSpace(c.Server.URL), "/")
	if c.Server.URL == "" {
		c.Server.URL = defaultServerURL
	}
	if c.Server.Path == "" {
		c.Server.Path = defaultPath
	}
	if !strings.HasPrefix(c.Server.Path, "/") {
		c.Server.Path = "/" + c.Server.Path
	}
	if c.Server.Listen == "" {
		c.Server.Listen = defaultListen
	}
	if c.Server.TimeoutSeconds < 0 {
		c.Server.TimeoutSeconds = 0
	}

	if strings.TrimSpace(c.Widget.Greeting) == "" {
		c.Widget.Greeting = widget.DefaultGreeting
	}
	if strings.TrimSpace(c.Widget.ErrorText) == "" {
		c.Widget.ErrorText = widget.DefaultErrorText
	}
	if c.Widget.Prompt == "" {
		c.Widget.Prompt = defaultPrompt
	}

	def := defaultLoggingConfig()
	if c.Logging == (LoggingConfig{}) {
		c.Logging = def
		return
	}
	if c.Logging.Level == "" {
		c.Logging.Level = def.Level
	}
	if c.Logging.Enabled == nil {
		c.Logging.Enabled = def.Enabled
	}
}
