// Package cmd implements the chatwidget command line.
package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/linanwx/chatwidget/config"
	"github.com/linanwx/chatwidget/logger"
)

var configDirFlag string

var rootCmd = &cobra.Command{
	Use:   "chatwidget",
	Short: "A terminal chat widget for a /chat reply endpoint",
	Long: `chatwidget shows a chat panel in the terminal. Each message you send is
posted to the configured server as {"message": "..."} and the server's
{"reply": "..."} is appended to the conversation.

Running chatwidget without a subcommand starts the chat panel.`,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
	RunE:              runChat,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configDirFlag, "config-dir", "", "Config directory (default ~/.chatwidget)")
	registerChatFlags(rootCmd)
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// setup applies --config-dir and points the logger at the configured sinks.
func setup(_ *cobra.Command, _ []string) error {
	if configDirFlag != "" {
		config.SetConfigDir(configDirFlag)
	}
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	dir, _ := config.ConfigDir()
	if err := logger.Init(cfg.BuildLoggerConfig(), dir); err != nil {
		fmt.Fprintln(os.Stderr, "logger init error:", err)
	}
	return nil
}

// signalContext is cancelled on SIGINT or SIGTERM.
func signalContext() (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(context.Background())
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		defer signal.Stop(sigChan)
		select {
		case <-sigChan:
			logger.Info("shutdown signal received")
			cancel()
		case <-ctx.Done():
		}
	}()
	return ctx, cancel
}
