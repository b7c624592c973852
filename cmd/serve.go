package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/linanwx/chatwidget/config"
	"github.com/linanwx/chatwidget/devserver"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run a local echo /chat endpoint",
	Long: `Run a development server that answers POST /chat with an echo of the
message, so the chat panel can be tried without a real backend.

Examples:
  chatwidget serve
  chatwidget serve --listen 127.0.0.1:9000`,
	RunE: runServe,
}

var listenFlag string

func init() {
	serveCmd.Flags().StringVar(&listenFlag, "listen", "", "Listen address (overrides server.listen)")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	addr := cfg.Server.Listen
	if cmd.Flags().Changed("listen") {
		addr = strings.TrimSpace(listenFlag)
	}

	ctx, cancel := signalContext()
	defer cancel()

	fmt.Fprintf(cmd.OutOrStdout(), "Serving %s on http://%s. Press Ctrl+C to stop.\n", cfg.Server.Path, addr)
	return devserver.ListenAndServe(ctx, addr, cfg.Server.Path, devserver.Echo)
}
