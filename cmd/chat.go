package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/linanwx/chatwidget/chatclient"
	"github.com/linanwx/chatwidget/config"
	"github.com/linanwx/chatwidget/tui"
	"github.com/linanwx/chatwidget/widget"
)

var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Open the chat panel",
	Long: `Open the chat panel in the terminal.

Keys:
  enter, ctrl+s   send the current message
  esc             close the panel
  ctrl+o          open the panel
  ctrl+l          show or hide logs
  ctrl+c          quit

Examples:
  chatwidget chat
  chatwidget chat --server http://localhost:8080
  chatwidget chat --single-flight`,
	RunE: runChat,
}

var (
	serverFlag       string
	singleFlightFlag bool
)

func init() {
	registerChatFlags(chatCmd)
	rootCmd.AddCommand(chatCmd)
}

func registerChatFlags(c *cobra.Command) {
	c.Flags().StringVar(&serverFlag, "server", "", "Server base URL (overrides config)")
	c.Flags().BoolVar(&singleFlightFlag, "single-flight", false, "Refuse new sends while a reply is pending")
}

func runChat(cmd *cobra.Command, _ []string) error {
	cfg, err := loadChatConfig(cmd)
	if err != nil {
		return err
	}

	ctx, cancel := signalContext()
	defer cancel()

	app := tui.NewApp(newWidget(cfg), tui.Options{
		Prompt:   cfg.Widget.Prompt,
		ShowLogs: cfg.Widget.ShowLogs,
	})
	if err := tui.Run(ctx, app); err != nil {
		return fmt.Errorf("chat panel: %w", err)
	}
	return nil
}

// loadChatConfig loads config and applies the chat flags of cmd.
func loadChatConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if flags := cmd.Flags(); flags.Lookup("server") != nil && flags.Changed("server") {
		cfg.Server.URL = strings.TrimRight(strings.TrimSpace(serverFlag), "/")
	}
	if flags := cmd.Flags(); flags.Lookup("single-flight") != nil && flags.Changed("single-flight") {
		cfg.Widget.SingleFlight = singleFlightFlag
	}
	if cfg.Server.URL == "" {
		return nil, fmt.Errorf("server URL is empty; set server.url or pass --server")
	}
	return cfg, nil
}

func newWidget(cfg *config.Config) *widget.Widget {
	client := chatclient.New(cfg.Server.URL,
		chatclient.WithPath(cfg.Server.Path),
		chatclient.WithTimeout(cfg.Server.Timeout()),
	)
	return widget.New(client,
		widget.WithGreeting(cfg.Widget.Greeting),
		widget.WithErrorText(cfg.Widget.ErrorText),
		widget.WithSingleFlight(cfg.Widget.SingleFlight),
	)
}
