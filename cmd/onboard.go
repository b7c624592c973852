package cmd

import (
	"fmt"
	"net/url"
	"os"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"

	"github.com/linanwx/chatwidget/config"
)

var onboardCmd = &cobra.Command{
	Use:   "onboard",
	Short: "Create the chatwidget configuration",
	Long:  `Ask for the server URL and widget texts and write config.yaml.`,
	RunE:  runOnboard,
}

func init() {
	rootCmd.AddCommand(onboardCmd)
}

func runOnboard(_ *cobra.Command, _ []string) error {
	configPath, err := config.ConfigPath()
	if err != nil {
		return err
	}
	if _, err := os.Stat(configPath); err == nil {
		fmt.Println("Config already exists at:", configPath)
		fmt.Println("To reconfigure, edit the file directly or delete it first.")
		return nil
	}

	cfg := config.DefaultConfig()
	var (
		serverURL    = cfg.Server.URL
		greeting     = cfg.Widget.Greeting
		errorText    = cfg.Widget.ErrorText
		singleFlight = cfg.Widget.SingleFlight
	)

	err = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Server URL").
				Description("Base URL of the server that answers POST "+cfg.Server.Path+".").
				Validate(validateServerURL).
				Value(&serverURL),
		),
		huh.NewGroup(
			huh.NewInput().
				Title("Greeting").
				Description("First bot message shown when the panel opens.").
				Value(&greeting),
			huh.NewInput().
				Title("Error text").
				Description("Shown in place of a reply when the server cannot be reached.").
				Value(&errorText),
			huh.NewConfirm().
				Title("Wait for each reply before allowing the next send?").
				Description("Off lets several messages be in flight; replies appear as they arrive.").
				Value(&singleFlight),
		),
	).Run()
	if err != nil {
		return err
	}

	cfg.Server.URL = strings.TrimRight(strings.TrimSpace(serverURL), "/")
	cfg.Widget.Greeting = strings.TrimSpace(greeting)
	cfg.Widget.ErrorText = strings.TrimSpace(errorText)
	cfg.Widget.SingleFlight = singleFlight
	if err := cfg.Save(); err != nil {
		return fmt.Errorf("failed to save config: %w", err)
	}

	fmt.Println()
	fmt.Println("chatwidget configured.")
	fmt.Println()
	fmt.Println("  Config:", configPath)
	fmt.Println("  Endpoint:", cfg.Endpoint())
	fmt.Println()
	fmt.Println("Run 'chatwidget' to open the chat panel.")
	return nil
}

func validateServerURL(s string) error {
	s = strings.TrimSpace(s)
	if s == "" {
		return fmt.Errorf("server URL is required")
	}
	u, err := url.Parse(s)
	if err != nil {
		return fmt.Errorf("invalid URL: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("URL must start with http:// or https://")
	}
	if u.Host == "" {
		return fmt.Errorf("URL must include a host")
	}
	return nil
}
