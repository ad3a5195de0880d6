package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/custodia-labs/pdsync/internal/core/domain"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage Pipedrive credentials",
	Long: `View and store the Pipedrive API token and company domain.

Environment variables and .env entries take precedence over stored values.`,
	RunE: runConfigShow,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current settings",
	RunE:  runConfigShow,
}

var configSetKeyCmd = &cobra.Command{
	Use:   "set-key [api-key]",
	Short: "Store the Pipedrive API token",
	Long: `Store the Pipedrive API token in the config file.

When no argument is given the token is read from the terminal without echo.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runConfigSetKey,
}

var configSetDomainCmd = &cobra.Command{
	Use:   "set-domain <company-domain>",
	Short: "Store the Pipedrive company domain",
	Long:  `Store the company domain, either "acme" or "acme.pipedrive.com".`,
	Args:  cobra.ExactArgs(1),
	RunE:  runConfigSetDomain,
}

// readSecret reads a secret from the user. Replaced in tests.
var readSecret = promptSecret

func init() {
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configSetKeyCmd)
	configCmd.AddCommand(configSetDomainCmd)
	rootCmd.AddCommand(configCmd)
}

func runConfigShow(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	settings, err := settingsService.Get()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}

	cmd.Println("Current Settings")
	cmd.Println("================")
	cmd.Println()

	cmd.Println("[Pipedrive]")
	if settings.APIKey != "" {
		cmd.Printf("  API Key: %s\n", maskAPIKey(settings.APIKey))
	} else {
		cmd.Printf("  API Key: (not set, use %s)\n", domain.EnvAPIKey)
	}
	if settings.CompanyDomain != "" {
		cmd.Printf("  Company Domain: %s\n", settings.CompanyDomain)
	} else {
		cmd.Printf("  Company Domain: (not set, use %s)\n", domain.EnvCompanyDomain)
	}
	cmd.Printf("  Timeout: %s\n", settings.Timeout)
	cmd.Printf("  Requests/second: %g\n", settings.RequestsPerSecond)

	status := "configured"
	if !settings.IsConfigured() {
		status = "not configured"
	}
	cmd.Printf("  Status: %s\n", status)
	cmd.Println()
	cmd.Printf("Config file: %s\n", settingsService.ConfigPath())

	return nil
}

func runConfigSetKey(cmd *cobra.Command, args []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	var key string
	if len(args) > 0 {
		key = args[0]
	} else {
		cmd.Print("Pipedrive API token: ")
		key = readSecret(cmd.InOrStdin())
		cmd.Println()
	}

	if err := settingsService.SetAPIKey(key); err != nil {
		return fmt.Errorf("failed to save API key: %w", err)
	}
	cmd.Printf("API key saved (%s)\n", maskAPIKey(strings.TrimSpace(key)))
	return nil
}

func runConfigSetDomain(cmd *cobra.Command, args []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	if err := settingsService.SetCompanyDomain(args[0]); err != nil {
		return fmt.Errorf("failed to save company domain: %w", err)
	}
	cmd.Printf("Company domain set to %s\n", strings.TrimSpace(args[0]))
	return nil
}

// promptSecret reads without echo when in is a terminal.
func promptSecret(in io.Reader) string {
	if f, ok := in.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		secret, err := term.ReadPassword(int(f.Fd()))
		if err == nil {
			return strings.TrimSpace(string(secret))
		}
	}
	// Fallback to regular input
	reader := bufio.NewReader(in)
	input, _ := reader.ReadString('\n')
	return strings.TrimSpace(input)
}

func maskAPIKey(key string) string {
	if len(key) <= 8 {
		return "****"
	}
	return key[:4] + "..." + key[len(key)-4:]
}
