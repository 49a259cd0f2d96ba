// Package app provides the command tree of the clinic directory binary.
package app

import (
	"fmt"

	"clinic-directory/config"
	"clinic-directory/internal/client"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:               "clinic-directory",
	DisableAutoGenTag: true,
	Short:             "Clinic directory server and terminal client",
	Long: `clinic-directory serves the clinic directory HTTP API and provides terminal
commands to browse, list and register clinics through that API.`,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, _ []string) error {
		// If no subcommand is provided, print help
		return cmd.Help()
	},
}

// NewRootCmd creates the root command with every subcommand attached.
func NewRootCmd() *cobra.Command {
	rootCmd.PersistentFlags().String("api-url", "", "Base URL of the clinic directory API (overrides API_BASE_URL)")

	// Add subcommands
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(browseCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(addCmd)
	rootCmd.AddCommand(migrateCmd)

	return rootCmd
}

// newAPIClient builds the API client from config, honoring --api-url.
func newAPIClient(cmd *cobra.Command) (*client.HTTPClient, *config.Config, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load config: %w", err)
	}

	baseURL := cfg.Client.BaseURL
	if flag := cmd.Flags().Lookup("api-url"); flag != nil && flag.Value.String() != "" {
		baseURL = flag.Value.String()
	}
	return client.NewClient(baseURL, cfg.Client.Timeout), cfg, nil
}

// confirm asks a yes/no question on stdin.
func confirm(cmd *cobra.Command, question string) (bool, error) {
	fmt.Fprintf(cmd.OutOrStdout(), "%s (yes/no): ", question)
	var response string
	if _, err := fmt.Fscanln(cmd.InOrStdin(), &response); err != nil {
		return false, fmt.Errorf("failed to read user input: %w", err)
	}
	return response == "yes" || response == "y", nil
}
