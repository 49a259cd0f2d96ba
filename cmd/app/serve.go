package app

import (
	"fmt"

	"clinic-directory/cmd/bootstrap"

	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the clinic directory API server",
	Long: `Connect to PostgreSQL and Redis, warm the clinic cache and serve the HTTP API
until SIGINT or SIGTERM.`,
	RunE: runServe,
}

func runServe(cmd *cobra.Command, _ []string) error {
	app, err := bootstrap.New(cmd.Context())
	if err != nil {
		return fmt.Errorf("failed to initialize application: %w", err)
	}
	return app.Run()
}
