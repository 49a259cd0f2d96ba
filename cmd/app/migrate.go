package app

import "github.com/spf13/cobra"

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Manage database schema migrations",
	Long:  `Apply or revert the embedded PostgreSQL schema migrations.`,
}

func init() {
	migrateCmd.PersistentFlags().BoolP("yes", "y", false, "Skip the confirmation prompt")
	migrateDownCmd.Flags().IntP("num-steps", "n", 0, "Number of migrations to revert (0 reverts all)")

	migrateCmd.AddCommand(migrateUpCmd)
	migrateCmd.AddCommand(migrateDownCmd)
}
