package app

import (
	"fmt"

	"clinic-directory/config"
	"clinic-directory/internal/infrastructure/database"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var migrateUpCmd = &cobra.Command{
	Use:   "up",
	Short: "Apply pending database migrations",
	Long: `Apply all pending database migrations to bring the schema up to date.
Connection parameters come from the DB_* environment variables.`,
	RunE: runMigrateUp,
}

func runMigrateUp(cmd *cobra.Command, _ []string) error {
	yes, err := cmd.Flags().GetBool("yes")
	if err != nil {
		return fmt.Errorf("failed to get yes flag: %w", err)
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	if !yes {
		logrus.Infof("About to apply migrations to database: %s@%s:%s/%s", cfg.DB.User, cfg.DB.Host, cfg.DB.Port, cfg.DB.Name)
		ok, err := confirm(cmd, "Continue?")
		if err != nil {
			return err
		}
		if !ok {
			logrus.Info("Migration cancelled by user")
			return nil
		}
	}

	m, err := database.NewMigrator(cfg.DB.URL())
	if err != nil {
		return err
	}
	defer closeMigrator(m)

	logrus.Info("Applying database migrations...")
	if err := database.MigrateUp(m); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	logVersion(m)
	return nil
}

func logVersion(m database.Migrator) {
	version, dirty, err := m.Version()
	switch {
	case err != nil:
		logrus.Warnf("Unable to get migration version: %v", err)
	case dirty:
		logrus.Warnf("Database is in a dirty state at version %d", version)
	default:
		logrus.Infof("Current schema version: %d", version)
	}
}

func closeMigrator(m database.Migrator) {
	srcErr, dbErr := m.Close()
	if srcErr != nil {
		logrus.Errorf("Error closing migration source: %v", srcErr)
	}
	if dbErr != nil {
		logrus.Errorf("Error closing database connection: %v", dbErr)
	}
}
