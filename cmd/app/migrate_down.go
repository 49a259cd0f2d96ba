package app

import (
	"fmt"

	"clinic-directory/config"
	"clinic-directory/internal/infrastructure/database"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var migrateDownCmd = &cobra.Command{
	Use:   "down",
	Short: "Revert database migrations",
	Long: `Revert database migrations. Without --num-steps every migration is reverted
and all clinic data is lost.`,
	RunE: runMigrateDown,
}

func runMigrateDown(cmd *cobra.Command, _ []string) error {
	yes, err := cmd.Flags().GetBool("yes")
	if err != nil {
		return fmt.Errorf("failed to get yes flag: %w", err)
	}
	steps, err := cmd.Flags().GetInt("num-steps")
	if err != nil {
		return fmt.Errorf("failed to get num-steps flag: %w", err)
	}
	if steps < 0 {
		return fmt.Errorf("num-steps must not be negative")
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	if !yes {
		what := "ALL migrations"
		if steps > 0 {
			what = fmt.Sprintf("%d migration(s)", steps)
		}
		logrus.Warnf("About to revert %s on database: %s@%s:%s/%s", what, cfg.DB.User, cfg.DB.Host, cfg.DB.Port, cfg.DB.Name)
		ok, err := confirm(cmd, "This may delete data. Continue?")
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

	logrus.Info("Reverting database migrations...")
	if err := database.MigrateDown(m, steps); err != nil {
		return fmt.Errorf("failed to revert migrations: %w", err)
	}

	logVersion(m)
	return nil
}
