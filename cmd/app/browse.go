package app

import (
	"fmt"
	"io"
	"os"

	"clinic-directory/internal/directory"
	"clinic-directory/internal/tui"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var browseCmd = &cobra.Command{
	Use:   "browse",
	Short: "Browse clinics interactively",
	Long: `Open the interactive clinic browser. Press 1-6 to filter a column, / to search
and q to quit. Logs go to CLINIC_LOG_FILE when set.`,
	RunE: runBrowse,
}

func runBrowse(cmd *cobra.Command, _ []string) error {
	apiClient, cfg, err := newAPIClient(cmd)
	if err != nil {
		return err
	}

	// Logging to the terminal would corrupt the alt screen
	log := logrus.New()
	log.SetOutput(io.Discard)
	if cfg.Log.File != "" {
		f, err := os.OpenFile(cfg.Log.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return fmt.Errorf("failed to open log file: %w", err)
		}
		defer f.Close()
		log.SetOutput(f)
		log.SetFormatter(&logrus.JSONFormatter{})
	}
	if level, err := logrus.ParseLevel(cfg.Log.Level); err == nil {
		log.SetLevel(level)
	}

	session := directory.NewSession(apiClient, log)
	model := tui.NewModel(cmd.Context(), apiClient, session)

	if _, err := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(cmd.Context())).Run(); err != nil {
		return fmt.Errorf("browser failed: %w", err)
	}
	return nil
}
