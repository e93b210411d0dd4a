package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Saianuradha/CoordinatePointsTool/config"
	"github.com/Saianuradha/CoordinatePointsTool/pkg/logger"
)

// ExitError carries a process exit code out of a command.
type ExitError struct {
	Code int
}

func (e *ExitError) Error() string {
	return fmt.Sprintf("exit status %d", e.Code)
}

var rootCmd = &cobra.Command{
	Use:   "coordtest",
	Short: "End-to-end suite for the coordinate points tool",
	Long: `coordtest runs the Gherkin scenarios under features/ against the coordinate
points tool in a real browser, one isolated browser context per scenario.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	cobra.EnableCommandSorting = false

	rootCmd.AddCommand(NewRunCommand())
	rootCmd.AddCommand(NewProfilesCommand())
	rootCmd.AddCommand(NewScheduleCommand())
	rootCmd.AddCommand(NewVersionCommand())
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

// setup loads the configuration and prepares the process logger from it.
func setup() (*config.Config, *logger.Logger, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	log := logger.New()
	if cfg.Debug {
		log.EnableDebug()
	}
	log.AttachFile(logger.FileOptions{
		Path:       cfg.Log.File,
		MaxSizeMB:  cfg.Log.MaxSizeMB,
		MaxBackups: cfg.Log.MaxBackups,
		MaxAgeDays: cfg.Log.MaxAgeDays,
	})
	return cfg, log, nil
}
