// Package cli holds the cobra commands of the dormitory binary.
package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/yigit/dormitory/internal/bootstrap"
	"github.com/yigit/dormitory/internal/config"
	"github.com/yigit/dormitory/internal/pkg/logger"
)

// NewRootCommand builds the command tree
func NewRootCommand() *cobra.Command {
	var configPath string

	rootCmd := &cobra.Command{
		Use:           "dormitory",
		Short:         "Dormitory records: students, rooms, stays and billing",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", config.DefaultPath, "path to the YAML config file")

	rootCmd.AddCommand(
		newServeCommand(&configPath),
		newMigrateCommand(&configPath),
		newDebtorsCommand(&configPath),
		newRoomsCommand(&configPath),
		newWhoamiCommand(&configPath),
	)
	return rootCmd
}

// Execute runs the root command and exits non-zero on failure
func Execute() {
	if err := NewRootCommand().ExecuteContext(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

// loadConfig reads the config for one-shot commands; their logs go to stderr
// so stdout carries only the command output.
func loadConfig(cmd *cobra.Command, configPath string) (*config.Config, zerolog.Logger, error) {
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		return nil, zerolog.Logger{}, err
	}
	settings := logger.FromSettings(cfg.Logging.Level, cfg.Logging.Format)
	settings.Output = cmd.ErrOrStderr()
	return cfg, logger.Configure(settings), nil
}

// withApp opens the store, wires every service and hands them to fn
func withApp(cmd *cobra.Command, configPath string, fn func(deps *bootstrap.Dependencies) error) error {
	cfg, lgr, err := loadConfig(cmd, configPath)
	if err != nil {
		return err
	}

	store, err := bootstrap.SetupDatabase(cmd.Context(), cfg, lgr)
	if err != nil {
		return err
	}
	defer store.Close()

	deps, err := bootstrap.BuildDependencies(cmd.Context(), cfg, store, lgr)
	if err != nil {
		return err
	}
	return fn(deps)
}
