package cli

import (
	"github.com/spf13/cobra"

	"github.com/yigit/dormitory/internal/bootstrap"
)

func newMigrateCommand(configPath *string) *cobra.Command {
	migrateCmd := &cobra.Command{
		Use:   "migrate",
		Short: "Run database migrations",
	}

	migrateCmd.AddCommand(&cobra.Command{
		Use:   "up",
		Short: "Apply all up migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, lgr, err := loadConfig(cmd, *configPath)
			if err != nil {
				return err
			}
			return bootstrap.Migrate(cfg, lgr)
		},
	})
	return migrateCmd
}
