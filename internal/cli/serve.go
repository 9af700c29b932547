package cli

import (
	"github.com/spf13/cobra"

	"github.com/yigit/dormitory/internal/bootstrap"
	"github.com/yigit/dormitory/internal/server"
)

func newServeCommand(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Starts the HTTP API server",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, lgr, err := bootstrap.LoadConfigAndSetupLogger(*configPath)
			if err != nil {
				return err
			}

			srv, err := server.NewServer(cmd.Context(), cfg, lgr)
			if err != nil {
				return err
			}
			return srv.Run()
		},
	}
}
