package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/yigit/dormitory/internal/app/services"
	"github.com/yigit/dormitory/internal/bootstrap"
)

func newWhoamiCommand(configPath *string) *cobra.Command {
	var username, password string

	cmd := &cobra.Command{
		Use:   "whoami",
		Short: "Authenticate and print the modules the account may open",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, *configPath, func(deps *bootstrap.Dependencies) error {
				identity, err := deps.Services.Auth.Authenticate(cmd.Context(), username, password)
				if err != nil {
					return err
				}

				described := services.DescribeIdentity(identity)
				modules := make([]string, len(described.Modules))
				for i, m := range described.Modules {
					modules[i] = string(m)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s (%s)\nmodules: %s\n",
					described.Username, described.Role, strings.Join(modules, ", "))
				return nil
			})
		},
	}
	cmd.Flags().StringVarP(&username, "username", "u", "", "login name")
	cmd.Flags().StringVarP(&password, "password", "p", "", "password")
	_ = cmd.MarkFlagRequired("username")
	_ = cmd.MarkFlagRequired("password")
	return cmd
}
