package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/yigit/dormitory/internal/bootstrap"
)

func newDebtorsCommand(configPath *string) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "debtors",
		Short: "Print students whose balance is above zero",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, *configPath, func(deps *bootstrap.Dependencies) error {
				debtors, err := deps.Services.Billing.DebtorsReport(cmd.Context())
				if err != nil {
					return err
				}
				if asJSON {
					return writeJSON(cmd.OutOrStdout(), debtors)
				}

				w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
				fmt.Fprintln(w, "ID\tSTUDENT\tDEBT")
				for _, d := range debtors {
					fmt.Fprintf(w, "%d\t%s\t%.2f\n", d.StudentID, d.StudentName, d.Debt)
				}
				return w.Flush()
			})
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "print JSON instead of a table")
	return cmd
}

func newRoomsCommand(configPath *string) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "rooms",
		Short: "Print every room with its occupancy",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, *configPath, func(deps *bootstrap.Dependencies) error {
				rooms, err := deps.Services.Occupancy.ListRooms(cmd.Context())
				if err != nil {
					return err
				}
				if asJSON {
					return writeJSON(cmd.OutOrStdout(), rooms)
				}

				w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
				fmt.Fprintln(w, "ID\tBUILDING\tFLOOR\tNUMBER\tBEDS\tOCCUPIED\tSTATUS")
				for _, r := range rooms {
					fmt.Fprintf(w, "%d\t%s\t%d\t%s\t%d\t%d\t%s\n",
						r.ID, r.Building, r.Floor, r.RoomNumber, r.TotalBeds, r.Occupied, r.Status)
				}
				return w.Flush()
			})
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "print JSON instead of a table")
	return cmd
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
