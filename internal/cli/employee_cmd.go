package cli

import (
	"fmt"

	"github.com/adaotilia/Employee-Attendance-Api-Finale/internal/cli/formatter"
	"github.com/spf13/cobra"
)

func newEmployeeCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "employee",
		Aliases: []string{"employees"},
		Short:   "Inspect employees",
	}
	cmd.AddCommand(newEmployeeListCmd(app))
	return cmd
}

func newEmployeeListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all employees",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			employees, err := app.Employees.List(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatEmployeeList(employees))
			return nil
		},
	}
}
