package cli

import (
	"fmt"
	"strconv"

	"github.com/adaotilia/Employee-Attendance-Api-Finale/internal/cli/formatter"
	"github.com/adaotilia/Employee-Attendance-Api-Finale/internal/service"
	"github.com/spf13/cobra"
)

func newReportCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:     "report <employee-id> <year> <month>",
		Short:   "Show an employee's monthly report",
		Example: "  attendance report 2 2025 3",
		Args:    cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			employeeID, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil || employeeID <= 0 {
				return fmt.Errorf("invalid employee id %q", args[0])
			}
			year, err := strconv.Atoi(args[1])
			if err != nil {
				return fmt.Errorf("invalid year %q", args[1])
			}
			month, err := strconv.Atoi(args[2])
			if err != nil {
				return fmt.Errorf("invalid month %q", args[2])
			}

			// The operator has direct database access and reads any report.
			operator := service.Actor{IsAdmin: true}
			report, err := app.Reports.GetMonthlyReport(cmd.Context(), operator, employeeID, year, month)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatMonthlyReport(report))
			return nil
		},
	}
}
