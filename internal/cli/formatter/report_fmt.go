package formatter

import (
	"fmt"
	"strings"
	"time"

	"github.com/adaotilia/Employee-Attendance-Api-Finale/internal/domain"
)

// FormatMonthlyReport renders the monthly total followed by one row per
// raw session.
func FormatMonthlyReport(r *domain.MonthlyReport) string {
	title := fmt.Sprintf("%s · %s %d", r.EmployeeName, time.Month(r.Month), r.Year)

	summary := fmt.Sprintf("%s %s\n%s %d",
		Dim("Total worked:"), Bold(FormatMinutes(r.TotalWorkedMinutes)),
		Dim("Sessions:    "), len(r.DailyStats))

	var b strings.Builder
	b.WriteString(RenderBox(title, summary))
	b.WriteString("\n\n")

	if len(r.DailyStats) == 0 {
		b.WriteString(Dim("No sessions recorded this month."))
		b.WriteString("\n")
		return b.String()
	}

	rows := make([][]string, 0, len(r.DailyStats))
	for _, d := range r.DailyStats {
		state := domain.StateNoActiveSession
		if d.CheckOut == nil {
			state = domain.StateSessionOpen
		}
		checkIn := d.CheckIn
		rows = append(rows, []string{
			Day(d.Date),
			Clock(&checkIn),
			Clock(d.CheckOut),
			FormatMinutes(d.WorkedMinutes),
			SessionStatePill(state),
		})
	}
	b.WriteString(Table{
		Headers: []string{"DATE", "IN", "OUT", "WORKED", "STATE"},
		Rows:    rows,
		Align:   []Align{AlignLeft, AlignLeft, AlignLeft, AlignRight},
	}.Render())
	return b.String()
}
