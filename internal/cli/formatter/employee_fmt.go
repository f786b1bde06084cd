package formatter

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/adaotilia/Employee-Attendance-Api-Finale/internal/domain"
)

// FormatEmployeeList renders the employee directory.
func FormatEmployeeList(employees []*domain.Employee) string {
	if len(employees) == 0 {
		return Dim("No employees yet. Run `attendance setup-admin` to create the first administrator.") + "\n"
	}

	rows := make([][]string, 0, len(employees))
	admins := 0
	for _, e := range employees {
		if e.IsAdmin {
			admins++
		}
		rows = append(rows, []string{
			strconv.FormatInt(e.ID, 10),
			e.Name,
			e.Username,
			RoleBadge(e.Role()),
			e.CreatedAt.Local().Format("2006-01-02"),
		})
	}

	var b strings.Builder
	b.WriteString(Header("Employees"))
	b.WriteString("\n\n")
	b.WriteString(Table{
		Headers: []string{"ID", "NAME", "USERNAME", "ROLE", "CREATED"},
		Rows:    rows,
		Align:   []Align{AlignRight},
	}.Render())
	b.WriteString("\n")
	b.WriteString(Dim(fmt.Sprintf("%d employees, %d admins", len(employees), admins)))
	b.WriteString("\n")
	return b.String()
}
