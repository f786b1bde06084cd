package httpapi

import (
	"strings"
	"time"

	"github.com/adaotilia/Employee-Attendance-Api-Finale/internal/domain"
	"github.com/adaotilia/Employee-Attendance-Api-Finale/internal/service"
)

// DateLayout formats the calendar day of a session.
const DateLayout = "2006-01-02"

type credentialsRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type authResponse struct {
	Token      string    `json:"token"`
	ExpiresAt  time.Time `json:"expiresAt"`
	EmployeeID int64     `json:"employeeId"`
	Name       string    `json:"name"`
	IsAdmin    bool      `json:"isAdmin"`
	Message    string    `json:"message,omitempty"`
}

type sessionResponse struct {
	ID         int64      `json:"id"`
	EmployeeID int64      `json:"employeeId"`
	CheckIn    time.Time  `json:"checkIn"`
	CheckOut   *time.Time `json:"checkOut"`
}

func newSessionResponse(s *domain.WorkSession) sessionResponse {
	return sessionResponse{ID: s.ID, EmployeeID: s.EmployeeID, CheckIn: s.CheckIn, CheckOut: s.CheckOut}
}

type currentSessionResponse struct {
	ID         int64      `json:"id"`
	CheckIn    time.Time  `json:"checkIn"`
	CheckOut   *time.Time `json:"checkOut"`
	WorkedTime string     `json:"workedTime"`
}

type monthlyEntryResponse struct {
	Date       string     `json:"date"`
	CheckIn    time.Time  `json:"checkIn"`
	CheckOut   *time.Time `json:"checkOut"`
	WorkedTime string     `json:"workedTime"`
}

type dailyStatResponse struct {
	Date          string     `json:"date"`
	CheckIn       time.Time  `json:"checkIn"`
	CheckOut      *time.Time `json:"checkOut"`
	WorkedMinutes int        `json:"workedMinutes"`
}

type monthlyReportResponse struct {
	EmployeeID         int64               `json:"employeeId"`
	EmployeeName       string              `json:"employeeName"`
	Year               int                 `json:"year"`
	Month              int                 `json:"month"`
	TotalWorkedMinutes int                 `json:"totalWorkedMinutes"`
	DailyStats         []dailyStatResponse `json:"dailyStats"`
}

func newMonthlyReportResponse(r *domain.MonthlyReport) monthlyReportResponse {
	stats := make([]dailyStatResponse, 0, len(r.DailyStats))
	for _, d := range r.DailyStats {
		stats = append(stats, dailyStatResponse{
			Date:          d.Date.Format(DateLayout),
			CheckIn:       d.CheckIn,
			CheckOut:      d.CheckOut,
			WorkedMinutes: d.WorkedMinutes,
		})
	}
	return monthlyReportResponse{
		EmployeeID:         r.EmployeeID,
		EmployeeName:       r.EmployeeName,
		Year:               r.Year,
		Month:              r.Month,
		TotalWorkedMinutes: r.TotalWorkedMinutes,
		DailyStats:         stats,
	}
}

type createEmployeeRequest struct {
	Name     string `json:"name"`
	Username string `json:"username"`
	Password string `json:"password"`
	IsAdmin  bool   `json:"isAdmin"`
}

type updateEmployeeRequest struct {
	Name     string `json:"name"`
	Username string `json:"username"`
	IsAdmin  bool   `json:"isAdmin"`
}

type changePasswordRequest struct {
	NewPassword string `json:"newPassword"`
}

type workHoursRequest struct {
	EmployeeID int64   `json:"employeeId"`
	CheckIn    string  `json:"checkIn"`
	CheckOut   *string `json:"checkOut"`
}

// employeeResponse never carries the password hash.
type employeeResponse struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Username  string    `json:"username"`
	IsAdmin   bool      `json:"isAdmin"`
	CreatedAt time.Time `json:"createdAt"`
}

func newEmployeeResponse(e *domain.Employee) employeeResponse {
	return employeeResponse{ID: e.ID, Name: e.Name, Username: e.Username, IsAdmin: e.IsAdmin, CreatedAt: e.CreatedAt}
}

var clientTimeLayouts = []string{
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
}

// parseClientTime accepts RFC 3339 timestamps and offset-less local
// timestamps.
func parseClientTime(field, v string) (time.Time, error) {
	v = strings.TrimSpace(v)
	if v == "" {
		return time.Time{}, domain.ValidationError("%s is required", field)
	}
	if t, err := time.Parse(time.RFC3339Nano, v); err == nil {
		return t.Local(), nil
	}
	for _, layout := range clientTimeLayouts {
		if t, err := time.ParseInLocation(layout, v, time.Local); err == nil {
			return t, nil
		}
	}
	return time.Time{}, domain.ValidationError("%s %q is not a valid timestamp", field, v)
}

func (r workHoursRequest) toInput() (service.WorkHoursInput, error) {
	in := service.WorkHoursInput{EmployeeID: r.EmployeeID}
	checkIn, err := parseClientTime("checkIn", r.CheckIn)
	if err != nil {
		return in, err
	}
	in.CheckIn = checkIn
	if r.CheckOut != nil && strings.TrimSpace(*r.CheckOut) != "" {
		out, err := parseClientTime("checkOut", *r.CheckOut)
		if err != nil {
			return in, err
		}
		in.CheckOut = &out
	}
	return in, nil
}
