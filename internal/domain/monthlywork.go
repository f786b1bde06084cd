package domain

import "time"

// MonthlyWork is the running total of worked minutes for one employee in
// one calendar month. Month is always the first day of that month.
type MonthlyWork struct {
	ID            int64
	EmployeeID    int64
	Month         time.Time
	WorkedMinutes int
}

// MonthStart returns midnight on the first day of t's month, in t's location.
func MonthStart(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
}

// MonthRange returns the half-open interval [start, end) covering the month.
func MonthRange(year int, month time.Month, loc *time.Location) (time.Time, time.Time) {
	start := time.Date(year, month, 1, 0, 0, 0, 0, loc)
	return start, start.AddDate(0, 1, 0)
}

// ValidateYearMonth checks a caller-supplied year and month.
func ValidateYearMonth(year, month int) error {
	if month < 1 || month > 12 {
		return ValidationError("month %d is out of range 1-12", month)
	}
	if year < 1 || year > 9999 {
		return ValidationError("year %d is out of range", year)
	}
	return nil
}

// DailyStat is one raw session inside a monthly report. WorkedMinutes is
// computed from the session itself, independently of the monthly total.
type DailyStat struct {
	Date          time.Time
	CheckIn       time.Time
	CheckOut      *time.Time
	WorkedMinutes int
}

type MonthlyReport struct {
	EmployeeID         int64
	EmployeeName       string
	Year               int
	Month              int
	TotalWorkedMinutes int
	DailyStats         []DailyStat
}

// NewDailyStat builds the report row for a raw session.
func NewDailyStat(s WorkSession) DailyStat {
	y, m, d := s.CheckIn.Date()
	return DailyStat{
		Date:          time.Date(y, m, d, 0, 0, 0, 0, s.CheckIn.Location()),
		CheckIn:       s.CheckIn,
		CheckOut:      s.CheckOut,
		WorkedMinutes: s.ClosedMinutes(),
	}
}
