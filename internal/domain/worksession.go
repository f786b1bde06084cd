package domain

import (
	"fmt"
	"time"
)

// WorkSession is one check-in/check-out cycle. A nil CheckOut marks the
// session as open.
type WorkSession struct {
	ID         int64
	EmployeeID int64
	CheckIn    time.Time
	CheckOut   *time.Time
}

func (s *WorkSession) IsOpen() bool {
	return s.CheckOut == nil
}

// State reports the tracker state implied by this session.
func (s *WorkSession) State() SessionState {
	if s.IsOpen() {
		return StateSessionOpen
	}
	return StateNoActiveSession
}

// Close stamps the check-out time and returns the minutes worked.
// A session can be closed only once.
func (s *WorkSession) Close(at time.Time) (int, error) {
	if !s.IsOpen() {
		return 0, ErrNoActiveSession
	}
	s.CheckOut = &at
	return WorkedMinutes(s.CheckIn, at), nil
}

// ClosedMinutes returns the worked minutes of a closed session and 0 for an
// open one.
func (s *WorkSession) ClosedMinutes() int {
	if s.CheckOut == nil {
		return 0
	}
	return WorkedMinutes(s.CheckIn, *s.CheckOut)
}

// WorkedTime formats the session length, measuring open sessions up to now.
func (s *WorkSession) WorkedTime(now time.Time) string {
	until := now
	if s.CheckOut != nil {
		until = *s.CheckOut
	}
	return FormatWorkedTime(s.CheckIn, until)
}

// Month returns the first day of the month the session is credited to,
// which is always the check-in month.
func (s *WorkSession) Month() time.Time {
	return MonthStart(s.CheckIn)
}

// WorkedMinutes returns the whole minutes between checkIn and checkOut.
// Partial minutes are truncated: 09:00:00 to 09:01:59 is 1 minute.
func WorkedMinutes(checkIn, checkOut time.Time) int {
	return int(checkOut.Sub(checkIn) / time.Minute)
}

// FormatWorkedTime renders the elapsed time as zero-padded HH:MM. Hours are
// not wrapped at 24. Negative spans render as 00:00.
func FormatWorkedTime(checkIn, until time.Time) string {
	d := until.Sub(checkIn)
	if d < 0 {
		d = 0
	}
	total := int(d / time.Minute)
	return fmt.Sprintf("%02d:%02d", total/60, total%60)
}

// SessionView is a session annotated with its derived display values.
type SessionView struct {
	Session    WorkSession
	Date       time.Time
	WorkedTime string
}

// NewSessionView derives the calendar day and worked time of s at now.
func NewSessionView(s WorkSession, now time.Time) SessionView {
	y, m, d := s.CheckIn.Date()
	return SessionView{
		Session:    s,
		Date:       time.Date(y, m, d, 0, 0, 0, 0, s.CheckIn.Location()),
		WorkedTime: s.WorkedTime(now),
	}
}
