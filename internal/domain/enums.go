package domain

type Role string

const (
	RoleAdmin Role = "Admin"
	RoleUser  Role = "User"
)

// ValidRoles is the canonical set of role strings carried in bearer tokens.
var ValidRoles = map[string]bool{
	string(RoleAdmin): true,
	string(RoleUser):  true,
}

// SessionState is the check-in state of a single employee.
type SessionState string

const (
	StateNoActiveSession SessionState = "no_active_session"
	StateSessionOpen     SessionState = "session_open"
)
