package domain

import "time"

// Role enumerates directory member roles.
type Role string

const (
	RoleAdmin   Role = "Admin"
	RoleRegular Role = "Regular"
)

// Valid reports whether the role is one of the known values.
func (r Role) Valid() bool {
	return r == RoleAdmin || r == RoleRegular
}

// Member models one person in the team directory. Email doubles as the
// login identifier; email and phone are unique across the directory.
type Member struct {
	ID           string
	FirstName    string
	LastName     string
	Email        string
	Phone        string
	PasswordHash string
	Role         Role
	IsSuperuser  bool
	IsStaff      bool
	IsActive     bool
	DateJoined   time.Time
}

// IsAdmin reports whether the member holds the Admin role. Only admins
// may delete other members; the bootstrap flags do not grant this.
func (m *Member) IsAdmin() bool {
	return m.Role == RoleAdmin
}
