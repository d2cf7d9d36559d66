package domain

import "time"

type Role string

const (
	RoleAdmin     Role = "admin"
	RoleDeveloper Role = "developer"
	RoleAttendant Role = "attendant"
)

// HasPermission reports whether the role satisfies any of the required roles.
// Admin implicitly satisfies every check.
func (r Role) HasPermission(required ...Role) bool {
	if r == RoleAdmin {
		return true
	}

	for _, req := range required {
		if r == req {
			return true
		}
	}

	return false
}

func (r Role) IsValid() bool {
	switch r {
	case RoleAdmin, RoleDeveloper, RoleAttendant:
		return true
	}

	return false
}

type User struct {
	ID        uint      `json:"id"`
	Email     string    `json:"email"`
	Password  string    `json:"-"`
	Name      string    `json:"name"`
	Role      Role      `json:"role"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
