package domain

import "time"

// Role is a staff permission level.
type Role string

const (
	RoleClerk   Role = "clerk"
	RoleManager Role = "manager"
)

// Valid reports whether r is one of the two permitted roles.
func (r Role) Valid() bool {
	return r == RoleClerk || r == RoleManager
}

// StaffAccount models a staff member allowed into the admin panel.
// PasswordHash never leaves the auth service in a response.
type StaffAccount struct {
	ID           int64     `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Role         Role      `json:"role"`
	CreatedAt    time.Time `json:"created_at"`
}
