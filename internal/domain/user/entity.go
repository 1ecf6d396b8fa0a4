package user

import "time"

type Role string

const (
	RoleAdmin Role = "admin" // Reviews attendance requests and reports
	RoleUser  Role = "user"  // Regular employee who punches in and out
)

func (r Role) Valid() bool {
	return r == RoleAdmin || r == RoleUser
}

type User struct {
	ID              string
	UserName        string
	Email           string
	PasswordHash    string
	Role            Role
	IsActive        bool
	ProfilePhotoURL *string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// IsAdmin checks if user can review attendance
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}
