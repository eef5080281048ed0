package user

import "time"

type Role string

const (
	RoleOwner    Role = "owner"    // Company owner - full access
	RoleManager  Role = "manager"  // Runs reports, ingests events, manages schedules
	RoleEmployee Role = "employee" // Regular employee
)

type User struct {
	ID           string
	CompanyID    *string
	Email        string
	PasswordHash *string
	Role         Role
	CreatedAt    time.Time
	UpdatedAt    time.Time

	// Join
	EmployeeID *string
}

// IsOwner checks if user is company owner
func (u *User) IsOwner() bool {
	return u.Role == RoleOwner
}

// IsManager checks if user is manager or owner
func (u *User) IsManager() bool {
	return u.Role == RoleManager || u.Role == RoleOwner
}

// HasCompany reports whether the user is attached to a company
func (u *User) HasCompany() bool {
	return u.CompanyID != nil && *u.CompanyID != ""
}
