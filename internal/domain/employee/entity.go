package employee

import (
	"time"
)

type Employee struct {
	ID               string
	UserID           *string
	CompanyID        string
	WorkScheduleID   *string
	EmployeeCode     string
	FullName         string
	Department       string
	EmploymentStatus EmploymentStatus
	CreatedAt        time.Time
	UpdatedAt        time.Time
	DeletedAt        *time.Time
}

type EmploymentStatus string

const (
	EmploymentStatusActive     EmploymentStatus = "active"
	EmploymentStatusResigned   EmploymentStatus = "resigned"
	EmploymentStatusTerminated EmploymentStatus = "terminated"
)

// HasSchedule reports whether the employee is assigned to a work schedule.
func (e Employee) HasSchedule() bool {
	return e.WorkScheduleID != nil && *e.WorkScheduleID != ""
}
