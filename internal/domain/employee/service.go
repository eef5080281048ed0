package employee

import (
	"context"
)

// EmployeeService defines roster operations scoped to the caller's company.
type EmployeeService interface {
	// ListEmployees returns the active roster
	ListEmployees(ctx context.Context) ([]EmployeeResponse, error)

	// AssignSchedule sets or clears an employee's work schedule (manager+ only)
	AssignSchedule(ctx context.Context, req AssignScheduleRequest) (EmployeeResponse, error)
}
