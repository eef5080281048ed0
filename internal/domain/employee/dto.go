package employee

import (
	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/validator"
)

type AssignScheduleRequest struct {
	EmployeeID     string  `json:"-"`
	WorkScheduleID *string `json:"work_schedule_id"` // null clears the assignment
}

func (r *AssignScheduleRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{
			Field:   "employee_id",
			Message: "employee_id is required",
		})
	}
	if r.WorkScheduleID != nil && validator.IsEmpty(*r.WorkScheduleID) {
		errs = append(errs, validator.ValidationError{
			Field:   "work_schedule_id",
			Message: "work_schedule_id must not be blank; use null to clear",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type EmployeeResponse struct {
	ID               string  `json:"id"`
	EmployeeCode     string  `json:"employee_code"`
	FullName         string  `json:"full_name"`
	Department       string  `json:"department"`
	WorkScheduleID   *string `json:"work_schedule_id"`
	EmploymentStatus string  `json:"employment_status"`
}

func NewEmployeeResponse(e Employee) EmployeeResponse {
	return EmployeeResponse{
		ID:               e.ID,
		EmployeeCode:     e.EmployeeCode,
		FullName:         e.FullName,
		Department:       e.Department,
		WorkScheduleID:   e.WorkScheduleID,
		EmploymentStatus: string(e.EmploymentStatus),
	}
}
