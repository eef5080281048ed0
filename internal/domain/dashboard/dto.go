package dashboard

import (
	"fmt"
	"time"

	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/validator"
)

// ========== PERIOD STATS ==========

// PeriodStatsRequest selects a month (YYYY-MM) or a whole year (YYYY), optionally for one employee
type PeriodStatsRequest struct {
	Month      string `json:"month"`
	Year       string `json:"year"`
	EmployeeID string `json:"employee_id"`
	GroupBy    string `json:"group_by"`
}

func (r *PeriodStatsRequest) Validate() error {
	var errs validator.ValidationErrors

	switch {
	case r.Month != "" && r.Year != "":
		errs = append(errs, validator.ValidationError{
			Field:   "month",
			Message: "use either month or year, not both",
		})
	case r.Month == "" && r.Year == "":
		errs = append(errs, validator.ValidationError{
			Field:   "month",
			Message: "month or year is required",
		})
	case r.Month != "":
		if _, ok := validator.IsValidMonth(r.Month); !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "month",
				Message: "month must be in YYYY-MM format",
			})
		}
	default:
		if _, err := time.Parse("2006", r.Year); err != nil {
			errs = append(errs, validator.ValidationError{
				Field:   "year",
				Message: "year must be in YYYY format",
			})
		}
	}

	if r.GroupBy != "" && !validator.IsInSlice(r.GroupBy, attendance.GroupByValues) {
		errs = append(errs, validator.ValidationError{
			Field:   "group_by",
			Message: fmt.Sprintf("group_by must be one of %v", attendance.GroupByValues),
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// Period resolves the request to [start, end) in loc. Call after Validate.
func (r *PeriodStatsRequest) Period(loc *time.Location) (time.Time, time.Time) {
	if r.Month != "" {
		m, _ := validator.IsValidMonth(r.Month)
		start := time.Date(m.Year(), m.Month(), 1, 0, 0, 0, 0, loc)
		return start, start.AddDate(0, 1, 0)
	}
	y, _ := time.Parse("2006", r.Year)
	start := time.Date(y.Year(), time.January, 1, 0, 0, 0, 0, loc)
	return start, start.AddDate(1, 0, 0)
}

// PeriodStatsResponse is the rollup of one period, company-wide or for one employee
type PeriodStatsResponse struct {
	PeriodStart string  `json:"period_start"` // YYYY-MM-DD
	PeriodEnd   string  `json:"period_end"`   // YYYY-MM-DD, inclusive
	EmployeeID  *string `json:"employee_id,omitempty"`
	GroupBy     string  `json:"group_by"`

	attendance.PeriodStatsResponse
}

// ========== EMPLOYEE STATS TABLE ==========

type EmployeeStatsRequest struct {
	Month string `json:"month"`
}

func (r *EmployeeStatsRequest) Validate() error {
	if _, ok := validator.IsValidMonth(r.Month); !ok {
		return validator.ValidationErrors{{
			Field:   "month",
			Message: "month must be in YYYY-MM format",
		}}
	}
	return nil
}

// EmployeeStatsResponse lists one rollup per active employee for a month
type EmployeeStatsResponse struct {
	Month     string             `json:"month"`
	Employees []EmployeeStatsRow `json:"employees"`
}

type EmployeeStatsRow struct {
	No           int    `json:"no"`
	EmployeeID   string `json:"employee_id"`
	EmployeeCode string `json:"employee_code"`
	EmployeeName string `json:"employee_name"`
	Department   string `json:"department"`

	attendance.PeriodStatsResponse
}
