package report

import (
	"time"

	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/validator"
)

// ========================================
// DAILY ATTENDANCE REPORT
// ========================================

type DailyAttendanceReportRequest struct {
	Date         string `json:"date"` // YYYY-MM-DD
	OnlyVariance bool   `json:"only_variance"`
}

func (r *DailyAttendanceReportRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Date) {
		errs = append(errs, validator.ValidationError{
			Field:   "date",
			Message: "date is required",
		})
	} else if _, ok := validator.IsValidDate(r.Date); !ok {
		errs = append(errs, validator.ValidationError{
			Field:   "date",
			Message: "date must be in YYYY-MM-DD format",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// Window resolves the request date to [midnight, next midnight) in loc.
func (r *DailyAttendanceReportRequest) Window(loc *time.Location) (time.Time, time.Time) {
	d, _ := validator.IsValidDate(r.Date)
	from := time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, loc)
	return from, from.AddDate(0, 0, 1)
}

type DailyAttendanceReport struct {
	Date        string `json:"date"`
	Timezone    string `json:"timezone"`
	GeneratedAt string `json:"generated_at"`

	Summary attendance.PeriodStatsResponse `json:"summary"`
	Dropped DroppedEvents                  `json:"dropped"`

	Rows []DailyAttendanceRow `json:"rows"`
}

// DroppedEvents counts events of the window that could not contribute to any row.
type DroppedEvents struct {
	MissingKey int `json:"missing_key"`
	Empty      int `json:"empty"`
}

type DailyAttendanceRow struct {
	EmployeeID   string  `json:"employee_id"`
	EmployeeCode string  `json:"employee_code"`
	EmployeeName string  `json:"employee_name"`
	Department   string  `json:"department"`
	ShiftName    string  `json:"shift_name"`
	ClockIn      *string `json:"clock_in"`  // HH:MM local
	ClockOut     *string `json:"clock_out"` // HH:MM local

	Status         string  `json:"status"`
	LateMinutes    int     `json:"late_minutes"`
	WorkedHours    float64 `json:"worked_hours"`
	VarianceLabel  string  `json:"variance_label"`
	ArrivalDelta   *int    `json:"arrival_delta_minutes"`
	DepartureDelta *int    `json:"departure_delta_minutes"`

	ImplausibleDuration bool `json:"implausible_duration"`
	HasVariance         bool `json:"has_variance"`
}
