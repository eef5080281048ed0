package attendance

import (
	"time"
)

// AttendanceEvent is one raw clock record as delivered by a producer.
// Producers disagree on how they identify the employee, so every known key shape is kept.
type AttendanceEvent struct {
	ID             string
	CompanyID      string
	EmployeeID     *string
	User           *UserRef
	ExternalRef    string
	WorkDate       *time.Time
	ClockInAt      *time.Time
	ClockOutAt     *time.Time
	RawStatusLabel string
	Label          StatusLabel
	CreatedAt      time.Time
}

// UserRef is the user object some producers embed instead of a flat employee id.
type UserRef struct {
	ID         string
	EmployeeID string
}

// HasTimestamp reports whether the event carries a clock-in or a clock-out.
func (e AttendanceEvent) HasTimestamp() bool {
	return e.ClockInAt != nil || e.ClockOutAt != nil
}

// PresencePair is the reconciled earliest clock-in and latest clock-out of one employee in a window.
type PresencePair struct {
	EmployeeID string
	ClockInAt  *time.Time
	ClockOutAt *time.Time
}

type Status string

const (
	StatusAbsent         Status = "absent"
	StatusPresent        Status = "present"
	StatusLate           Status = "late"
	StatusInProgress     Status = "in_progress"
	StatusLateInProgress Status = "late_in_progress"
)

var StatusValues = []string{
	string(StatusAbsent),
	string(StatusPresent),
	string(StatusLate),
	string(StatusInProgress),
	string(StatusLateInProgress),
}

// IsLate reports whether the status was driven by a late arrival.
func (s Status) IsLate() bool {
	return s == StatusLate || s == StatusLateInProgress
}

// IsPresent reports whether the employee clocked in at all.
func (s Status) IsPresent() bool {
	return s != StatusAbsent && s != ""
}

// AttendanceRow is the per-employee result of one report window.
type AttendanceRow struct {
	EmployeeID          string
	Status              Status
	LateMinutes         int
	WorkedSeconds       int64
	VarianceLabel       string
	ArrivalDelta        *int
	DepartureDelta      *int
	ImplausibleDuration bool
	HasVariance         bool
	ClockInAt           *time.Time
	ClockOutAt          *time.Time
}

// PeriodStats is a rollup of day classifications over a date range.
type PeriodStats struct {
	PresentDays       int
	LateDays          int
	AbsentDays        int
	AverageDailyHours float64
	TotalHours        float64
	OvertimeHours     float64
}

// GroupBy selects the day key used to de-duplicate days in a rollup.
type GroupBy string

const (
	// GroupByEmployeeDay counts each employee's days separately (man-days).
	GroupByEmployeeDay GroupBy = "employee_day"
	// GroupByCalendarDay counts a calendar day once regardless of how many employees it covers.
	GroupByCalendarDay GroupBy = "calendar_day"
)

// GroupByValues lists the accepted GroupBy values.
var GroupByValues = []string{string(GroupByEmployeeDay), string(GroupByCalendarDay)}
