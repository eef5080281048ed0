package reconcile

import (
	"time"

	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/employee"
)

const (
	DefaultOvertimeBaselineHours = 8.0
	MaxPlausibleHours            = 24.0
)

// WorkedSeconds is max(0, clock-out - clock-in), 0 when either bound is missing.
func WorkedSeconds(pair *attendance.PresencePair) int64 {
	if pair == nil || pair.ClockInAt == nil || pair.ClockOutAt == nil {
		return 0
	}
	d := int64(pair.ClockOutAt.Sub(*pair.ClockInAt) / time.Second)
	if d < 0 {
		return 0
	}
	return d
}

// IsPlausibleHours filters worked spans for rollups: only (0, 24) hours contribute.
func IsPlausibleHours(hours float64) bool {
	return hours > 0 && hours < MaxPlausibleHours
}

type RollupOptions struct {
	Location              *time.Location
	GroupBy               attendance.GroupBy
	OvertimeBaselineHours float64
	Extractors            []KeyExtractor

	// Window drops days outside [From, To) once overnight clock-outs are attributed.
	Window Window
	// EmployeeID restricts the rollup to one roster employee when set.
	EmployeeID string
}

// Rollup classifies every (employee, day) derived from event timestamps and rolls them into PeriodStats.
// It never fails: unattributable events and implausible spans are silently left out.
func Rollup(events []attendance.AttendanceEvent, roster []employee.Employee, index ScheduleIndex, opts RollupOptions) attendance.PeriodStats {
	baseline := opts.OvertimeBaselineHours
	if baseline <= 0 {
		baseline = DefaultOvertimeBaselineHours
	}
	people := newRosterIndex(roster)

	buckets := attribute(events, people, index, attributeOptions{
		location:   opts.Location,
		extractors: opts.Extractors,
		window:     opts.Window,
		employeeID: opts.EmployeeID,
	}).buckets

	present := make(map[string]struct{})
	late := make(map[string]struct{})
	absent := make(map[string]struct{})
	var stats attendance.PeriodStats

	for b, pair := range buckets {
		var scheduleID *string
		if emp := people.lookup(b.employeeID); emp != nil {
			scheduleID = emp.WorkScheduleID
		}

		c := Classify(&pair, index.Resolve(scheduleID), opts.Location)

		groupKey := b.day
		if opts.GroupBy != attendance.GroupByCalendarDay {
			groupKey = b.employeeID + "|" + b.day
		}

		switch {
		case c.Status == attendance.StatusAbsent:
			absent[groupKey] = struct{}{}
		case c.Status.IsLate():
			late[groupKey] = struct{}{}
			present[groupKey] = struct{}{}
		default:
			present[groupKey] = struct{}{}
		}

		hours := float64(WorkedSeconds(&pair)) / 3600
		if !IsPlausibleHours(hours) {
			continue
		}
		stats.TotalHours += hours
		if hours > baseline {
			stats.OvertimeHours += hours - baseline
		}
	}

	stats.PresentDays = len(present)
	stats.LateDays = len(late)
	stats.AbsentDays = len(absent)
	stats.AverageDailyHours = stats.TotalHours / float64(max(1, stats.PresentDays))

	return stats
}

// SummarizeRows rolls one window's rows into PeriodStats: each row is one employee-day.
// Unlike Rollup it counts employees with no events as absent.
func SummarizeRows(rows []attendance.AttendanceRow, overtimeBaselineHours float64) attendance.PeriodStats {
	if overtimeBaselineHours <= 0 {
		overtimeBaselineHours = DefaultOvertimeBaselineHours
	}

	var stats attendance.PeriodStats
	for _, row := range rows {
		switch {
		case row.Status == attendance.StatusAbsent:
			stats.AbsentDays++
			continue
		case row.Status.IsLate():
			stats.LateDays++
		}
		stats.PresentDays++

		if row.ImplausibleDuration {
			continue
		}
		hours := float64(row.WorkedSeconds) / 3600
		if !IsPlausibleHours(hours) {
			continue
		}
		stats.TotalHours += hours
		if hours > overtimeBaselineHours {
			stats.OvertimeHours += hours - overtimeBaselineHours
		}
	}
	stats.AverageDailyHours = stats.TotalHours / float64(max(1, stats.PresentDays))

	return stats
}
