// Package reconcile turns raw clock events, a roster and work schedules into per-employee
// attendance rows and period statistics. Everything here is pure and synchronous: callers
// fetch the inputs, then run the whole pipeline again on every request.
package reconcile

import (
	"time"

	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/schedule"
)

type Reconciler struct {
	location              *time.Location
	overtimeBaselineHours float64
	extractors            []KeyExtractor
}

type Option func(*Reconciler)

// WithExtractors overrides the join key priority list.
func WithExtractors(extractors ...KeyExtractor) Option {
	return func(r *Reconciler) {
		r.extractors = extractors
	}
}

// NewReconciler builds a reconciler that reads wall-clock times in loc.
func NewReconciler(loc *time.Location, overtimeBaselineHours float64, opts ...Option) *Reconciler {
	if overtimeBaselineHours <= 0 {
		overtimeBaselineHours = DefaultOvertimeBaselineHours
	}
	r := &Reconciler{
		location:              loc,
		overtimeBaselineHours: overtimeBaselineHours,
		extractors:            DefaultKeyExtractors,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

func (r *Reconciler) Location() *time.Location {
	return r.location
}

// Result is one report window: a row per roster employee plus fold diagnostics.
type Result struct {
	Rows       []attendance.AttendanceRow
	MissingKey int
	Empty      int
}

// BuildRows produces one row per roster employee, in roster order, from the events
// attributed to days inside window.
// Employees without events are Absent; employees without a resolvable schedule get no lateness or variance.
func (r *Reconciler) BuildRows(roster []employee.Employee, schedules []schedule.WorkSchedule, events []attendance.AttendanceEvent, window Window) Result {
	index := NewScheduleIndex(schedules)
	a := attribute(events, newRosterIndex(roster), index, attributeOptions{
		location:   r.location,
		extractors: r.extractors,
		window:     window,
	})

	// a multi-day window folds each employee's days into one pair
	pairs := make(map[string]attendance.PresencePair, len(a.buckets))
	for b, pair := range a.buckets {
		if pair.ClockInAt == nil && pair.ClockOutAt == nil {
			continue
		}
		if prev, ok := pairs[b.employeeID]; ok {
			pair = merge(prev, pair)
		}
		pairs[b.employeeID] = pair
	}

	rows := make([]attendance.AttendanceRow, 0, len(roster))
	for _, emp := range roster {
		var pair *attendance.PresencePair
		if p, ok := pairs[emp.ID]; ok {
			pair = &p
		}
		rows = append(rows, BuildRow(emp.ID, pair, index.Resolve(emp.WorkScheduleID), r.location))
	}

	return Result{
		Rows:       rows,
		MissingKey: a.missingKey,
		Empty:      a.empty,
	}
}

// Stats rolls the events of window up into PeriodStats.
func (r *Reconciler) Stats(roster []employee.Employee, schedules []schedule.WorkSchedule, events []attendance.AttendanceEvent, window Window, groupBy attendance.GroupBy, employeeID string) attendance.PeriodStats {
	return Rollup(events, roster, NewScheduleIndex(schedules), RollupOptions{
		Location:              r.location,
		GroupBy:               groupBy,
		OvertimeBaselineHours: r.overtimeBaselineHours,
		Extractors:            r.extractors,
		Window:                window,
		EmployeeID:            employeeID,
	})
}

// BuildRow classifies one employee's pair. A nil pair means no events in the window.
func BuildRow(employeeID string, pair *attendance.PresencePair, sched *schedule.WorkSchedule, loc *time.Location) attendance.AttendanceRow {
	c := Classify(pair, sched, loc)
	v := ComputeVariance(pair, sched, loc)

	row := attendance.AttendanceRow{
		EmployeeID:     employeeID,
		Status:         c.Status,
		LateMinutes:    c.LateMinutes,
		WorkedSeconds:  WorkedSeconds(pair),
		VarianceLabel:  v.Label(),
		ArrivalDelta:   v.Arrival,
		DepartureDelta: v.Departure,
	}
	if pair != nil {
		row.ClockInAt = pair.ClockInAt
		row.ClockOutAt = pair.ClockOutAt
		if pair.ClockInAt != nil && pair.ClockOutAt != nil {
			hours := pair.ClockOutAt.Sub(*pair.ClockInAt).Hours()
			// the raw value stays on the row for display; rollups drop it
			row.ImplausibleDuration = !IsPlausibleHours(hours)
		}
	}

	row.HasVariance = c.LateMinutes > 0 ||
		v.HasDeviation() ||
		(c.Status == attendance.StatusAbsent && sched != nil)

	return row
}
