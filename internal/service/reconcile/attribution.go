package reconcile

import (
	"time"

	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/employee"
)

// Window is the half-open range of local days [From, To) a report covers.
// The zero Window covers every day.
type Window struct {
	From time.Time
	To   time.Time
}

func (w Window) bounded() bool {
	return !w.From.IsZero() && !w.To.IsZero()
}

// FetchRange widens w by the day on each side an overnight shift can reach across.
// Load events for FetchRange, then pass w itself to BuildRows or Stats.
func (w Window) FetchRange() (time.Time, time.Time) {
	return w.From.AddDate(0, 0, -1), w.To.AddDate(0, 0, 1)
}

// contains compares local day keys so DST days are neither skipped nor doubled.
func (w Window) contains(day string, loc *time.Location) bool {
	if !w.bounded() {
		return true
	}
	return day >= dayKey(w.From, loc) && day < dayKey(w.To, loc)
}

type dayBucket struct {
	employeeID string
	day        string
}

type attribution struct {
	buckets    map[dayBucket]attendance.PresencePair
	missingKey int
	empty      int
}

type attributeOptions struct {
	location   *time.Location
	extractors []KeyExtractor
	window     Window
	employeeID string
}

type carriedEvent struct {
	employeeID string
	event      attendance.AttendanceEvent
}

// attribute assigns every keyed event to an (employee, local day) bucket.
//
// A clock-out with no clock-in and no work date, for an employee on a shift that
// crosses midnight, joins the previous day's bucket when that bucket holds an open
// clock-in. Buckets outside the window are dropped afterwards, so callers load the
// window's FetchRange to see both halves of a boundary shift.
func attribute(events []attendance.AttendanceEvent, people rosterIndex, index ScheduleIndex, opts attributeOptions) attribution {
	extractors := opts.extractors
	if len(extractors) == 0 {
		extractors = DefaultKeyExtractors
	}
	loc := opts.location

	a := attribution{buckets: make(map[dayBucket]attendance.PresencePair)}
	var carried []carriedEvent

	for _, e := range events {
		day, hasDay := eventDay(e, loc)
		counted := !hasDay || opts.window.contains(day, loc)

		if !e.HasTimestamp() && counted {
			a.empty++
		}
		key, ok := JoinKey(e, extractors)
		if !ok {
			if e.HasTimestamp() && counted {
				a.missingKey++
			}
			continue
		}

		empID := people.resolve(key)
		if opts.employeeID != "" && empID != opts.employeeID {
			continue
		}

		if e.ClockInAt == nil && e.ClockOutAt != nil && e.WorkDate == nil && people.worksOvernight(empID, index) {
			carried = append(carried, carriedEvent{employeeID: empID, event: e})
			continue
		}
		if !hasDay {
			continue
		}
		a.add(dayBucket{employeeID: empID, day: day}, e)
	}

	for _, c := range carried {
		out := *c.event.ClockOutAt
		b := dayBucket{employeeID: c.employeeID, day: dayKey(out, loc)}

		prev := dayBucket{employeeID: c.employeeID, day: previousDayKey(out, loc)}
		if pair, ok := a.buckets[prev]; ok && closesOvernight(pair, out, prev.day, loc) {
			b = prev
		}
		a.add(b, c.event)
	}

	if opts.window.bounded() {
		for b := range a.buckets {
			if !opts.window.contains(b.day, loc) {
				delete(a.buckets, b)
			}
		}
	}

	return a
}

func (a *attribution) add(b dayBucket, e attendance.AttendanceEvent) {
	pair := a.buckets[b]
	pair.EmployeeID = b.employeeID
	a.buckets[b] = absorb(pair, e)
}

// closesOvernight reports whether out can end the shift opened in pair on day.
// A clock-out already on day means that shift was closed the same day.
func closesOvernight(pair attendance.PresencePair, out time.Time, day string, loc *time.Location) bool {
	if pair.ClockInAt == nil || !out.After(*pair.ClockInAt) {
		return false
	}
	if !IsPlausibleHours(out.Sub(*pair.ClockInAt).Hours()) {
		return false
	}
	return pair.ClockOutAt == nil || dayKey(*pair.ClockOutAt, loc) != day
}

// eventDay attributes an event to the local day of its clock-in, else its work
// date, else its clock-out.
func eventDay(e attendance.AttendanceEvent, loc *time.Location) (string, bool) {
	switch {
	case e.ClockInAt != nil:
		return dayKey(*e.ClockInAt, loc), true
	case e.WorkDate != nil:
		// work dates are calendar days already; do not shift them across zones
		return e.WorkDate.Format("2006-01-02"), true
	case e.ClockOutAt != nil:
		return dayKey(*e.ClockOutAt, loc), true
	default:
		return "", false
	}
}

func previousDayKey(t time.Time, loc *time.Location) string {
	lt := localize(t, loc)
	y, m, d := lt.Date()
	return time.Date(y, m, d-1, 12, 0, 0, 0, lt.Location()).Format("2006-01-02")
}

// rosterIndex resolves a join key to a roster employee by employee id or user id.
type rosterIndex map[string]*employee.Employee

func newRosterIndex(roster []employee.Employee) rosterIndex {
	idx := make(rosterIndex, len(roster)*2)
	for i := range roster {
		emp := &roster[i]
		if emp.UserID != nil && *emp.UserID != "" {
			idx[*emp.UserID] = emp
		}
	}
	// employee ids win over user ids on collision
	for i := range roster {
		emp := &roster[i]
		idx[emp.ID] = emp
	}
	return idx
}

func (r rosterIndex) lookup(key string) *employee.Employee {
	return r[key]
}

// resolve maps a join key to a roster employee id; unknown keys stay as they are.
func (r rosterIndex) resolve(key string) string {
	if emp := r.lookup(key); emp != nil {
		return emp.ID
	}
	return key
}

func (r rosterIndex) worksOvernight(employeeID string, index ScheduleIndex) bool {
	emp := r.lookup(employeeID)
	if emp == nil {
		return false
	}
	ws := index.Resolve(emp.WorkScheduleID)
	return ws != nil && ws.CrossesMidnight()
}
