package reconcile

import (
	"time"

	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/schedule"
)

type Classification struct {
	Status      attendance.Status
	LateMinutes int
}

// Classify decides the status of a presence pair against an optional schedule.
// Only the arrival drives lateness; departure is reported separately by ComputeVariance.
func Classify(pair *attendance.PresencePair, sched *schedule.WorkSchedule, loc *time.Location) Classification {
	if pair == nil || pair.ClockInAt == nil {
		return Classification{Status: attendance.StatusAbsent}
	}

	clockedOut := pair.ClockOutAt != nil

	if sched == nil {
		if clockedOut {
			return Classification{Status: attendance.StatusPresent}
		}
		return Classification{Status: attendance.StatusInProgress}
	}

	late := LateMinutes(*pair.ClockInAt, *sched, loc)
	switch {
	case late > 0 && !clockedOut:
		return Classification{Status: attendance.StatusLateInProgress, LateMinutes: late}
	case late > 0:
		return Classification{Status: attendance.StatusLate, LateMinutes: late}
	case !clockedOut:
		return Classification{Status: attendance.StatusInProgress}
	default:
		return Classification{Status: attendance.StatusPresent}
	}
}

// LateMinutes is max(0, arrival - scheduled start - grace), in local minutes of day.
func LateMinutes(clockIn time.Time, sched schedule.WorkSchedule, loc *time.Location) int {
	late := MinutesOfDay(clockIn, loc) - sched.StartTime.Minutes() - sched.Grace()
	if late < 0 {
		return 0
	}
	return late
}

// MinutesOfDay returns hour*60+minute of t in loc. A nil loc keeps t's own location.
func MinutesOfDay(t time.Time, loc *time.Location) int {
	lt := localize(t, loc)
	return lt.Hour()*60 + lt.Minute()
}

func localize(t time.Time, loc *time.Location) time.Time {
	if loc == nil {
		return t
	}
	return t.In(loc)
}

// dayKey is the local calendar day of t, formatted YYYY-MM-DD.
func dayKey(t time.Time, loc *time.Location) string {
	return localize(t, loc).Format("2006-01-02")
}

// daysBetween counts local calendar days from a to b.
func daysBetween(a, b time.Time, loc *time.Location) int {
	ay, am, ad := localize(a, loc).Date()
	by, bm, bd := localize(b, loc).Date()
	da := time.Date(ay, am, ad, 0, 0, 0, 0, time.UTC)
	db := time.Date(by, bm, bd, 0, 0, 0, 0, time.UTC)
	return int(db.Sub(da).Hours() / 24)
}
