package reconcile

import (
	"fmt"
	"strings"
	"time"

	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/schedule"
)

// Variance holds signed minute deltas between actual and scheduled clock times.
// A nil component means one side of the comparison is missing.
type Variance struct {
	Arrival   *int
	Departure *int
}

// ComputeVariance compares arrival with the scheduled start and departure with the scheduled end.
// It is informational only and never affects the status.
func ComputeVariance(pair *attendance.PresencePair, sched *schedule.WorkSchedule, loc *time.Location) Variance {
	var v Variance
	if pair == nil || sched == nil {
		return v
	}

	if pair.ClockInAt != nil {
		d := MinutesOfDay(*pair.ClockInAt, loc) - sched.StartTime.Minutes()
		v.Arrival = &d
	}

	if pair.ClockOutAt != nil {
		actual := MinutesOfDay(*pair.ClockOutAt, loc)
		scheduled := sched.EndTime.Minutes()
		if pair.ClockInAt != nil {
			// measure both ends from the arrival day so overnight shifts compare correctly
			actual += daysBetween(*pair.ClockInAt, *pair.ClockOutAt, loc) * schedule.MinutesPerDay
			scheduled = sched.ScheduledEndMinutes()
		}
		d := actual - scheduled
		v.Departure = &d
	}

	return v
}

// Label renders the variance as "Entrée +12 min / Sortie -5 min". Empty when nothing is comparable.
func (v Variance) Label() string {
	var parts []string
	if v.Arrival != nil {
		parts = append(parts, "Entrée "+formatDelta(*v.Arrival))
	}
	if v.Departure != nil {
		parts = append(parts, "Sortie "+formatDelta(*v.Departure))
	}
	return strings.Join(parts, " / ")
}

// HasDeviation reports whether any present component is non-zero.
func (v Variance) HasDeviation() bool {
	return (v.Arrival != nil && *v.Arrival != 0) || (v.Departure != nil && *v.Departure != 0)
}

func formatDelta(d int) string {
	switch {
	case d > 0:
		return fmt.Sprintf("+%d min", d)
	case d < 0:
		return fmt.Sprintf("-%d min", -d)
	default:
		return "0 min"
	}
}
