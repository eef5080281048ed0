package schedule

import "time"

type WorkSchedule struct {
	ID                 string
	CompanyID          string
	Name               string
	StartTime          ClockTime
	EndTime            ClockTime
	BreakStart         *ClockTime
	BreakEnd           *ClockTime
	GracePeriodMinutes int
	CreatedAt          time.Time
	UpdatedAt          time.Time
	DeletedAt          *time.Time
}

// Grace returns the tolerance before an arrival counts as late. Negative values are treated as zero.
func (w WorkSchedule) Grace() int {
	if w.GracePeriodMinutes < 0 {
		return 0
	}
	return w.GracePeriodMinutes
}

// CrossesMidnight reports whether the shift ends on the day after it starts.
func (w WorkSchedule) CrossesMidnight() bool {
	return w.EndTime <= w.StartTime
}

// ScheduledEndMinutes is the end of the shift in minutes from the start day's midnight.
func (w WorkSchedule) ScheduledEndMinutes() int {
	end := w.EndTime.Minutes()
	if w.CrossesMidnight() {
		end += MinutesPerDay
	}
	return end
}

// BreakMinutes returns the length of the configured break, or 0 when no break is set.
func (w WorkSchedule) BreakMinutes() int {
	if w.BreakStart == nil || w.BreakEnd == nil {
		return 0
	}
	d := w.BreakEnd.Minutes() - w.BreakStart.Minutes()
	if d < 0 {
		d += MinutesPerDay
	}
	return d
}
