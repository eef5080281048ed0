package schedule

import (
	"fmt"
	"strconv"
	"strings"
)

const MinutesPerDay = 24 * 60

// ClockTime is a wall-clock time of day without timezone, stored as minutes after midnight.
type ClockTime int

// ParseClockTime parses "HH:MM" or "HH:MM:SS". Seconds are ignored.
func ParseClockTime(s string) (ClockTime, error) {
	parts := strings.Split(strings.TrimSpace(s), ":")
	if len(parts) < 2 || len(parts) > 3 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidClockTime, s)
	}

	hour, err := strconv.Atoi(parts[0])
	if err != nil || hour < 0 || hour > 23 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidClockTime, s)
	}
	minute, err := strconv.Atoi(parts[1])
	if err != nil || minute < 0 || minute > 59 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidClockTime, s)
	}
	if len(parts) == 3 {
		sec, err := strconv.Atoi(parts[2])
		if err != nil || sec < 0 || sec > 59 {
			return 0, fmt.Errorf("%w: %q", ErrInvalidClockTime, s)
		}
	}

	return ClockTime(hour*60 + minute), nil
}

// MustClockTime is ParseClockTime for constants; it panics on bad input.
func MustClockTime(s string) ClockTime {
	c, err := ParseClockTime(s)
	if err != nil {
		panic(err)
	}
	return c
}

func (c ClockTime) Minutes() int {
	return int(c)
}

func (c ClockTime) Hour() int {
	return int(c) / 60
}

func (c ClockTime) Minute() int {
	return int(c) % 60
}

func (c ClockTime) String() string {
	return fmt.Sprintf("%02d:%02d", c.Hour(), c.Minute())
}
