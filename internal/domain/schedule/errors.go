package schedule

import "errors"

var (
	ErrWorkScheduleNotFound   = errors.New("work schedule not found")
	ErrWorkScheduleNameExists = errors.New("work schedule with this name already exists")
	ErrInvalidClockTime       = errors.New("invalid clock time, use HH:MM")
	ErrBreakOutsideShift      = errors.New("break must be inside the shift")
)
