package attendance

import "errors"

var (
	ErrEmptyBatch       = errors.New("at least one event is required")
	ErrBatchTooLarge    = errors.New("too many events in one batch")
	ErrInvalidTimeRange = errors.New("to must be after from")
)
