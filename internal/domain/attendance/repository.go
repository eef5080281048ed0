package attendance

import (
	"context"
	"time"
)

// EventRepository stores raw attendance events. All methods are scoped by companyID.
type EventRepository interface {
	// CreateBatch inserts events and returns how many rows were written
	CreateBatch(ctx context.Context, events []AttendanceEvent) (int64, error)

	// ListByRange returns events attributed to [from, to).
	// An event is attributed to its clock-in, else its work date, else its clock-out.
	// Reports widen the range with reconcile.Window.FetchRange so overnight shifts are seen whole.
	ListByRange(ctx context.Context, companyID string, from, to time.Time) ([]AttendanceEvent, error)
}
