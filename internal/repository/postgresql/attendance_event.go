package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/database"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type eventRepositoryImpl struct {
	db *database.DB
}

func NewEventRepository(db *database.DB) attendance.EventRepository {
	return &eventRepositoryImpl{db: db}
}

var eventCopyColumns = []string{
	"id", "company_id", "source_id", "employee_id", "user_id", "user_employee_id", "external_ref",
	"work_date", "clock_in_at", "clock_out_at", "raw_status", "label", "created_at",
}

func nonEmptyOrNil(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

// CreateBatch implements attendance.EventRepository.
func (r *eventRepositoryImpl) CreateBatch(ctx context.Context, events []attendance.AttendanceEvent) (int64, error) {
	if len(events) == 0 {
		return 0, nil
	}
	q := GetQuerier(ctx, r.db)

	now := time.Now()
	rows := make([][]interface{}, 0, len(events))
	for _, e := range events {
		var userID, userEmployeeID *string
		if e.User != nil {
			userID = nonEmptyOrNil(e.User.ID)
			userEmployeeID = nonEmptyOrNil(e.User.EmployeeID)
		}
		rows = append(rows, []interface{}{
			uuid.New(), e.CompanyID, nonEmptyOrNil(e.ID), e.EmployeeID, userID, userEmployeeID,
			nonEmptyOrNil(e.ExternalRef), e.WorkDate, e.ClockInAt, e.ClockOutAt,
			e.RawStatusLabel, string(e.Label), now,
		})
	}

	n, err := q.CopyFrom(ctx, pgx.Identifier{"attendance_events"}, eventCopyColumns, pgx.CopyFromRows(rows))
	if err != nil {
		return 0, fmt.Errorf("failed to copy attendance events: %w", err)
	}
	return n, nil
}

// ListByRange implements attendance.EventRepository.
func (r *eventRepositoryImpl) ListByRange(ctx context.Context, companyID string, from, to time.Time) ([]attendance.AttendanceEvent, error) {
	q := GetQuerier(ctx, r.db)

	// work dates compare on the calendar day of the window bounds
	query := `
		SELECT id, company_id, COALESCE(employee_id, ''), COALESCE(user_id, ''), COALESCE(user_employee_id, ''),
			COALESCE(external_ref, ''), work_date, clock_in_at, clock_out_at, raw_status, label, created_at
		FROM attendance_events
		WHERE company_id = $1
		  AND (
			(clock_in_at IS NOT NULL AND clock_in_at >= $2 AND clock_in_at < $3)
			OR (clock_in_at IS NULL AND work_date IS NOT NULL AND work_date >= $4::date AND work_date < $5::date)
			OR (clock_in_at IS NULL AND work_date IS NULL AND clock_out_at >= $2 AND clock_out_at < $3)
		  )
		ORDER BY created_at ASC, id ASC
	`

	rows, err := q.Query(ctx, query, companyID, from, to, from.Format("2006-01-02"), to.Format("2006-01-02"))
	if err != nil {
		return nil, fmt.Errorf("failed to query attendance events: %w", err)
	}
	defer rows.Close()

	events := make([]attendance.AttendanceEvent, 0)
	for rows.Next() {
		var (
			e                                         attendance.AttendanceEvent
			employeeID, userID, userEmployeeID, label string
		)
		if err := rows.Scan(
			&e.ID, &e.CompanyID, &employeeID, &userID, &userEmployeeID,
			&e.ExternalRef, &e.WorkDate, &e.ClockInAt, &e.ClockOutAt, &e.RawStatusLabel, &label, &e.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan attendance event: %w", err)
		}

		e.EmployeeID = nonEmptyOrNil(employeeID)
		if userID != "" || userEmployeeID != "" {
			e.User = &attendance.UserRef{ID: userID, EmployeeID: userEmployeeID}
		}
		e.Label = attendance.StatusLabel(label)
		events = append(events, e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return events, nil
}
