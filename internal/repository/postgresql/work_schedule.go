package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/schedule"
	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type workScheduleRepositoryImpl struct {
	db *database.DB
}

func NewWorkScheduleRepository(db *database.DB) schedule.WorkScheduleRepository {
	return &workScheduleRepositoryImpl{db: db}
}

// TIME columns travel as HH:MI text so ClockTime stays free of pgtype
const workScheduleColumns = `id, company_id, name,
	to_char(start_time, 'HH24:MI'), to_char(end_time, 'HH24:MI'),
	to_char(break_start, 'HH24:MI'), to_char(break_end, 'HH24:MI'),
	grace_period_minutes, created_at, updated_at, deleted_at`

func scanWorkSchedule(row pgx.Row) (schedule.WorkSchedule, error) {
	var (
		ws                   schedule.WorkSchedule
		start, end           string
		breakStart, breakEnd *string
	)
	err := row.Scan(
		&ws.ID, &ws.CompanyID, &ws.Name, &start, &end, &breakStart, &breakEnd,
		&ws.GracePeriodMinutes, &ws.CreatedAt, &ws.UpdatedAt, &ws.DeletedAt,
	)
	if err != nil {
		return schedule.WorkSchedule{}, err
	}

	if ws.StartTime, err = schedule.ParseClockTime(start); err != nil {
		return schedule.WorkSchedule{}, err
	}
	if ws.EndTime, err = schedule.ParseClockTime(end); err != nil {
		return schedule.WorkSchedule{}, err
	}
	if breakStart != nil && breakEnd != nil {
		bs, err := schedule.ParseClockTime(*breakStart)
		if err != nil {
			return schedule.WorkSchedule{}, err
		}
		be, err := schedule.ParseClockTime(*breakEnd)
		if err != nil {
			return schedule.WorkSchedule{}, err
		}
		ws.BreakStart, ws.BreakEnd = &bs, &be
	}
	return ws, nil
}

func clockOrNil(c *schedule.ClockTime) interface{} {
	if c == nil {
		return nil
	}
	return c.String()
}

// Create implements schedule.WorkScheduleRepository.
func (w *workScheduleRepositoryImpl) Create(ctx context.Context, workSchedule schedule.WorkSchedule) (schedule.WorkSchedule, error) {
	q := GetQuerier(ctx, w.db)

	query := `
		INSERT INTO work_schedules (
			id, company_id, name, start_time, end_time, break_start, break_end,
			grace_period_minutes, created_at, updated_at
		) VALUES (
			gen_random_uuid(), $1, $2, $3::time, $4::time, $5::time, $6::time, $7, NOW(), NOW()
		) RETURNING ` + workScheduleColumns

	created, err := scanWorkSchedule(q.QueryRow(ctx, query,
		workSchedule.CompanyID, workSchedule.Name,
		workSchedule.StartTime.String(), workSchedule.EndTime.String(),
		clockOrNil(workSchedule.BreakStart), clockOrNil(workSchedule.BreakEnd),
		workSchedule.GracePeriodMinutes,
	))
	if err != nil {
		return schedule.WorkSchedule{}, fmt.Errorf("failed to create work schedule: %w", err)
	}

	return created, nil
}

// GetByID implements schedule.WorkScheduleRepository.
func (w *workScheduleRepositoryImpl) GetByID(ctx context.Context, id string, companyID string) (schedule.WorkSchedule, error) {
	q := GetQuerier(ctx, w.db)
	query := `SELECT ` + workScheduleColumns + `
		FROM work_schedules
		WHERE id = $1 AND company_id = $2 AND deleted_at IS NULL`

	ws, err := scanWorkSchedule(q.QueryRow(ctx, query, id, companyID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return schedule.WorkSchedule{}, schedule.ErrWorkScheduleNotFound
		}
		return schedule.WorkSchedule{}, fmt.Errorf("failed to get work schedule %s: %w", id, err)
	}

	return ws, nil
}

// GetByCompanyID implements schedule.WorkScheduleRepository.
func (w *workScheduleRepositoryImpl) GetByCompanyID(ctx context.Context, companyID string) ([]schedule.WorkSchedule, error) {
	q := GetQuerier(ctx, w.db)
	query := `SELECT ` + workScheduleColumns + `
		FROM work_schedules
		WHERE company_id = $1 AND deleted_at IS NULL
		ORDER BY name ASC`

	rows, err := q.Query(ctx, query, companyID)
	if err != nil {
		return nil, fmt.Errorf("failed to query work schedules: %w", err)
	}
	defer rows.Close()

	schedules := make([]schedule.WorkSchedule, 0)
	for rows.Next() {
		ws, err := scanWorkSchedule(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan work schedule: %w", err)
		}
		schedules = append(schedules, ws)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return schedules, nil
}

// ExistsByName implements schedule.WorkScheduleRepository.
func (w *workScheduleRepositoryImpl) ExistsByName(ctx context.Context, name string, companyID string) (bool, error) {
	q := GetQuerier(ctx, w.db)
	query := `
		SELECT EXISTS(
			SELECT 1 FROM work_schedules
			WHERE LOWER(name) = LOWER($1) AND company_id = $2 AND deleted_at IS NULL
		)
	`

	var exists bool
	if err := q.QueryRow(ctx, query, name, companyID).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check work schedule name: %w", err)
	}
	return exists, nil
}
