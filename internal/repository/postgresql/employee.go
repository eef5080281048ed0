package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type employeeRepositoryImpl struct {
	db *database.DB
}

func NewEmployeeRepository(db *database.DB) employee.EmployeeRepository {
	return &employeeRepositoryImpl{db: db}
}

const employeeColumns = `id, user_id, company_id, work_schedule_id, employee_code, full_name,
	COALESCE(department, ''), employment_status, created_at, updated_at, deleted_at`

func scanEmployee(row pgx.Row) (employee.Employee, error) {
	var emp employee.Employee
	err := row.Scan(
		&emp.ID, &emp.UserID, &emp.CompanyID, &emp.WorkScheduleID, &emp.EmployeeCode, &emp.FullName,
		&emp.Department, &emp.EmploymentStatus, &emp.CreatedAt, &emp.UpdatedAt, &emp.DeletedAt,
	)
	return emp, err
}

// GetByID implements employee.EmployeeRepository.
func (e *employeeRepositoryImpl) GetByID(ctx context.Context, id string, companyID string) (employee.Employee, error) {
	q := GetQuerier(ctx, e.db)

	query := `SELECT ` + employeeColumns + `
		FROM employees
		WHERE id = $1 AND company_id = $2 AND deleted_at IS NULL`

	emp, err := scanEmployee(q.QueryRow(ctx, query, id, companyID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return employee.Employee{}, employee.ErrEmployeeNotFound
		}
		return employee.Employee{}, fmt.Errorf("failed to get employee %s: %w", id, err)
	}
	return emp, nil
}

// GetActiveByCompanyID implements employee.EmployeeRepository.
func (e *employeeRepositoryImpl) GetActiveByCompanyID(ctx context.Context, companyID string) ([]employee.Employee, error) {
	q := GetQuerier(ctx, e.db)

	query := `SELECT ` + employeeColumns + `
		FROM employees
		WHERE company_id = $1 AND employment_status = $2 AND deleted_at IS NULL
		ORDER BY full_name ASC, id ASC`

	rows, err := q.Query(ctx, query, companyID, employee.EmploymentStatusActive)
	if err != nil {
		return nil, fmt.Errorf("failed to query employees: %w", err)
	}
	defer rows.Close()

	employees := make([]employee.Employee, 0)
	for rows.Next() {
		emp, err := scanEmployee(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan employee: %w", err)
		}
		employees = append(employees, emp)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}

	return employees, nil
}

// UpdateSchedule implements employee.EmployeeRepository.
func (e *employeeRepositoryImpl) UpdateSchedule(ctx context.Context, id string, workScheduleID *string, companyID string) error {
	q := GetQuerier(ctx, e.db)

	query := `
		UPDATE employees
		SET work_schedule_id = $1, updated_at = NOW()
		WHERE id = $2 AND company_id = $3 AND deleted_at IS NULL
	`

	commandTag, err := q.Exec(ctx, query, workScheduleID, id, companyID)
	if err != nil {
		return fmt.Errorf("failed to update work schedule for employee with id %s: %w", id, err)
	}
	if commandTag.RowsAffected() != 1 {
		return employee.ErrEmployeeNotFound
	}

	return nil
}
