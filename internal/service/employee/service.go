package employee

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/schedule"
	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/jwt"
	"github.com/cmlabs-hris/attendance-backend-go/internal/repository/postgresql"
	"github.com/cmlabs-hris/attendance-backend-go/internal/service/reference"
)

type EmployeeServiceImpl struct {
	tx               postgresql.Transactor
	employeeRepo     employee.EmployeeRepository
	workScheduleRepo schedule.WorkScheduleRepository
	reference        *reference.Store
}

func NewEmployeeService(
	tx postgresql.Transactor,
	employeeRepo employee.EmployeeRepository,
	workScheduleRepo schedule.WorkScheduleRepository,
	ref *reference.Store,
) employee.EmployeeService {
	return &EmployeeServiceImpl{
		tx:               tx,
		employeeRepo:     employeeRepo,
		workScheduleRepo: workScheduleRepo,
		reference:        ref,
	}
}

// ListEmployees implements employee.EmployeeService.
func (s *EmployeeServiceImpl) ListEmployees(ctx context.Context) ([]employee.EmployeeResponse, error) {
	companyID, err := jwt.CompanyIDFromContext(ctx)
	if err != nil {
		return nil, err
	}

	roster, err := s.reference.Roster(ctx, companyID)
	if err != nil {
		return nil, err
	}

	resp := make([]employee.EmployeeResponse, 0, len(roster))
	for _, emp := range roster {
		resp = append(resp, employee.NewEmployeeResponse(emp))
	}
	return resp, nil
}

// AssignSchedule implements employee.EmployeeService.
func (s *EmployeeServiceImpl) AssignSchedule(ctx context.Context, req employee.AssignScheduleRequest) (employee.EmployeeResponse, error) {
	if err := req.Validate(); err != nil {
		return employee.EmployeeResponse{}, err
	}

	companyID, err := jwt.CompanyIDFromContext(ctx)
	if err != nil {
		return employee.EmployeeResponse{}, err
	}

	var updated employee.Employee
	err = s.tx.WithinTransaction(ctx, func(txCtx context.Context) error {
		if req.WorkScheduleID != nil {
			if _, err := s.workScheduleRepo.GetByID(txCtx, *req.WorkScheduleID, companyID); err != nil {
				return err
			}
		}

		if err := s.employeeRepo.UpdateSchedule(txCtx, req.EmployeeID, req.WorkScheduleID, companyID); err != nil {
			return err
		}

		emp, err := s.employeeRepo.GetByID(txCtx, req.EmployeeID, companyID)
		if err != nil {
			return fmt.Errorf("failed to reload employee: %w", err)
		}
		updated = emp
		return nil
	})
	if err != nil {
		return employee.EmployeeResponse{}, err
	}

	s.reference.InvalidateRoster(companyID)
	slog.InfoContext(ctx, "work schedule assigned",
		"company_id", companyID,
		"employee_id", req.EmployeeID,
		"cleared", !updated.HasSchedule(),
	)

	return employee.NewEmployeeResponse(updated), nil
}
