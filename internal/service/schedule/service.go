package schedule

import (
	"context"
	"fmt"

	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/schedule"
	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/jwt"
	"github.com/cmlabs-hris/attendance-backend-go/internal/repository/postgresql"
	"github.com/cmlabs-hris/attendance-backend-go/internal/service/reference"
)

type scheduleServiceImpl struct {
	tx               postgresql.Transactor
	workScheduleRepo schedule.WorkScheduleRepository
	reference        *reference.Store
}

func NewScheduleService(tx postgresql.Transactor, workScheduleRepo schedule.WorkScheduleRepository, ref *reference.Store) schedule.ScheduleService {
	return &scheduleServiceImpl{
		tx:               tx,
		workScheduleRepo: workScheduleRepo,
		reference:        ref,
	}
}

// CreateWorkSchedule implements schedule.ScheduleService.
func (s *scheduleServiceImpl) CreateWorkSchedule(ctx context.Context, req schedule.CreateWorkScheduleRequest) (schedule.WorkScheduleResponse, error) {
	if err := req.Validate(); err != nil {
		return schedule.WorkScheduleResponse{}, err
	}

	companyID, err := jwt.CompanyIDFromContext(ctx)
	if err != nil {
		return schedule.WorkScheduleResponse{}, err
	}

	ws, err := req.ToEntity(companyID)
	if err != nil {
		return schedule.WorkScheduleResponse{}, err
	}

	var created schedule.WorkSchedule
	err = s.tx.WithinTransaction(ctx, func(txCtx context.Context) error {
		exists, err := s.workScheduleRepo.ExistsByName(txCtx, ws.Name, companyID)
		if err != nil {
			return fmt.Errorf("failed to check work schedule name: %w", err)
		}
		if exists {
			return schedule.ErrWorkScheduleNameExists
		}

		created, err = s.workScheduleRepo.Create(txCtx, ws)
		if err != nil {
			return fmt.Errorf("failed to create work schedule: %w", err)
		}
		return nil
	})
	if err != nil {
		return schedule.WorkScheduleResponse{}, err
	}

	s.reference.InvalidateSchedules(companyID)

	return schedule.NewWorkScheduleResponse(created), nil
}

// GetWorkSchedule implements schedule.ScheduleService.
func (s *scheduleServiceImpl) GetWorkSchedule(ctx context.Context, id string) (schedule.WorkScheduleResponse, error) {
	companyID, err := jwt.CompanyIDFromContext(ctx)
	if err != nil {
		return schedule.WorkScheduleResponse{}, err
	}

	ws, err := s.workScheduleRepo.GetByID(ctx, id, companyID)
	if err != nil {
		return schedule.WorkScheduleResponse{}, err
	}

	return schedule.NewWorkScheduleResponse(ws), nil
}

// ListWorkSchedules implements schedule.ScheduleService.
func (s *scheduleServiceImpl) ListWorkSchedules(ctx context.Context) ([]schedule.WorkScheduleResponse, error) {
	companyID, err := jwt.CompanyIDFromContext(ctx)
	if err != nil {
		return nil, err
	}

	schedules, err := s.reference.Schedules(ctx, companyID)
	if err != nil {
		return nil, err
	}

	resp := make([]schedule.WorkScheduleResponse, 0, len(schedules))
	for _, ws := range schedules {
		resp = append(resp, schedule.NewWorkScheduleResponse(ws))
	}
	return resp, nil
}
