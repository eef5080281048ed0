package schedule

import "context"

type WorkScheduleRepository interface {
	Create(ctx context.Context, workSchedule WorkSchedule) (WorkSchedule, error)
	GetByID(ctx context.Context, id string, companyID string) (WorkSchedule, error)
	GetByCompanyID(ctx context.Context, companyID string) ([]WorkSchedule, error)
	ExistsByName(ctx context.Context, name string, companyID string) (bool, error)
}
