package schedule

import "context"

type ScheduleService interface {
	CreateWorkSchedule(ctx context.Context, req CreateWorkScheduleRequest) (WorkScheduleResponse, error)
	GetWorkSchedule(ctx context.Context, id string) (WorkScheduleResponse, error)
	ListWorkSchedules(ctx context.Context) ([]WorkScheduleResponse, error)
}
