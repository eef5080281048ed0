package dashboard

import "context"

// DashboardService defines the interface for attendance dashboard operations
type DashboardService interface {
	// GetPeriodStats returns the attendance rollup for a month or a year
	GetPeriodStats(ctx context.Context, req PeriodStatsRequest) (PeriodStatsResponse, error)

	// GetEmployeeStats returns one rollup per active employee for a month, computed concurrently
	GetEmployeeStats(ctx context.Context, req EmployeeStatsRequest) (EmployeeStatsResponse, error)
}
