// Package reference serves the slow-changing inputs of reconciliation (roster and work schedules)
// through per-company caches that are invalidated on write.
package reference

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/schedule"
	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/cache"
)

// Store returns shared slices: callers must treat them as read-only.
type Store struct {
	employees employee.EmployeeRepository
	schedules schedule.WorkScheduleRepository

	rosterCache   *cache.Store[[]employee.Employee]
	scheduleCache *cache.Store[[]schedule.WorkSchedule]
}

func NewStore(employees employee.EmployeeRepository, schedules schedule.WorkScheduleRepository, ttl time.Duration) *Store {
	return &Store{
		employees:     employees,
		schedules:     schedules,
		rosterCache:   cache.NewStore[[]employee.Employee](ttl),
		scheduleCache: cache.NewStore[[]schedule.WorkSchedule](ttl),
	}
}

// Roster returns the active employees of a company
func (s *Store) Roster(ctx context.Context, companyID string) ([]employee.Employee, error) {
	roster, err := s.rosterCache.GetOrLoad(ctx, companyID, s.employees.GetActiveByCompanyID)
	if err != nil {
		return nil, fmt.Errorf("failed to load roster: %w", err)
	}
	return roster, nil
}

// Schedules returns the work schedules of a company
func (s *Store) Schedules(ctx context.Context, companyID string) ([]schedule.WorkSchedule, error) {
	schedules, err := s.scheduleCache.GetOrLoad(ctx, companyID, s.schedules.GetByCompanyID)
	if err != nil {
		return nil, fmt.Errorf("failed to load work schedules: %w", err)
	}
	return schedules, nil
}

func (s *Store) InvalidateRoster(companyID string) {
	s.rosterCache.Invalidate(companyID)
}

func (s *Store) InvalidateSchedules(companyID string) {
	s.scheduleCache.Invalidate(companyID)
}

// Purge drops every cached roster and schedule list. It is the cron refresh job.
func (s *Store) Purge(ctx context.Context) error {
	rosters := s.rosterCache.Purge()
	schedules := s.scheduleCache.Purge()
	slog.InfoContext(ctx, "reference caches purged", "rosters", rosters, "schedule_lists", schedules)
	return nil
}
