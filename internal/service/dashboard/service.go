package dashboard

import (
	"context"
	"fmt"
	"runtime"

	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/dashboard"
	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/schedule"
	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/jwt"
	"github.com/cmlabs-hris/attendance-backend-go/internal/service/reconcile"
	"github.com/cmlabs-hris/attendance-backend-go/internal/service/reference"
	"golang.org/x/sync/errgroup"
)

type DashboardServiceImpl struct {
	reference  *reference.Store
	events     attendance.EventRepository
	reconciler *reconcile.Reconciler
}

func NewDashboardService(ref *reference.Store, events attendance.EventRepository, reconciler *reconcile.Reconciler) dashboard.DashboardService {
	return &DashboardServiceImpl{
		reference:  ref,
		events:     events,
		reconciler: reconciler,
	}
}

type periodInputs struct {
	roster    []employee.Employee
	schedules []schedule.WorkSchedule
	events    []attendance.AttendanceEvent
}

// loadPeriod fetches roster, schedules and the period's events using parallel goroutines
func (s *DashboardServiceImpl) loadPeriod(ctx context.Context, companyID string, window reconcile.Window) (periodInputs, error) {
	var in periodInputs
	g, gCtx := errgroup.WithContext(ctx)

	g.Go(func() error {
		roster, err := s.reference.Roster(gCtx, companyID)
		in.roster = roster
		return err
	})
	g.Go(func() error {
		schedules, err := s.reference.Schedules(gCtx, companyID)
		in.schedules = schedules
		return err
	})
	g.Go(func() error {
		from, to := window.FetchRange()
		events, err := s.events.ListByRange(gCtx, companyID, from, to)
		if err != nil {
			return fmt.Errorf("failed to load attendance events: %w", err)
		}
		in.events = events
		return nil
	})

	if err := g.Wait(); err != nil {
		return periodInputs{}, err
	}
	return in, nil
}

// GetPeriodStats implements dashboard.DashboardService.
func (s *DashboardServiceImpl) GetPeriodStats(ctx context.Context, req dashboard.PeriodStatsRequest) (dashboard.PeriodStatsResponse, error) {
	if err := req.Validate(); err != nil {
		return dashboard.PeriodStatsResponse{}, err
	}

	companyID, err := jwt.CompanyIDFromContext(ctx)
	if err != nil {
		return dashboard.PeriodStatsResponse{}, err
	}

	start, end := req.Period(s.reconciler.Location())
	window := reconcile.Window{From: start, To: end}
	in, err := s.loadPeriod(ctx, companyID, window)
	if err != nil {
		return dashboard.PeriodStatsResponse{}, err
	}

	if req.EmployeeID != "" && !inRoster(in.roster, req.EmployeeID) {
		return dashboard.PeriodStatsResponse{}, dashboard.ErrEmployeeNotInRoster
	}

	groupBy := attendance.GroupBy(req.GroupBy)
	if groupBy == "" {
		groupBy = attendance.GroupByEmployeeDay
	}

	stats := s.reconciler.Stats(in.roster, in.schedules, in.events, window, groupBy, req.EmployeeID)

	resp := dashboard.PeriodStatsResponse{
		PeriodStart:         start.Format("2006-01-02"),
		PeriodEnd:           end.AddDate(0, 0, -1).Format("2006-01-02"),
		GroupBy:             string(groupBy),
		PeriodStatsResponse: attendance.NewPeriodStatsResponse(stats),
	}
	if req.EmployeeID != "" {
		resp.EmployeeID = &req.EmployeeID
	}
	return resp, nil
}

// GetEmployeeStats implements dashboard.DashboardService.
func (s *DashboardServiceImpl) GetEmployeeStats(ctx context.Context, req dashboard.EmployeeStatsRequest) (dashboard.EmployeeStatsResponse, error) {
	if err := req.Validate(); err != nil {
		return dashboard.EmployeeStatsResponse{}, err
	}

	companyID, err := jwt.CompanyIDFromContext(ctx)
	if err != nil {
		return dashboard.EmployeeStatsResponse{}, err
	}

	period := dashboard.PeriodStatsRequest{Month: req.Month}
	start, end := period.Period(s.reconciler.Location())
	window := reconcile.Window{From: start, To: end}
	in, err := s.loadPeriod(ctx, companyID, window)
	if err != nil {
		return dashboard.EmployeeStatsResponse{}, err
	}

	rows := make([]dashboard.EmployeeStatsRow, len(in.roster))

	// each rollup is independent and pure; fan out over the roster
	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i, emp := range in.roster {
		i, emp := i, emp
		g.Go(func() error {
			if err := gCtx.Err(); err != nil {
				return err
			}
			stats := s.reconciler.Stats(in.roster, in.schedules, in.events, window, attendance.GroupByEmployeeDay, emp.ID)
			rows[i] = dashboard.EmployeeStatsRow{
				No:                  i + 1,
				EmployeeID:          emp.ID,
				EmployeeCode:        emp.EmployeeCode,
				EmployeeName:        emp.FullName,
				Department:          emp.Department,
				PeriodStatsResponse: attendance.NewPeriodStatsResponse(stats),
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return dashboard.EmployeeStatsResponse{}, err
	}

	return dashboard.EmployeeStatsResponse{
		Month:     req.Month,
		Employees: rows,
	}, nil
}

func inRoster(roster []employee.Employee, employeeID string) bool {
	for _, emp := range roster {
		if emp.ID == employeeID {
			return true
		}
	}
	return false
}
