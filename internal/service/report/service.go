package report

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/report"
	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/schedule"
	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/export"
	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/jwt"
	"github.com/cmlabs-hris/attendance-backend-go/internal/service/reconcile"
	"github.com/cmlabs-hris/attendance-backend-go/internal/service/reference"
	"golang.org/x/sync/errgroup"
)

type ReportServiceImpl struct {
	reference  *reference.Store
	events     attendance.EventRepository
	reconciler *reconcile.Reconciler
	baseline   float64
}

func NewReportService(ref *reference.Store, events attendance.EventRepository, reconciler *reconcile.Reconciler, overtimeBaselineHours float64) report.ReportService {
	return &ReportServiceImpl{
		reference:  ref,
		events:     events,
		reconciler: reconciler,
		baseline:   overtimeBaselineHours,
	}
}

type dailyInputs struct {
	roster    []employee.Employee
	schedules []schedule.WorkSchedule
	events    []attendance.AttendanceEvent
}

// loadInputs fetches the three inputs of one window in parallel
func (s *ReportServiceImpl) loadInputs(ctx context.Context, companyID string, window reconcile.Window) (dailyInputs, error) {
	var in dailyInputs
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
		return dailyInputs{}, err
	}
	return in, nil
}

// GetDailyAttendanceReport implements report.ReportService.
func (s *ReportServiceImpl) GetDailyAttendanceReport(ctx context.Context, req report.DailyAttendanceReportRequest) (report.DailyAttendanceReport, error) {
	if err := req.Validate(); err != nil {
		return report.DailyAttendanceReport{}, err
	}

	companyID, err := jwt.CompanyIDFromContext(ctx)
	if err != nil {
		return report.DailyAttendanceReport{}, err
	}

	loc := s.reconciler.Location()
	from, to := req.Window(loc)
	window := reconcile.Window{From: from, To: to}

	in, err := s.loadInputs(ctx, companyID, window)
	if err != nil {
		return report.DailyAttendanceReport{}, err
	}

	result := s.reconciler.BuildRows(in.roster, in.schedules, in.events, window)
	if result.MissingKey > 0 || result.Empty > 0 {
		slog.DebugContext(ctx, "events dropped from daily report",
			"company_id", companyID,
			"date", req.Date,
			"missing_key", result.MissingKey,
			"empty", result.Empty,
		)
	}

	index := reconcile.NewScheduleIndex(in.schedules)
	rows := make([]report.DailyAttendanceRow, 0, len(result.Rows))
	for i, row := range result.Rows {
		if req.OnlyVariance && !row.HasVariance {
			continue
		}
		// BuildRows keeps roster order
		rows = append(rows, newDailyRow(in.roster[i], row, index, loc))
	}

	return report.DailyAttendanceReport{
		Date:        req.Date,
		Timezone:    locationName(loc),
		GeneratedAt: time.Now().In(loc).Format(time.RFC3339),
		Summary:     attendance.NewPeriodStatsResponse(reconcile.SummarizeRows(result.Rows, s.baseline)),
		Dropped: report.DroppedEvents{
			MissingKey: result.MissingKey,
			Empty:      result.Empty,
		},
		Rows: rows,
	}, nil
}

// ExportDailyAttendanceReport implements report.ReportService.
func (s *ReportServiceImpl) ExportDailyAttendanceReport(ctx context.Context, req report.DailyAttendanceReportRequest) ([]byte, error) {
	daily, err := s.GetDailyAttendanceReport(ctx, req)
	if err != nil {
		return nil, err
	}

	data, err := export.WriteXLSX(dailySheet(daily), summarySheet(daily))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", report.ErrReportGenerationFailed, err)
	}
	return data, nil
}

func newDailyRow(emp employee.Employee, row attendance.AttendanceRow, index reconcile.ScheduleIndex, loc *time.Location) report.DailyAttendanceRow {
	out := report.DailyAttendanceRow{
		EmployeeID:          emp.ID,
		EmployeeCode:        emp.EmployeeCode,
		EmployeeName:        emp.FullName,
		Department:          emp.Department,
		ClockIn:             clockString(row.ClockInAt, loc),
		ClockOut:            clockString(row.ClockOutAt, loc),
		Status:              string(row.Status),
		LateMinutes:         row.LateMinutes,
		WorkedHours:         attendance.SecondsToHours(row.WorkedSeconds),
		VarianceLabel:       row.VarianceLabel,
		ArrivalDelta:        row.ArrivalDelta,
		DepartureDelta:      row.DepartureDelta,
		ImplausibleDuration: row.ImplausibleDuration,
		HasVariance:         row.HasVariance,
	}
	if ws := index.Resolve(emp.WorkScheduleID); ws != nil {
		out.ShiftName = ws.Name
	}
	return out
}

// clockString formats a timestamp as local HH:MM
func clockString(t *time.Time, loc *time.Location) *string {
	if t == nil {
		return nil
	}
	lt := *t
	if loc != nil {
		lt = lt.In(loc)
	}
	s := lt.Format("15:04")
	return &s
}

func locationName(loc *time.Location) string {
	if loc == nil {
		return "Local"
	}
	return loc.String()
}

func derefOrEmpty(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func dailySheet(daily report.DailyAttendanceReport) export.Sheet {
	rows := make([][]interface{}, 0, len(daily.Rows))
	for _, r := range daily.Rows {
		rows = append(rows, []interface{}{
			r.EmployeeCode, r.EmployeeName, r.Department, r.ShiftName,
			derefOrEmpty(r.ClockIn), derefOrEmpty(r.ClockOut),
			r.Status, r.LateMinutes, r.WorkedHours, r.VarianceLabel,
		})
	}
	return export.Sheet{
		Name:  "Attendance",
		Title: fmt.Sprintf("Daily attendance %s (%s)", daily.Date, daily.Timezone),
		Headers: []string{
			"Code", "Employee", "Department", "Shift",
			"Clock in", "Clock out", "Status", "Late (min)", "Worked (h)", "Variance",
		},
		Rows:   rows,
		Widths: map[string]float64{"B": 28, "C": 18, "D": 16, "J": 32},
	}
}

func summarySheet(daily report.DailyAttendanceReport) export.Sheet {
	s := daily.Summary
	return export.Sheet{
		Name:    "Summary",
		Headers: []string{"Metric", "Value"},
		Rows: [][]interface{}{
			{"Present", s.PresentDays},
			{"Late", s.LateDays},
			{"Absent", s.AbsentDays},
			{"Total hours", s.TotalHours},
			{"Average daily hours", s.AverageDailyHours},
			{"Overtime hours", s.OvertimeHours},
			{"Events without employee key", daily.Dropped.MissingKey},
			{"Events without timestamps", daily.Dropped.Empty},
		},
		Widths: map[string]float64{"A": 30},
	}
}
