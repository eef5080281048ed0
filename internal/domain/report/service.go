package report

import "context"

// ReportService builds attendance reports for the caller's company
type ReportService interface {
	// GetDailyAttendanceReport reconciles one day of events against the roster and schedules
	GetDailyAttendanceReport(ctx context.Context, req DailyAttendanceReportRequest) (DailyAttendanceReport, error)

	// ExportDailyAttendanceReport renders the same report as an XLSX workbook
	ExportDailyAttendanceReport(ctx context.Context, req DailyAttendanceReportRequest) ([]byte, error)
}
