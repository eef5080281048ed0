package http

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/report"
	"github.com/cmlabs-hris/attendance-backend-go/internal/handler/http/response"
	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/export"
)

type ReportHandler interface {
	// Daily attendance report
	GetDailyAttendanceReport(w http.ResponseWriter, r *http.Request)

	// Daily attendance report as an xlsx workbook
	ExportDailyAttendanceReport(w http.ResponseWriter, r *http.Request)
}

type reportHandlerImpl struct {
	reportService report.ReportService
}

func NewReportHandler(reportService report.ReportService) ReportHandler {
	return &reportHandlerImpl{
		reportService: reportService,
	}
}

func parseDailyReportQuery(r *http.Request) (report.DailyAttendanceReportRequest, error) {
	req := report.DailyAttendanceReportRequest{Date: r.URL.Query().Get("date")}
	if raw := r.URL.Query().Get("only_variance"); raw != "" {
		v, err := strconv.ParseBool(raw)
		if err != nil {
			return req, fmt.Errorf("invalid only_variance parameter: %w", err)
		}
		req.OnlyVariance = v
	}
	return req, nil
}

// GetDailyAttendanceReport handles GET /reports/attendance/daily
func (h *reportHandlerImpl) GetDailyAttendanceReport(w http.ResponseWriter, r *http.Request) {
	req, err := parseDailyReportQuery(r)
	if err != nil {
		response.BadRequest(w, err.Error(), nil)
		return
	}

	result, err := h.reportService.GetDailyAttendanceReport(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// ExportDailyAttendanceReport handles GET /reports/attendance/daily/export
func (h *reportHandlerImpl) ExportDailyAttendanceReport(w http.ResponseWriter, r *http.Request) {
	req, err := parseDailyReportQuery(r)
	if err != nil {
		response.BadRequest(w, err.Error(), nil)
		return
	}

	body, err := h.reportService.ExportDailyAttendanceReport(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Attachment(w, export.ContentTypeXLSX, fmt.Sprintf("attendance-%s.xlsx", req.Date), body)
}
