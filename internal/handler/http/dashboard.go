package http

import (
	"net/http"

	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/dashboard"
	"github.com/cmlabs-hris/attendance-backend-go/internal/handler/http/response"
)

type DashboardHandler interface {
	GetPeriodStats(w http.ResponseWriter, r *http.Request)
	GetEmployeeStats(w http.ResponseWriter, r *http.Request)
}

type dashboardHandlerImpl struct {
	dashboardService dashboard.DashboardService
}

func NewDashboardHandler(dashboardService dashboard.DashboardService) DashboardHandler {
	return &dashboardHandlerImpl{
		dashboardService: dashboardService,
	}
}

// GetPeriodStats handles GET /dashboard/attendance?month=YYYY-MM|year=YYYY&employee_id=&group_by=
func (h *dashboardHandlerImpl) GetPeriodStats(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	req := dashboard.PeriodStatsRequest{
		Month:      q.Get("month"),
		Year:       q.Get("year"),
		EmployeeID: q.Get("employee_id"),
		GroupBy:    q.Get("group_by"),
	}

	stats, err := h.dashboardService.GetPeriodStats(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, stats)
}

// GetEmployeeStats handles GET /dashboard/attendance/employees?month=YYYY-MM
func (h *dashboardHandlerImpl) GetEmployeeStats(w http.ResponseWriter, r *http.Request) {
	req := dashboard.EmployeeStatsRequest{Month: r.URL.Query().Get("month")}

	stats, err := h.dashboardService.GetEmployeeStats(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, stats)
}
