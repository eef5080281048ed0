package http

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/auth"
	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/dashboard"
	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/report"
	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/schedule"
	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/user"
	"github.com/cmlabs-hris/attendance-backend-go/internal/handler/http/response"
	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/export"
	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/jwt"
	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/validator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeAuthService struct{}

func (fakeAuthService) Login(ctx context.Context, req auth.LoginRequest) (auth.TokenResponse, error) {
	if req.Password != "password123" {
		return auth.TokenResponse{}, auth.ErrInvalidCredentials
	}
	return auth.TokenResponse{AccessToken: "token", TokenType: "Bearer", ExpiresIn: 3600}, nil
}

type fakeEmployeeService struct {
	assigned employee.AssignScheduleRequest
}

func (f *fakeEmployeeService) ListEmployees(ctx context.Context) ([]employee.EmployeeResponse, error) {
	return []employee.EmployeeResponse{{ID: "emp-1", FullName: "Ayu Lestari"}}, nil
}

func (f *fakeEmployeeService) AssignSchedule(ctx context.Context, req employee.AssignScheduleRequest) (employee.EmployeeResponse, error) {
	f.assigned = req
	return employee.EmployeeResponse{ID: req.EmployeeID, WorkScheduleID: req.WorkScheduleID}, nil
}

type fakeScheduleService struct{}

func (fakeScheduleService) CreateWorkSchedule(ctx context.Context, req schedule.CreateWorkScheduleRequest) (schedule.WorkScheduleResponse, error) {
	if req.Name == "Office" {
		return schedule.WorkScheduleResponse{}, schedule.ErrWorkScheduleNameExists
	}
	return schedule.WorkScheduleResponse{ID: "ws-1", Name: req.Name}, nil
}

func (fakeScheduleService) GetWorkSchedule(ctx context.Context, id string) (schedule.WorkScheduleResponse, error) {
	return schedule.WorkScheduleResponse{}, schedule.ErrWorkScheduleNotFound
}

func (fakeScheduleService) ListWorkSchedules(ctx context.Context) ([]schedule.WorkScheduleResponse, error) {
	return []schedule.WorkScheduleResponse{}, nil
}

type fakeEventService struct {
	filter attendance.EventFilter
}

func (f *fakeEventService) IngestEvents(ctx context.Context, req attendance.IngestEventsRequest) (attendance.IngestEventsResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.IngestEventsResponse{}, err
	}
	return attendance.IngestEventsResponse{Received: len(req.Events), Stored: int64(len(req.Events))}, nil
}

func (f *fakeEventService) ListEvents(ctx context.Context, filter attendance.EventFilter) ([]attendance.EventResponse, error) {
	f.filter = filter
	return []attendance.EventResponse{}, nil
}

type fakeReportService struct {
	req report.DailyAttendanceReportRequest
}

func (f *fakeReportService) GetDailyAttendanceReport(ctx context.Context, req report.DailyAttendanceReportRequest) (report.DailyAttendanceReport, error) {
	f.req = req
	return report.DailyAttendanceReport{Date: req.Date}, nil
}

func (f *fakeReportService) ExportDailyAttendanceReport(ctx context.Context, req report.DailyAttendanceReportRequest) ([]byte, error) {
	f.req = req
	return []byte("xlsx-bytes"), nil
}

type fakeDashboardService struct{}

func (fakeDashboardService) GetPeriodStats(ctx context.Context, req dashboard.PeriodStatsRequest) (dashboard.PeriodStatsResponse, error) {
	if req.EmployeeID == "ghost" {
		return dashboard.PeriodStatsResponse{}, dashboard.ErrEmployeeNotInRoster
	}
	if err := req.Validate(); err != nil {
		return dashboard.PeriodStatsResponse{}, err
	}
	return dashboard.PeriodStatsResponse{PeriodStart: "2024-05-01", GroupBy: "employee_day"}, nil
}

func (fakeDashboardService) GetEmployeeStats(ctx context.Context, req dashboard.EmployeeStatsRequest) (dashboard.EmployeeStatsResponse, error) {
	return dashboard.EmployeeStatsResponse{Month: req.Month}, nil
}

type testServer struct {
	handler   http.Handler
	jwt       jwt.Service
	employees *fakeEmployeeService
	events    *fakeEventService
	reports   *fakeReportService
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	jwtService, err := jwt.NewJWTService("test-secret-key-for-jwt", "1h")
	require.NoError(t, err)

	ts := &testServer{
		jwt:       jwtService,
		employees: &fakeEmployeeService{},
		events:    &fakeEventService{},
		reports:   &fakeReportService{},
	}
	ts.handler = NewRouter(
		RouterConfig{
			AllowedOrigins: []string{"http://localhost:3000"},
			Logger:         slog.New(slog.NewJSONHandler(io.Discard, nil)),
		},
		jwtService,
		Handlers{
			Auth:       NewAuthHandler(fakeAuthService{}),
			Employee:   NewEmployeeHandler(ts.employees),
			Schedule:   NewScheduleHandler(fakeScheduleService{}),
			Attendance: NewAttendanceHandler(ts.events),
			Report:     NewReportHandler(ts.reports),
			Dashboard:  NewDashboardHandler(fakeDashboardService{}),
		},
	)
	return ts
}

func (ts *testServer) token(t *testing.T, role user.Role) string {
	t.Helper()
	token, _, err := ts.jwt.GenerateAccessToken("usr-1", "hr@example.com", nil, "company-1", role)
	require.NoError(t, err)
	return token
}

func (ts *testServer) do(t *testing.T, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	ts.handler.ServeHTTP(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) response.Response {
	t.Helper()
	var resp response.Response
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	return resp
}

func TestLogin(t *testing.T) {
	ts := newTestServer(t)

	rec := ts.do(t, http.MethodPost, "/api/v1/auth/login", "", map[string]string{"email": "hr@example.com", "password": "password123"})
	require.Equal(t, http.StatusOK, rec.Code)
	resp := decode(t, rec)
	assert.True(t, resp.Success)
	assert.Equal(t, "token", resp.Data.(map[string]interface{})["access_token"])

	rec = ts.do(t, http.MethodPost, "/api/v1/auth/login", "", map[string]string{"email": "hr@example.com", "password": "nope"})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthentication(t *testing.T) {
	ts := newTestServer(t)

	t.Run("missing token", func(t *testing.T) {
		rec := ts.do(t, http.MethodGet, "/api/v1/employees", "", nil)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("tampered token", func(t *testing.T) {
		rec := ts.do(t, http.MethodGet, "/api/v1/employees", ts.token(t, user.RoleManager)+"x", nil)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("no company claim", func(t *testing.T) {
		_, token, err := ts.jwt.JWTAuth().Encode(map[string]interface{}{"type": "access", "role": "manager"})
		require.NoError(t, err)
		rec := ts.do(t, http.MethodGet, "/api/v1/employees", token, nil)
		assert.Equal(t, http.StatusForbidden, rec.Code)
	})
}

func TestPermissions(t *testing.T) {
	ts := newTestServer(t)
	employeeToken := ts.token(t, user.RoleEmployee)

	tests := []struct {
		method string
		path   string
		body   interface{}
		want   int
	}{
		{http.MethodGet, "/api/v1/employees", nil, http.StatusForbidden},
		{http.MethodPut, "/api/v1/employees/emp-1/schedule", map[string]string{}, http.StatusForbidden},
		{http.MethodPost, "/api/v1/schedules", map[string]string{"name": "Night"}, http.StatusForbidden},
		{http.MethodPost, "/api/v1/attendance/events", map[string]string{}, http.StatusForbidden},
		{http.MethodGet, "/api/v1/reports/attendance/daily/export?date=2024-05-06", nil, http.StatusForbidden},
		{http.MethodGet, "/api/v1/schedules", nil, http.StatusOK},
		{http.MethodGet, "/api/v1/reports/attendance/daily?date=2024-05-06", nil, http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.method+" "+tt.path, func(t *testing.T) {
			rec := ts.do(t, tt.method, tt.path, employeeToken, tt.body)
			assert.Equal(t, tt.want, rec.Code)
		})
	}
}

func TestEmployeeRoutes(t *testing.T) {
	ts := newTestServer(t)
	token := ts.token(t, user.RoleManager)

	rec := ts.do(t, http.MethodGet, "/api/v1/employees", token, nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = ts.do(t, http.MethodPut, "/api/v1/employees/emp-7/schedule", token, map[string]string{"work_schedule_id": "ws-1"})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "emp-7", ts.employees.assigned.EmployeeID)
	require.NotNil(t, ts.employees.assigned.WorkScheduleID)
	assert.Equal(t, "ws-1", *ts.employees.assigned.WorkScheduleID)
}

func TestScheduleRoutes(t *testing.T) {
	ts := newTestServer(t)
	token := ts.token(t, user.RoleManager)

	rec := ts.do(t, http.MethodPost, "/api/v1/schedules", token, map[string]string{"name": "Night"})
	assert.Equal(t, http.StatusCreated, rec.Code)

	rec = ts.do(t, http.MethodPost, "/api/v1/schedules", token, map[string]string{"name": "Office"})
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, "CONFLICT", decode(t, rec).Error.Code)

	rec = ts.do(t, http.MethodGet, "/api/v1/schedules/ws-9", token, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestAttendanceRoutes(t *testing.T) {
	ts := newTestServer(t)
	token := ts.token(t, user.RoleManager)

	rec := ts.do(t, http.MethodPost, "/api/v1/attendance/events", token, map[string]interface{}{
		"events": []map[string]string{{"employee_id": "emp-1", "clock_in": "2024-05-06 09:00:00"}},
	})
	assert.Equal(t, http.StatusCreated, rec.Code)

	rec = ts.do(t, http.MethodPost, "/api/v1/attendance/events", token, map[string]interface{}{"events": []string{}})
	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Contains(t, decode(t, rec).Error.Details, "events")

	rec = ts.do(t, http.MethodGet, "/api/v1/attendance/events?from=2024-05-01&to=2024-05-02", token, nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, attendance.EventFilter{From: "2024-05-01", To: "2024-05-02"}, ts.events.filter)
}

func TestReportRoutes(t *testing.T) {
	ts := newTestServer(t)
	token := ts.token(t, user.RoleManager)

	rec := ts.do(t, http.MethodGet, "/api/v1/reports/attendance/daily?date=2024-05-06&only_variance=true", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, ts.reports.req.OnlyVariance)

	rec = ts.do(t, http.MethodGet, "/api/v1/reports/attendance/daily?date=2024-05-06&only_variance=maybe", token, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = ts.do(t, http.MethodGet, "/api/v1/reports/attendance/daily/export?date=2024-05-06", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, export.ContentTypeXLSX, rec.Header().Get("Content-Type"))
	assert.True(t, strings.Contains(rec.Header().Get("Content-Disposition"), "attendance-2024-05-06.xlsx"))
	assert.Equal(t, "xlsx-bytes", rec.Body.String())
}

func TestDashboardRoutes(t *testing.T) {
	ts := newTestServer(t)
	token := ts.token(t, user.RoleEmployee)

	rec := ts.do(t, http.MethodGet, "/api/v1/dashboard/attendance?month=2024-05", token, nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = ts.do(t, http.MethodGet, "/api/v1/dashboard/attendance?month=2024-05&employee_id=ghost", token, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = ts.do(t, http.MethodGet, "/api/v1/dashboard/attendance", token, nil)
	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Contains(t, decode(t, rec).Error.Details, "month")

	rec = ts.do(t, http.MethodGet, "/api/v1/dashboard/attendance/employees?month=2024-05", token, nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestHandleError_Validation(t *testing.T) {
	rec := httptest.NewRecorder()
	response.HandleError(rec, validator.ValidationErrors{{Field: "date", Message: "date is required"}})
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}
