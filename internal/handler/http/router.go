package http

import (
	"log/slog"

	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/user"
	"github.com/cmlabs-hris/attendance-backend-go/internal/handler/http/middleware"
	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/jwt"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"
)

type RouterConfig struct {
	AllowedOrigins []string
	Logger         *slog.Logger
	LogLevel       slog.Level
}

type Handlers struct {
	Auth       AuthHandler
	Employee   EmployeeHandler
	Schedule   ScheduleHandler
	Attendance AttendanceHandler
	Report     ReportHandler
	Dashboard  DashboardHandler
}

func NewRouter(cfg RouterConfig, JWTService jwt.Service, h Handlers) *chi.Mux {
	r := chi.NewRouter()

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link", "Content-Disposition"},
		MaxAge:           300,
	}))

	r.Use(chiMiddleware.RequestID)
	r.Use(httplog.RequestLogger(logger, &httplog.Options{
		Level:  cfg.LogLevel,
		Schema: httplog.SchemaECS,
	}))

	r.Use(chiMiddleware.AllowContentType("application/json"))
	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/"))

	r.Route("/api/v1", func(r chi.Router) {

		r.Route("/auth", func(r chi.Router) {
			r.Post("/login", h.Auth.Login)
		})

		// Requires authentication and a company scope
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(JWTService.JWTAuth()))
			r.Use(middleware.AuthRequired)
			r.Use(middleware.RequireCompany)

			r.Route("/employees", func(r chi.Router) {
				r.With(middleware.RequirePermission(user.PermissionEmployeeView)).Get("/", h.Employee.List)

				// Manager only
				r.Group(func(r chi.Router) {
					r.Use(middleware.RequireManager)
					r.Use(middleware.RequirePermission(user.PermissionEmployeeManage))
					r.Put("/{id}/schedule", h.Employee.AssignSchedule)
				})
			})

			r.Route("/schedules", func(r chi.Router) {
				r.Group(func(r chi.Router) {
					r.Use(middleware.RequirePermission(user.PermissionScheduleView))
					r.Get("/", h.Schedule.List)
					r.Get("/{id}", h.Schedule.Get)
				})

				r.With(middleware.RequirePermission(user.PermissionScheduleManage)).Post("/", h.Schedule.Create)
			})

			r.Route("/attendance/events", func(r chi.Router) {
				r.With(middleware.RequirePermission(user.PermissionAttendanceView)).Get("/", h.Attendance.List)
				r.With(middleware.RequirePermission(user.PermissionAttendanceIngest)).Post("/", h.Attendance.Ingest)
			})

			r.Route("/reports/attendance/daily", func(r chi.Router) {
				r.With(middleware.RequirePermission(user.PermissionReportsView)).Get("/", h.Report.GetDailyAttendanceReport)
				r.With(middleware.RequirePermission(user.PermissionReportsExport)).Get("/export", h.Report.ExportDailyAttendanceReport)
			})

			r.Route("/dashboard/attendance", func(r chi.Router) {
				r.Use(middleware.RequirePermission(user.PermissionReportsView))
				r.Get("/", h.Dashboard.GetPeriodStats)
				r.Get("/employees", h.Dashboard.GetEmployeeStats)
			})
		})
	})

	return r
}
