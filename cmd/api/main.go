package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"
	_ "time/tzdata"

	"github.com/cmlabs-hris/attendance-backend-go/internal/config"
	appHTTP "github.com/cmlabs-hris/attendance-backend-go/internal/handler/http"
	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/cron"
	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/database"
	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/jwt"
	"github.com/cmlabs-hris/attendance-backend-go/internal/repository/postgresql"
	attendanceService "github.com/cmlabs-hris/attendance-backend-go/internal/service/attendance"
	serviceAuth "github.com/cmlabs-hris/attendance-backend-go/internal/service/auth"
	dashboardService "github.com/cmlabs-hris/attendance-backend-go/internal/service/dashboard"
	employeeService "github.com/cmlabs-hris/attendance-backend-go/internal/service/employee"
	"github.com/cmlabs-hris/attendance-backend-go/internal/service/reconcile"
	"github.com/cmlabs-hris/attendance-backend-go/internal/service/reference"
	reportService "github.com/cmlabs-hris/attendance-backend-go/internal/service/report"
	scheduleService "github.com/cmlabs-hris/attendance-backend-go/internal/service/schedule"
	"github.com/go-chi/httplog/v3"
)

func main() {
	if err := run(); err != nil {
		slog.Error("server exited", "error", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	logFormat := httplog.SchemaECS.Concise(cfg.App.Env != "development")
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level:       cfg.SlogLevel(),
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "cmlabs-attendance"),
		slog.String("env", cfg.App.Env),
	)
	slog.SetDefault(logger)

	loc, err := cfg.Location()
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	db, err := database.NewPostgreSQLDB(ctx, cfg.DatabaseURL(), database.DefaultPoolOptions)
	if err != nil {
		return fmt.Errorf("connect database: %w", err)
	}
	defer db.Close()

	userRepo := postgresql.NewUserRepository(db)
	employeeRepo := postgresql.NewEmployeeRepository(db)
	workScheduleRepo := postgresql.NewWorkScheduleRepository(db)
	eventRepo := postgresql.NewEventRepository(db)
	transactor := postgresql.NewTransactor(db)

	JWTService, err := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration)
	if err != nil {
		return err
	}

	referenceStore := reference.NewStore(employeeRepo, workScheduleRepo, cfg.Report.CacheTTL)
	reconciler := reconcile.NewReconciler(loc, cfg.Report.OvertimeBaselineHours)

	authService := serviceAuth.NewAuthService(userRepo, JWTService)
	employeeSvc := employeeService.NewEmployeeService(transactor, employeeRepo, workScheduleRepo, referenceStore)
	scheduleSvc := scheduleService.NewScheduleService(transactor, workScheduleRepo, referenceStore)
	eventSvc := attendanceService.NewEventService(eventRepo, loc)
	reportSvc := reportService.NewReportService(referenceStore, eventRepo, reconciler, cfg.Report.OvertimeBaselineHours)
	dashboardSvc := dashboardService.NewDashboardService(referenceStore, eventRepo, reconciler)

	router := appHTTP.NewRouter(
		appHTTP.RouterConfig{
			AllowedOrigins: cfg.App.CORSAllowedOrigins,
			Logger:         logger,
			LogLevel:       cfg.SlogLevel(),
		},
		JWTService,
		appHTTP.Handlers{
			Auth:       appHTTP.NewAuthHandler(authService),
			Employee:   appHTTP.NewEmployeeHandler(employeeSvc),
			Schedule:   appHTTP.NewScheduleHandler(scheduleSvc),
			Attendance: appHTTP.NewAttendanceHandler(eventSvc),
			Report:     appHTTP.NewReportHandler(reportSvc),
			Dashboard:  appHTTP.NewDashboardHandler(dashboardSvc),
		},
	)

	scheduler := cron.NewScheduler()
	cron.RegisterReferenceJobs(scheduler, referenceStore, cfg.Report.CacheRefreshInterval)
	scheduler.Start(ctx)
	defer scheduler.Stop()

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.App.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		slog.Info("server listening", "addr", server.Addr, "timezone", loc.String())
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
		close(serverErr)
	}()

	select {
	case err := <-serverErr:
		return err
	case <-ctx.Done():
	}

	slog.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}
