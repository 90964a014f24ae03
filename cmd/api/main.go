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

	"github.com/cmlabs-hris/kintai-backend-go/internal/config"
	appHTTP "github.com/cmlabs-hris/kintai-backend-go/internal/handler/http"
	"github.com/cmlabs-hris/kintai-backend-go/internal/pkg/cron"
	"github.com/cmlabs-hris/kintai-backend-go/internal/pkg/database"
	"github.com/cmlabs-hris/kintai-backend-go/internal/pkg/jwt"
	"github.com/cmlabs-hris/kintai-backend-go/internal/pkg/logger"
	"github.com/cmlabs-hris/kintai-backend-go/internal/pkg/storage"
	"github.com/cmlabs-hris/kintai-backend-go/internal/repository/postgresql"
	attendanceService "github.com/cmlabs-hris/kintai-backend-go/internal/service/attendance"
	employeeService "github.com/cmlabs-hris/kintai-backend-go/internal/service/employee"
	"github.com/cmlabs-hris/kintai-backend-go/internal/service/file"
	"github.com/cmlabs-hris/kintai-backend-go/internal/service/monthly"
	payrollService "github.com/cmlabs-hris/kintai-backend-go/internal/service/payroll"
	reportService "github.com/cmlabs-hris/kintai-backend-go/internal/service/report"
	"github.com/cmlabs-hris/kintai-backend-go/migrations"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		os.Exit(1)
	}
	if err := cfg.ValidateServer(); err != nil {
		fmt.Println("Error loading config:", err)
		os.Exit(1)
	}

	log := logger.New(os.Stdout, logger.ParseLevel(cfg.App.LogLevel), cfg.App.Env)
	slog.SetDefault(log)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := database.NewPostgreSQLDB(cfg.DatabaseURL())
	if err != nil {
		slog.Error("Error connecting to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	if err := database.Migrate(cfg.DatabaseURL(), migrations.FS); err != nil {
		slog.Error("Error applying migrations", "error", err)
		os.Exit(1)
	}

	employeeRepo := postgresql.NewEmployeeRepository(db)
	attendanceRepo := postgresql.NewAttendanceRepository(db)

	fileStorage, err := storage.NewLocalStorage(cfg.Storage.BasePath, cfg.Storage.BaseURL)
	if err != nil {
		slog.Error("Error initializing storage", "error", err)
		os.Exit(1)
	}

	JWTService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration)

	loc := cfg.App.Location()
	settings := cfg.Timesheet.Settings()
	loader := monthly.NewLoader(employeeRepo, attendanceRepo, settings)

	attendanceSvc := attendanceService.NewAttendanceService(
		attendanceRepo,
		employeeRepo,
		file.NewFileService(fileStorage),
		settings,
		loc,
		cfg.Timesheet.RequirePhoto,
	)
	employeeSvc := employeeService.NewEmployeeService(postgresql.NewTxRunner(db), employeeRepo)
	reportSvc := reportService.NewReportService(loader, employeeRepo, attendanceRepo, fileStorage)
	payrollSvc := payrollService.NewPayrollService(loader, loc)

	router := appHTTP.NewRouter(appHTTP.RouterOptions{
		Logger:         log,
		AllowedOrigins: cfg.App.AllowedOrigins,
		UploadsDir:     cfg.Storage.BasePath,
	}, JWTService, appHTTP.Handlers{
		Attendance: appHTTP.NewAttendanceHandler(attendanceSvc),
		Employee:   appHTTP.NewEmployeeHandler(employeeSvc),
		Report:     appHTTP.NewReportHandler(reportSvc),
		Payroll:    appHTTP.NewPayrollHandler(payrollSvc),
	})

	scheduler := cron.NewScheduler()
	if cfg.Cron.ArchiveEnabled {
		cron.NewReportJobs(reportSvc, cfg.Cron.ArchiveInterval, loc).RegisterJobs(scheduler)
	}
	scheduler.Start(ctx)
	defer scheduler.Stop()

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.App.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		slog.Info("Server starting", "port", cfg.App.Port, "env", cfg.App.Env, "timezone", loc.String())
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("Server stopped", "error", err)
			stop()
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.Error("Graceful shutdown failed", "error", err)
	}
	slog.Info("Server stopped")
}
