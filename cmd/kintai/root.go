package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/cmlabs-hris/kintai-backend-go/internal/config"
	"github.com/cmlabs-hris/kintai-backend-go/internal/domain/report"
	"github.com/cmlabs-hris/kintai-backend-go/internal/pkg/database"
	"github.com/cmlabs-hris/kintai-backend-go/internal/pkg/logger"
	"github.com/cmlabs-hris/kintai-backend-go/internal/pkg/storage"
	"github.com/cmlabs-hris/kintai-backend-go/internal/repository/postgresql"
	"github.com/cmlabs-hris/kintai-backend-go/internal/service/monthly"
	reportService "github.com/cmlabs-hris/kintai-backend-go/internal/service/report"
	"github.com/spf13/cobra"
)

func newRootCmd() *cobra.Command {
	var logLevel string

	cmd := &cobra.Command{
		Use:   "kintai",
		Short: "Time accounting tools",
		Long: `kintai computes worked, overtime and night hours from clock events
and renders monthly attendance reports from the database.`,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			slog.SetDefault(logger.New(cmd.ErrOrStderr(), logger.ParseLevel(logLevel), "cli"))
		},
	}

	cmd.PersistentFlags().StringVar(&logLevel, "log-level", "warn", "Log level: debug, info, warn, error")

	cmd.AddCommand(newCalcCmd())
	cmd.AddCommand(newReportCmd())
	cmd.AddCommand(newArchiveCmd())
	return cmd
}

type backend struct {
	db      *database.DB
	reports report.ReportService
}

func (b *backend) Close() {
	b.db.Close()
}

// openBackend connects to the database configured in the environment and
// builds the report service on top of it.
func openBackend() (*backend, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	db, err := database.NewPostgreSQLDB(cfg.DatabaseURL())
	if err != nil {
		return nil, fmt.Errorf("connect database: %w", err)
	}

	fileStorage, err := storage.NewLocalStorage(cfg.Storage.BasePath, cfg.Storage.BaseURL)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("init storage: %w", err)
	}

	employeeRepo := postgresql.NewEmployeeRepository(db)
	attendanceRepo := postgresql.NewAttendanceRepository(db)
	loader := monthly.NewLoader(employeeRepo, attendanceRepo, cfg.Timesheet.Settings())

	return &backend{
		db:      db,
		reports: reportService.NewReportService(loader, employeeRepo, attendanceRepo, fileStorage),
	}, nil
}

func writeFile(path string, data []byte) error {
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
