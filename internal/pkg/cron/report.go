package cron

import (
	"context"
	"time"

	"github.com/cmlabs-hris/kintai-backend-go/internal/domain/report"
)

type ReportJobs struct {
	reportService report.ReportService
	interval      time.Duration
	loc           *time.Location
	now           func() time.Time
}

func NewReportJobs(reportService report.ReportService, interval time.Duration, loc *time.Location) *ReportJobs {
	if loc == nil {
		loc = time.UTC
	}
	return &ReportJobs{
		reportService: reportService,
		interval:      interval,
		loc:           loc,
		now:           time.Now,
	}
}

func (j *ReportJobs) RegisterJobs(scheduler *Scheduler) {
	scheduler.AddJob("archive_monthly_reports", j.interval, j.ArchivePreviousMonth)
}

// ArchivePreviousMonth stores the workbooks of the month before the current one.
// Employees already archived are skipped, so repeated ticks are cheap.
func (j *ReportJobs) ArchivePreviousMonth(ctx context.Context) error {
	year, month := previousMonth(j.now().In(j.loc))
	_, err := j.reportService.ArchiveMonth(ctx, year, month)
	return err
}

func previousMonth(t time.Time) (int, int) {
	first := time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
	prev := first.AddDate(0, -1, 0)
	return prev.Year(), int(prev.Month())
}
