package performance

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/shiftpulse/shiftpulse-backend-go/internal/domain/attendance"
	"github.com/shiftpulse/shiftpulse-backend-go/internal/domain/performance"
)

// SummaryRefreshJob periodically re-aggregates the current month's summary
// for every employee with attendance this month. Summaries are already
// refreshed on every checkout and reconciliation; the job is a safety net
// that repairs any row missed by a crash between the two writes.
type SummaryRefreshJob struct {
	attendanceRepo attendance.AttendanceRepository
	performanceSvc performance.PerformanceService
	logger         *slog.Logger
}

func NewSummaryRefreshJob(
	attendanceRepo attendance.AttendanceRepository,
	performanceSvc performance.PerformanceService,
	logger *slog.Logger,
) *SummaryRefreshJob {
	return &SummaryRefreshJob{
		attendanceRepo: attendanceRepo,
		performanceSvc: performanceSvc,
		logger:         logger,
	}
}

// Run refreshes every active (employee, month) summary for the current
// month. Individual failures are logged and skipped.
func (j *SummaryRefreshJob) Run(ctx context.Context) error {
	now := time.Now()
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	monthEnd := monthStart.AddDate(0, 1, -1)
	monthYear := monthStart.Format("2006-01")

	refs, err := j.attendanceRepo.ListActiveEmployees(ctx, monthStart, monthEnd)
	if err != nil {
		return fmt.Errorf("failed to list active employees: %w", err)
	}

	var failed int
	for _, ref := range refs {
		if _, err := j.performanceSvc.RefreshMonthlySummary(ctx, ref.EmployeeID, monthYear, ref.CompanyID); err != nil {
			failed++
			j.logger.Error("summary refresh failed",
				"employee_id", ref.EmployeeID,
				"company_id", ref.CompanyID,
				"month", monthYear,
				"error", err)
		}
	}

	j.logger.Info("summary refresh finished",
		"month", monthYear,
		"employees", len(refs),
		"failed", failed)

	return nil
}
