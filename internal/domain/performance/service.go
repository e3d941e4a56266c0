package performance

import (
	"context"
)

// PerformanceService defines business logic for scoring reconciliation and
// month-level aggregation.
type PerformanceService interface {
	// ReassignShift reclassifies a day's already-recorded worked hours
	// against a new shift (or day off). Raw clock times are never touched.
	// Applying the same reassignment twice yields the same result as once.
	ReassignShift(ctx context.Context, req ReassignShiftRequest) (ReassignShiftResponse, error)

	// RecalculateRange replays the calculator and aggregator over a date
	// range, reporting per-record errors without aborting the batch.
	RecalculateRange(ctx context.Context, req RecalculateRequest) (RecalculateResponse, error)

	// RefreshMonthlySummary re-aggregates one (employee, month) summary row
	// from that month's attendance records.
	RefreshMonthlySummary(ctx context.Context, employeeID string, monthYear string, companyID string) (MonthlySummary, error)

	GetMonthlySummary(ctx context.Context, employeeID string, monthYear string) (MonthlySummaryResponse, error)

	ListMonthlySummaries(ctx context.Context, filter SummaryFilter) ([]MonthlySummaryResponse, error)
}
