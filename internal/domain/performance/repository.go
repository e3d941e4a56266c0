package performance

import (
	"context"
)

// SummaryRepository defines data access for denormalized monthly summary
// rows, keyed by (employee, month).
type SummaryRepository interface {
	// Upsert replaces the summary row for (employee, month).
	Upsert(ctx context.Context, summary MonthlySummary) (MonthlySummary, error)

	GetByEmployeeAndMonth(ctx context.Context, employeeID string, monthYear string, companyID string) (MonthlySummary, error)

	ListByCompanyAndMonth(ctx context.Context, companyID string, monthYear string) ([]MonthlySummary, error)
}
