package postgresql

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shiftpulse/shiftpulse-backend-go/internal/domain/performance"
	"github.com/shiftpulse/shiftpulse-backend-go/internal/pkg/database"
)

type summaryRepository struct {
	db *database.DB
}

func NewSummaryRepository(db *database.DB) performance.SummaryRepository {
	return &summaryRepository{db: db}
}

// Upsert implements performance.SummaryRepository. Summaries are
// reproducible, so a replace on (employee_id, month_year) is always safe.
func (r *summaryRepository) Upsert(ctx context.Context, summary performance.MonthlySummary) (performance.MonthlySummary, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO monthly_summaries (
			company_id, employee_id, month_year,
			total_working_days, total_delay_minutes, total_break_minutes,
			total_overtime_hours, average_performance_score, punctuality_percentage,
			performance_status, delay_to_finish_hours, final_overtime_hours
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12
		)
		ON CONFLICT (employee_id, month_year)
		DO UPDATE SET
			total_working_days = EXCLUDED.total_working_days,
			total_delay_minutes = EXCLUDED.total_delay_minutes,
			total_break_minutes = EXCLUDED.total_break_minutes,
			total_overtime_hours = EXCLUDED.total_overtime_hours,
			average_performance_score = EXCLUDED.average_performance_score,
			punctuality_percentage = EXCLUDED.punctuality_percentage,
			performance_status = EXCLUDED.performance_status,
			delay_to_finish_hours = EXCLUDED.delay_to_finish_hours,
			final_overtime_hours = EXCLUDED.final_overtime_hours,
			updated_at = NOW()
		RETURNING id, created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		summary.CompanyID,
		summary.EmployeeID,
		summary.MonthYear,
		summary.TotalWorkingDays,
		summary.TotalDelayMinutes,
		summary.TotalBreakMinutes,
		summary.TotalOvertimeHours,
		summary.AveragePerformanceScore,
		summary.PunctualityPercentage,
		summary.PerformanceStatus,
		summary.DelayToFinishHours,
		summary.FinalOvertimeHours,
	).Scan(&summary.ID, &summary.CreatedAt, &summary.UpdatedAt)

	if err != nil {
		return performance.MonthlySummary{}, fmt.Errorf("failed to upsert monthly summary: %w", err)
	}

	return summary, nil
}

// GetByEmployeeAndMonth implements performance.SummaryRepository.
func (r *summaryRepository) GetByEmployeeAndMonth(ctx context.Context, employeeID string, monthYear string, companyID string) (performance.MonthlySummary, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT m.id, m.company_id, m.employee_id, m.month_year,
			   m.total_working_days, m.total_delay_minutes, m.total_break_minutes,
			   m.total_overtime_hours, m.average_performance_score, m.punctuality_percentage,
			   m.performance_status, m.delay_to_finish_hours, m.final_overtime_hours,
			   m.created_at, m.updated_at, e.name AS employee_name
		FROM monthly_summaries m
		JOIN employees e ON e.id = m.employee_id
		WHERE m.employee_id = $1
		  AND m.month_year = $2
		  AND m.company_id = $3
	`

	var s performance.MonthlySummary
	err := q.QueryRow(ctx, query, employeeID, monthYear, companyID).Scan(
		&s.ID, &s.CompanyID, &s.EmployeeID, &s.MonthYear,
		&s.TotalWorkingDays, &s.TotalDelayMinutes, &s.TotalBreakMinutes,
		&s.TotalOvertimeHours, &s.AveragePerformanceScore, &s.PunctualityPercentage,
		&s.PerformanceStatus, &s.DelayToFinishHours, &s.FinalOvertimeHours,
		&s.CreatedAt, &s.UpdatedAt, &s.EmployeeName,
	)

	if err != nil {
		if err == pgx.ErrNoRows {
			return performance.MonthlySummary{}, performance.ErrSummaryNotFound
		}
		return performance.MonthlySummary{}, fmt.Errorf("failed to get monthly summary: %w", err)
	}

	return s, nil
}

// ListByCompanyAndMonth implements performance.SummaryRepository.
func (r *summaryRepository) ListByCompanyAndMonth(ctx context.Context, companyID string, monthYear string) ([]performance.MonthlySummary, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT m.id, m.company_id, m.employee_id, m.month_year,
			   m.total_working_days, m.total_delay_minutes, m.total_break_minutes,
			   m.total_overtime_hours, m.average_performance_score, m.punctuality_percentage,
			   m.performance_status, m.delay_to_finish_hours, m.final_overtime_hours,
			   m.created_at, m.updated_at, e.name AS employee_name
		FROM monthly_summaries m
		JOIN employees e ON e.id = m.employee_id
		WHERE m.company_id = $1
		  AND m.month_year = $2
		ORDER BY m.average_performance_score DESC, e.name ASC
	`

	rows, err := q.Query(ctx, query, companyID, monthYear)
	if err != nil {
		return nil, fmt.Errorf("failed to list monthly summaries: %w", err)
	}
	defer rows.Close()

	var summaries []performance.MonthlySummary
	for rows.Next() {
		var s performance.MonthlySummary
		if err := rows.Scan(
			&s.ID, &s.CompanyID, &s.EmployeeID, &s.MonthYear,
			&s.TotalWorkingDays, &s.TotalDelayMinutes, &s.TotalBreakMinutes,
			&s.TotalOvertimeHours, &s.AveragePerformanceScore, &s.PunctualityPercentage,
			&s.PerformanceStatus, &s.DelayToFinishHours, &s.FinalOvertimeHours,
			&s.CreatedAt, &s.UpdatedAt, &s.EmployeeName,
		); err != nil {
			return nil, fmt.Errorf("failed to scan monthly summary: %w", err)
		}
		summaries = append(summaries, s)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate monthly summaries: %w", err)
	}

	return summaries, nil
}
