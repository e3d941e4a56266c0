package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/shiftpulse/shiftpulse-backend-go/internal/domain/shift"
	"github.com/shiftpulse/shiftpulse-backend-go/internal/pkg/database"
)

type shiftAssignmentRepository struct {
	db *database.DB
}

func NewShiftAssignmentRepository(db *database.DB) shift.AssignmentRepository {
	return &shiftAssignmentRepository{db: db}
}

// Upsert implements shift.AssignmentRepository. The (employee_id, work_date)
// unique constraint makes repeated assignment of the same day a replace.
func (r *shiftAssignmentRepository) Upsert(ctx context.Context, assignment shift.Assignment) (shift.Assignment, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO shift_assignments (company_id, employee_id, work_date, shift_id, is_day_off)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (employee_id, work_date)
		DO UPDATE SET shift_id = EXCLUDED.shift_id,
					  is_day_off = EXCLUDED.is_day_off,
					  updated_at = NOW()
		RETURNING id, created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		assignment.CompanyID,
		assignment.EmployeeID,
		assignment.WorkDate,
		assignment.ShiftID,
		assignment.IsDayOff,
	).Scan(&assignment.ID, &assignment.CreatedAt, &assignment.UpdatedAt)

	if err != nil {
		return shift.Assignment{}, fmt.Errorf("failed to upsert shift assignment: %w", err)
	}

	return assignment, nil
}

// GetByEmployeeAndDate implements shift.AssignmentRepository. Returns nil
// when no assignment exists for that day.
func (r *shiftAssignmentRepository) GetByEmployeeAndDate(ctx context.Context, employeeID string, workDate time.Time, companyID string) (*shift.Assignment, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, company_id, employee_id, work_date, shift_id, is_day_off,
			   created_at, updated_at
		FROM shift_assignments
		WHERE employee_id = $1
		  AND work_date = $2
		  AND company_id = $3
	`

	var a shift.Assignment
	err := q.QueryRow(ctx, query, employeeID, workDate, companyID).Scan(
		&a.ID, &a.CompanyID, &a.EmployeeID, &a.WorkDate, &a.ShiftID, &a.IsDayOff,
		&a.CreatedAt, &a.UpdatedAt,
	)

	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get shift assignment: %w", err)
	}

	return &a, nil
}

// ListByEmployeeAndRange implements shift.AssignmentRepository.
func (r *shiftAssignmentRepository) ListByEmployeeAndRange(ctx context.Context, employeeID string, start, end time.Time, companyID string) ([]shift.Assignment, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, company_id, employee_id, work_date, shift_id, is_day_off,
			   created_at, updated_at
		FROM shift_assignments
		WHERE employee_id = $1
		  AND work_date BETWEEN $2 AND $3
		  AND company_id = $4
		ORDER BY work_date ASC
	`

	rows, err := q.Query(ctx, query, employeeID, start, end, companyID)
	if err != nil {
		return nil, fmt.Errorf("failed to list shift assignments: %w", err)
	}
	defer rows.Close()

	var assignments []shift.Assignment
	for rows.Next() {
		var a shift.Assignment
		if err := rows.Scan(
			&a.ID, &a.CompanyID, &a.EmployeeID, &a.WorkDate, &a.ShiftID, &a.IsDayOff,
			&a.CreatedAt, &a.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan shift assignment: %w", err)
		}
		assignments = append(assignments, a)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate shift assignments: %w", err)
	}

	return assignments, nil
}
