package postgresql

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/shiftpulse/shiftpulse-backend-go/internal/domain/shift"
	"github.com/shiftpulse/shiftpulse-backend-go/internal/pkg/database"
)

type shiftRepository struct {
	db *database.DB
}

func NewShiftRepository(db *database.DB) shift.ShiftRepository {
	return &shiftRepository{db: db}
}

// Create implements shift.ShiftRepository.
func (r *shiftRepository) Create(ctx context.Context, newShift shift.Shift) (shift.Shift, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO shifts (company_id, name, start_time, end_time, duration_hours)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		newShift.CompanyID,
		newShift.Name,
		newShift.StartTime,
		newShift.EndTime,
		newShift.DurationHours,
	).Scan(&newShift.ID, &newShift.CreatedAt, &newShift.UpdatedAt)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return shift.Shift{}, shift.ErrShiftNameExists
		}
		return shift.Shift{}, fmt.Errorf("failed to create shift: %w", err)
	}

	return newShift, nil
}

// GetByID implements shift.ShiftRepository.
func (r *shiftRepository) GetByID(ctx context.Context, id string, companyID string) (shift.Shift, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, company_id, name, start_time, end_time, duration_hours,
			   created_at, updated_at, deleted_at
		FROM shifts
		WHERE id = $1
		  AND company_id = $2
		  AND deleted_at IS NULL
	`

	var s shift.Shift
	err := q.QueryRow(ctx, query, id, companyID).Scan(
		&s.ID, &s.CompanyID, &s.Name, &s.StartTime, &s.EndTime, &s.DurationHours,
		&s.CreatedAt, &s.UpdatedAt, &s.DeletedAt,
	)

	if err != nil {
		if err == pgx.ErrNoRows {
			return shift.Shift{}, shift.ErrShiftNotFound
		}
		return shift.Shift{}, fmt.Errorf("failed to get shift: %w", err)
	}

	return s, nil
}

// List implements shift.ShiftRepository.
func (r *shiftRepository) List(ctx context.Context, companyID string) ([]shift.Shift, int64, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, company_id, name, start_time, end_time, duration_hours,
			   created_at, updated_at, deleted_at,
			   COUNT(*) OVER() AS total_count
		FROM shifts
		WHERE company_id = $1
		  AND deleted_at IS NULL
		ORDER BY name ASC
	`

	rows, err := q.Query(ctx, query, companyID)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list shifts: %w", err)
	}
	defer rows.Close()

	var (
		shifts     []shift.Shift
		totalCount int64
	)
	for rows.Next() {
		var s shift.Shift
		if err := rows.Scan(
			&s.ID, &s.CompanyID, &s.Name, &s.StartTime, &s.EndTime, &s.DurationHours,
			&s.CreatedAt, &s.UpdatedAt, &s.DeletedAt,
			&totalCount,
		); err != nil {
			return nil, 0, fmt.Errorf("failed to scan shift: %w", err)
		}
		shifts = append(shifts, s)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("failed to iterate shifts: %w", err)
	}

	return shifts, totalCount, nil
}

// Update implements shift.ShiftRepository.
func (r *shiftRepository) Update(ctx context.Context, req shift.UpdateShiftRequest, companyID string) (shift.Shift, error) {
	q := GetQuerier(ctx, r.db)

	setClauses := []string{"updated_at = NOW()"}
	args := []interface{}{req.ID, companyID}
	argIdx := 3

	if req.Name != nil {
		setClauses = append(setClauses, fmt.Sprintf("name = $%d", argIdx))
		args = append(args, *req.Name)
		argIdx++
	}
	if req.StartTime != nil {
		setClauses = append(setClauses, fmt.Sprintf("start_time = $%d", argIdx))
		args = append(args, *req.StartTime)
		argIdx++
	}
	if req.EndTime != nil {
		setClauses = append(setClauses, fmt.Sprintf("end_time = $%d", argIdx))
		args = append(args, *req.EndTime)
		argIdx++
	}
	if req.DurationHours != nil {
		setClauses = append(setClauses, fmt.Sprintf("duration_hours = $%d", argIdx))
		args = append(args, *req.DurationHours)
	}

	query := fmt.Sprintf(`
		UPDATE shifts
		SET %s
		WHERE id = $1
		  AND company_id = $2
		  AND deleted_at IS NULL
		RETURNING id, company_id, name, start_time, end_time, duration_hours,
				  created_at, updated_at, deleted_at
	`, strings.Join(setClauses, ", "))

	var s shift.Shift
	err := q.QueryRow(ctx, query, args...).Scan(
		&s.ID, &s.CompanyID, &s.Name, &s.StartTime, &s.EndTime, &s.DurationHours,
		&s.CreatedAt, &s.UpdatedAt, &s.DeletedAt,
	)

	if err != nil {
		if err == pgx.ErrNoRows {
			return shift.Shift{}, shift.ErrShiftNotFound
		}
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return shift.Shift{}, shift.ErrShiftNameExists
		}
		return shift.Shift{}, fmt.Errorf("failed to update shift: %w", err)
	}

	return s, nil
}

// SoftDelete implements shift.ShiftRepository.
func (r *shiftRepository) SoftDelete(ctx context.Context, id string, companyID string) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE shifts
		SET deleted_at = NOW(), updated_at = NOW()
		WHERE id = $1
		  AND company_id = $2
		  AND deleted_at IS NULL
	`

	tag, err := q.Exec(ctx, query, id, companyID)
	if err != nil {
		return fmt.Errorf("failed to delete shift: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return shift.ErrShiftNotFound
	}

	return nil
}
