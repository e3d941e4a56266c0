package postgresql

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/shiftpulse/shiftpulse-backend-go/internal/domain/attendance"
	"github.com/shiftpulse/shiftpulse-backend-go/internal/pkg/database"
)

type attendanceRepository struct {
	db *database.DB
}

func NewAttendanceRepository(db *database.DB) attendance.AttendanceRepository {
	return &attendanceRepository{db: db}
}

const attendanceColumns = `
	a.id, a.employee_id, a.company_id, a.work_date, a.shift_id,
	a.check_in, a.check_out, a.break_minutes,
	a.delay_minutes, a.regular_hours, a.overtime_hours,
	a.delay_score, a.work_duration_score, a.punctuality, a.final_score,
	a.status_label, a.status, a.created_at, a.updated_at`

func scanAttendance(row pgx.Row, att *attendance.Attendance, extra ...interface{}) error {
	dest := []interface{}{
		&att.ID, &att.EmployeeID, &att.CompanyID, &att.WorkDate, &att.ShiftID,
		&att.CheckIn, &att.CheckOut, &att.BreakMinutes,
		&att.DelayMinutes, &att.RegularHours, &att.OvertimeHours,
		&att.DelayScore, &att.WorkDurationScore, &att.Punctuality, &att.FinalScore,
		&att.StatusLabel, &att.Status, &att.CreatedAt, &att.UpdatedAt,
	}
	dest = append(dest, extra...)
	return row.Scan(dest...)
}

// Create implements attendance.AttendanceRepository.
func (r *attendanceRepository) Create(ctx context.Context, newAttendance attendance.Attendance) (attendance.Attendance, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO attendances (
			employee_id, company_id, work_date, shift_id, check_in, status, delay_minutes
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7
		) RETURNING id, created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		newAttendance.EmployeeID,
		newAttendance.CompanyID,
		newAttendance.WorkDate,
		newAttendance.ShiftID,
		newAttendance.CheckIn,
		newAttendance.Status,
		newAttendance.DelayMinutes,
	).Scan(&newAttendance.ID, &newAttendance.CreatedAt, &newAttendance.UpdatedAt)

	if err != nil {
		return attendance.Attendance{}, fmt.Errorf("failed to create attendance: %w", err)
	}

	return newAttendance, nil
}

// GetByID implements attendance.AttendanceRepository.
func (r *attendanceRepository) GetByID(ctx context.Context, id string, companyID string) (attendance.Attendance, error) {
	q := GetQuerier(ctx, r.db)

	query := fmt.Sprintf(`
		SELECT %s, e.name AS employee_name, s.name AS shift_name
		FROM attendances a
		JOIN employees e ON e.id = a.employee_id
		LEFT JOIN shifts s ON s.id = a.shift_id
		WHERE a.id = $1
		  AND a.company_id = $2
	`, attendanceColumns)

	var att attendance.Attendance
	err := scanAttendance(q.QueryRow(ctx, query, id, companyID), &att, &att.EmployeeName, &att.ShiftName)

	if err != nil {
		if err == pgx.ErrNoRows {
			return attendance.Attendance{}, attendance.ErrAttendanceNotFound
		}
		return attendance.Attendance{}, fmt.Errorf("failed to get attendance: %w", err)
	}

	return att, nil
}

// GetOpenSession implements attendance.AttendanceRepository.
func (r *attendanceRepository) GetOpenSession(ctx context.Context, employeeID string, companyID string) (attendance.Attendance, error) {
	q := GetQuerier(ctx, r.db)

	query := fmt.Sprintf(`
		SELECT %s
		FROM attendances a
		WHERE a.employee_id = $1
		  AND a.company_id = $2
		  AND a.check_out IS NULL
		ORDER BY a.check_in DESC
		LIMIT 1
	`, attendanceColumns)

	var att attendance.Attendance
	err := scanAttendance(q.QueryRow(ctx, query, employeeID, companyID), &att)

	if err != nil {
		if err == pgx.ErrNoRows {
			return attendance.Attendance{}, attendance.ErrNotCheckedIn
		}
		return attendance.Attendance{}, fmt.Errorf("failed to get open session: %w", err)
	}

	return att, nil
}

// HasCheckedIn implements attendance.AttendanceRepository.
func (r *attendanceRepository) HasCheckedIn(ctx context.Context, employeeID string, workDate time.Time, companyID string) (bool, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT EXISTS (
			SELECT 1 FROM attendances
			WHERE employee_id = $1
			  AND work_date = $2
			  AND company_id = $3
		)
	`

	var exists bool
	if err := q.QueryRow(ctx, query, employeeID, workDate, companyID).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check existing attendance: %w", err)
	}

	return exists, nil
}

// UpdateDerived implements attendance.AttendanceRepository. The updated_at
// guard makes concurrent reconciliation and recalculation lose cleanly
// instead of silently overwriting each other.
func (r *attendanceRepository) UpdateDerived(ctx context.Context, att attendance.Attendance, expectedUpdatedAt time.Time) (attendance.Attendance, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE attendances
		SET shift_id = $3,
			delay_minutes = $4,
			regular_hours = $5,
			overtime_hours = $6,
			delay_score = $7,
			work_duration_score = $8,
			punctuality = $9,
			final_score = $10,
			status_label = $11,
			status = $12,
			updated_at = NOW()
		WHERE id = $1
		  AND company_id = $2
		  AND updated_at = $13
		RETURNING updated_at
	`

	err := q.QueryRow(ctx, query,
		att.ID,
		att.CompanyID,
		att.ShiftID,
		att.DelayMinutes,
		att.RegularHours,
		att.OvertimeHours,
		att.DelayScore,
		att.WorkDurationScore,
		att.Punctuality,
		att.FinalScore,
		att.StatusLabel,
		att.Status,
		expectedUpdatedAt,
	).Scan(&att.UpdatedAt)

	if err != nil {
		if err == pgx.ErrNoRows {
			// Either the row is gone or someone updated it after our read.
			exists, existsErr := r.exists(ctx, att.ID, att.CompanyID)
			if existsErr != nil {
				return attendance.Attendance{}, existsErr
			}
			if !exists {
				return attendance.Attendance{}, attendance.ErrAttendanceNotFound
			}
			return attendance.Attendance{}, attendance.ErrAttendanceConflict
		}
		return attendance.Attendance{}, fmt.Errorf("failed to update derived fields: %w", err)
	}

	return att, nil
}

func (r *attendanceRepository) exists(ctx context.Context, id string, companyID string) (bool, error) {
	q := GetQuerier(ctx, r.db)

	var exists bool
	err := q.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM attendances WHERE id = $1 AND company_id = $2)`,
		id, companyID,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check attendance existence: %w", err)
	}

	return exists, nil
}

// SetCheckOut implements attendance.AttendanceRepository.
func (r *attendanceRepository) SetCheckOut(ctx context.Context, id string, companyID string, checkOut time.Time) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE attendances
		SET check_out = $3, updated_at = NOW()
		WHERE id = $1
		  AND company_id = $2
		  AND check_out IS NULL
	`

	tag, err := q.Exec(ctx, query, id, companyID, checkOut)
	if err != nil {
		return fmt.Errorf("failed to set checkout: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return attendance.ErrAlreadyCheckedOut
	}

	return nil
}

// AddBreakMinutes implements attendance.AttendanceRepository.
func (r *attendanceRepository) AddBreakMinutes(ctx context.Context, id string, companyID string, minutes int) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE attendances
		SET break_minutes = break_minutes + $3, updated_at = NOW()
		WHERE id = $1
		  AND company_id = $2
	`

	tag, err := q.Exec(ctx, query, id, companyID, minutes)
	if err != nil {
		return fmt.Errorf("failed to add break minutes: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return attendance.ErrAttendanceNotFound
	}

	return nil
}

// List implements attendance.AttendanceRepository.
func (r *attendanceRepository) List(ctx context.Context, filter attendance.AttendanceFilter, companyID string) ([]attendance.Attendance, int64, error) {
	q := GetQuerier(ctx, r.db)

	conditions := []string{"a.company_id = $1"}
	args := []interface{}{companyID}
	argIdx := 2

	if filter.EmployeeID != nil {
		conditions = append(conditions, fmt.Sprintf("a.employee_id = $%d", argIdx))
		args = append(args, *filter.EmployeeID)
		argIdx++
	}
	if filter.StartDate != nil {
		conditions = append(conditions, fmt.Sprintf("a.work_date >= $%d", argIdx))
		args = append(args, *filter.StartDate)
		argIdx++
	}
	if filter.EndDate != nil {
		conditions = append(conditions, fmt.Sprintf("a.work_date <= $%d", argIdx))
		args = append(args, *filter.EndDate)
		argIdx++
	}
	if filter.Status != nil {
		conditions = append(conditions, fmt.Sprintf("a.status = $%d", argIdx))
		args = append(args, *filter.Status)
		argIdx++
	}

	sortBy := "a.work_date"
	switch filter.SortBy {
	case "final_score":
		sortBy = "a.final_score"
	case "delay_minutes":
		sortBy = "a.delay_minutes"
	case "created_at":
		sortBy = "a.created_at"
	}
	sortOrder := "DESC"
	if strings.EqualFold(filter.SortOrder, "asc") {
		sortOrder = "ASC"
	}

	offset := (filter.Page - 1) * filter.Limit

	query := fmt.Sprintf(`
		SELECT %s, e.name AS employee_name, s.name AS shift_name,
			   COUNT(*) OVER() AS total_count
		FROM attendances a
		JOIN employees e ON e.id = a.employee_id
		LEFT JOIN shifts s ON s.id = a.shift_id
		WHERE %s
		ORDER BY %s %s NULLS LAST
		LIMIT $%d OFFSET $%d
	`, attendanceColumns, strings.Join(conditions, " AND "), sortBy, sortOrder, argIdx, argIdx+1)
	args = append(args, filter.Limit, offset)

	return r.queryList(ctx, q, query, args)
}

// GetMyAttendance implements attendance.AttendanceRepository.
func (r *attendanceRepository) GetMyAttendance(ctx context.Context, employeeID string, filter attendance.MyAttendanceFilter, companyID string) ([]attendance.Attendance, int64, error) {
	q := GetQuerier(ctx, r.db)

	conditions := []string{"a.employee_id = $1", "a.company_id = $2"}
	args := []interface{}{employeeID, companyID}
	argIdx := 3

	if filter.StartDate != nil {
		conditions = append(conditions, fmt.Sprintf("a.work_date >= $%d", argIdx))
		args = append(args, *filter.StartDate)
		argIdx++
	}
	if filter.EndDate != nil {
		conditions = append(conditions, fmt.Sprintf("a.work_date <= $%d", argIdx))
		args = append(args, *filter.EndDate)
		argIdx++
	}
	if filter.Status != nil {
		conditions = append(conditions, fmt.Sprintf("a.status = $%d", argIdx))
		args = append(args, *filter.Status)
		argIdx++
	}

	offset := (filter.Page - 1) * filter.Limit

	query := fmt.Sprintf(`
		SELECT %s, e.name AS employee_name, s.name AS shift_name,
			   COUNT(*) OVER() AS total_count
		FROM attendances a
		JOIN employees e ON e.id = a.employee_id
		LEFT JOIN shifts s ON s.id = a.shift_id
		WHERE %s
		ORDER BY a.work_date DESC
		LIMIT $%d OFFSET $%d
	`, attendanceColumns, strings.Join(conditions, " AND "), argIdx, argIdx+1)
	args = append(args, filter.Limit, offset)

	return r.queryList(ctx, q, query, args)
}

func (r *attendanceRepository) queryList(ctx context.Context, q database.Querier, query string, args []interface{}) ([]attendance.Attendance, int64, error) {
	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list attendances: %w", err)
	}
	defer rows.Close()

	var (
		records    []attendance.Attendance
		totalCount int64
	)
	for rows.Next() {
		var att attendance.Attendance
		if err := scanAttendance(rows, &att, &att.EmployeeName, &att.ShiftName, &totalCount); err != nil {
			return nil, 0, fmt.Errorf("failed to scan attendance: %w", err)
		}
		records = append(records, att)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("failed to iterate attendances: %w", err)
	}

	return records, totalCount, nil
}

// ListByEmployeeAndRange implements attendance.AttendanceRepository.
func (r *attendanceRepository) ListByEmployeeAndRange(ctx context.Context, employeeID string, start, end time.Time, companyID string) ([]attendance.Attendance, error) {
	q := GetQuerier(ctx, r.db)

	query := fmt.Sprintf(`
		SELECT %s
		FROM attendances a
		WHERE a.employee_id = $1
		  AND a.work_date BETWEEN $2 AND $3
		  AND a.company_id = $4
		ORDER BY a.work_date ASC
	`, attendanceColumns)

	rows, err := q.Query(ctx, query, employeeID, start, end, companyID)
	if err != nil {
		return nil, fmt.Errorf("failed to list attendances by range: %w", err)
	}
	defer rows.Close()

	return r.collectRows(rows)
}

// ListByRange implements attendance.AttendanceRepository.
func (r *attendanceRepository) ListByRange(ctx context.Context, companyID string, start, end time.Time, employeeID *string) ([]attendance.Attendance, error) {
	q := GetQuerier(ctx, r.db)

	conditions := []string{"a.company_id = $1", "a.work_date BETWEEN $2 AND $3"}
	args := []interface{}{companyID, start, end}
	if employeeID != nil {
		conditions = append(conditions, "a.employee_id = $4")
		args = append(args, *employeeID)
	}

	query := fmt.Sprintf(`
		SELECT %s
		FROM attendances a
		WHERE %s
		ORDER BY a.employee_id ASC, a.work_date ASC
	`, attendanceColumns, strings.Join(conditions, " AND "))

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list attendances by range: %w", err)
	}
	defer rows.Close()

	return r.collectRows(rows)
}

// ListActiveEmployees implements attendance.AttendanceRepository.
func (r *attendanceRepository) ListActiveEmployees(ctx context.Context, start, end time.Time) ([]attendance.EmployeeRef, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT DISTINCT company_id, employee_id
		FROM attendances
		WHERE work_date BETWEEN $1 AND $2
	`

	rows, err := q.Query(ctx, query, start, end)
	if err != nil {
		return nil, fmt.Errorf("failed to list active employees: %w", err)
	}
	defer rows.Close()

	var refs []attendance.EmployeeRef
	for rows.Next() {
		var ref attendance.EmployeeRef
		if err := rows.Scan(&ref.CompanyID, &ref.EmployeeID); err != nil {
			return nil, fmt.Errorf("failed to scan employee ref: %w", err)
		}
		refs = append(refs, ref)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate employee refs: %w", err)
	}

	return refs, nil
}

func (r *attendanceRepository) collectRows(rows pgx.Rows) ([]attendance.Attendance, error) {
	var records []attendance.Attendance
	for rows.Next() {
		var att attendance.Attendance
		if err := scanAttendance(rows, &att); err != nil {
			return nil, fmt.Errorf("failed to scan attendance: %w", err)
		}
		records = append(records, att)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate attendances: %w", err)
	}

	return records, nil
}
