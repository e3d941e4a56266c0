package postgresql_test

import (
	"context"
	"errors"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/shiftpulse/shiftpulse-backend-go/internal/domain/attendance"
	"github.com/shiftpulse/shiftpulse-backend-go/internal/domain/performance"
	"github.com/shiftpulse/shiftpulse-backend-go/internal/domain/shift"
	"github.com/shiftpulse/shiftpulse-backend-go/internal/pkg/database"
	"github.com/shiftpulse/shiftpulse-backend-go/internal/repository/postgresql"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testDB *database.DB

func testInit(t *testing.T) {
	t.Helper()
	if testDB != nil {
		return
	}

	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set, skipping integration tests")
	}

	var err error
	testDB, err = database.NewPostgreSQLDB(dsn)
	require.NoError(t, err, "failed to connect to test database")
}

func truncateTables(t *testing.T, ctx context.Context) {
	t.Helper()
	tables := []string{"monthly_summaries", "attendances", "shift_assignments", "shifts", "notifications", "employees", "companies"}
	for _, table := range tables {
		_, err := testDB.Exec(ctx, fmt.Sprintf("TRUNCATE TABLE %s CASCADE", table))
		if err != nil {
			continue
		}
	}
}

func createTestCompany(t *testing.T, ctx context.Context) string {
	t.Helper()
	var companyID string
	err := testDB.QueryRow(ctx, `
		INSERT INTO companies (id, name, created_at, updated_at)
		VALUES (gen_random_uuid(), $1, NOW(), NOW())
		RETURNING id
	`, fmt.Sprintf("test-co-%d", time.Now().UnixNano())).Scan(&companyID)
	require.NoError(t, err)
	return companyID
}

func createTestEmployee(t *testing.T, ctx context.Context, companyID, name string) string {
	t.Helper()
	var employeeID string
	err := testDB.QueryRow(ctx, `
		INSERT INTO employees (id, company_id, name, created_at, updated_at)
		VALUES (gen_random_uuid(), $1, $2, NOW(), NOW())
		RETURNING id
	`, companyID, name).Scan(&employeeID)
	require.NoError(t, err)
	return employeeID
}

func TestShiftRepository_CreateAndGet(t *testing.T) {
	ctx := context.Background()
	testInit(t)
	truncateTables(t, ctx)

	companyID := createTestCompany(t, ctx)
	repo := postgresql.NewShiftRepository(testDB)

	created, err := repo.Create(ctx, shift.Shift{
		CompanyID: companyID,
		Name:      "Night Shift",
		StartTime: "22:00",
		EndTime:   "06:00",
	})
	require.NoError(t, err)
	require.NotEmpty(t, created.ID)

	got, err := repo.GetByID(ctx, created.ID, companyID)
	require.NoError(t, err)
	assert.Equal(t, "Night Shift", got.Name)
	assert.Equal(t, "22:00", got.StartTime)

	// Cross-company lookups must not see it.
	otherCompany := createTestCompany(t, ctx)
	_, err = repo.GetByID(ctx, created.ID, otherCompany)
	assert.ErrorIs(t, err, shift.ErrShiftNotFound)
}

func TestShiftRepository_SoftDelete(t *testing.T) {
	ctx := context.Background()
	testInit(t)
	truncateTables(t, ctx)

	companyID := createTestCompany(t, ctx)
	repo := postgresql.NewShiftRepository(testDB)

	created, err := repo.Create(ctx, shift.Shift{
		CompanyID: companyID, Name: "Morning", StartTime: "06:00", EndTime: "14:00",
	})
	require.NoError(t, err)

	require.NoError(t, repo.SoftDelete(ctx, created.ID, companyID))

	_, err = repo.GetByID(ctx, created.ID, companyID)
	assert.ErrorIs(t, err, shift.ErrShiftNotFound)

	assert.ErrorIs(t, repo.SoftDelete(ctx, created.ID, companyID), shift.ErrShiftNotFound)
}

func TestAssignmentRepository_UpsertReplaces(t *testing.T) {
	ctx := context.Background()
	testInit(t)
	truncateTables(t, ctx)

	companyID := createTestCompany(t, ctx)
	employeeID := createTestEmployee(t, ctx, companyID, "Asel")
	shiftRepo := postgresql.NewShiftRepository(testDB)
	repo := postgresql.NewShiftAssignmentRepository(testDB)

	sh, err := shiftRepo.Create(ctx, shift.Shift{
		CompanyID: companyID, Name: "Day Shift", StartTime: "09:00", EndTime: "17:00",
	})
	require.NoError(t, err)

	workDate := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)

	first, err := repo.Upsert(ctx, shift.Assignment{
		CompanyID: companyID, EmployeeID: employeeID, WorkDate: workDate, ShiftID: &sh.ID,
	})
	require.NoError(t, err)

	second, err := repo.Upsert(ctx, shift.Assignment{
		CompanyID: companyID, EmployeeID: employeeID, WorkDate: workDate, IsDayOff: true,
	})
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID, "same (employee, work date) keeps one row")

	got, err := repo.GetByEmployeeAndDate(ctx, employeeID, workDate, companyID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.True(t, got.IsDayOff)
	assert.Nil(t, got.ShiftID)
}

func TestAttendanceRepository_UpdateDerivedConflict(t *testing.T) {
	ctx := context.Background()
	testInit(t)
	truncateTables(t, ctx)

	companyID := createTestCompany(t, ctx)
	employeeID := createTestEmployee(t, ctx, companyID, "Bekzat")
	repo := postgresql.NewAttendanceRepository(testDB)

	checkIn := time.Date(2026, 3, 2, 9, 10, 0, 0, time.UTC)
	created, err := repo.Create(ctx, attendance.Attendance{
		EmployeeID: employeeID,
		CompanyID:  companyID,
		WorkDate:   time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC),
		CheckIn:    &checkIn,
		Status:     attendance.StatusInProgress,
	})
	require.NoError(t, err)

	current, err := repo.GetByID(ctx, created.ID, companyID)
	require.NoError(t, err)

	regular := 7.0
	current.RegularHours = &regular
	current.Status = attendance.StatusScored

	updated, err := repo.UpdateDerived(ctx, current, current.UpdatedAt)
	require.NoError(t, err)
	assert.True(t, updated.UpdatedAt.After(current.UpdatedAt))

	// A second writer using the stale updated_at loses.
	_, err = repo.UpdateDerived(ctx, current, current.UpdatedAt)
	assert.True(t, errors.Is(err, attendance.ErrAttendanceConflict))
}

func TestAttendanceRepository_HasCheckedIn(t *testing.T) {
	ctx := context.Background()
	testInit(t)
	truncateTables(t, ctx)

	companyID := createTestCompany(t, ctx)
	employeeID := createTestEmployee(t, ctx, companyID, "Camila")
	repo := postgresql.NewAttendanceRepository(testDB)

	workDate := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)

	ok, err := repo.HasCheckedIn(ctx, employeeID, workDate, companyID)
	require.NoError(t, err)
	assert.False(t, ok)

	checkIn := workDate.Add(9 * time.Hour)
	_, err = repo.Create(ctx, attendance.Attendance{
		EmployeeID: employeeID, CompanyID: companyID, WorkDate: workDate,
		CheckIn: &checkIn, Status: attendance.StatusInProgress,
	})
	require.NoError(t, err)

	ok, err = repo.HasCheckedIn(ctx, employeeID, workDate, companyID)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestSummaryRepository_UpsertReplaces(t *testing.T) {
	ctx := context.Background()
	testInit(t)
	truncateTables(t, ctx)

	companyID := createTestCompany(t, ctx)
	employeeID := createTestEmployee(t, ctx, companyID, "Dana")
	repo := postgresql.NewSummaryRepository(testDB)

	first, err := repo.Upsert(ctx, performance.MonthlySummary{
		CompanyID:               companyID,
		EmployeeID:              employeeID,
		MonthYear:               "2026-03",
		TotalWorkingDays:        10,
		AveragePerformanceScore: 88,
		PerformanceStatus:       performance.StatusExcellent,
	})
	require.NoError(t, err)

	second, err := repo.Upsert(ctx, performance.MonthlySummary{
		CompanyID:               companyID,
		EmployeeID:              employeeID,
		MonthYear:               "2026-03",
		TotalWorkingDays:        11,
		AveragePerformanceScore: 85,
		PerformanceStatus:       performance.StatusExcellent,
	})
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)

	got, err := repo.GetByEmployeeAndMonth(ctx, employeeID, "2026-03", companyID)
	require.NoError(t, err)
	assert.Equal(t, 11, got.TotalWorkingDays)
	assert.InDelta(t, 85, got.AveragePerformanceScore, 1e-9)
}
