package attendance

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/shiftpulse/shiftpulse-backend-go/internal/domain/attendance"
	"github.com/shiftpulse/shiftpulse-backend-go/internal/domain/shift"
	"github.com/shiftpulse/shiftpulse-backend-go/internal/pkg/database"
	"github.com/shiftpulse/shiftpulse-backend-go/internal/repository/postgresql"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var serviceTestDB *database.DB

func serviceTestInit(t *testing.T) {
	t.Helper()
	if serviceTestDB != nil {
		return
	}

	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set, skipping integration tests")
	}

	var err error
	serviceTestDB, err = database.NewPostgreSQLDB(dsn)
	require.NoError(t, err, "failed to connect to test database")
}

func truncateServiceTables(t *testing.T, ctx context.Context) {
	t.Helper()
	tables := []string{"monthly_summaries", "attendances", "shift_assignments", "shifts", "employees", "companies"}
	for _, table := range tables {
		_, err := serviceTestDB.Exec(ctx, fmt.Sprintf("TRUNCATE TABLE %s CASCADE", table))
		if err != nil {
			continue
		}
	}
}

func createServiceTestCompany(t *testing.T, ctx context.Context) string {
	t.Helper()
	var companyID string
	err := serviceTestDB.QueryRow(ctx, `
		INSERT INTO companies (id, name, created_at, updated_at)
		VALUES (gen_random_uuid(), $1, NOW(), NOW())
		RETURNING id
	`, fmt.Sprintf("test-co-%d", time.Now().UnixNano())).Scan(&companyID)
	require.NoError(t, err)
	return companyID
}

func createServiceTestEmployee(t *testing.T, ctx context.Context, companyID, name string) string {
	t.Helper()
	var employeeID string
	err := serviceTestDB.QueryRow(ctx, `
		INSERT INTO employees (id, company_id, name, created_at, updated_at)
		VALUES (gen_random_uuid(), $1, $2, NOW(), NOW())
		RETURNING id
	`, companyID, name).Scan(&employeeID)
	require.NoError(t, err)
	return employeeID
}

// claimsContext builds the jwtauth context the service reads its identity from.
func claimsContext(t *testing.T, ctx context.Context, companyID, employeeID string) context.Context {
	t.Helper()
	ja := jwtauth.New("HS256", []byte("test-secret"), nil)
	token, _, err := ja.Encode(map[string]interface{}{
		"user_id":     employeeID,
		"company_id":  companyID,
		"employee_id": employeeID,
		"is_admin":    false,
	})
	require.NoError(t, err)
	return jwtauth.NewContext(ctx, token, nil)
}

func newTestAttendanceService() (attendance.AttendanceService, shift.ShiftRepository, shift.AssignmentRepository) {
	attendanceRepo := postgresql.NewAttendanceRepository(serviceTestDB)
	shiftRepo := postgresql.NewShiftRepository(serviceTestDB)
	assignmentRepo := postgresql.NewShiftAssignmentRepository(serviceTestDB)
	svc := NewAttendanceService(serviceTestDB, attendanceRepo, shiftRepo, assignmentRepo, nil, nil)
	return svc, shiftRepo, assignmentRepo
}

func TestCheckIn_RecordsDelayAtEntry(t *testing.T) {
	ctx := context.Background()
	serviceTestInit(t)
	truncateServiceTables(t, ctx)

	companyID := createServiceTestCompany(t, ctx)
	employeeID := createServiceTestEmployee(t, ctx, companyID, "Alya")
	svc, shiftRepo, assignmentRepo := newTestAttendanceService()

	sh, err := shiftRepo.Create(ctx, shift.Shift{
		CompanyID: companyID,
		Name:      "Day Shift",
		StartTime: "00:00",
		EndTime:   "23:59",
	})
	require.NoError(t, err)

	now := time.Now()
	workDate := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	_, err = assignmentRepo.Upsert(ctx, shift.Assignment{
		CompanyID:  companyID,
		EmployeeID: employeeID,
		WorkDate:   workDate,
		ShiftID:    &sh.ID,
	})
	require.NoError(t, err)

	resp, err := svc.CheckIn(claimsContext(t, ctx, companyID, employeeID), attendance.CheckInRequest{})
	require.NoError(t, err)

	require.NotNil(t, resp.DelayMinutes, "delay must be recorded as soon as the session opens")
	assert.GreaterOrEqual(t, *resp.DelayMinutes, 0)
	assert.Equal(t, attendance.StatusInProgress, resp.Status)
}

func TestCheckIn_UnresolvableShiftFailsLoudly(t *testing.T) {
	ctx := context.Background()
	serviceTestInit(t)
	truncateServiceTables(t, ctx)

	companyID := createServiceTestCompany(t, ctx)
	employeeID := createServiceTestEmployee(t, ctx, companyID, "Bram")
	svc, shiftRepo, assignmentRepo := newTestAttendanceService()

	sh, err := shiftRepo.Create(ctx, shift.Shift{
		CompanyID: companyID,
		Name:      "Day Shift",
		StartTime: "09:00",
		EndTime:   "17:00",
	})
	require.NoError(t, err)

	now := time.Now()
	workDate := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	_, err = assignmentRepo.Upsert(ctx, shift.Assignment{
		CompanyID:  companyID,
		EmployeeID: employeeID,
		WorkDate:   workDate,
		ShiftID:    &sh.ID,
	})
	require.NoError(t, err)

	// The assignment now points at a shift the lookup can no longer resolve.
	require.NoError(t, shiftRepo.SoftDelete(ctx, sh.ID, companyID))

	_, err = svc.CheckIn(claimsContext(t, ctx, companyID, employeeID), attendance.CheckInRequest{})
	require.Error(t, err, "a failed shift lookup must not be swallowed")
	assert.ErrorIs(t, err, shift.ErrShiftNotFound)
}
