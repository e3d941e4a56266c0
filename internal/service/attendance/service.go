package attendance

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/jackc/pgx/v5"
	"github.com/shiftpulse/shiftpulse-backend-go/internal/domain/attendance"
	"github.com/shiftpulse/shiftpulse-backend-go/internal/domain/notification"
	"github.com/shiftpulse/shiftpulse-backend-go/internal/domain/performance"
	"github.com/shiftpulse/shiftpulse-backend-go/internal/domain/shift"
	"github.com/shiftpulse/shiftpulse-backend-go/internal/pkg/database"
	"github.com/shiftpulse/shiftpulse-backend-go/internal/repository/postgresql"
	performancesvc "github.com/shiftpulse/shiftpulse-backend-go/internal/service/performance"
)

type AttendanceServiceImpl struct {
	db *database.DB
	attendance.AttendanceRepository
	shiftRepo      shift.ShiftRepository
	assignmentRepo shift.AssignmentRepository
	performanceSvc performance.PerformanceService
	calculator     *performancesvc.Calculator
	notifier       notification.Service
}

func NewAttendanceService(
	db *database.DB,
	attendanceRepo attendance.AttendanceRepository,
	shiftRepo shift.ShiftRepository,
	assignmentRepo shift.AssignmentRepository,
	performanceSvc performance.PerformanceService,
	notifier notification.Service,
) attendance.AttendanceService {
	return &AttendanceServiceImpl{
		db:                   db,
		AttendanceRepository: attendanceRepo,
		shiftRepo:            shiftRepo,
		assignmentRepo:       assignmentRepo,
		performanceSvc:       performanceSvc,
		calculator:           performancesvc.NewCalculator(),
		notifier:             notifier,
	}
}

// timePtrToString safely converts a *time.Time to a string.
func timePtrToString(t *time.Time) *string {
	if t == nil {
		return nil
	}
	format := t.Format("2006-01-02 15:04:05")
	return &format
}

// CheckIn implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) CheckIn(ctx context.Context, req attendance.CheckInRequest) (attendance.AttendanceResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.AttendanceResponse{}, err
	}

	companyID, employeeID, err := claimsFromContext(ctx)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	now := time.Now()
	workDate := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	if req.WorkDate != "" {
		workDate, err = time.ParseInLocation("2006-01-02", req.WorkDate, now.Location())
		if err != nil {
			return attendance.AttendanceResponse{}, attendance.ErrInvalidRequestData
		}
	}

	checkedIn, err := a.AttendanceRepository.HasCheckedIn(ctx, employeeID, workDate, companyID)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}
	if checkedIn {
		return attendance.AttendanceResponse{}, attendance.ErrAlreadyCheckedIn
	}

	assignment, err := a.assignmentRepo.GetByEmployeeAndDate(ctx, employeeID, workDate, companyID)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}
	if assignment != nil && assignment.IsDayOff {
		return attendance.AttendanceResponse{}, attendance.ErrDayOff
	}

	newAttendance := attendance.Attendance{
		EmployeeID: employeeID,
		CompanyID:  companyID,
		WorkDate:   workDate,
		CheckIn:    &now,
		Status:     attendance.StatusInProgress,
	}
	if assignment != nil {
		newAttendance.ShiftID = assignment.ShiftID
	}

	// Delay is known as soon as the employee clocks in: record it now so the
	// open session already shows how late the day started. Checkout rewrites
	// it along with the rest of the derived fields.
	if newAttendance.ShiftID != nil {
		sh, err := a.shiftRepo.GetByID(ctx, *newAttendance.ShiftID, companyID)
		if err != nil {
			return attendance.AttendanceResponse{}, fmt.Errorf("failed to resolve assigned shift at check-in: %w", err)
		}
		delay := a.calculator.DelayMinutes(now, sh)
		newAttendance.DelayMinutes = &delay
	}

	created, err := a.AttendanceRepository.Create(ctx, newAttendance)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	return toAttendanceResponse(created), nil
}

// CheckOut implements attendance.AttendanceService. Closing the session
// scores the day and refreshes the month summary in one transaction.
func (a *AttendanceServiceImpl) CheckOut(ctx context.Context, _ attendance.CheckOutRequest) (attendance.AttendanceResponse, error) {
	companyID, employeeID, err := claimsFromContext(ctx)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	now := time.Now()

	var scored attendance.Attendance

	err = postgresql.WithTransaction(ctx, a.db, func(tx pgx.Tx) error {
		txCtx := context.WithValue(ctx, "tx", tx)

		open, err := a.AttendanceRepository.GetOpenSession(txCtx, employeeID, companyID)
		if err != nil {
			return err
		}

		if err := a.AttendanceRepository.SetCheckOut(txCtx, open.ID, companyID, now); err != nil {
			return err
		}
		open.CheckOut = &now

		var sh *shift.Shift
		if open.ShiftID != nil {
			s, err := a.shiftRepo.GetByID(txCtx, *open.ShiftID, companyID)
			if err != nil {
				return err
			}
			sh = &s
		}

		score := a.calculator.ScoreDay(open, sh)
		applyScore(&open, score)

		// SetCheckOut already bumped updated_at, so re-read the row for the
		// concurrency guard.
		current, err := a.AttendanceRepository.GetByID(txCtx, open.ID, companyID)
		if err != nil {
			return err
		}

		scored, err = a.AttendanceRepository.UpdateDerived(txCtx, open, current.UpdatedAt)
		if err != nil {
			return err
		}

		_, err = a.performanceSvc.RefreshMonthlySummary(txCtx, employeeID, open.WorkDate.Format("2006-01"), companyID)
		return err
	})
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	a.notifyDayScored(ctx, companyID, scored)

	return toAttendanceResponse(scored), nil
}

// RecordBreak implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) RecordBreak(ctx context.Context, req attendance.RecordBreakRequest) (attendance.AttendanceResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.AttendanceResponse{}, err
	}

	companyID, employeeID, err := claimsFromContext(ctx)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	open, err := a.AttendanceRepository.GetOpenSession(ctx, employeeID, companyID)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	if err := a.AttendanceRepository.AddBreakMinutes(ctx, open.ID, companyID, req.Minutes); err != nil {
		return attendance.AttendanceResponse{}, err
	}
	open.BreakMinutes += req.Minutes

	return toAttendanceResponse(open), nil
}

// GetMyAttendance implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) GetMyAttendance(ctx context.Context, filter attendance.MyAttendanceFilter) (attendance.ListAttendanceResponse, error) {
	if err := filter.Validate(); err != nil {
		return attendance.ListAttendanceResponse{}, err
	}

	companyID, employeeID, err := claimsFromContext(ctx)
	if err != nil {
		return attendance.ListAttendanceResponse{}, err
	}

	normalizeMyFilter(&filter)

	records, totalCount, err := a.AttendanceRepository.GetMyAttendance(ctx, employeeID, filter, companyID)
	if err != nil {
		return attendance.ListAttendanceResponse{}, err
	}

	return toListResponse(records, totalCount, filter.Page, filter.Limit), nil
}

// ListAttendance implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) ListAttendance(ctx context.Context, filter attendance.AttendanceFilter) (attendance.ListAttendanceResponse, error) {
	if err := filter.Validate(); err != nil {
		return attendance.ListAttendanceResponse{}, err
	}

	companyID, _, err := claimsFromContext(ctx)
	if err != nil {
		return attendance.ListAttendanceResponse{}, err
	}

	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 || filter.Limit > 100 {
		filter.Limit = 20
	}

	records, totalCount, err := a.AttendanceRepository.List(ctx, filter, companyID)
	if err != nil {
		return attendance.ListAttendanceResponse{}, err
	}

	return toListResponse(records, totalCount, filter.Page, filter.Limit), nil
}

// GetAttendance implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) GetAttendance(ctx context.Context, id string) (attendance.AttendanceResponse, error) {
	companyID, _, err := claimsFromContext(ctx)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	att, err := a.AttendanceRepository.GetByID(ctx, id, companyID)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	return toAttendanceResponse(att), nil
}

func claimsFromContext(ctx context.Context) (companyID, employeeID string, err error) {
	_, claims, err := jwtauth.FromContext(ctx)
	if err != nil {
		return "", "", fmt.Errorf("failed to extract claims from context: %w", err)
	}

	companyID, ok := claims["company_id"].(string)
	if !ok || companyID == "" {
		return "", "", fmt.Errorf("company_id claim is missing or invalid")
	}

	employeeID, ok = claims["employee_id"].(string)
	if !ok || employeeID == "" {
		return "", "", fmt.Errorf("employee_id claim is missing or invalid")
	}

	return companyID, employeeID, nil
}

func normalizeMyFilter(filter *attendance.MyAttendanceFilter) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 || filter.Limit > 100 {
		filter.Limit = 20
	}
}

func applyScore(att *attendance.Attendance, score performance.DailyScore) {
	switch score.State {
	case performance.StateInProgress:
		att.Status = attendance.StatusInProgress
		return
	case performance.StateUnscored:
		regular := score.TotalWorkedHours
		zero := 0.0
		att.RegularHours = &regular
		att.OvertimeHours = &zero
		att.Status = attendance.StatusUnscored
		return
	}

	s := score
	att.DelayMinutes = &s.DelayMinutes
	att.RegularHours = &s.RegularHours
	att.OvertimeHours = &s.OvertimeHours
	att.DelayScore = &s.DelayScore
	att.WorkDurationScore = &s.WorkDurationScore
	att.Punctuality = &s.Punctuality
	att.FinalScore = &s.FinalScore
	att.StatusLabel = &s.StatusLabel
	att.Status = attendance.StatusScored
}

func (a *AttendanceServiceImpl) notifyDayScored(ctx context.Context, companyID string, att attendance.Attendance) {
	if a.notifier == nil || att.Status != attendance.StatusScored || att.FinalScore == nil {
		return
	}

	_ = a.notifier.QueueNotification(ctx, notification.CreateNotificationRequest{
		CompanyID:   companyID,
		RecipientID: att.EmployeeID,
		Type:        notification.TypeDayScored,
		Title:       "Day scored",
		Message: fmt.Sprintf("Your %s performance score is %.0f.",
			att.WorkDate.Format("2006-01-02"), math.Round(*att.FinalScore)),
		Data: map[string]interface{}{
			"attendance_id": att.ID,
			"work_date":     att.WorkDate.Format("2006-01-02"),
			"final_score":   *att.FinalScore,
		},
	})
}

func toAttendanceResponse(att attendance.Attendance) attendance.AttendanceResponse {
	return attendance.AttendanceResponse{
		ID:                att.ID,
		EmployeeID:        att.EmployeeID,
		EmployeeName:      att.EmployeeName,
		WorkDate:          att.WorkDate.Format("2006-01-02"),
		ShiftID:           att.ShiftID,
		ShiftName:         att.ShiftName,
		CheckInTime:       timePtrToString(att.CheckIn),
		CheckOutTime:      timePtrToString(att.CheckOut),
		BreakMinutes:      att.BreakMinutes,
		DelayMinutes:      att.DelayMinutes,
		RegularHours:      att.RegularHours,
		OvertimeHours:     att.OvertimeHours,
		DelayScore:        att.DelayScore,
		WorkDurationScore: att.WorkDurationScore,
		Punctuality:       att.Punctuality,
		FinalScore:        att.FinalScore,
		StatusLabel:       att.StatusLabel,
		Status:            att.Status,
		CreatedAt:         att.CreatedAt.Format("2006-01-02 15:04:05"),
		UpdatedAt:         att.UpdatedAt.Format("2006-01-02 15:04:05"),
	}
}

func toListResponse(records []attendance.Attendance, totalCount int64, page, limit int) attendance.ListAttendanceResponse {
	responses := make([]attendance.AttendanceResponse, 0, len(records))
	for _, rec := range records {
		responses = append(responses, toAttendanceResponse(rec))
	}

	totalPages := 0
	if limit > 0 {
		totalPages = int((totalCount + int64(limit) - 1) / int64(limit))
	}

	showing := "0 of 0"
	if len(responses) > 0 {
		first := (page-1)*limit + 1
		last := first + len(responses) - 1
		showing = fmt.Sprintf("%d-%d of %d", first, last, totalCount)
	}

	return attendance.ListAttendanceResponse{
		Attendances: responses,
		TotalCount:  totalCount,
		Page:        page,
		Limit:       limit,
		TotalPages:  totalPages,
		Showing:     showing,
	}
}
