package performance

import (
	"context"
	"fmt"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/jackc/pgx/v5"
	"github.com/shiftpulse/shiftpulse-backend-go/internal/domain/attendance"
	"github.com/shiftpulse/shiftpulse-backend-go/internal/domain/notification"
	"github.com/shiftpulse/shiftpulse-backend-go/internal/domain/performance"
	"github.com/shiftpulse/shiftpulse-backend-go/internal/domain/shift"
	"github.com/shiftpulse/shiftpulse-backend-go/internal/pkg/database"
	"github.com/shiftpulse/shiftpulse-backend-go/internal/repository/postgresql"
)

type PerformanceServiceImpl struct {
	db *database.DB
	attendance.AttendanceRepository
	shiftRepo      shift.ShiftRepository
	assignmentRepo shift.AssignmentRepository
	summaryRepo    performance.SummaryRepository
	calculator     *Calculator
	aggregator     *Aggregator
	notifier       notification.Service
}

func NewPerformanceService(
	db *database.DB,
	attendanceRepo attendance.AttendanceRepository,
	shiftRepo shift.ShiftRepository,
	assignmentRepo shift.AssignmentRepository,
	summaryRepo performance.SummaryRepository,
	notifier notification.Service,
) performance.PerformanceService {
	return &PerformanceServiceImpl{
		db:                   db,
		AttendanceRepository: attendanceRepo,
		shiftRepo:            shiftRepo,
		assignmentRepo:       assignmentRepo,
		summaryRepo:          summaryRepo,
		calculator:           NewCalculator(),
		aggregator:           NewAggregator(),
		notifier:             notifier,
	}
}

// ReassignShift implements performance.PerformanceService.
func (p *PerformanceServiceImpl) ReassignShift(ctx context.Context, req performance.ReassignShiftRequest) (performance.ReassignShiftResponse, error) {
	if err := req.Validate(); err != nil {
		return performance.ReassignShiftResponse{}, err
	}

	_, claims, err := jwtauth.FromContext(ctx)
	if err != nil {
		return performance.ReassignShiftResponse{}, fmt.Errorf("failed to extract claims from context: %w", err)
	}

	companyID, ok := claims["company_id"].(string)
	if !ok || companyID == "" {
		return performance.ReassignShiftResponse{}, fmt.Errorf("company_id claim is missing or invalid")
	}

	var response performance.ReassignShiftResponse

	err = postgresql.WithTransaction(ctx, p.db, func(tx pgx.Tx) error {
		txCtx := context.WithValue(ctx, "tx", tx)

		att, err := p.AttendanceRepository.GetByID(txCtx, req.AttendanceID, companyID)
		if err != nil {
			return err
		}
		if att.CheckOut == nil {
			return performance.ErrNotScorable
		}
		if !CheckConsistency(att) {
			return performance.ErrDataInconsistency
		}

		before := snapshotOf(att)

		var newShift *shift.Shift
		if !req.IsDayOff {
			s, err := p.shiftRepo.GetByID(txCtx, *req.ShiftID, companyID)
			if err != nil {
				return err
			}
			newShift = &s
		}

		after := ReclassifyHours(att, newShift)
		p.rescoreRecorded(&att, newShift)

		updated, err := p.AttendanceRepository.UpdateDerived(txCtx, att, att.UpdatedAt)
		if err != nil {
			return err
		}

		// Keep the schedule in step with the corrected record so future
		// recalculations see the same shift.
		_, err = p.assignmentRepo.Upsert(txCtx, shift.Assignment{
			CompanyID:  att.CompanyID,
			EmployeeID: att.EmployeeID,
			WorkDate:   att.WorkDate,
			ShiftID:    after.ShiftID,
			IsDayOff:   req.IsDayOff,
		})
		if err != nil {
			return err
		}

		if _, err := p.RefreshMonthlySummary(txCtx, att.EmployeeID, att.WorkDate.Format("2006-01"), companyID); err != nil {
			return err
		}

		response = performance.ReassignShiftResponse{
			AttendanceID: updated.ID,
			EmployeeID:   updated.EmployeeID,
			WorkDate:     updated.WorkDate.Format("2006-01-02"),
			Before:       before,
			After:        after,
			IsDayOff:     req.IsDayOff,
		}
		return nil
	})
	if err != nil {
		return performance.ReassignShiftResponse{}, err
	}

	p.notifyScheduleChanged(ctx, companyID, response)

	return response, nil
}

// rescoreRecorded rewrites a record's derived fields against a new shift
// using the already-recorded regular+overtime total as the worked hours.
// Clock times stay untouched; only their classification changes.
func (p *PerformanceServiceImpl) rescoreRecorded(att *attendance.Attendance, newShift *shift.Shift) {
	total := att.TotalWorkedHours()

	if newShift == nil {
		// Day off: the day no longer counts as work at all. Both halves go
		// to zero and the record is excluded from the month's aggregation.
		regular, overtime := 0.0, 0.0
		att.ShiftID = nil
		att.RegularHours = &regular
		att.OvertimeHours = &overtime
		att.DelayMinutes = nil
		att.DelayScore = nil
		att.WorkDurationScore = nil
		att.Punctuality = nil
		att.FinalScore = nil
		att.StatusLabel = nil
		att.Status = attendance.StatusDayOff
		return
	}

	regular, overtime := SplitWorkedHours(total, newShift.ExpectedHours())

	delayMinutes := 0
	if att.CheckIn != nil {
		delayMinutes = p.calculator.DelayMinutes(*att.CheckIn, *newShift)
	}

	delayScore := DelayScore(delayMinutes)
	punctuality := PunctualityPercentage(delayMinutes)
	durationScore := WorkDurationScore(total, newShift.ExpectedHours())
	finalScore := FinalScore(delayScore, durationScore, overtime)
	label := StatusLabel(punctuality, delayScore)

	att.ShiftID = &newShift.ID
	att.RegularHours = &regular
	att.OvertimeHours = &overtime
	att.DelayMinutes = &delayMinutes
	att.DelayScore = &delayScore
	att.WorkDurationScore = &durationScore
	att.Punctuality = &punctuality
	att.FinalScore = &finalScore
	att.StatusLabel = &label
	att.Status = attendance.StatusScored
}

// RecalculateRange implements performance.PerformanceService.
func (p *PerformanceServiceImpl) RecalculateRange(ctx context.Context, req performance.RecalculateRequest) (performance.RecalculateResponse, error) {
	if err := req.Validate(); err != nil {
		return performance.RecalculateResponse{}, err
	}

	_, claims, err := jwtauth.FromContext(ctx)
	if err != nil {
		return performance.RecalculateResponse{}, fmt.Errorf("failed to extract claims from context: %w", err)
	}

	companyID, ok := claims["company_id"].(string)
	if !ok || companyID == "" {
		return performance.RecalculateResponse{}, fmt.Errorf("company_id claim is missing or invalid")
	}

	start, _ := time.Parse("2006-01-02", req.StartDate)
	end, _ := time.Parse("2006-01-02", req.EndDate)

	records, err := p.AttendanceRepository.ListByRange(ctx, companyID, start, end, req.EmployeeID)
	if err != nil {
		return performance.RecalculateResponse{}, err
	}

	response := performance.RecalculateResponse{TotalRecords: len(records)}

	shiftCache := make(map[string]shift.Shift)
	touchedMonths := make(map[string]map[string]struct{}) // employee -> months

	for _, rec := range records {
		if rec.CheckOut == nil {
			// Open sessions are scored at checkout, not here.
			continue
		}

		if !CheckConsistency(rec) {
			// Flag the drift but keep going: a recalculate run is the explicit
			// recompute that is allowed to rewrite the split.
			response.Errors = append(response.Errors, recordError(rec, performance.ErrDataInconsistency))
		}

		var sh *shift.Shift
		if rec.ShiftID != nil {
			cached, ok := shiftCache[*rec.ShiftID]
			if !ok {
				cached, err = p.shiftRepo.GetByID(ctx, *rec.ShiftID, companyID)
				if err != nil {
					response.Errors = append(response.Errors, recordError(rec, err))
					continue
				}
				shiftCache[*rec.ShiftID] = cached
			}
			sh = &cached
		}

		score := p.calculator.ScoreDay(rec, sh)
		applyDailyScore(&rec, score)

		if _, err := p.AttendanceRepository.UpdateDerived(ctx, rec, rec.UpdatedAt); err != nil {
			response.Errors = append(response.Errors, recordError(rec, err))
			continue
		}

		response.UpdatedRecords++

		month := rec.WorkDate.Format("2006-01")
		if touchedMonths[rec.EmployeeID] == nil {
			touchedMonths[rec.EmployeeID] = make(map[string]struct{})
		}
		touchedMonths[rec.EmployeeID][month] = struct{}{}
	}

	for employeeID, months := range touchedMonths {
		for month := range months {
			if _, err := p.RefreshMonthlySummary(ctx, employeeID, month, companyID); err != nil {
				return response, fmt.Errorf("failed to refresh summary for %s %s: %w", employeeID, month, err)
			}
		}
	}

	return response, nil
}

func recordError(rec attendance.Attendance, err error) performance.RecordError {
	return performance.RecordError{
		AttendanceID: rec.ID,
		WorkDate:     rec.WorkDate.Format("2006-01-02"),
		Message:      err.Error(),
	}
}

// applyDailyScore copies the calculator's output onto the record's derived
// fields, leaving them nil for unscored and in-progress days.
func applyDailyScore(att *attendance.Attendance, score performance.DailyScore) {
	switch score.State {
	case performance.StateInProgress:
		att.Status = attendance.StatusInProgress
		return
	case performance.StateUnscored:
		regular := score.TotalWorkedHours
		zero := 0.0
		att.RegularHours = &regular
		att.OvertimeHours = &zero
		att.DelayMinutes = nil
		att.DelayScore = nil
		att.WorkDurationScore = nil
		att.Punctuality = nil
		att.FinalScore = nil
		att.StatusLabel = nil
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

// RefreshMonthlySummary implements performance.PerformanceService. Safe to
// call inside a transaction; it picks the tx up from the context.
func (p *PerformanceServiceImpl) RefreshMonthlySummary(ctx context.Context, employeeID string, monthYear string, companyID string) (performance.MonthlySummary, error) {
	monthStart, err := time.Parse("2006-01", monthYear)
	if err != nil {
		return performance.MonthlySummary{}, fmt.Errorf("invalid month: %w", err)
	}
	monthEnd := monthStart.AddDate(0, 1, -1)

	records, err := p.AttendanceRepository.ListByEmployeeAndRange(ctx, employeeID, monthStart, monthEnd, companyID)
	if err != nil {
		return performance.MonthlySummary{}, err
	}

	summary := p.aggregator.Summarize(companyID, employeeID, monthYear, records)

	return p.summaryRepo.Upsert(ctx, summary)
}

// GetMonthlySummary implements performance.PerformanceService. An empty
// employeeID falls back to the caller's own employee claim.
func (p *PerformanceServiceImpl) GetMonthlySummary(ctx context.Context, employeeID string, monthYear string) (performance.MonthlySummaryResponse, error) {
	_, claims, err := jwtauth.FromContext(ctx)
	if err != nil {
		return performance.MonthlySummaryResponse{}, fmt.Errorf("failed to extract claims from context: %w", err)
	}

	companyID, ok := claims["company_id"].(string)
	if !ok || companyID == "" {
		return performance.MonthlySummaryResponse{}, fmt.Errorf("company_id claim is missing or invalid")
	}

	if employeeID == "" {
		employeeID, ok = claims["employee_id"].(string)
		if !ok || employeeID == "" {
			return performance.MonthlySummaryResponse{}, fmt.Errorf("employee_id claim is missing or invalid")
		}
	}

	summary, err := p.summaryRepo.GetByEmployeeAndMonth(ctx, employeeID, monthYear, companyID)
	if err != nil {
		return performance.MonthlySummaryResponse{}, err
	}

	return toSummaryResponse(summary), nil
}

// ListMonthlySummaries implements performance.PerformanceService.
func (p *PerformanceServiceImpl) ListMonthlySummaries(ctx context.Context, filter performance.SummaryFilter) ([]performance.MonthlySummaryResponse, error) {
	if err := filter.Validate(); err != nil {
		return nil, err
	}

	_, claims, err := jwtauth.FromContext(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to extract claims from context: %w", err)
	}

	companyID, ok := claims["company_id"].(string)
	if !ok || companyID == "" {
		return nil, fmt.Errorf("company_id claim is missing or invalid")
	}

	if filter.EmployeeID != nil {
		summary, err := p.summaryRepo.GetByEmployeeAndMonth(ctx, *filter.EmployeeID, filter.MonthYear, companyID)
		if err != nil {
			return nil, err
		}
		return []performance.MonthlySummaryResponse{toSummaryResponse(summary)}, nil
	}

	summaries, err := p.summaryRepo.ListByCompanyAndMonth(ctx, companyID, filter.MonthYear)
	if err != nil {
		return nil, err
	}

	responses := make([]performance.MonthlySummaryResponse, 0, len(summaries))
	for _, s := range summaries {
		responses = append(responses, toSummaryResponse(s))
	}

	return responses, nil
}

func toSummaryResponse(s performance.MonthlySummary) performance.MonthlySummaryResponse {
	return performance.MonthlySummaryResponse{
		EmployeeID:              s.EmployeeID,
		EmployeeName:            s.EmployeeName,
		MonthYear:               s.MonthYear,
		TotalWorkingDays:        s.TotalWorkingDays,
		TotalDelayMinutes:       s.TotalDelayMinutes,
		TotalBreakMinutes:       s.TotalBreakMinutes,
		TotalOvertimeHours:      s.TotalOvertimeHours,
		AveragePerformanceScore: s.AveragePerformanceScore,
		PunctualityPercentage:   s.PunctualityPercentage,
		PerformanceStatus:       s.PerformanceStatus,
		DelayToFinishHours:      s.DelayToFinishHours,
		FinalOvertimeHours:      s.FinalOvertimeHours,
		UpdatedAt:               s.UpdatedAt.Format("2006-01-02 15:04:05"),
	}
}

func (p *PerformanceServiceImpl) notifyScheduleChanged(ctx context.Context, companyID string, res performance.ReassignShiftResponse) {
	if p.notifier == nil {
		return
	}

	message := fmt.Sprintf("Your shift for %s was changed; hours were reclassified.", res.WorkDate)
	if res.IsDayOff {
		message = fmt.Sprintf("%s was marked as a day off; hours were reclassified.", res.WorkDate)
	}

	_ = p.notifier.QueueNotification(ctx, notification.CreateNotificationRequest{
		CompanyID:   companyID,
		RecipientID: res.EmployeeID,
		Type:        notification.TypeScheduleChanged,
		Title:       "Schedule changed",
		Message:     message,
		Data: map[string]interface{}{
			"attendance_id":  res.AttendanceID,
			"work_date":      res.WorkDate,
			"regular_hours":  res.After.RegularHours,
			"overtime_hours": res.After.OvertimeHours,
		},
	})
}
