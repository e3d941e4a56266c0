package shift

import (
	"context"
	"fmt"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/shiftpulse/shiftpulse-backend-go/internal/domain/attendance"
	"github.com/shiftpulse/shiftpulse-backend-go/internal/domain/performance"
	"github.com/shiftpulse/shiftpulse-backend-go/internal/domain/shift"
	"github.com/shiftpulse/shiftpulse-backend-go/internal/pkg/database"
)

type ShiftServiceImpl struct {
	db *database.DB
	shift.ShiftRepository
	assignmentRepo shift.AssignmentRepository
	attendanceRepo attendance.AttendanceRepository
	performanceSvc performance.PerformanceService
}

func NewShiftService(
	db *database.DB,
	shiftRepo shift.ShiftRepository,
	assignmentRepo shift.AssignmentRepository,
	attendanceRepo attendance.AttendanceRepository,
	performanceSvc performance.PerformanceService,
) shift.ShiftService {
	return &ShiftServiceImpl{
		db:              db,
		ShiftRepository: shiftRepo,
		assignmentRepo:  assignmentRepo,
		attendanceRepo:  attendanceRepo,
		performanceSvc:  performanceSvc,
	}
}

// CreateShift implements shift.ShiftService.
func (s *ShiftServiceImpl) CreateShift(ctx context.Context, req shift.CreateShiftRequest) (shift.ShiftResponse, error) {
	if err := req.Validate(); err != nil {
		return shift.ShiftResponse{}, err
	}

	companyID, err := companyFromContext(ctx)
	if err != nil {
		return shift.ShiftResponse{}, err
	}

	// Reject templates the duration math cannot represent before they hit
	// the database.
	if _, err := shift.Duration(req.StartTime, req.EndTime); err != nil {
		return shift.ShiftResponse{}, shift.ErrInvalidShiftTimes
	}

	created, err := s.ShiftRepository.Create(ctx, shift.Shift{
		CompanyID:     companyID,
		Name:          req.Name,
		StartTime:     req.StartTime,
		EndTime:       req.EndTime,
		DurationHours: req.DurationHours,
	})
	if err != nil {
		return shift.ShiftResponse{}, err
	}

	return toShiftResponse(created), nil
}

// GetShift implements shift.ShiftService.
func (s *ShiftServiceImpl) GetShift(ctx context.Context, id string) (shift.ShiftResponse, error) {
	companyID, err := companyFromContext(ctx)
	if err != nil {
		return shift.ShiftResponse{}, err
	}

	found, err := s.ShiftRepository.GetByID(ctx, id, companyID)
	if err != nil {
		return shift.ShiftResponse{}, err
	}

	return toShiftResponse(found), nil
}

// ListShifts implements shift.ShiftService.
func (s *ShiftServiceImpl) ListShifts(ctx context.Context) (shift.ListShiftsResponse, error) {
	companyID, err := companyFromContext(ctx)
	if err != nil {
		return shift.ListShiftsResponse{}, err
	}

	shifts, totalCount, err := s.ShiftRepository.List(ctx, companyID)
	if err != nil {
		return shift.ListShiftsResponse{}, err
	}

	responses := make([]shift.ShiftResponse, 0, len(shifts))
	for _, sh := range shifts {
		responses = append(responses, toShiftResponse(sh))
	}

	return shift.ListShiftsResponse{
		TotalCount: totalCount,
		Shifts:     responses,
	}, nil
}

// UpdateShift implements shift.ShiftService.
func (s *ShiftServiceImpl) UpdateShift(ctx context.Context, req shift.UpdateShiftRequest) (shift.ShiftResponse, error) {
	if err := req.Validate(); err != nil {
		return shift.ShiftResponse{}, err
	}

	companyID, err := companyFromContext(ctx)
	if err != nil {
		return shift.ShiftResponse{}, err
	}

	if req.StartTime != nil || req.EndTime != nil {
		current, err := s.ShiftRepository.GetByID(ctx, req.ID, companyID)
		if err != nil {
			return shift.ShiftResponse{}, err
		}
		start, end := current.StartTime, current.EndTime
		if req.StartTime != nil {
			start = *req.StartTime
		}
		if req.EndTime != nil {
			end = *req.EndTime
		}
		if _, err := shift.Duration(start, end); err != nil {
			return shift.ShiftResponse{}, shift.ErrInvalidShiftTimes
		}
	}

	updated, err := s.ShiftRepository.Update(ctx, req, companyID)
	if err != nil {
		return shift.ShiftResponse{}, err
	}

	return toShiftResponse(updated), nil
}

// DeleteShift implements shift.ShiftService. Soft delete: historical
// attendance keeps pointing at the row.
func (s *ShiftServiceImpl) DeleteShift(ctx context.Context, id string) error {
	companyID, err := companyFromContext(ctx)
	if err != nil {
		return err
	}

	return s.ShiftRepository.SoftDelete(ctx, id, companyID)
}

// AssignShift implements shift.ShiftService.
func (s *ShiftServiceImpl) AssignShift(ctx context.Context, req shift.AssignShiftRequest) (shift.AssignmentResponse, error) {
	if err := req.Validate(); err != nil {
		return shift.AssignmentResponse{}, err
	}

	companyID, err := companyFromContext(ctx)
	if err != nil {
		return shift.AssignmentResponse{}, err
	}

	workDate, _ := time.Parse("2006-01-02", req.WorkDate)

	assigned, err := s.assignDay(ctx, companyID, req.EmployeeID, workDate, &req.ShiftID, false)
	if err != nil {
		return shift.AssignmentResponse{}, err
	}

	sh, err := s.ShiftRepository.GetByID(ctx, req.ShiftID, companyID)
	if err != nil {
		return shift.AssignmentResponse{}, err
	}

	response := toAssignmentResponse(assigned)
	response.ShiftName = &sh.Name
	return response, nil
}

// SetDayOff implements shift.ShiftService.
func (s *ShiftServiceImpl) SetDayOff(ctx context.Context, req shift.SetDayOffRequest) (shift.AssignmentResponse, error) {
	if err := req.Validate(); err != nil {
		return shift.AssignmentResponse{}, err
	}

	companyID, err := companyFromContext(ctx)
	if err != nil {
		return shift.AssignmentResponse{}, err
	}

	workDate, _ := time.Parse("2006-01-02", req.WorkDate)

	assigned, err := s.assignDay(ctx, companyID, req.EmployeeID, workDate, nil, true)
	if err != nil {
		return shift.AssignmentResponse{}, err
	}

	return toAssignmentResponse(assigned), nil
}

// assignDay writes one day's assignment. Days that already carry recorded
// attendance go through the reconciliation path so the recorded hours are
// reclassified against the new shift; changing the schedule never rewrites
// clock times.
func (s *ShiftServiceImpl) assignDay(ctx context.Context, companyID, employeeID string, workDate time.Time, shiftID *string, isDayOff bool) (shift.Assignment, error) {
	if shiftID != nil {
		if _, err := s.ShiftRepository.GetByID(ctx, *shiftID, companyID); err != nil {
			return shift.Assignment{}, err
		}
	}

	records, err := s.attendanceRepo.ListByEmployeeAndRange(ctx, employeeID, workDate, workDate, companyID)
	if err != nil {
		return shift.Assignment{}, err
	}

	for _, rec := range records {
		if rec.CheckOut != nil {
			// ReassignShift also upserts the assignment row.
			_, err := s.performanceSvc.ReassignShift(ctx, performance.ReassignShiftRequest{
				AttendanceID: rec.ID,
				ShiftID:      shiftID,
				IsDayOff:     isDayOff,
			})
			if err != nil {
				return shift.Assignment{}, err
			}

			assignment, err := s.assignmentRepo.GetByEmployeeAndDate(ctx, employeeID, workDate, companyID)
			if err != nil {
				return shift.Assignment{}, err
			}
			if assignment == nil {
				return shift.Assignment{}, shift.ErrAssignmentNotFound
			}
			return *assignment, nil
		}

		// Open session: repoint the record so checkout scores against the
		// new shift.
		rec.ShiftID = shiftID
		if _, err := s.attendanceRepo.UpdateDerived(ctx, rec, rec.UpdatedAt); err != nil {
			return shift.Assignment{}, err
		}
	}

	return s.assignmentRepo.Upsert(ctx, shift.Assignment{
		CompanyID:  companyID,
		EmployeeID: employeeID,
		WorkDate:   workDate,
		ShiftID:    shiftID,
		IsDayOff:   isDayOff,
	})
}

// BulkAssignMonth implements shift.ShiftService.
func (s *ShiftServiceImpl) BulkAssignMonth(ctx context.Context, req shift.BulkAssignMonthRequest) (shift.BulkAssignMonthResponse, error) {
	if err := req.Validate(); err != nil {
		return shift.BulkAssignMonthResponse{}, err
	}

	companyID, err := companyFromContext(ctx)
	if err != nil {
		return shift.BulkAssignMonthResponse{}, err
	}

	if _, err := s.ShiftRepository.GetByID(ctx, req.ShiftID, companyID); err != nil {
		return shift.BulkAssignMonthResponse{}, err
	}

	monthStart, _ := time.Parse("2006-01", req.MonthYear)

	response := shift.BulkAssignMonthResponse{
		EmployeeID: req.EmployeeID,
		MonthYear:  req.MonthYear,
	}

	for day := monthStart; day.Month() == monthStart.Month(); day = day.AddDate(0, 0, 1) {
		if req.SkipWeekends && (day.Weekday() == time.Saturday || day.Weekday() == time.Sunday) {
			continue
		}

		response.TotalDays++

		if _, err := s.assignDay(ctx, companyID, req.EmployeeID, day, &req.ShiftID, false); err != nil {
			response.FailedDays++
			response.Errors = append(response.Errors, shift.DayError{
				Date:    day.Format("2006-01-02"),
				Message: err.Error(),
			})
			continue
		}

		response.AssignedDays++
	}

	return response, nil
}

// ListAssignments implements shift.ShiftService. Defaults to the current
// month when no range is given.
func (s *ShiftServiceImpl) ListAssignments(ctx context.Context, filter shift.AssignmentFilter) ([]shift.AssignmentResponse, error) {
	if err := filter.Validate(); err != nil {
		return nil, err
	}

	companyID, err := companyFromContext(ctx)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	start := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	end := start.AddDate(0, 1, -1)
	if filter.StartDate != nil && *filter.StartDate != "" {
		start, _ = time.Parse("2006-01-02", *filter.StartDate)
	}
	if filter.EndDate != nil && *filter.EndDate != "" {
		end, _ = time.Parse("2006-01-02", *filter.EndDate)
	}

	assignments, err := s.assignmentRepo.ListByEmployeeAndRange(ctx, filter.EmployeeID, start, end, companyID)
	if err != nil {
		return nil, err
	}

	shifts, _, err := s.ShiftRepository.List(ctx, companyID)
	if err != nil {
		return nil, err
	}
	namesByID := make(map[string]string, len(shifts))
	for _, sh := range shifts {
		namesByID[sh.ID] = sh.Name
	}

	responses := make([]shift.AssignmentResponse, 0, len(assignments))
	for _, a := range assignments {
		response := toAssignmentResponse(a)
		if a.ShiftID != nil {
			if name, ok := namesByID[*a.ShiftID]; ok {
				response.ShiftName = &name
			}
		}
		responses = append(responses, response)
	}

	return responses, nil
}

func companyFromContext(ctx context.Context) (string, error) {
	_, claims, err := jwtauth.FromContext(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to extract claims from context: %w", err)
	}

	companyID, ok := claims["company_id"].(string)
	if !ok || companyID == "" {
		return "", fmt.Errorf("company_id claim is missing or invalid")
	}

	return companyID, nil
}

func toShiftResponse(sh shift.Shift) shift.ShiftResponse {
	duration, _ := sh.Duration()

	return shift.ShiftResponse{
		ID:            sh.ID,
		CompanyID:     sh.CompanyID,
		Name:          sh.Name,
		StartTime:     sh.StartTime,
		EndTime:       sh.EndTime,
		DurationHours: duration,
		ExpectedHours: sh.ExpectedHours(),
		Category:      string(shift.CategoryOf(sh.Name)),
		CreatedAt:     sh.CreatedAt.Format("2006-01-02 15:04:05"),
		UpdatedAt:     sh.UpdatedAt.Format("2006-01-02 15:04:05"),
	}
}

func toAssignmentResponse(a shift.Assignment) shift.AssignmentResponse {
	return shift.AssignmentResponse{
		ID:         a.ID,
		EmployeeID: a.EmployeeID,
		WorkDate:   a.WorkDate.Format("2006-01-02"),
		ShiftID:    a.ShiftID,
		IsDayOff:   a.IsDayOff,
		CreatedAt:  a.CreatedAt.Format("2006-01-02 15:04:05"),
		UpdatedAt:  a.UpdatedAt.Format("2006-01-02 15:04:05"),
	}
}
