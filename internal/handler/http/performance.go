package http

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/shiftpulse/shiftpulse-backend-go/internal/domain/performance"
	"github.com/shiftpulse/shiftpulse-backend-go/internal/handler/http/response"
)

type PerformanceHandler interface {
	ReassignShift(w http.ResponseWriter, r *http.Request)
	Recalculate(w http.ResponseWriter, r *http.Request)
	GetMySummary(w http.ResponseWriter, r *http.Request)
	GetEmployeeSummary(w http.ResponseWriter, r *http.Request)
	ListSummaries(w http.ResponseWriter, r *http.Request)
}

type performanceHandlerImpl struct {
	performanceService performance.PerformanceService
}

func NewPerformanceHandler(performanceService performance.PerformanceService) PerformanceHandler {
	return &performanceHandlerImpl{
		performanceService: performanceService,
	}
}

// ReassignShift implements PerformanceHandler. Admin only.
func (h *performanceHandlerImpl) ReassignShift(w http.ResponseWriter, r *http.Request) {
	var req performance.ReassignShiftRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := h.performanceService.ReassignShift(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Shift reassigned", result)
}

// Recalculate implements PerformanceHandler. Admin only.
func (h *performanceHandlerImpl) Recalculate(w http.ResponseWriter, r *http.Request) {
	var req performance.RecalculateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := h.performanceService.RecalculateRange(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Recalculation finished", result)
}

// GetMySummary implements PerformanceHandler.
func (h *performanceHandlerImpl) GetMySummary(w http.ResponseWriter, r *http.Request) {
	monthYear := chi.URLParam(r, "monthYear")

	result, err := h.performanceService.GetMonthlySummary(r.Context(), "", monthYear)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// GetEmployeeSummary implements PerformanceHandler. Admin only.
func (h *performanceHandlerImpl) GetEmployeeSummary(w http.ResponseWriter, r *http.Request) {
	employeeID := chi.URLParam(r, "employeeID")
	monthYear := chi.URLParam(r, "monthYear")

	result, err := h.performanceService.GetMonthlySummary(r.Context(), employeeID, monthYear)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// ListSummaries implements PerformanceHandler. Admin only.
func (h *performanceHandlerImpl) ListSummaries(w http.ResponseWriter, r *http.Request) {
	filter := performance.SummaryFilter{
		MonthYear:  r.URL.Query().Get("month"),
		EmployeeID: optionalQueryParam(r, "employee_id"),
	}

	result, err := h.performanceService.ListMonthlySummaries(r.Context(), filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}
