package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/attendly/ems-backend-go/internal/domain/attendance"
	"github.com/attendly/ems-backend-go/internal/domain/auth"
	"github.com/attendly/ems-backend-go/internal/domain/user"
	"github.com/attendly/ems-backend-go/internal/handler/http/middleware"
	"github.com/attendly/ems-backend-go/internal/handler/http/response"
	"github.com/attendly/ems-backend-go/internal/pkg/validator"
	"github.com/go-chi/chi/v5"
)

type AttendanceHandler interface {
	ClockIn(w http.ResponseWriter, r *http.Request)
	ClockOut(w http.ResponseWriter, r *http.Request)
	Today(w http.ResponseWriter, r *http.Request)
	ByEmployee(w http.ResponseWriter, r *http.Request)
	All(w http.ResponseWriter, r *http.Request)
	ByID(w http.ResponseWriter, r *http.Request)
}

type AttendanceHandlerImpl struct {
	attendanceService attendance.AttendanceService
}

func NewAttendanceHandler(attendanceService attendance.AttendanceService) AttendanceHandler {
	return &AttendanceHandlerImpl{
		attendanceService: attendanceService,
	}
}

// resolveClockTarget decides whose attendance record the clock action
// touches. Only admins and managers may act on another employee.
func resolveClockTarget(r *http.Request, req attendance.ClockRequest) (string, error) {
	userID, ok := middleware.UserIDFromRequest(r)
	if !ok {
		return "", auth.ErrInvalidToken
	}

	if req.EmployeeID == nil || *req.EmployeeID == "" || *req.EmployeeID == userID {
		return userID, nil
	}

	role, ok := middleware.RoleFromRequest(r)
	if !ok {
		return "", auth.ErrInvalidToken
	}
	if role != user.RoleAdmin && role != user.RoleManager {
		return "", user.ErrManagerAccessRequired
	}
	return *req.EmployeeID, nil
}

// ClockIn implements AttendanceHandler.
func (h *AttendanceHandlerImpl) ClockIn(w http.ResponseWriter, r *http.Request) {
	var clockReq attendance.ClockRequest
	if err := json.NewDecoder(r.Body).Decode(&clockReq); err != nil {
		slog.Error("Clock-in decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	if err := clockReq.Validate(); err != nil {
		slog.Error("Clock-in validate error", "error", err)
		response.HandleError(w, err)
		return
	}

	employeeID, err := resolveClockTarget(r, clockReq)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	record, err := h.attendanceService.ClockIn(r.Context(), employeeID, clockReq.Time)
	if err != nil {
		slog.Error("Clock-in service error", "error", err, "employee_id", employeeID)
		response.HandleError(w, err)
		return
	}

	slog.Info("Clock-in recorded", "employee_id", employeeID, "status", record.Status)
	response.Created(w, "Clock-in recorded successfully", record)
}

// ClockOut implements AttendanceHandler.
func (h *AttendanceHandlerImpl) ClockOut(w http.ResponseWriter, r *http.Request) {
	var clockReq attendance.ClockRequest
	if err := json.NewDecoder(r.Body).Decode(&clockReq); err != nil {
		slog.Error("Clock-out decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	if err := clockReq.Validate(); err != nil {
		slog.Error("Clock-out validate error", "error", err)
		response.HandleError(w, err)
		return
	}

	employeeID, err := resolveClockTarget(r, clockReq)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	record, err := h.attendanceService.ClockOut(r.Context(), employeeID, clockReq.Time)
	if err != nil {
		slog.Error("Clock-out service error", "error", err, "employee_id", employeeID)
		response.HandleError(w, err)
		return
	}

	slog.Info("Clock-out recorded", "employee_id", employeeID)
	response.SuccessWithMessage(w, "Clock-out recorded successfully", record)
}

// Today implements AttendanceHandler.
func (h *AttendanceHandlerImpl) Today(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromRequest(r)
	if !ok {
		response.HandleError(w, auth.ErrInvalidToken)
		return
	}

	record, err := h.attendanceService.GetTodayAttendance(r.Context(), userID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, record)
}

// ByEmployee implements AttendanceHandler.
func (h *AttendanceHandlerImpl) ByEmployee(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if !validator.IsValidUUID(id) {
		response.BadRequest(w, "Invalid employee id", nil)
		return
	}

	filter := rangeFilterFromQuery(r)
	if err := filter.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	records, err := h.attendanceService.GetEmployeeAttendance(r.Context(), id, filter)
	if err != nil {
		slog.Error("Employee attendance service error", "error", err, "employee_id", id)
		response.HandleError(w, err)
		return
	}

	response.Success(w, records)
}

// All implements AttendanceHandler.
func (h *AttendanceHandlerImpl) All(w http.ResponseWriter, r *http.Request) {
	filter := rangeFilterFromQuery(r)
	if err := filter.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	records, err := h.attendanceService.GetAllAttendances(r.Context(), filter)
	if err != nil {
		slog.Error("All attendances service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Success(w, records)
}

// ByID implements AttendanceHandler.
func (h *AttendanceHandlerImpl) ByID(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if !validator.IsValidUUID(id) {
		response.BadRequest(w, "Invalid attendance id", nil)
		return
	}

	record, err := h.attendanceService.GetAttendanceByID(r.Context(), id)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, record)
}

func rangeFilterFromQuery(r *http.Request) attendance.RangeFilter {
	var filter attendance.RangeFilter
	if from := r.URL.Query().Get("from"); from != "" {
		filter.From = &from
	}
	if to := r.URL.Query().Get("to"); to != "" {
		filter.To = &to
	}
	return filter
}
