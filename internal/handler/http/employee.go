package http

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/attendly/ems-backend-go/internal/domain/auth"
	"github.com/attendly/ems-backend-go/internal/domain/employee"
	"github.com/attendly/ems-backend-go/internal/domain/user"
	"github.com/attendly/ems-backend-go/internal/handler/http/middleware"
	"github.com/attendly/ems-backend-go/internal/handler/http/response"
	"github.com/attendly/ems-backend-go/internal/pkg/validator"
	"github.com/go-chi/chi/v5"
)

type EmployeeHandler interface {
	Create(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
	Me(w http.ResponseWriter, r *http.Request)
	Get(w http.ResponseWriter, r *http.Request)
	Update(w http.ResponseWriter, r *http.Request)
	Delete(w http.ResponseWriter, r *http.Request)
	AttendanceSummary(w http.ResponseWriter, r *http.Request)
}

type EmployeeHandlerImpl struct {
	employeeService employee.EmployeeService
}

func NewEmployeeHandler(employeeService employee.EmployeeService) EmployeeHandler {
	return &EmployeeHandlerImpl{
		employeeService: employeeService,
	}
}

// actorFromRequest rebuilds the acting user from verified claims; the
// service layer only needs id and role for its guards.
func actorFromRequest(r *http.Request) (user.User, bool) {
	userID, ok := middleware.UserIDFromRequest(r)
	if !ok {
		return user.User{}, false
	}
	role, ok := middleware.RoleFromRequest(r)
	if !ok {
		return user.User{}, false
	}
	return user.User{ID: userID, Role: role}, true
}

// Create implements EmployeeHandler.
func (h *EmployeeHandlerImpl) Create(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFromRequest(r)
	if !ok {
		response.HandleError(w, auth.ErrInvalidToken)
		return
	}

	var createReq employee.CreateEmployeeRequest
	if err := json.NewDecoder(r.Body).Decode(&createReq); err != nil {
		slog.Error("Create employee decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	if err := createReq.Validate(); err != nil {
		slog.Error("Create employee validate error", "error", err)
		response.HandleError(w, err)
		return
	}

	created, err := h.employeeService.Create(r.Context(), createReq, actor)
	if err != nil {
		slog.Error("Create employee service error", "error", err)
		response.HandleError(w, err)
		return
	}

	slog.Info("Employee created successfully", "employee_id", created.ID)
	response.Created(w, "Employee created successfully", created)
}

// List implements EmployeeHandler.
func (h *EmployeeHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	listReq := employee.ListEmployeesRequest{
		Search: r.URL.Query().Get("search"),
	}
	if page := r.URL.Query().Get("page"); page != "" {
		listReq.Page, _ = strconv.Atoi(page)
	}
	if limit := r.URL.Query().Get("limit"); limit != "" {
		listReq.Limit, _ = strconv.Atoi(limit)
	}

	if err := listReq.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.employeeService.List(r.Context(), listReq)
	if err != nil {
		slog.Error("List employees service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMeta(w, result.Employees, &response.Meta{
		Page:       result.Page,
		Limit:      result.Limit,
		TotalItems: result.TotalCount,
		TotalPages: result.TotalPages,
	})
}

// Me implements EmployeeHandler.
func (h *EmployeeHandlerImpl) Me(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromRequest(r)
	if !ok {
		response.HandleError(w, auth.ErrInvalidToken)
		return
	}

	profile, err := h.employeeService.GetProfile(r.Context(), userID)
	if err != nil {
		slog.Error("Get profile service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Success(w, profile)
}

// Get implements EmployeeHandler.
func (h *EmployeeHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if !validator.IsValidUUID(id) {
		response.BadRequest(w, "Invalid employee id", nil)
		return
	}

	found, err := h.employeeService.Get(r.Context(), id)
	if err != nil {
		slog.Error("Get employee service error", "error", err, "employee_id", id)
		response.HandleError(w, err)
		return
	}

	response.Success(w, found)
}

// Update implements EmployeeHandler.
func (h *EmployeeHandlerImpl) Update(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFromRequest(r)
	if !ok {
		response.HandleError(w, auth.ErrInvalidToken)
		return
	}

	id := chi.URLParam(r, "id")
	if !validator.IsValidUUID(id) {
		response.BadRequest(w, "Invalid employee id", nil)
		return
	}

	var updateReq employee.UpdateEmployeeRequest
	if err := json.NewDecoder(r.Body).Decode(&updateReq); err != nil {
		slog.Error("Update employee decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	if err := updateReq.Validate(); err != nil {
		slog.Error("Update employee validate error", "error", err)
		response.HandleError(w, err)
		return
	}

	updated, err := h.employeeService.Update(r.Context(), id, updateReq, actor)
	if err != nil {
		slog.Error("Update employee service error", "error", err, "employee_id", id)
		response.HandleError(w, err)
		return
	}

	slog.Info("Employee updated successfully", "employee_id", id)
	response.SuccessWithMessage(w, "Employee updated successfully", updated)
}

// Delete implements EmployeeHandler.
func (h *EmployeeHandlerImpl) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if !validator.IsValidUUID(id) {
		response.BadRequest(w, "Invalid employee id", nil)
		return
	}

	if err := h.employeeService.Deactivate(r.Context(), id); err != nil {
		slog.Error("Deactivate employee service error", "error", err, "employee_id", id)
		response.HandleError(w, err)
		return
	}

	slog.Info("Employee deactivated successfully", "employee_id", id)
	response.SuccessWithMessage(w, "Employee deactivated successfully", nil)
}

// AttendanceSummary implements EmployeeHandler.
func (h *EmployeeHandlerImpl) AttendanceSummary(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if !validator.IsValidUUID(id) {
		response.BadRequest(w, "Invalid employee id", nil)
		return
	}

	year, month := yearMonthFromQuery(r)

	summary, err := h.employeeService.AttendanceSummary(r.Context(), id, year, month)
	if err != nil {
		slog.Error("Attendance summary service error", "error", err, "employee_id", id)
		response.HandleError(w, err)
		return
	}

	response.Success(w, summary)
}

// yearMonthFromQuery reads year/month query params, defaulting to the
// current month.
func yearMonthFromQuery(r *http.Request) (int, time.Month) {
	now := time.Now()
	year, month := now.Year(), now.Month()

	if y := r.URL.Query().Get("year"); y != "" {
		if parsed, err := strconv.Atoi(y); err == nil && parsed > 0 {
			year = parsed
		}
	}
	if m := r.URL.Query().Get("month"); m != "" {
		if parsed, err := strconv.Atoi(m); err == nil && parsed >= 1 && parsed <= 12 {
			month = time.Month(parsed)
		}
	}
	return year, month
}
