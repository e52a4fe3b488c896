package employee

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/attendly/ems-backend-go/internal/domain/attendance"
	"github.com/attendly/ems-backend-go/internal/domain/employee"
	"github.com/attendly/ems-backend-go/internal/domain/notification"
	"github.com/attendly/ems-backend-go/internal/domain/user"
	"golang.org/x/crypto/bcrypt"
)

type EmployeeServiceImpl struct {
	userRepo user.UserRepository
	attRepo  attendance.AttendanceRepository
	notifier notification.NotificationService
}

func NewEmployeeService(userRepo user.UserRepository, attRepo attendance.AttendanceRepository, notifier notification.NotificationService) employee.EmployeeService {
	return &EmployeeServiceImpl{
		userRepo: userRepo,
		attRepo:  attRepo,
		notifier: notifier,
	}
}

// Create implements employee.EmployeeService. Managers may only create
// plain employee accounts; admins may assign any role.
func (s *EmployeeServiceImpl) Create(ctx context.Context, req employee.CreateEmployeeRequest, actor user.User) (user.UserResponse, error) {
	role := user.Role(strings.ToLower(req.Role))
	if !actor.IsAdmin() && role != user.RoleEmployee {
		return user.UserResponse{}, user.ErrRoleNotAllowed
	}

	exists, err := s.userRepo.ExistsByEmail(ctx, req.Email)
	if err != nil {
		return user.UserResponse{}, fmt.Errorf("failed to check email existence: %w", err)
	}
	if exists {
		return user.UserResponse{}, employee.ErrEmailExists
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return user.UserResponse{}, fmt.Errorf("failed to hash password: %w", err)
	}

	identifier := req.EmployeeIdentifier
	if identifier == "" {
		identifier = user.NewEmployeeIdentifier()
	}

	newUser := user.User{
		Email:              req.Email,
		FirstName:          req.FirstName,
		LastName:           req.LastName,
		PasswordHash:       string(hash),
		EmployeeIdentifier: identifier,
		PhoneNumber:        req.PhoneNumber,
		Role:               role,
	}

	created, err := s.userRepo.Create(ctx, newUser)
	if err != nil {
		if errors.Is(err, user.ErrUserEmailExists) {
			return user.UserResponse{}, employee.ErrEmailExists
		}
		if errors.Is(err, user.ErrUserIdentifierExists) {
			return user.UserResponse{}, employee.ErrIdentifierExists
		}
		return user.UserResponse{}, fmt.Errorf("failed to create employee: %w", err)
	}

	// The welcome email carries the temporary password; enqueue
	// failure never undoes the account.
	if err := s.notifier.QueueWelcomeEmail(ctx, created, req.Password); err != nil {
		slog.Error("failed to queue employee welcome email", "user_id", created.ID, "error", err)
	}

	return user.ToResponse(created), nil
}

// List implements employee.EmployeeService.
func (s *EmployeeServiceImpl) List(ctx context.Context, req employee.ListEmployeesRequest) (employee.ListEmployeesResponse, error) {
	users, total, err := s.userRepo.List(ctx, user.ListFilter{
		Page:   req.Page,
		Limit:  req.Limit,
		Search: req.Search,
	})
	if err != nil {
		return employee.ListEmployeesResponse{}, fmt.Errorf("failed to list employees: %w", err)
	}

	responses := make([]user.UserResponse, 0, len(users))
	for _, u := range users {
		responses = append(responses, user.ToResponse(u))
	}

	totalPages := int((total + int64(req.Limit) - 1) / int64(req.Limit))

	return employee.ListEmployeesResponse{
		TotalCount: total,
		Page:       req.Page,
		Limit:      req.Limit,
		TotalPages: totalPages,
		Employees:  responses,
	}, nil
}

// Get implements employee.EmployeeService.
func (s *EmployeeServiceImpl) Get(ctx context.Context, id string) (user.UserResponse, error) {
	found, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			return user.UserResponse{}, employee.ErrEmployeeNotFound
		}
		return user.UserResponse{}, fmt.Errorf("failed to get employee: %w", err)
	}
	return user.ToResponse(found), nil
}

// GetProfile implements employee.EmployeeService.
func (s *EmployeeServiceImpl) GetProfile(ctx context.Context, userID string) (user.UserResponse, error) {
	return s.Get(ctx, userID)
}

// Update implements employee.EmployeeService. Non-admins may only
// update their own profile and never their role.
func (s *EmployeeServiceImpl) Update(ctx context.Context, id string, req employee.UpdateEmployeeRequest, actor user.User) (user.UserResponse, error) {
	if !actor.IsAdmin() && actor.ID != id {
		return user.UserResponse{}, user.ErrProfileAccessDenied
	}
	if req.Role != nil && !actor.IsAdmin() {
		return user.UserResponse{}, user.ErrRoleChangeDenied
	}

	current, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			return user.UserResponse{}, employee.ErrEmployeeNotFound
		}
		return user.UserResponse{}, fmt.Errorf("failed to get employee: %w", err)
	}

	if req.FirstName != nil {
		current.FirstName = *req.FirstName
	}
	if req.LastName != nil {
		current.LastName = *req.LastName
	}
	if req.PhoneNumber != nil {
		current.PhoneNumber = req.PhoneNumber
	}
	if req.Role != nil {
		current.Role = user.Role(strings.ToLower(*req.Role))
	}
	if req.Password != nil {
		hash, err := bcrypt.GenerateFromPassword([]byte(*req.Password), bcrypt.DefaultCost)
		if err != nil {
			return user.UserResponse{}, fmt.Errorf("failed to hash password: %w", err)
		}
		current.PasswordHash = string(hash)
	}

	updated, err := s.userRepo.Update(ctx, current)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			return user.UserResponse{}, employee.ErrEmployeeNotFound
		}
		return user.UserResponse{}, fmt.Errorf("failed to update employee: %w", err)
	}

	return user.ToResponse(updated), nil
}

// Deactivate implements employee.EmployeeService.
func (s *EmployeeServiceImpl) Deactivate(ctx context.Context, id string) error {
	if err := s.userRepo.Deactivate(ctx, id); err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			return employee.ErrEmployeeNotFound
		}
		return fmt.Errorf("failed to deactivate employee: %w", err)
	}
	return nil
}

// AttendanceSummary implements employee.EmployeeService.
func (s *EmployeeServiceImpl) AttendanceSummary(ctx context.Context, id string, year int, month time.Month) (attendance.MonthlySummary, error) {
	if _, err := s.userRepo.GetByID(ctx, id); err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			return attendance.MonthlySummary{}, employee.ErrEmployeeNotFound
		}
		return attendance.MonthlySummary{}, fmt.Errorf("failed to get employee: %w", err)
	}

	counts, err := s.attRepo.CountByStatusForMonth(ctx, id, year, month)
	if err != nil {
		return attendance.MonthlySummary{}, fmt.Errorf("failed to count attendance statuses: %w", err)
	}

	summary := attendance.MonthlySummary{
		EmployeeID: id,
		Month:      int(month),
		Year:       year,
		Present:    counts[attendance.StatusPresent],
		Late:       counts[attendance.StatusLate],
		Absent:     counts[attendance.StatusAbsent],
		Leave:      counts[attendance.StatusLeave],
	}
	summary.Total = summary.Present + summary.Late + summary.Absent + summary.Leave

	return summary, nil
}
