package attendance

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/attendly/ems-backend-go/internal/domain/attendance"
	"github.com/attendly/ems-backend-go/internal/domain/notification"
	"github.com/attendly/ems-backend-go/internal/domain/user"
	"github.com/attendly/ems-backend-go/internal/pkg/validator"
)

type AttendanceServiceImpl struct {
	attendance.AttendanceRepository
	userRepo user.UserRepository
	notifier notification.NotificationService
}

func NewAttendanceService(attendanceRepo attendance.AttendanceRepository, userRepo user.UserRepository, notifier notification.NotificationService) attendance.AttendanceService {
	return &AttendanceServiceImpl{
		AttendanceRepository: attendanceRepo,
		userRepo:             userRepo,
		notifier:             notifier,
	}
}

func today() time.Time {
	now := time.Now()
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
}

// ClockIn implements attendance.AttendanceService. The upsert makes a
// second clock-in on the same day overwrite time and status instead of
// creating a duplicate row.
func (s *AttendanceServiceImpl) ClockIn(ctx context.Context, employeeID string, clockTime string) (attendance.AttendanceResponse, error) {
	emp, err := s.userRepo.GetByID(ctx, employeeID)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			return attendance.AttendanceResponse{}, user.ErrUserNotFound
		}
		return attendance.AttendanceResponse{}, fmt.Errorf("failed to get employee: %w", err)
	}

	status := attendance.DetermineStatus(clockTime)

	record, err := s.AttendanceRepository.UpsertClockIn(ctx, employeeID, today(), clockTime, status)
	if err != nil {
		return attendance.AttendanceResponse{}, fmt.Errorf("failed to record clock-in: %w", err)
	}

	// Confirmation email is best effort; the clock-in is committed.
	if err := s.notifier.QueueAttendanceEmail(ctx, emp, record); err != nil {
		slog.Error("failed to queue attendance email",
			"employee_id", employeeID,
			"attendance_id", record.ID,
			"error", err)
	} else if err := s.AttendanceRepository.MarkEmailSent(ctx, record.ID); err != nil {
		slog.Error("failed to mark attendance email sent", "attendance_id", record.ID, "error", err)
	}

	return attendance.ToResponse(record), nil
}

// ClockOut implements attendance.AttendanceService. Requires an
// existing clock-in row; nothing is created implicitly.
func (s *AttendanceServiceImpl) ClockOut(ctx context.Context, employeeID string, clockTime string) (attendance.AttendanceResponse, error) {
	if _, err := s.userRepo.GetByID(ctx, employeeID); err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			return attendance.AttendanceResponse{}, user.ErrUserNotFound
		}
		return attendance.AttendanceResponse{}, fmt.Errorf("failed to get employee: %w", err)
	}

	record, err := s.AttendanceRepository.SetClockOut(ctx, employeeID, today(), clockTime)
	if err != nil {
		if errors.Is(err, attendance.ErrNoClockInToday) {
			return attendance.AttendanceResponse{}, attendance.ErrNoClockInToday
		}
		return attendance.AttendanceResponse{}, fmt.Errorf("failed to record clock-out: %w", err)
	}

	return attendance.ToResponse(record), nil
}

// GetTodayAttendance implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) GetTodayAttendance(ctx context.Context, employeeID string) (attendance.AttendanceResponse, error) {
	record, err := s.AttendanceRepository.GetByEmployeeAndDate(ctx, employeeID, today())
	if err != nil {
		if errors.Is(err, attendance.ErrAttendanceNotFound) {
			return attendance.AttendanceResponse{}, attendance.ErrAttendanceNotFound
		}
		return attendance.AttendanceResponse{}, fmt.Errorf("failed to get today's attendance: %w", err)
	}
	return attendance.ToResponse(record), nil
}

// GetEmployeeAttendance implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) GetEmployeeAttendance(ctx context.Context, employeeID string, filter attendance.RangeFilter) ([]attendance.AttendanceResponse, error) {
	if _, err := s.userRepo.GetByID(ctx, employeeID); err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			return nil, user.ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get employee: %w", err)
	}

	from, to := parseRange(filter)
	records, err := s.AttendanceRepository.ListByEmployee(ctx, employeeID, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to list employee attendance: %w", err)
	}

	return toResponses(records), nil
}

// GetAllAttendances implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) GetAllAttendances(ctx context.Context, filter attendance.RangeFilter) ([]attendance.AttendanceResponse, error) {
	from, to := parseRange(filter)
	records, err := s.AttendanceRepository.ListAll(ctx, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to list attendances: %w", err)
	}

	return toResponses(records), nil
}

// GetAttendanceByID implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) GetAttendanceByID(ctx context.Context, id string) (attendance.AttendanceResponse, error) {
	record, err := s.AttendanceRepository.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, attendance.ErrAttendanceNotFound) {
			return attendance.AttendanceResponse{}, attendance.ErrAttendanceNotFound
		}
		return attendance.AttendanceResponse{}, fmt.Errorf("failed to get attendance: %w", err)
	}
	return attendance.ToResponse(record), nil
}

func parseRange(filter attendance.RangeFilter) (from, to *time.Time) {
	if filter.From != nil {
		if t, ok := validator.IsValidDate(*filter.From); ok {
			from = &t
		}
	}
	if filter.To != nil {
		if t, ok := validator.IsValidDate(*filter.To); ok {
			to = &t
		}
	}
	return from, to
}

func toResponses(records []attendance.Attendance) []attendance.AttendanceResponse {
	responses := make([]attendance.AttendanceResponse, 0, len(records))
	for _, r := range records {
		responses = append(responses, attendance.ToResponse(r))
	}
	return responses
}
