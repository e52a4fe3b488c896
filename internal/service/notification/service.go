package notification

import (
	"context"
	"fmt"

	"github.com/attendly/ems-backend-go/internal/domain/attendance"
	"github.com/attendly/ems-backend-go/internal/domain/notification"
	"github.com/attendly/ems-backend-go/internal/domain/user"
	"github.com/attendly/ems-backend-go/internal/pkg/email"
	"github.com/attendly/ems-backend-go/internal/pkg/mailqueue"
)

const (
	jobTypeWelcome       = "welcome"
	jobTypePasswordReset = "password_reset"
	jobTypeAttendance    = "attendance"
)

type NotificationServiceImpl struct {
	renderer *email.TemplateRenderer
	queue    *mailqueue.Queue
}

func NewNotificationService(renderer *email.TemplateRenderer, queue *mailqueue.Queue) notification.NotificationService {
	return &NotificationServiceImpl{
		renderer: renderer,
		queue:    queue,
	}
}

// QueueWelcomeEmail implements notification.NotificationService.
func (s *NotificationServiceImpl) QueueWelcomeEmail(ctx context.Context, recipient user.User, tempPassword string) error {
	var subject, html string
	var err error

	if tempPassword != "" {
		subject, html, err = s.renderer.RenderEmployeeWelcome(email.EmployeeWelcomeData{
			Name:               recipient.FullName(),
			Email:              recipient.Email,
			TempPassword:       tempPassword,
			EmployeeIdentifier: recipient.EmployeeIdentifier,
			Role:               string(recipient.Role),
		})
	} else {
		subject, html, err = s.renderer.RenderRegistrationWelcome(email.RegistrationWelcomeData{
			Name: recipient.FullName(),
		})
	}
	if err != nil {
		return fmt.Errorf("failed to render welcome email: %w", err)
	}

	return s.enqueue(jobTypeWelcome, recipient, subject, html)
}

// QueuePasswordResetEmail implements notification.NotificationService.
func (s *NotificationServiceImpl) QueuePasswordResetEmail(ctx context.Context, recipient user.User, resetToken string) error {
	subject, html, err := s.renderer.RenderPasswordReset(recipient.FullName(), resetToken)
	if err != nil {
		return fmt.Errorf("failed to render password reset email: %w", err)
	}

	return s.enqueue(jobTypePasswordReset, recipient, subject, html)
}

// QueueAttendanceEmail implements notification.NotificationService.
func (s *NotificationServiceImpl) QueueAttendanceEmail(ctx context.Context, recipient user.User, record attendance.Attendance) error {
	clockIn, clockOut := "-", "-"
	if record.ClockIn != nil {
		clockIn = *record.ClockIn
	}
	if record.ClockOut != nil {
		clockOut = *record.ClockOut
	}

	subject, html, err := s.renderer.RenderAttendance(email.AttendanceData{
		Name:         recipient.FullName(),
		Date:         record.Date.Format("2006-01-02"),
		ClockIn:      clockIn,
		ClockOut:     clockOut,
		Status:       string(record.Status),
		WorkingHours: fmt.Sprintf("%.2f", record.WorkingHours()),
	})
	if err != nil {
		return fmt.Errorf("failed to render attendance email: %w", err)
	}

	return s.enqueue(jobTypeAttendance, recipient, subject, html)
}

func (s *NotificationServiceImpl) enqueue(jobType string, recipient user.User, subject, html string) error {
	_, err := s.queue.Enqueue(mailqueue.Job{
		Type:    jobType,
		To:      recipient.Email,
		Subject: subject,
		HTML:    html,
		UserID:  recipient.ID,
	})
	if err != nil {
		return fmt.Errorf("failed to enqueue %s email: %w", jobType, err)
	}
	return nil
}
