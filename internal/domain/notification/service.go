package notification

import (
	"context"

	"github.com/attendly/ems-backend-go/internal/domain/attendance"
	"github.com/attendly/ems-backend-go/internal/domain/user"
)

// NotificationService renders an email and hands it to the background
// queue. Every method returns once the job is accepted; SMTP delivery
// never blocks the caller.
type NotificationService interface {
	// QueueWelcomeEmail: with a temporary password the message carries
	// a credentials block (admin-created account); without one it is a
	// plain self-registration welcome.
	QueueWelcomeEmail(ctx context.Context, recipient user.User, tempPassword string) error
	QueuePasswordResetEmail(ctx context.Context, recipient user.User, resetToken string) error
	QueueAttendanceEmail(ctx context.Context, recipient user.User, record attendance.Attendance) error
}
