package notification

import (
	"context"
	"io"
	"log/slog"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/attendly/ems-backend-go/internal/domain/attendance"
	"github.com/attendly/ems-backend-go/internal/domain/notification"
	"github.com/attendly/ems-backend-go/internal/domain/user"
	"github.com/attendly/ems-backend-go/internal/pkg/email"
	"github.com/attendly/ems-backend-go/internal/pkg/mailqueue"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type capturedMail struct {
	to      string
	subject string
	html    string
}

type capturingSender struct {
	mu   sync.Mutex
	mail []capturedMail
}

func (s *capturingSender) Send(to, subject, html string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.mail = append(s.mail, capturedMail{to: to, subject: subject, html: html})
	return nil
}

func (s *capturingSender) delivered() []capturedMail {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]capturedMail(nil), s.mail...)
}

func waitForMail(t *testing.T, sender *capturingSender, count int) []capturedMail {
	t.Helper()
	deadline := time.Now().Add(5 * time.Second)
	for time.Now().Before(deadline) {
		if mail := sender.delivered(); len(mail) >= count {
			return mail
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatal("expected mail was not delivered before deadline")
	return nil
}

func newTestNotifier(t *testing.T) (notification.NotificationService, *capturingSender, func()) {
	t.Helper()
	renderer, err := email.NewTemplateRenderer("http://localhost:3000")
	require.NoError(t, err)

	sender := &capturingSender{}
	queue := mailqueue.New(sender, mailqueue.Config{Workers: 1, Buffer: 10},
		slog.New(slog.NewTextHandler(io.Discard, nil)))

	svc := NewNotificationService(renderer, queue)
	return svc, sender, func() { _ = queue.Shutdown(context.Background()) }
}

func testRecipient() user.User {
	return user.User{
		ID:                 "8e7a4e1a-1111-2222-3333-444455556666",
		Email:              "jane.doe@example.com",
		FirstName:          "Jane",
		LastName:           "Doe",
		EmployeeIdentifier: "EMP1A2B3C",
		Role:               user.RoleEmployee,
	}
}

func TestQueueWelcomeEmail_WithTempPassword(t *testing.T) {
	svc, sender, stop := newTestNotifier(t)
	defer stop()

	err := svc.QueueWelcomeEmail(context.Background(), testRecipient(), "Temp1234!")
	require.NoError(t, err)

	mail := waitForMail(t, sender, 1)
	assert.Equal(t, "jane.doe@example.com", mail[0].to)
	assert.Contains(t, mail[0].subject, "Welcome")
	assert.Contains(t, mail[0].html, "Temp1234!")
	assert.Contains(t, mail[0].html, "EMP1A2B3C")
}

func TestQueueWelcomeEmail_SelfRegistration(t *testing.T) {
	svc, sender, stop := newTestNotifier(t)
	defer stop()

	err := svc.QueueWelcomeEmail(context.Background(), testRecipient(), "")
	require.NoError(t, err)

	mail := waitForMail(t, sender, 1)
	assert.Contains(t, mail[0].subject, "Welcome")
	// Self-registered users chose their own password.
	assert.NotContains(t, mail[0].html, "Temporary Password")
}

func TestQueuePasswordResetEmail(t *testing.T) {
	svc, sender, stop := newTestNotifier(t)
	defer stop()

	err := svc.QueuePasswordResetEmail(context.Background(), testRecipient(), "reset-token-abc")
	require.NoError(t, err)

	mail := waitForMail(t, sender, 1)
	assert.Contains(t, mail[0].subject, "Password Reset")
	assert.Contains(t, mail[0].html, "reset-password?token=reset-token-abc")
}

func TestQueueAttendanceEmail(t *testing.T) {
	svc, sender, stop := newTestNotifier(t)
	defer stop()

	clockIn := "09:45:00"
	record := attendance.Attendance{
		Date:    time.Date(2026, 3, 18, 0, 0, 0, 0, time.UTC),
		ClockIn: &clockIn,
		Status:  attendance.StatusLate,
	}

	err := svc.QueueAttendanceEmail(context.Background(), testRecipient(), record)
	require.NoError(t, err)

	mail := waitForMail(t, sender, 1)
	assert.Contains(t, mail[0].subject, "Attendance Confirmation")
	assert.Contains(t, mail[0].subject, "2026-03-18")
	assert.Contains(t, mail[0].html, "09:45:00")
	assert.True(t, strings.Contains(mail[0].html, "late") || strings.Contains(mail[0].html, "Late"))
}
