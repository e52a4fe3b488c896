package email

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRenderer(t *testing.T) *TemplateRenderer {
	t.Helper()
	r, err := NewTemplateRenderer("http://localhost:3000")
	require.NoError(t, err)
	return r
}

func TestRenderEmployeeWelcome(t *testing.T) {
	r := newRenderer(t)

	subject, html, err := r.RenderEmployeeWelcome(EmployeeWelcomeData{
		Name:               "Jane Doe",
		Email:              "jane@example.com",
		TempPassword:       "s3cret-temp",
		EmployeeIdentifier: "EMP4F2A1C",
		Role:               "employee",
	})
	require.NoError(t, err)

	assert.Equal(t, "Welcome to the Employee Management System", subject)
	assert.Contains(t, html, "Jane Doe")
	assert.Contains(t, html, "jane@example.com")
	assert.Contains(t, html, "s3cret-temp")
	assert.Contains(t, html, "EMP4F2A1C")
	assert.Contains(t, html, "http://localhost:3000/login")
}

func TestRenderRegistrationWelcome(t *testing.T) {
	r := newRenderer(t)

	subject, html, err := r.RenderRegistrationWelcome(RegistrationWelcomeData{Name: "John"})
	require.NoError(t, err)

	assert.Equal(t, "Welcome to the Employee Management System", subject)
	assert.Contains(t, html, "John")
	// Self-registration never echoes credentials.
	assert.NotContains(t, html, "Temporary Password")
}

func TestRenderPasswordReset(t *testing.T) {
	r := newRenderer(t)

	subject, html, err := r.RenderPasswordReset("Jane", "tok123")
	require.NoError(t, err)

	assert.Equal(t, "Password Reset Request", subject)
	assert.Contains(t, html, "http://localhost:3000/reset-password?token=tok123")
	assert.Contains(t, html, "1 hour")
}

func TestRenderAttendance(t *testing.T) {
	r := newRenderer(t)

	subject, html, err := r.RenderAttendance(AttendanceData{
		Name:         "Jane",
		Date:         "2026-08-28",
		ClockIn:      "09:45:00",
		ClockOut:     "-",
		Status:       "late",
		WorkingHours: "0.00",
	})
	require.NoError(t, err)

	assert.Equal(t, "Attendance Confirmation - 2026-08-28", subject)
	assert.Contains(t, html, "09:45:00")
	assert.True(t, strings.Contains(html, statusColors["late"]), "late status color applied")
}
