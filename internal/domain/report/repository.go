package report

import (
	"context"
	"time"

	"github.com/attendly/ems-backend-go/internal/domain/attendance"
)

// ReportRepository reads attendance rows for reporting. Range queries
// join the employee so renderers can print names and identifiers.
type ReportRepository interface {
	// AttendancesInRange: date DESC, last name ASC, first name ASC.
	AttendancesInRange(ctx context.Context, start, end time.Time) ([]attendance.Attendance, error)
	// EmployeeAttendancesInRange: single employee, date ASC.
	EmployeeAttendancesInRange(ctx context.Context, employeeID string, start, end time.Time) ([]attendance.Attendance, error)
	AttendancesOnDate(ctx context.Context, date time.Time) ([]attendance.Attendance, error)
	CountActiveEmployees(ctx context.Context) (int64, error)
}
