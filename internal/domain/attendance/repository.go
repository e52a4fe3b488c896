package attendance

import (
	"context"
	"time"
)

// AttendanceRepository is the persistence boundary for the attendances
// table. Dates are day-granular; clock times travel as "HH:MM:SS"
// strings matching the TIME columns.
type AttendanceRepository interface {
	// UpsertClockIn inserts today's row or, on the (employee_id, date)
	// conflict, overwrites clock_in and status atomically.
	UpsertClockIn(ctx context.Context, employeeID string, date time.Time, clockIn string, status Status) (Attendance, error)
	// SetClockOut updates the existing row for the day and reports
	// ErrNoClockInToday when none exists.
	SetClockOut(ctx context.Context, employeeID string, date time.Time, clockOut string) (Attendance, error)
	GetByID(ctx context.Context, id string) (Attendance, error)
	GetByEmployeeAndDate(ctx context.Context, employeeID string, date time.Time) (Attendance, error)
	ListByEmployee(ctx context.Context, employeeID string, from, to *time.Time) ([]Attendance, error)
	ListAll(ctx context.Context, from, to *time.Time) ([]Attendance, error)
	CountByStatusForMonth(ctx context.Context, employeeID string, year int, month time.Month) (map[Status]int, error)
	MarkEmailSent(ctx context.Context, id string) error
	// MarkAbsentees inserts absent rows for every active employee
	// without a record on the given date and returns how many were
	// created.
	MarkAbsentees(ctx context.Context, date time.Time) (int64, error)
}
