package postgresql

import (
	"context"
	"time"

	"github.com/attendly/ems-backend-go/internal/domain/attendance"
	"github.com/attendly/ems-backend-go/internal/domain/report"
	"github.com/attendly/ems-backend-go/internal/domain/user"
	"github.com/attendly/ems-backend-go/internal/pkg/database"
)

type reportRepositoryImpl struct {
	db *database.DB
}

func NewReportRepository(db *database.DB) report.ReportRepository {
	return &reportRepositoryImpl{db: db}
}

// AttendancesInRange implements report.ReportRepository.
func (r *reportRepositoryImpl) AttendancesInRange(ctx context.Context, start, end time.Time) ([]attendance.Attendance, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + attendanceJoinColumns + `
		FROM attendances a
		JOIN users u ON u.id = a.employee_id
		WHERE a.date >= $1 AND a.date <= $2
		ORDER BY a.date DESC, u.last_name ASC, u.first_name ASC`

	rows, err := q.Query(ctx, query, start, end)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []attendance.Attendance
	for rows.Next() {
		a, err := scanAttendanceWithEmployee(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, a)
	}
	return records, rows.Err()
}

// EmployeeAttendancesInRange implements report.ReportRepository.
func (r *reportRepositoryImpl) EmployeeAttendancesInRange(ctx context.Context, employeeID string, start, end time.Time) ([]attendance.Attendance, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + attendanceJoinColumns + `
		FROM attendances a
		JOIN users u ON u.id = a.employee_id
		WHERE a.employee_id = $1 AND a.date >= $2 AND a.date <= $3
		ORDER BY a.date ASC`

	rows, err := q.Query(ctx, query, employeeID, start, end)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []attendance.Attendance
	for rows.Next() {
		a, err := scanAttendanceWithEmployee(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, a)
	}
	return records, rows.Err()
}

// AttendancesOnDate implements report.ReportRepository.
func (r *reportRepositoryImpl) AttendancesOnDate(ctx context.Context, date time.Time) ([]attendance.Attendance, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + attendanceJoinColumns + `
		FROM attendances a
		JOIN users u ON u.id = a.employee_id
		WHERE a.date = $1
		ORDER BY a.clock_in ASC NULLS LAST`

	rows, err := q.Query(ctx, query, date)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []attendance.Attendance
	for rows.Next() {
		a, err := scanAttendanceWithEmployee(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, a)
	}
	return records, rows.Err()
}

// CountActiveEmployees implements report.ReportRepository. Counts only
// the employee role; admins and managers stay out of the denominator.
func (r *reportRepositoryImpl) CountActiveEmployees(ctx context.Context) (int64, error) {
	q := GetQuerier(ctx, r.db)

	var count int64
	err := q.QueryRow(ctx,
		`SELECT COUNT(*) FROM users WHERE role = $1 AND `+activeUser,
		user.RoleEmployee,
	).Scan(&count)
	if err != nil {
		return 0, err
	}
	return count, nil
}
