package postgresql

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/attendly/ems-backend-go/internal/domain/attendance"
	"github.com/attendly/ems-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

// TIME columns travel as "HH:MM:SS" strings: casts to text on the way
// out, $n::time on the way in.
const attendanceColumns = `a.id, a.date, a.clock_in::text, a.clock_out::text, a.status, a.notes,
		   a.employee_id, a.is_email_sent, a.created_at, a.updated_at`

const attendanceJoinColumns = attendanceColumns + `,
		   u.first_name, u.last_name, u.employee_identifier, u.email`

type attendanceRepositoryImpl struct {
	db *database.DB
}

func NewAttendanceRepository(db *database.DB) attendance.AttendanceRepository {
	return &attendanceRepositoryImpl{db: db}
}

func scanAttendance(row pgx.Row) (attendance.Attendance, error) {
	var a attendance.Attendance
	err := row.Scan(
		&a.ID,
		&a.Date,
		&a.ClockIn,
		&a.ClockOut,
		&a.Status,
		&a.Notes,
		&a.EmployeeID,
		&a.IsEmailSent,
		&a.CreatedAt,
		&a.UpdatedAt,
	)
	if err != nil {
		return attendance.Attendance{}, err
	}
	return a, nil
}

func scanAttendanceWithEmployee(row pgx.Row) (attendance.Attendance, error) {
	var a attendance.Attendance
	err := row.Scan(
		&a.ID,
		&a.Date,
		&a.ClockIn,
		&a.ClockOut,
		&a.Status,
		&a.Notes,
		&a.EmployeeID,
		&a.IsEmailSent,
		&a.CreatedAt,
		&a.UpdatedAt,
		&a.EmployeeFirstName,
		&a.EmployeeLastName,
		&a.EmployeeIdentifier,
		&a.EmployeeEmail,
	)
	if err != nil {
		return attendance.Attendance{}, err
	}
	return a, nil
}

// UpsertClockIn implements attendance.AttendanceRepository. The unique
// constraint on (employee_id, date) makes concurrent clock-ins
// converge on a single row; the conflict arm overwrites clock_in and
// status so a repeated clock-in keeps the latest time.
func (r *attendanceRepositoryImpl) UpsertClockIn(ctx context.Context, employeeID string, date time.Time, clockIn string, status attendance.Status) (attendance.Attendance, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO attendances (employee_id, date, clock_in, status)
		VALUES ($1, $2, $3::time, $4)
		ON CONFLICT (employee_id, date)
		DO UPDATE SET clock_in = EXCLUDED.clock_in, status = EXCLUDED.status, updated_at = NOW()
		RETURNING ` + stripAlias(attendanceColumns)

	return scanAttendance(q.QueryRow(ctx, query, employeeID, date, clockIn, status))
}

// SetClockOut implements attendance.AttendanceRepository. No implicit
// row creation: clocking out without a clock-in is an error.
func (r *attendanceRepositoryImpl) SetClockOut(ctx context.Context, employeeID string, date time.Time, clockOut string) (attendance.Attendance, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE attendances
		SET clock_out = $1::time, updated_at = NOW()
		WHERE employee_id = $2 AND date = $3
		RETURNING ` + stripAlias(attendanceColumns)

	updated, err := scanAttendance(q.QueryRow(ctx, query, clockOut, employeeID, date))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return attendance.Attendance{}, attendance.ErrNoClockInToday
		}
		return attendance.Attendance{}, err
	}
	return updated, nil
}

// GetByID implements attendance.AttendanceRepository.
func (r *attendanceRepositoryImpl) GetByID(ctx context.Context, id string) (attendance.Attendance, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + attendanceJoinColumns + `
		FROM attendances a
		JOIN users u ON u.id = a.employee_id
		WHERE a.id = $1`

	found, err := scanAttendanceWithEmployee(q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return attendance.Attendance{}, attendance.ErrAttendanceNotFound
		}
		return attendance.Attendance{}, err
	}
	return found, nil
}

// GetByEmployeeAndDate implements attendance.AttendanceRepository.
func (r *attendanceRepositoryImpl) GetByEmployeeAndDate(ctx context.Context, employeeID string, date time.Time) (attendance.Attendance, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + attendanceColumns + `
		FROM attendances a
		WHERE a.employee_id = $1 AND a.date = $2`

	found, err := scanAttendance(q.QueryRow(ctx, query, employeeID, date))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return attendance.Attendance{}, attendance.ErrAttendanceNotFound
		}
		return attendance.Attendance{}, err
	}
	return found, nil
}

// ListByEmployee implements attendance.AttendanceRepository.
func (r *attendanceRepositoryImpl) ListByEmployee(ctx context.Context, employeeID string, from, to *time.Time) ([]attendance.Attendance, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + attendanceColumns + `
		FROM attendances a
		WHERE a.employee_id = $1
		  AND ($2::date IS NULL OR a.date >= $2)
		  AND ($3::date IS NULL OR a.date <= $3)
		ORDER BY a.date DESC`

	rows, err := q.Query(ctx, query, employeeID, from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []attendance.Attendance
	for rows.Next() {
		a, err := scanAttendance(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, a)
	}
	return records, rows.Err()
}

// ListAll implements attendance.AttendanceRepository.
func (r *attendanceRepositoryImpl) ListAll(ctx context.Context, from, to *time.Time) ([]attendance.Attendance, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + attendanceJoinColumns + `
		FROM attendances a
		JOIN users u ON u.id = a.employee_id
		WHERE ($1::date IS NULL OR a.date >= $1)
		  AND ($2::date IS NULL OR a.date <= $2)
		ORDER BY a.date DESC`

	rows, err := q.Query(ctx, query, from, to)
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

// CountByStatusForMonth implements attendance.AttendanceRepository.
func (r *attendanceRepositoryImpl) CountByStatusForMonth(ctx context.Context, employeeID string, year int, month time.Month) (map[attendance.Status]int, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT a.status, COUNT(*)
		FROM attendances a
		WHERE a.employee_id = $1
		  AND EXTRACT(YEAR FROM a.date) = $2
		  AND EXTRACT(MONTH FROM a.date) = $3
		GROUP BY a.status`

	rows, err := q.Query(ctx, query, employeeID, year, int(month))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := make(map[attendance.Status]int)
	for rows.Next() {
		var status attendance.Status
		var count int
		if err := rows.Scan(&status, &count); err != nil {
			return nil, err
		}
		counts[status] = count
	}
	return counts, rows.Err()
}

// MarkEmailSent implements attendance.AttendanceRepository.
func (r *attendanceRepositoryImpl) MarkEmailSent(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	_, err := q.Exec(ctx, `UPDATE attendances SET is_email_sent = TRUE, updated_at = NOW() WHERE id = $1`, id)
	return err
}

// MarkAbsentees implements attendance.AttendanceRepository. The
// anti-join keeps the insert idempotent: employees who already have a
// row for the date are untouched.
func (r *attendanceRepositoryImpl) MarkAbsentees(ctx context.Context, date time.Time) (int64, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO attendances (employee_id, date, status)
		SELECT u.id, $1, 'absent'
		FROM users u
		WHERE u.` + activeUser + `
		  AND u.role = 'employee'
		  AND NOT EXISTS (
			SELECT 1 FROM attendances a WHERE a.employee_id = u.id AND a.date = $1
		  )`

	tag, err := q.Exec(ctx, query, date)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

// stripAlias rewrites the shared column list for statements without
// the "a" table alias.
func stripAlias(columns string) string {
	return strings.ReplaceAll(columns, "a.", "")
}
