package cron

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/attendly/ems-backend-go/internal/domain/attendance"
)

type AttendanceJobs struct {
	attendanceRepo attendance.AttendanceRepository
}

func NewAttendanceJobs(attendanceRepo attendance.AttendanceRepository) *AttendanceJobs {
	return &AttendanceJobs{
		attendanceRepo: attendanceRepo,
	}
}

func (j *AttendanceJobs) RegisterJobs(scheduler *Scheduler) {
	scheduler.AddJob("mark_absent_employees", 1*time.Hour, j.MarkAbsentEmployees)
}

// MarkAbsentEmployees backfills yesterday's gaps: every active employee
// without an attendance row gets one with status absent. The insert is
// idempotent, so the hourly tick outside the midnight window is a no-op.
func (j *AttendanceJobs) MarkAbsentEmployees(ctx context.Context) error {
	// Only run at midnight (00:00-00:59 UTC)
	if time.Now().UTC().Hour() != 0 {
		return nil
	}

	slog.Info("Cron: Starting mark absent employees job")

	yesterday := time.Now().UTC().AddDate(0, 0, -1)
	date := time.Date(yesterday.Year(), yesterday.Month(), yesterday.Day(), 0, 0, 0, 0, time.UTC)

	marked, err := j.attendanceRepo.MarkAbsentees(ctx, date)
	if err != nil {
		return fmt.Errorf("failed to mark absentees: %w", err)
	}

	slog.Info("Cron: Marked absent employees", "date", date.Format("2006-01-02"), "count", marked)
	return nil
}
