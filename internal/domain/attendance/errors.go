package attendance

import "errors"

var (
	ErrAttendanceNotFound = errors.New("attendance record not found")
	ErrNoClockInToday     = errors.New("no clock-in record for today")
)
