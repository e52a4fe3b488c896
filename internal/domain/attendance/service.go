package attendance

import "context"

type AttendanceService interface {
	ClockIn(ctx context.Context, employeeID string, clockTime string) (AttendanceResponse, error)
	ClockOut(ctx context.Context, employeeID string, clockTime string) (AttendanceResponse, error)
	GetTodayAttendance(ctx context.Context, employeeID string) (AttendanceResponse, error)
	GetEmployeeAttendance(ctx context.Context, employeeID string, filter RangeFilter) ([]AttendanceResponse, error)
	GetAllAttendances(ctx context.Context, filter RangeFilter) ([]AttendanceResponse, error)
	GetAttendanceByID(ctx context.Context, id string) (AttendanceResponse, error)
}
