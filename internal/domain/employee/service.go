package employee

import (
	"context"
	"time"

	"github.com/attendly/ems-backend-go/internal/domain/attendance"
	"github.com/attendly/ems-backend-go/internal/domain/user"
)

// EmployeeService manages employee accounts. The acting user is passed
// in for role-based rules: managers may only create plain employees,
// non-admins may only touch their own profile.
type EmployeeService interface {
	Create(ctx context.Context, req CreateEmployeeRequest, actor user.User) (user.UserResponse, error)
	List(ctx context.Context, req ListEmployeesRequest) (ListEmployeesResponse, error)
	Get(ctx context.Context, id string) (user.UserResponse, error)
	GetProfile(ctx context.Context, userID string) (user.UserResponse, error)
	Update(ctx context.Context, id string, req UpdateEmployeeRequest, actor user.User) (user.UserResponse, error)
	Deactivate(ctx context.Context, id string) error
	AttendanceSummary(ctx context.Context, id string, year int, month time.Month) (attendance.MonthlySummary, error)
}
