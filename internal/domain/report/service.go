package report

import (
	"context"
	"time"
)

type ReportService interface {
	GenerateAttendanceReport(ctx context.Context, req GenerateRequest) (Artifact, error)
	GetEmployeeReport(ctx context.Context, employeeID string, year int, month time.Month) (EmployeeReportResponse, error)
	GetDashboard(ctx context.Context) (DashboardResponse, error)
}
