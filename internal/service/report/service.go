package report

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/attendly/ems-backend-go/internal/domain/attendance"
	"github.com/attendly/ems-backend-go/internal/domain/employee"
	"github.com/attendly/ems-backend-go/internal/domain/report"
	"github.com/attendly/ems-backend-go/internal/domain/user"
	"github.com/attendly/ems-backend-go/internal/pkg/validator"
)

type ReportServiceImpl struct {
	repo     report.ReportRepository
	userRepo user.UserRepository
}

func NewReportService(repo report.ReportRepository, userRepo user.UserRepository) report.ReportService {
	return &ReportServiceImpl{
		repo:     repo,
		userRepo: userRepo,
	}
}

// GenerateAttendanceReport implements report.ReportService.
func (s *ReportServiceImpl) GenerateAttendanceReport(ctx context.Context, req report.GenerateRequest) (report.Artifact, error) {
	start, end := resolveWindow(req, time.Now())

	rows, err := s.repo.AttendancesInRange(ctx, start, end)
	if err != nil {
		return report.Artifact{}, fmt.Errorf("failed to load attendance rows: %w", err)
	}

	summary := buildSummary(rows, start, end)
	generatedAt := time.Now()

	var buffer []byte
	var ext, mime string
	switch report.Format(req.Format) {
	case report.FormatPDF:
		buffer, err = renderPDF(summary, rows, generatedAt)
		ext, mime = "pdf", "application/pdf"
	case report.FormatExcel:
		buffer, err = renderExcel(summary, rows, generatedAt)
		ext, mime = "xlsx", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	default:
		return report.Artifact{}, report.ErrUnsupportedFormat
	}
	if err != nil {
		return report.Artifact{}, fmt.Errorf("failed to render %s report: %w", req.Format, err)
	}

	return report.Artifact{
		Filename: fmt.Sprintf("attendance-report-%d.%s", generatedAt.UnixMilli(), ext),
		Buffer:   buffer,
		MIMEType: mime,
		Size:     len(buffer),
	}, nil
}

// GetEmployeeReport implements report.ReportService.
func (s *ReportServiceImpl) GetEmployeeReport(ctx context.Context, employeeID string, year int, month time.Month) (report.EmployeeReportResponse, error) {
	emp, err := s.userRepo.GetByID(ctx, employeeID)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			return report.EmployeeReportResponse{}, employee.ErrEmployeeNotFound
		}
		return report.EmployeeReportResponse{}, fmt.Errorf("failed to get employee: %w", err)
	}

	start := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 1, 0).Add(-time.Millisecond)

	rows, err := s.repo.EmployeeAttendancesInRange(ctx, employeeID, start, end)
	if err != nil {
		return report.EmployeeReportResponse{}, fmt.Errorf("failed to load employee attendance: %w", err)
	}

	resp := report.EmployeeReportResponse{
		Month:       int(month),
		Year:        year,
		Summary:     buildSummary(rows, start, end),
		Attendances: make([]attendance.AttendanceResponse, 0, len(rows)),
	}
	resp.Employee.ID = emp.ID
	resp.Employee.Name = emp.FullName()
	resp.Employee.Email = emp.Email
	resp.Employee.EmployeeIdentifier = emp.EmployeeIdentifier
	for _, row := range rows {
		resp.Attendances = append(resp.Attendances, attendance.ToResponse(row))
	}

	return resp, nil
}

// GetDashboard implements report.ReportService.
func (s *ReportServiceImpl) GetDashboard(ctx context.Context) (report.DashboardResponse, error) {
	now := time.Now()
	todayDate := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)

	rows, err := s.repo.AttendancesOnDate(ctx, todayDate)
	if err != nil {
		return report.DashboardResponse{}, fmt.Errorf("failed to load today's attendance: %w", err)
	}

	totalEmployees, err := s.repo.CountActiveEmployees(ctx)
	if err != nil {
		return report.DashboardResponse{}, fmt.Errorf("failed to count employees: %w", err)
	}

	var present, late, absent int
	for _, row := range rows {
		switch row.Status {
		case attendance.StatusPresent:
			present++
		case attendance.StatusLate:
			late++
		case attendance.StatusAbsent:
			absent++
		}
	}

	resp := report.DashboardResponse{
		TotalEmployees: totalEmployees,
		// Late arrivals still showed up.
		PresentToday: present + late,
		LateToday:    late,
		AbsentToday:  absent,
	}
	if totalEmployees > 0 {
		rate := float64(resp.PresentToday) / float64(totalEmployees) * 100
		resp.AttendanceRate = math.Round(rate*100) / 100
	}

	limit := len(rows)
	if limit > 10 {
		limit = 10
	}
	resp.TodayAttendance = make([]attendance.AttendanceResponse, 0, limit)
	for _, row := range rows[:limit] {
		resp.TodayAttendance = append(resp.TodayAttendance, attendance.ToResponse(row))
	}

	return resp, nil
}

// resolveWindow turns the request into inclusive day-bounded limits.
// Unparseable dates fall back to today's bounds rather than failing
// the report.
func resolveWindow(req report.GenerateRequest, now time.Time) (start, end time.Time) {
	dayStart := func(t time.Time) time.Time {
		return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
	}
	dayEnd := func(t time.Time) time.Time {
		return time.Date(t.Year(), t.Month(), t.Day(), 23, 59, 59, 999000000, time.UTC)
	}

	switch report.Type(req.Type) {
	case report.TypeWeekly:
		// Monday-start week containing today.
		offset := (int(now.Weekday()) + 6) % 7
		monday := dayStart(now).AddDate(0, 0, -offset)
		return monday, dayEnd(monday.AddDate(0, 0, 6))

	case report.TypeMonthly:
		first := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
		return first, dayEnd(first.AddDate(0, 1, -1))

	case report.TypeCustom:
		start = dayStart(now)
		end = dayEnd(now.AddDate(0, 0, 1))
		if req.StartDate != "" {
			if t, ok := validator.IsValidDate(req.StartDate); ok {
				start = dayStart(t)
			}
		}
		if req.EndDate != "" {
			if t, ok := validator.IsValidDate(req.EndDate); ok {
				end = dayEnd(t)
			}
		}
		return start, end

	default: // daily
		day := now
		if req.Date != "" {
			if t, ok := validator.IsValidDate(req.Date); ok {
				day = t
			}
		}
		return dayStart(day), dayEnd(day)
	}
}

// buildSummary aggregates the fetched rows. The average divides by
// distinct employees, not by record count.
func buildSummary(rows []attendance.Attendance, start, end time.Time) report.Summary {
	summary := report.Summary{
		StartDate:    start.Format("2006-01-02"),
		EndDate:      end.Format("2006-01-02"),
		TotalRecords: len(rows),
	}

	employees := make(map[string]struct{})
	var totalHours float64
	for _, row := range rows {
		employees[row.EmployeeID] = struct{}{}
		totalHours += row.WorkingHours()

		switch row.Status {
		case attendance.StatusPresent:
			summary.PresentCount++
		case attendance.StatusLate:
			summary.LateCount++
		case attendance.StatusAbsent:
			summary.AbsentCount++
		case attendance.StatusLeave:
			summary.LeaveCount++
		}
	}

	summary.TotalEmployees = len(employees)
	if summary.TotalEmployees > 0 {
		avg := totalHours / float64(summary.TotalEmployees)
		summary.AverageWorkingHours = math.Round(avg*100) / 100
	}

	return summary
}
