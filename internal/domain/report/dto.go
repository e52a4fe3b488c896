package report

import (
	"strings"

	"github.com/attendly/ems-backend-go/internal/domain/attendance"
	"github.com/attendly/ems-backend-go/internal/pkg/validator"
)

type Format string

const (
	FormatPDF   Format = "pdf"
	FormatExcel Format = "excel"
)

type Type string

const (
	TypeDaily   Type = "daily"
	TypeWeekly  Type = "weekly"
	TypeMonthly Type = "monthly"
	TypeCustom  Type = "custom"
)

type GenerateRequest struct {
	Format    string `json:"format"`
	Type      string `json:"type,omitempty"`
	Date      string `json:"date,omitempty"`       // YYYY-MM-DD
	StartDate string `json:"start_date,omitempty"` // YYYY-MM-DD
	EndDate   string `json:"end_date,omitempty"`   // YYYY-MM-DD
}

func (r *GenerateRequest) Validate() error {
	var errs validator.ValidationErrors

	r.Format = strings.ToLower(r.Format)
	if validator.IsEmpty(r.Format) {
		errs = append(errs, validator.ValidationError{
			Field:   "format",
			Message: "format is required",
		})
	} else if !validator.IsInSlice(r.Format, []string{string(FormatPDF), string(FormatExcel)}) {
		errs = append(errs, validator.ValidationError{
			Field:   "format",
			Message: "format must be one of: pdf, excel",
		})
	}

	if r.Type == "" {
		r.Type = string(TypeDaily)
	} else {
		r.Type = strings.ToLower(r.Type)
		validTypes := []string{string(TypeDaily), string(TypeWeekly), string(TypeMonthly), string(TypeCustom)}
		if !validator.IsInSlice(r.Type, validTypes) {
			errs = append(errs, validator.ValidationError{
				Field:   "type",
				Message: "type must be one of: daily, weekly, monthly, custom",
			})
		}
	}

	// Dates are left unvalidated on purpose: unparseable values fall
	// back to today's bounds during window resolution.

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// Artifact is a rendered report held in memory.
type Artifact struct {
	Filename string
	Buffer   []byte
	MIMEType string
	Size     int
}

// Summary aggregates the rows inside the resolved window.
type Summary struct {
	StartDate           string  `json:"start_date"`
	EndDate             string  `json:"end_date"`
	TotalEmployees      int     `json:"total_employees"` // distinct employees with records
	TotalRecords        int     `json:"total_records"`
	PresentCount        int     `json:"present_count"`
	LateCount           int     `json:"late_count"`
	AbsentCount         int     `json:"absent_count"`
	LeaveCount          int     `json:"leave_count"`
	AverageWorkingHours float64 `json:"average_working_hours"`
}

type EmployeeReportResponse struct {
	Employee struct {
		ID                 string `json:"id"`
		Name               string `json:"name"`
		Email              string `json:"email"`
		EmployeeIdentifier string `json:"employee_identifier"`
	} `json:"employee"`
	Month       int                             `json:"month"`
	Year        int                             `json:"year"`
	Summary     Summary                         `json:"summary"`
	Attendances []attendance.AttendanceResponse `json:"attendances"`
}

type DashboardResponse struct {
	TotalEmployees  int64                           `json:"total_employees"`
	PresentToday    int                             `json:"present_today"`
	LateToday       int                             `json:"late_today"`
	AbsentToday     int                             `json:"absent_today"`
	AttendanceRate  float64                         `json:"attendance_rate"`
	TodayAttendance []attendance.AttendanceResponse `json:"today_attendance"`
}
