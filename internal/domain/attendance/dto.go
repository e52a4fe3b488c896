package attendance

import (
	"github.com/attendly/ems-backend-go/internal/pkg/validator"
)

type ClockRequest struct {
	Time string `json:"time"` // "HH:MM:SS" 24h
	// Admins may clock on behalf of an employee.
	EmployeeID *string `json:"employee_id,omitempty"`
}

func (r *ClockRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Time) {
		errs = append(errs, validator.ValidationError{
			Field:   "time",
			Message: "time is required",
		})
	} else if !validator.IsValidClockTime(r.Time) {
		errs = append(errs, validator.ValidationError{
			Field:   "time",
			Message: "time must be in HH:MM:SS 24-hour format",
		})
	}

	if r.EmployeeID != nil && !validator.IsValidUUID(*r.EmployeeID) {
		errs = append(errs, validator.ValidationError{
			Field:   "employee_id",
			Message: "employee_id must be a valid UUID",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type RangeFilter struct {
	From *string `json:"from,omitempty"` // YYYY-MM-DD
	To   *string `json:"to,omitempty"`   // YYYY-MM-DD
}

func (f *RangeFilter) Validate() error {
	var errs validator.ValidationErrors

	if f.From != nil && *f.From != "" {
		if _, valid := validator.IsValidDate(*f.From); !valid {
			errs = append(errs, validator.ValidationError{
				Field:   "from",
				Message: "from must be in YYYY-MM-DD format",
			})
		}
	}

	if f.To != nil && *f.To != "" {
		if _, valid := validator.IsValidDate(*f.To); !valid {
			errs = append(errs, validator.ValidationError{
				Field:   "to",
				Message: "to must be in YYYY-MM-DD format",
			})
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type AttendanceResponse struct {
	ID                 string  `json:"id"`
	EmployeeID         string  `json:"employee_id"`
	EmployeeName       string  `json:"employee_name,omitempty"`
	EmployeeIdentifier string  `json:"employee_identifier,omitempty"`
	Date               string  `json:"date"`
	ClockIn            *string `json:"clock_in,omitempty"`
	ClockOut           *string `json:"clock_out,omitempty"`
	Status             string  `json:"status"`
	Notes              *string `json:"notes,omitempty"`
	WorkingHours       float64 `json:"working_hours"`
	IsLate             bool    `json:"is_late"`
	CreatedAt          string  `json:"created_at"`
	UpdatedAt          string  `json:"updated_at"`
}

// ToResponse flattens an attendance row for the API.
func ToResponse(a Attendance) AttendanceResponse {
	resp := AttendanceResponse{
		ID:           a.ID,
		EmployeeID:   a.EmployeeID,
		EmployeeName: a.EmployeeName(),
		Date:         a.Date.Format("2006-01-02"),
		ClockIn:      a.ClockIn,
		ClockOut:     a.ClockOut,
		Status:       string(a.Status),
		Notes:        a.Notes,
		WorkingHours: a.WorkingHours(),
		IsLate:       a.IsLate(),
		CreatedAt:    a.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
		UpdatedAt:    a.UpdatedAt.Format("2006-01-02T15:04:05Z07:00"),
	}
	if a.EmployeeIdentifier != nil {
		resp.EmployeeIdentifier = *a.EmployeeIdentifier
	}
	return resp
}

// MonthlySummary counts a single employee's records per status.
type MonthlySummary struct {
	EmployeeID string `json:"employee_id"`
	Month      int    `json:"month"`
	Year       int    `json:"year"`
	Present    int    `json:"present"`
	Late       int    `json:"late"`
	Absent     int    `json:"absent"`
	Leave      int    `json:"leave"`
	Total      int    `json:"total"`
}
