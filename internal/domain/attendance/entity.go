package attendance

import (
	"math"
	"time"
)

type Status string

const (
	StatusPresent Status = "present"
	StatusAbsent  Status = "absent"
	StatusLate    Status = "late"
	StatusLeave   Status = "leave"
)

// Clock-ins strictly after this second of day count as late.
const lateCutoffSeconds = 9*3600 + 30*60 // 09:30:00

const clockLayout = "15:04:05"

type Attendance struct {
	ID          string
	Date        time.Time
	ClockIn     *string // "HH:MM:SS"
	ClockOut    *string // "HH:MM:SS"
	Status      Status
	Notes       *string
	EmployeeID  string
	IsEmailSent bool
	CreatedAt   time.Time
	UpdatedAt   time.Time

	// Join
	EmployeeFirstName  *string
	EmployeeLastName   *string
	EmployeeIdentifier *string
	EmployeeEmail      *string
}

// DetermineStatus classifies a clock-in time against the 09:30:00
// cutoff. Exactly 09:30:00 is still present.
func DetermineStatus(clockIn string) Status {
	sec, ok := secondsOfDay(clockIn)
	if !ok {
		return StatusPresent
	}
	if sec > lateCutoffSeconds {
		return StatusLate
	}
	return StatusPresent
}

// WorkingHours returns clock-out minus clock-in in hours, rounded to
// two decimals. Zero when either side is missing.
func (a *Attendance) WorkingHours() float64 {
	if a.ClockIn == nil || a.ClockOut == nil {
		return 0
	}
	in, okIn := secondsOfDay(*a.ClockIn)
	out, okOut := secondsOfDay(*a.ClockOut)
	if !okIn || !okOut {
		return 0
	}
	hours := float64(out-in) / 3600
	return math.Round(hours*100) / 100
}

// IsLate reports whether the recorded clock-in falls after the cutoff.
func (a *Attendance) IsLate() bool {
	if a.ClockIn == nil {
		return false
	}
	sec, ok := secondsOfDay(*a.ClockIn)
	if !ok {
		return false
	}
	return sec > lateCutoffSeconds
}

// EmployeeName returns the joined employee's full name, empty when the
// record was loaded without the join.
func (a *Attendance) EmployeeName() string {
	if a.EmployeeFirstName == nil || a.EmployeeLastName == nil {
		return ""
	}
	return *a.EmployeeFirstName + " " + *a.EmployeeLastName
}

func secondsOfDay(clock string) (int, bool) {
	t, err := time.Parse(clockLayout, clock)
	if err != nil {
		return 0, false
	}
	return t.Hour()*3600 + t.Minute()*60 + t.Second(), true
}
