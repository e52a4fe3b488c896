package attendance

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func strPtr(s string) *string { return &s }

func TestDetermineStatus(t *testing.T) {
	cases := []struct {
		clockIn string
		want    Status
	}{
		{"08:45:00", StatusPresent},
		{"09:29:59", StatusPresent},
		{"09:30:00", StatusPresent}, // boundary stays present
		{"09:30:01", StatusLate},
		{"09:31:00", StatusLate},
		{"23:59:59", StatusLate},
		{"00:00:00", StatusPresent},
		{"not-a-time", StatusPresent},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, DetermineStatus(c.clockIn), "clock-in %s", c.clockIn)
	}
}

func TestWorkingHours(t *testing.T) {
	cases := []struct {
		name     string
		clockIn  *string
		clockOut *string
		want     float64
	}{
		{"full day", strPtr("09:00:00"), strPtr("17:00:00"), 8.00},
		{"half hours", strPtr("09:15:00"), strPtr("17:45:00"), 8.5},
		{"rounding", strPtr("09:00:00"), strPtr("17:20:00"), 8.33},
		{"missing clock out", strPtr("09:00:00"), nil, 0},
		{"missing clock in", nil, strPtr("17:00:00"), 0},
		{"both missing", nil, nil, 0},
		{"unparseable", strPtr("bad"), strPtr("17:00:00"), 0},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			a := Attendance{ClockIn: c.clockIn, ClockOut: c.clockOut}
			assert.InDelta(t, c.want, a.WorkingHours(), 0.001)
		})
	}
}

func TestIsLate(t *testing.T) {
	late := Attendance{ClockIn: strPtr("09:45:00")}
	assert.True(t, late.IsLate())

	onTime := Attendance{ClockIn: strPtr("09:30:00")}
	assert.False(t, onTime.IsLate())

	missing := Attendance{}
	assert.False(t, missing.IsLate())
}

func TestEmployeeName(t *testing.T) {
	joined := Attendance{EmployeeFirstName: strPtr("Jane"), EmployeeLastName: strPtr("Doe")}
	assert.Equal(t, "Jane Doe", joined.EmployeeName())

	bare := Attendance{}
	assert.Equal(t, "", bare.EmployeeName())
}
