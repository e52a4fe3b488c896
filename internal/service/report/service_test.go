package report

import (
	"bytes"
	"fmt"
	"testing"
	"time"

	"github.com/attendly/ems-backend-go/internal/domain/attendance"
	"github.com/attendly/ems-backend-go/internal/domain/report"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func strPtr(s string) *string { return &s }

func TestResolveWindowDaily(t *testing.T) {
	now := time.Date(2026, 3, 18, 14, 22, 0, 0, time.UTC)

	start, end := resolveWindow(report.GenerateRequest{Type: "daily"}, now)
	assert.Equal(t, time.Date(2026, 3, 18, 0, 0, 0, 0, time.UTC), start)
	assert.Equal(t, time.Date(2026, 3, 18, 23, 59, 59, 999000000, time.UTC), end)

	start, end = resolveWindow(report.GenerateRequest{Type: "daily", Date: "2026-03-02"}, now)
	assert.Equal(t, time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC), start)
	assert.Equal(t, 2, end.Day())
}

func TestResolveWindowDailyBadDateFallsBack(t *testing.T) {
	now := time.Date(2026, 3, 18, 14, 22, 0, 0, time.UTC)

	start, _ := resolveWindow(report.GenerateRequest{Type: "daily", Date: "not-a-date"}, now)
	assert.Equal(t, time.Date(2026, 3, 18, 0, 0, 0, 0, time.UTC), start)
}

func TestResolveWindowWeeklyStartsMonday(t *testing.T) {
	// 2026-03-18 is a Wednesday.
	now := time.Date(2026, 3, 18, 9, 0, 0, 0, time.UTC)

	start, end := resolveWindow(report.GenerateRequest{Type: "weekly"}, now)
	assert.Equal(t, time.Monday, start.Weekday())
	assert.Equal(t, time.Date(2026, 3, 16, 0, 0, 0, 0, time.UTC), start)
	assert.Equal(t, time.Sunday, end.Weekday())
	assert.Equal(t, 22, end.Day())
}

func TestResolveWindowWeeklyOnSunday(t *testing.T) {
	// Sunday belongs to the week that started the previous Monday.
	now := time.Date(2026, 3, 22, 9, 0, 0, 0, time.UTC)

	start, _ := resolveWindow(report.GenerateRequest{Type: "weekly"}, now)
	assert.Equal(t, time.Date(2026, 3, 16, 0, 0, 0, 0, time.UTC), start)
}

func TestResolveWindowMonthly(t *testing.T) {
	now := time.Date(2026, 2, 10, 9, 0, 0, 0, time.UTC)

	start, end := resolveWindow(report.GenerateRequest{Type: "monthly"}, now)
	assert.Equal(t, time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC), start)
	assert.Equal(t, 28, end.Day())
}

func TestResolveWindowCustom(t *testing.T) {
	now := time.Date(2026, 3, 18, 9, 0, 0, 0, time.UTC)

	start, end := resolveWindow(report.GenerateRequest{
		Type:      "custom",
		StartDate: "2026-03-01",
		EndDate:   "2026-03-10",
	}, now)
	assert.Equal(t, time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC), start)
	assert.Equal(t, time.Date(2026, 3, 10, 23, 59, 59, 999000000, time.UTC), end)
}

func TestResolveWindowCustomDefaults(t *testing.T) {
	now := time.Date(2026, 3, 18, 9, 0, 0, 0, time.UTC)

	start, end := resolveWindow(report.GenerateRequest{Type: "custom"}, now)
	assert.Equal(t, time.Date(2026, 3, 18, 0, 0, 0, 0, time.UTC), start)
	assert.Equal(t, 19, end.Day())
}

func TestBuildSummary(t *testing.T) {
	start := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2026, 3, 31, 23, 59, 59, 999000000, time.UTC)

	rows := []attendance.Attendance{
		{EmployeeID: "a", Status: attendance.StatusPresent, ClockIn: strPtr("09:00:00"), ClockOut: strPtr("17:00:00")},
		{EmployeeID: "a", Status: attendance.StatusLate, ClockIn: strPtr("10:00:00"), ClockOut: strPtr("18:00:00")},
		{EmployeeID: "b", Status: attendance.StatusPresent, ClockIn: strPtr("08:30:00"), ClockOut: strPtr("16:30:00")},
		{EmployeeID: "c", Status: attendance.StatusAbsent},
		{EmployeeID: "d", Status: attendance.StatusLeave},
	}

	summary := buildSummary(rows, start, end)

	assert.Equal(t, "2026-03-01", summary.StartDate)
	assert.Equal(t, "2026-03-31", summary.EndDate)
	assert.Equal(t, 4, summary.TotalEmployees)
	assert.Equal(t, 5, summary.TotalRecords)
	assert.Equal(t, 2, summary.PresentCount)
	assert.Equal(t, 1, summary.LateCount)
	assert.Equal(t, 1, summary.AbsentCount)
	assert.Equal(t, 1, summary.LeaveCount)
	// 24 hours across 4 distinct employees.
	assert.InDelta(t, 6.0, summary.AverageWorkingHours, 0.001)
}

func TestBuildSummaryEmpty(t *testing.T) {
	start := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	summary := buildSummary(nil, start, start)

	assert.Zero(t, summary.TotalEmployees)
	assert.Zero(t, summary.AverageWorkingHours)
}

func TestRenderPDFProducesDocument(t *testing.T) {
	rows := []attendance.Attendance{
		{
			EmployeeID:         "a",
			Date:               time.Date(2026, 3, 18, 0, 0, 0, 0, time.UTC),
			ClockIn:            strPtr("09:45:00"),
			ClockOut:           strPtr("17:45:00"),
			Status:             attendance.StatusLate,
			EmployeeFirstName:  strPtr("Jane"),
			EmployeeLastName:   strPtr("Doe"),
			EmployeeIdentifier: strPtr("EMP1A2B3C"),
		},
	}
	summary := buildSummary(rows, time.Date(2026, 3, 18, 0, 0, 0, 0, time.UTC), time.Date(2026, 3, 18, 23, 59, 59, 0, time.UTC))

	buf, err := renderPDF(summary, rows, time.Now())
	require.NoError(t, err)
	require.NotEmpty(t, buf)
	assert.Equal(t, "%PDF", string(buf[:4]))
}

func TestRenderExcelProducesWorkbook(t *testing.T) {
	rows := []attendance.Attendance{
		{
			EmployeeID:         "a",
			Date:               time.Date(2026, 3, 18, 0, 0, 0, 0, time.UTC),
			ClockIn:            strPtr("09:00:00"),
			ClockOut:           strPtr("17:00:00"),
			Status:             attendance.StatusPresent,
			EmployeeFirstName:  strPtr("Jane"),
			EmployeeLastName:   strPtr("Doe"),
			EmployeeIdentifier: strPtr("EMP1A2B3C"),
			EmployeeEmail:      strPtr("jane.doe@example.com"),
		},
	}
	summary := buildSummary(rows, time.Date(2026, 3, 18, 0, 0, 0, 0, time.UTC), time.Date(2026, 3, 18, 23, 59, 59, 0, time.UTC))

	buf, err := renderExcel(summary, rows, time.Now())
	require.NoError(t, err)
	require.NotEmpty(t, buf)
	// XLSX is a zip archive.
	assert.Equal(t, "PK", string(buf[:2]))
}

func TestRenderExcelTintsWholeRowByStatus(t *testing.T) {
	date := time.Date(2026, 3, 18, 0, 0, 0, 0, time.UTC)
	rows := []attendance.Attendance{
		{EmployeeID: "a", Date: date, ClockIn: strPtr("09:00:00"), ClockOut: strPtr("17:00:00"), Status: attendance.StatusPresent, EmployeeFirstName: strPtr("Jane"), EmployeeLastName: strPtr("Doe")},
		{EmployeeID: "b", Date: date, ClockIn: strPtr("09:45:00"), ClockOut: strPtr("17:45:00"), Status: attendance.StatusLate, EmployeeFirstName: strPtr("John"), EmployeeLastName: strPtr("Roe")},
		{EmployeeID: "c", Date: date, Status: attendance.StatusAbsent, EmployeeFirstName: strPtr("Amy"), EmployeeLastName: strPtr("Poe")},
		{EmployeeID: "d", Date: date, Status: attendance.StatusLeave, EmployeeFirstName: strPtr("Max"), EmployeeLastName: strPtr("Coe")},
	}
	summary := buildSummary(rows, date, date)

	buf, err := renderExcel(summary, rows, time.Now())
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(buf))
	require.NoError(t, err)
	defer f.Close()

	wantColors := map[attendance.Status]string{
		attendance.StatusPresent: "C6EFCE",
		attendance.StatusLate:    "FFEB9C",
		attendance.StatusAbsent:  "FFC7CE",
		attendance.StatusLeave:   "D9E1F2",
	}

	for i, row := range rows {
		rowNum := i + 2
		// Every cell in the data row carries the status color, not
		// just the status column.
		for _, col := range []string{"A", "C", "E", "H", "I", "J"} {
			cell := fmt.Sprintf("%s%d", col, rowNum)
			styleID, err := f.GetCellStyle(detailSheet, cell)
			require.NoError(t, err)
			style, err := f.GetStyle(styleID)
			require.NoError(t, err)
			require.Len(t, style.Fill.Color, 1, "cell %s has no fill", cell)
			assert.Equal(t, wantColors[row.Status], style.Fill.Color[0], "cell %s", cell)
		}
	}
}
