package report

import (
	"fmt"
	"time"

	"github.com/attendly/ems-backend-go/internal/domain/attendance"
	"github.com/attendly/ems-backend-go/internal/domain/report"
	"github.com/xuri/excelize/v2"
)

const (
	summarySheet = "Summary"
	detailSheet  = "Attendance Details"
)

var statusFills = map[attendance.Status]string{
	attendance.StatusPresent: "C6EFCE",
	attendance.StatusLate:    "FFEB9C",
	attendance.StatusAbsent:  "FFC7CE",
	attendance.StatusLeave:   "D9E1F2",
}

func renderExcel(summary report.Summary, rows []attendance.Attendance, generatedAt time.Time) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := writeSummarySheet(f, summary, generatedAt); err != nil {
		return nil, err
	}
	if err := writeDetailSheet(f, rows); err != nil {
		return nil, err
	}

	// The workbook starts with a default sheet that would otherwise
	// linger empty.
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return nil, fmt.Errorf("failed to delete default sheet: %w", err)
	}
	index, err := f.GetSheetIndex(summarySheet)
	if err != nil {
		return nil, fmt.Errorf("failed to get summary sheet index: %w", err)
	}
	f.SetActiveSheet(index)

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to write workbook: %w", err)
	}
	return buf.Bytes(), nil
}

func writeSummarySheet(f *excelize.File, summary report.Summary, generatedAt time.Time) error {
	if _, err := f.NewSheet(summarySheet); err != nil {
		return fmt.Errorf("failed to create summary sheet: %w", err)
	}

	titleStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 14},
		Alignment: &excelize.Alignment{Horizontal: "center"},
	})
	if err != nil {
		return fmt.Errorf("failed to create title style: %w", err)
	}

	if err := f.MergeCell(summarySheet, "A1", "B1"); err != nil {
		return fmt.Errorf("failed to merge title cells: %w", err)
	}
	if err := f.SetCellValue(summarySheet, "A1", "Attendance Report"); err != nil {
		return fmt.Errorf("failed to set title: %w", err)
	}
	if err := f.SetCellStyle(summarySheet, "A1", "B1", titleStyle); err != nil {
		return fmt.Errorf("failed to style title: %w", err)
	}

	pairs := [][2]any{
		{"Generated At", generatedAt.Format("2006-01-02 15:04:05")},
		{"Start Date", summary.StartDate},
		{"End Date", summary.EndDate},
		{"Total Employees", summary.TotalEmployees},
		{"Total Records", summary.TotalRecords},
		{"Present", summary.PresentCount},
		{"Late", summary.LateCount},
		{"Absent", summary.AbsentCount},
		{"Leave", summary.LeaveCount},
		{"Average Working Hours", summary.AverageWorkingHours},
	}
	for i, pair := range pairs {
		rowNum := i + 3
		if err := f.SetCellValue(summarySheet, fmt.Sprintf("A%d", rowNum), pair[0]); err != nil {
			return fmt.Errorf("failed to write summary key: %w", err)
		}
		if err := f.SetCellValue(summarySheet, fmt.Sprintf("B%d", rowNum), pair[1]); err != nil {
			return fmt.Errorf("failed to write summary value: %w", err)
		}
	}

	if err := f.SetColWidth(summarySheet, "A", "A", 24); err != nil {
		return fmt.Errorf("failed to size summary columns: %w", err)
	}
	if err := f.SetColWidth(summarySheet, "B", "B", 24); err != nil {
		return fmt.Errorf("failed to size summary columns: %w", err)
	}
	return nil
}

func writeDetailSheet(f *excelize.File, rows []attendance.Attendance) error {
	if _, err := f.NewSheet(detailSheet); err != nil {
		return fmt.Errorf("failed to create detail sheet: %w", err)
	}

	headers := []string{"#", "Employee ID", "Employee", "Email", "Date", "Clock In", "Clock Out", "Status", "Working Hours", "Notes"}
	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"D9D9D9"}},
	})
	if err != nil {
		return fmt.Errorf("failed to create header style: %w", err)
	}
	for i, header := range headers {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return fmt.Errorf("failed to resolve header cell: %w", err)
		}
		if err := f.SetCellValue(detailSheet, cell, header); err != nil {
			return fmt.Errorf("failed to write header: %w", err)
		}
		if err := f.SetCellStyle(detailSheet, cell, cell, headerStyle); err != nil {
			return fmt.Errorf("failed to style header: %w", err)
		}
	}

	hoursFormat := "0.00"
	hoursStyle, err := f.NewStyle(&excelize.Style{CustomNumFmt: &hoursFormat})
	if err != nil {
		return fmt.Errorf("failed to create hours style: %w", err)
	}

	// The tint covers the whole data row; the hours cell needs the tint
	// and the number format in one style.
	type statusStyles struct {
		row   int
		hours int
	}
	fillStyles := make(map[attendance.Status]statusStyles, len(statusFills))
	for status, color := range statusFills {
		fill := excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{color}}
		rowStyle, err := f.NewStyle(&excelize.Style{Fill: fill})
		if err != nil {
			return fmt.Errorf("failed to create %s fill style: %w", status, err)
		}
		hoursFill, err := f.NewStyle(&excelize.Style{Fill: fill, CustomNumFmt: &hoursFormat})
		if err != nil {
			return fmt.Errorf("failed to create %s hours style: %w", status, err)
		}
		fillStyles[status] = statusStyles{row: rowStyle, hours: hoursFill}
	}

	for i, row := range rows {
		rowNum := i + 2
		notes := ""
		if row.IsLate() {
			notes = "Arrived after 09:30"
		}

		values := []any{
			i + 1,
			deref(row.EmployeeIdentifier),
			row.EmployeeName(),
			deref(row.EmployeeEmail),
			row.Date.Format("2006-01-02"),
			deref(row.ClockIn),
			deref(row.ClockOut),
			string(row.Status),
			row.WorkingHours(),
			notes,
		}
		for j, value := range values {
			cell, err := excelize.CoordinatesToCellName(j+1, rowNum)
			if err != nil {
				return fmt.Errorf("failed to resolve cell: %w", err)
			}
			if err := f.SetCellValue(detailSheet, cell, value); err != nil {
				return fmt.Errorf("failed to write cell: %w", err)
			}
		}

		if styles, ok := fillStyles[row.Status]; ok {
			if err := f.SetCellStyle(detailSheet, fmt.Sprintf("A%d", rowNum), fmt.Sprintf("J%d", rowNum), styles.row); err != nil {
				return fmt.Errorf("failed to style row: %w", err)
			}
			if err := f.SetCellStyle(detailSheet, fmt.Sprintf("I%d", rowNum), fmt.Sprintf("I%d", rowNum), styles.hours); err != nil {
				return fmt.Errorf("failed to style hours cell: %w", err)
			}
		} else if err := f.SetCellStyle(detailSheet, fmt.Sprintf("I%d", rowNum), fmt.Sprintf("I%d", rowNum), hoursStyle); err != nil {
			return fmt.Errorf("failed to style hours cell: %w", err)
		}
	}

	widths := map[string]float64{"A": 6, "B": 14, "C": 26, "D": 30, "E": 12, "F": 10, "G": 10, "H": 10, "I": 14, "J": 24}
	for col, width := range widths {
		if err := f.SetColWidth(detailSheet, col, col, width); err != nil {
			return fmt.Errorf("failed to size detail columns: %w", err)
		}
	}
	return nil
}
