package report

import (
	"bytes"
	"fmt"
	"time"

	"github.com/attendly/ems-backend-go/internal/domain/attendance"
	"github.com/attendly/ems-backend-go/internal/domain/report"
	"github.com/go-pdf/fpdf"
)

var pdfColumns = []struct {
	title string
	width float64
}{
	{"#", 10},
	{"Emp ID", 25},
	{"Employee", 55},
	{"Date", 28},
	{"Clock In", 25},
	{"Clock Out", 25},
	{"Status", 25},
	{"Hours", 20},
	{"Late", 15},
}

func renderPDF(summary report.Summary, rows []attendance.Attendance, generatedAt time.Time) ([]byte, error) {
	pdf := fpdf.New("L", "mm", "A4", "")
	pdf.SetAutoPageBreak(true, 20)
	pdf.SetFooterFunc(func() {
		pdf.SetY(-15)
		pdf.SetFont("Arial", "I", 8)
		pdf.CellFormat(0, 10,
			fmt.Sprintf("Employee Management System - Confidential | Page %d", pdf.PageNo()),
			"", 0, "C", false, 0, "")
	})
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 16)
	pdf.CellFormat(0, 10, "Attendance Report", "", 1, "C", false, 0, "")
	pdf.SetFont("Arial", "", 9)
	pdf.CellFormat(0, 6,
		fmt.Sprintf("Period: %s to %s | Generated: %s",
			summary.StartDate, summary.EndDate, generatedAt.Format("2006-01-02 15:04:05")),
		"", 1, "C", false, 0, "")
	pdf.Ln(4)

	pdf.SetFont("Arial", "B", 10)
	pdf.CellFormat(0, 7, "Summary", "", 1, "L", false, 0, "")
	pdf.SetFont("Arial", "", 9)
	pdf.CellFormat(0, 5,
		fmt.Sprintf("Employees: %d | Records: %d | Present: %d | Late: %d | Absent: %d | Leave: %d | Avg Working Hours: %.2f",
			summary.TotalEmployees, summary.TotalRecords, summary.PresentCount,
			summary.LateCount, summary.AbsentCount, summary.LeaveCount, summary.AverageWorkingHours),
		"", 1, "L", false, 0, "")
	pdf.Ln(4)

	writePDFHeader(pdf)

	pdf.SetFont("Arial", "", 8)
	for i, row := range rows {
		// Leave room for the footer before starting a new row.
		if pdf.GetY() > 180 {
			pdf.AddPage()
			writePDFHeader(pdf)
			pdf.SetFont("Arial", "", 8)
		}

		late := "No"
		if row.IsLate() {
			late = "Yes"
		}

		cells := []string{
			fmt.Sprintf("%d", i+1),
			deref(row.EmployeeIdentifier),
			row.EmployeeName(),
			row.Date.Format("2006-01-02"),
			deref(row.ClockIn),
			deref(row.ClockOut),
			string(row.Status),
			fmt.Sprintf("%.2f", row.WorkingHours()),
			late,
		}
		for j, cell := range cells {
			pdf.CellFormat(pdfColumns[j].width, 6, cell, "1", 0, "L", false, 0, "")
		}
		pdf.Ln(-1)
	}

	if len(rows) == 0 {
		pdf.CellFormat(0, 8, "No attendance records in the selected period.", "", 1, "C", false, 0, "")
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to write pdf output: %w", err)
	}
	return buf.Bytes(), nil
}

func writePDFHeader(pdf *fpdf.Fpdf) {
	pdf.SetFont("Arial", "B", 8)
	pdf.SetFillColor(230, 230, 230)
	for _, col := range pdfColumns {
		pdf.CellFormat(col.width, 7, col.title, "1", 0, "C", true, 0, "")
	}
	pdf.Ln(-1)
}

func deref(s *string) string {
	if s == nil {
		return "-"
	}
	return *s
}
