package report

import (
	"fmt"

	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/report"
	"github.com/xuri/excelize/v2"
)

const (
	xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

	monthlySheet = "Monthly"
	weeklySheet  = "Weekly"
)

var (
	monthlyHeader = []string{"Employee ID", "Name", "Email", "Department", "Total Days", "Working Days", "Worked Days", "Availability (%)", "Exact Availability (%)"}
	weeklyHeader  = []string{"Employee ID", "Name", "Week", "Start", "End", "Working Days", "Worked Days", "Availability (%)"}
)

func renderWorkbook(data report.MonthlyAttendanceReport) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", monthlySheet); err != nil {
		return nil, err
	}
	if _, err := f.NewSheet(weeklySheet); err != nil {
		return nil, err
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Color: "#FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#4472C4"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})
	if err != nil {
		return nil, err
	}

	// Monthly sheet: title row, blank row, header, one row per employee
	title := fmt.Sprintf("Attendance %s to %s", data.PeriodStart, data.PeriodEnd)
	if err := f.SetCellValue(monthlySheet, "A1", title); err != nil {
		return nil, err
	}
	if err := writeRow(f, monthlySheet, 3, toAny(monthlyHeader)); err != nil {
		return nil, err
	}
	if err := styleRow(f, monthlySheet, 3, len(monthlyHeader), headerStyle); err != nil {
		return nil, err
	}

	row := 4
	for _, e := range data.Employees {
		values := []any{e.EmployeeID, e.Name, e.Email, e.Department, e.TotalDays, e.TotalWorkingDays, e.WorkedDays, e.Availability, e.ExactAvailability}
		if err := writeRow(f, monthlySheet, row, values); err != nil {
			return nil, err
		}
		row++
	}

	if err := writeRow(f, weeklySheet, 1, toAny(weeklyHeader)); err != nil {
		return nil, err
	}
	if err := styleRow(f, weeklySheet, 1, len(weeklyHeader), headerStyle); err != nil {
		return nil, err
	}

	row = 2
	for _, e := range data.Employees {
		for _, w := range e.Weeks {
			values := []any{e.EmployeeID, e.Name, w.WeekNumber, w.Start, w.End, w.TotalWorkingDays, w.WorkedDays, w.Availability}
			if err := writeRow(f, weeklySheet, row, values); err != nil {
				return nil, err
			}
			row++
		}
	}

	for _, sheet := range []string{monthlySheet, weeklySheet} {
		if err := f.SetColWidth(sheet, "A", "I", 18); err != nil {
			return nil, err
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func writeRow(f *excelize.File, sheet string, row int, values []any) error {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return err
	}
	return f.SetSheetRow(sheet, cell, &values)
}

func styleRow(f *excelize.File, sheet string, row, columns, style int) error {
	first, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return err
	}
	last, err := excelize.CoordinatesToCellName(columns, row)
	if err != nil {
		return err
	}
	return f.SetCellStyle(sheet, first, last, style)
}

func toAny(values []string) []any {
	out := make([]any, len(values))
	for i, v := range values {
		out[i] = v
	}
	return out
}
