package report

import "context"

// ReportService defines the interface for report generation
type ReportService interface {
	// GenerateMonthlyAttendanceReport collects the stored monthly and weekly figures of a period
	GenerateMonthlyAttendanceReport(ctx context.Context, req MonthlyAttendanceReportRequest) (MonthlyAttendanceReport, error)

	// ExportMonthlyAttendanceReport renders the same report as an xlsx workbook
	ExportMonthlyAttendanceReport(ctx context.Context, req MonthlyAttendanceReportRequest) (ReportFile, error)
}
