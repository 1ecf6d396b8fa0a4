package attendance

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/workforce-hub/attendance-backend/internal/domain/attendance"
	"github.com/xuri/excelize/v2"
)

const reportSheet = "Attendance"

// ExportUserReport implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) ExportUserReport(ctx context.Context, req attendance.UserReportRequest, w io.Writer) error {
	report, err := s.UserReport(ctx, req)
	if err != nil {
		return err
	}

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", reportSheet); err != nil {
		return fmt.Errorf("error naming sheet: %w", err)
	}

	headers := []interface{}{"Date", "Punch In", "Punch Out", "Working Hours", "Status"}
	if err := f.SetSheetRow(reportSheet, "A1", &headers); err != nil {
		return fmt.Errorf("error writing header: %w", err)
	}

	rowNum := 2
	for _, rec := range report.Records {
		row := []interface{}{
			rec.Date,
			rec.PunchInTime.In(s.loc).Format(time.TimeOnly),
			"",
			"",
			string(rec.Status),
		}
		if rec.PunchOutTime != nil {
			row[2] = rec.PunchOutTime.In(s.loc).Format(time.TimeOnly)
		}
		if rec.WorkingHours != nil {
			row[3] = *rec.WorkingHours
		}
		if err := f.SetSheetRow(reportSheet, fmt.Sprintf("A%d", rowNum), &row); err != nil {
			return fmt.Errorf("error writing row %d: %w", rowNum, err)
		}
		rowNum++
	}

	// Summary block below the daily rows
	rowNum++
	summary := [][]interface{}{
		{"User", report.UserDetails.UserName},
		{"Period", report.Period.StartDate + " - " + report.Period.EndDate},
		{"Days Present", report.Summary.TotalDaysPresent},
		{"Working Days", report.Summary.TotalWorkingDays},
		{"Attendance %", report.Summary.AttendancePercentage},
		{"Completed Shifts", report.Summary.CompletedShifts},
		{"Average Working Hours", report.Summary.AverageWorkingHours},
	}
	for _, line := range summary {
		if err := f.SetSheetRow(reportSheet, fmt.Sprintf("A%d", rowNum), &line); err != nil {
			return fmt.Errorf("error writing summary: %w", err)
		}
		rowNum++
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("error writing workbook: %w", err)
	}
	return nil
}
