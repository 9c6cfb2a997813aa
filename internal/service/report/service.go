package report

import (
	"context"
	"fmt"
	"time"

	"github.com/shiftline/timeclock-backend-go/internal/domain/shift"
	"github.com/xuri/excelize/v2"
)

// exportCap bounds a single export the same way the admin review listing is
// bounded.
const exportCap = 200

// ReportService builds timesheet exports for administrative review.
type ReportService interface {
	// TimesheetXLSX renders the filtered shifts as a spreadsheet. The
	// caller owns closing the returned file.
	TimesheetXLSX(ctx context.Context, filter shift.Filter) (*excelize.File, error)
}

type ReportServiceImpl struct {
	shiftRepo shift.WorkShiftRepository
}

func NewReportService(shiftRepo shift.WorkShiftRepository) ReportService {
	return &ReportServiceImpl{shiftRepo: shiftRepo}
}

// TimesheetXLSX implements ReportService.
func (s *ReportServiceImpl) TimesheetXLSX(ctx context.Context, filter shift.Filter) (*excelize.File, error) {
	if err := filter.Validate(); err != nil {
		return nil, err
	}
	filter.Page = 1
	filter.Limit = exportCap

	shifts, _, err := s.shiftRepo.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list shifts for export: %w", err)
	}

	f := excelize.NewFile()
	sheet := "Timesheets"
	index, err := f.NewSheet(sheet)
	if err != nil {
		return nil, err
	}
	f.DeleteSheet("Sheet1")
	f.SetActiveSheet(index)

	header := []string{"Employee", "Clock In", "Clock Out", "Status", "Total", "Breaks", "Worked", "Edited By", "Edit Reason"}
	for c, v := range header {
		cell, _ := excelize.CoordinatesToCellName(c+1, 1)
		_ = f.SetCellValue(sheet, cell, v)
	}

	for r, sh := range shifts {
		row := r + 2
		values := []any{
			derefString(sh.EmployeeName),
			sh.ClockIn.Format("2006-01-02 15:04"),
			formatClockOut(sh.ClockOut),
			string(sh.Status),
			shift.FormatHHMM(sh.TotalSeconds()),
			shift.FormatHHMM(sh.BreakSeconds()),
			shift.FormatHHMM(sh.WorkedSeconds()),
			derefString(sh.EditedBy),
			sh.EditReason,
		}
		for c, v := range values {
			cell, _ := excelize.CoordinatesToCellName(c+1, row)
			_ = f.SetCellValue(sheet, cell, v)
		}
	}

	return f, nil
}

func formatClockOut(t *time.Time) string {
	if t == nil {
		return "OPEN"
	}
	return t.Format("2006-01-02 15:04")
}

func derefString(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
