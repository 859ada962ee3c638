package employee

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"
)

const exportSheet = "Employees"

var exportHeader = []interface{}{
	"ID", "Full Name", "Email", "Phone", "Position", "Department", "Employment Type",
	"Join Date", "Status", "Reporting To", "Address", "Emergency Contact",
	"Emergency Phone", "Skills", "Salary", "Created At",
}

// WriteWorkbook renders employees as a single-sheet workbook, one row per employee.
func WriteWorkbook(w io.Writer, employees []*Employee) error {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	if err := f.SetSheetName(f.GetSheetName(0), exportSheet); err != nil {
		return fmt.Errorf("rename sheet: %w", err)
	}

	if err := f.SetSheetRow(exportSheet, "A1", &exportHeader); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("header style: %w", err)
	}
	if err := f.SetRowStyle(exportSheet, 1, 1, bold); err != nil {
		return fmt.Errorf("apply header style: %w", err)
	}

	for i, e := range employees {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		row := []interface{}{
			e.ID, e.FullName, e.Email, deref(e.PhoneNo), e.Position, e.Department, e.EmploymentType,
			e.JoinDate.String(), e.Status, deref(e.ReportingTo), deref(e.Address),
			deref(e.EmergencyContactName), deref(e.EmergencyContactPhone), deref(e.Skills),
			salaryCell(e.Salary), e.CreatedAt.Format("2006-01-02 15:04:05"),
		}
		if err := f.SetSheetRow(exportSheet, cell, &row); err != nil {
			return fmt.Errorf("write employee %d: %w", e.ID, err)
		}
	}

	lastCol, err := excelize.ColumnNumberToName(len(exportHeader))
	if err != nil {
		return err
	}
	if err := f.SetColWidth(exportSheet, "A", lastCol, 18); err != nil {
		return err
	}

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func salaryCell(v *float64) interface{} {
	if v == nil {
		return ""
	}
	return *v
}
