// Package xlsxreport renders salary report batches as spreadsheets.
package xlsxreport

import (
	"io"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/aalvaropc/attendpay/internal/domain"
	"github.com/aalvaropc/attendpay/internal/usecase/payroll"
)

const SheetName = "Salary Report"

var header = []any{"Employee", "Employee ID", "Month", "Year", "Work Days", "Total Salary"}

// Write saves reports to path as a single-sheet workbook followed by a totals row.
// Employee names come from employees; reports of removed employees show their id.
func Write(path string, reports []domain.SalaryReport, employees []domain.Employee) error {
	f, err := build(reports, employees)
	if err != nil {
		return err
	}
	defer func() { _ = f.Close() }()

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return &domain.OpError{Op: "xlsxreport.write", Kind: domain.KindStorage, Path: path, Err: err}
	}
	if err := f.SaveAs(path); err != nil {
		return &domain.OpError{Op: "xlsxreport.write", Kind: domain.KindStorage, Path: path, Err: err}
	}
	return nil
}

// WriteTo streams the workbook to w.
func WriteTo(w io.Writer, reports []domain.SalaryReport, employees []domain.Employee) error {
	f, err := build(reports, employees)
	if err != nil {
		return err
	}
	defer func() { _ = f.Close() }()

	if err := f.Write(w); err != nil {
		return &domain.OpError{Op: "xlsxreport.writeto", Kind: domain.KindStorage, Err: err}
	}
	return nil
}

func build(reports []domain.SalaryReport, employees []domain.Employee) (*excelize.File, error) {
	names := make(map[string]string, len(employees))
	for _, e := range employees {
		names[e.ID] = e.Name
	}

	f := excelize.NewFile()
	fail := func(err error) (*excelize.File, error) {
		_ = f.Close()
		return nil, &domain.OpError{Op: "xlsxreport.build", Kind: domain.KindStorage, Err: err}
	}

	if err := f.SetSheetName("Sheet1", SheetName); err != nil {
		return fail(err)
	}
	if err := f.SetSheetRow(SheetName, "A1", &header); err != nil {
		return fail(err)
	}

	for i, r := range reports {
		name, ok := names[r.EmployeeID]
		if !ok {
			name = r.EmployeeID
		}
		row := []any{name, r.EmployeeID, monthLabel(r.Month), r.Year, r.WorkDays, r.TotalSalary}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return fail(err)
		}
		if err := f.SetSheetRow(SheetName, cell, &row); err != nil {
			return fail(err)
		}
	}

	totals := payroll.Totals(reports)
	totalRow := len(reports) + 2
	totalCell, err := excelize.CoordinatesToCellName(1, totalRow)
	if err != nil {
		return fail(err)
	}
	row := []any{"Total", "", "", "", totals.WorkDays, totals.TotalSalary}
	if err := f.SetSheetRow(SheetName, totalCell, &row); err != nil {
		return fail(err)
	}

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fail(err)
	}
	// Built-in format 2 is "0.00"; stored values stay unrounded.
	money, err := f.NewStyle(&excelize.Style{NumFmt: 2})
	if err != nil {
		return fail(err)
	}
	boldMoney, err := f.NewStyle(&excelize.Style{NumFmt: 2, Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fail(err)
	}

	steps := []func() error{
		func() error { return f.SetCellStyle(SheetName, "A1", "F1", bold) },
		func() error { return f.SetCellStyle(SheetName, "E2", cellName("F", totalRow), money) },
		func() error { return f.SetCellStyle(SheetName, cellName("A", totalRow), cellName("D", totalRow), bold) },
		func() error { return f.SetCellStyle(SheetName, cellName("E", totalRow), cellName("F", totalRow), boldMoney) },
		func() error { return f.SetColWidth(SheetName, "A", "B", 24) },
		func() error { return f.SetColWidth(SheetName, "C", "F", 14) },
	}
	for _, step := range steps {
		if err := step(); err != nil {
			return fail(err)
		}
	}

	return f, nil
}

func cellName(col string, row int) string {
	return col + strconv.Itoa(row)
}

func monthLabel(m int) string {
	if m < 1 || m > 12 {
		return ""
	}
	return time.Month(m).String()
}
