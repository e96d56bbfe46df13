// Package payroll derives worked days and salary from attendance records.
// Everything here is pure: no I/O, no mutation of inputs.
package payroll

import (
	"time"

	"github.com/aalvaropc/attendpay/internal/domain"
)

// Weight returns the work-day credit of a status. Unknown statuses earn nothing.
func Weight(s domain.AttendanceStatus) float64 {
	switch s {
	case domain.StatusPresent:
		return 1
	case domain.StatusHalfDay:
		return 0.5
	case domain.StatusAbsent, domain.StatusLeave:
		return 0
	default:
		return 0
	}
}

// WorkDays sums the weights of records dated within month/year (month is 1-indexed).
// Records of any employee are counted; callers pass one employee's records.
func WorkDays(records []domain.AttendanceRecord, month int, year int) float64 {
	m := time.Month(month)
	var days float64
	for _, r := range records {
		if !r.Date.In(m, year) {
			continue
		}
		days += Weight(r.Status)
	}
	return days
}

// Calculate returns the worked days of e in month/year and the resulting salary.
// Records belonging to other employees are ignored. The salary is not rounded.
func Calculate(e domain.Employee, records []domain.AttendanceRecord, month int, year int) (workDays float64, salary float64) {
	own := make([]domain.AttendanceRecord, 0, len(records))
	for _, r := range records {
		if r.EmployeeID == e.ID {
			own = append(own, r)
		}
	}
	workDays = WorkDays(own, month, year)
	return workDays, workDays * e.DailySalary
}

// Generate builds one report per employee, in employee order. Employees without
// matching records get a zero report.
func Generate(employees []domain.Employee, records []domain.AttendanceRecord, month int, year int) []domain.SalaryReport {
	byEmployee := make(map[string][]domain.AttendanceRecord, len(employees))
	for _, r := range records {
		byEmployee[r.EmployeeID] = append(byEmployee[r.EmployeeID], r)
	}

	reports := make([]domain.SalaryReport, 0, len(employees))
	for _, e := range employees {
		days := WorkDays(byEmployee[e.ID], month, year)
		reports = append(reports, domain.SalaryReport{
			EmployeeID:  e.ID,
			Month:       month,
			Year:        year,
			WorkDays:    days,
			TotalSalary: days * e.DailySalary,
		})
	}
	return reports
}

// Summary is the total row of a report batch.
type Summary struct {
	Employees   int
	WorkDays    float64
	TotalSalary float64
}

func Totals(reports []domain.SalaryReport) Summary {
	s := Summary{Employees: len(reports)}
	for _, r := range reports {
		s.WorkDays += r.WorkDays
		s.TotalSalary += r.TotalSalary
	}
	return s
}
