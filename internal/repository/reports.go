package repository

import (
	"fmt"
	"time"

	"github.com/aalvaropc/attendpay/internal/domain"
	"github.com/aalvaropc/attendpay/internal/usecase/payroll"
)

func (r *Repository) SalaryReports() []domain.SalaryReport {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return cloneReports(r.reports)
}

// CalculateSalary returns the salary of the employee for month/year (1-indexed
// month). An unknown employee yields 0.
func (r *Repository) CalculateSalary(employeeID string, month int, year int) float64 {
	r.mu.RLock()
	defer r.mu.RUnlock()

	i, ok := r.empIdx[employeeID]
	if !ok {
		return 0
	}
	_, salary := payroll.Calculate(r.employees[i], r.records, month, year)
	return salary
}

// GenerateSalaryReport computes one report per current employee and appends the
// batch to the report log. Earlier reports for the same period are kept.
func (r *Repository) GenerateSalaryReport(month int, year int) ([]domain.SalaryReport, error) {
	r.mu.Lock()
	batch := payroll.Generate(r.employees, r.records, month, year)
	r.reports = append(r.reports, batch...)
	err := r.persistLocked(domain.KeySalaryReports)
	r.mu.Unlock()

	out := cloneReports(batch)
	if err != nil {
		return out, err
	}

	r.notify(domain.Change{
		Entity: domain.EntitySalaryReport,
		Op:     domain.OpCreate,
		Title:  "Report Generated",
		Summary: fmt.Sprintf("Salary report for %s %d generated for %d employee(s).",
			monthName(month), year, len(batch)),
	})
	return out, nil
}

func monthName(m int) string {
	if m < 1 || m > 12 {
		return fmt.Sprintf("month %d", m)
	}
	return time.Month(m).String()
}
