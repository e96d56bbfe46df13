package usecase

import (
	"fmt"

	"github.com/aalvaropc/attendpay/internal/domain"
	"github.com/aalvaropc/attendpay/internal/ports"
	"github.com/aalvaropc/attendpay/internal/usecase/payroll"
)

type ReportSummary struct {
	Reports []domain.SalaryReport
	Totals  payroll.Summary
}

type GenerateReport struct {
	reports ports.ReportGenerator
}

func NewGenerateReport(reports ports.ReportGenerator) *GenerateReport {
	return &GenerateReport{reports: reports}
}

// Execute appends a report batch for month/year (1-indexed month) and returns it
// with its totals.
func (uc *GenerateReport) Execute(month int, year int) (ReportSummary, error) {
	if month < 1 || month > 12 {
		return ReportSummary{}, &domain.OpError{
			Op:   "usecase.generatereport",
			Kind: domain.KindInvalidInput,
			Err:  fmt.Errorf("%w: month must be 1..12, got %d", domain.ErrInvalidInput, month),
		}
	}
	if year <= 0 {
		return ReportSummary{}, &domain.OpError{
			Op:   "usecase.generatereport",
			Kind: domain.KindInvalidInput,
			Err:  fmt.Errorf("%w: year must be positive", domain.ErrInvalidInput),
		}
	}

	batch, err := uc.reports.GenerateSalaryReport(month, year)
	return ReportSummary{Reports: batch, Totals: payroll.Totals(batch)}, err
}
