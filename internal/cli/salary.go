package cli

import (
	"fmt"
	"io"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/aalvaropc/attendpay/internal/domain"
	"github.com/aalvaropc/attendpay/internal/infra/xlsxreport"
	"github.com/aalvaropc/attendpay/internal/ui/format"
	"github.com/aalvaropc/attendpay/internal/usecase"
	"github.com/aalvaropc/attendpay/internal/usecase/payroll"
)

func salaryCmd(opts *globalOpts) *cobra.Command {
	var employeeID string
	var month, year int

	c := &cobra.Command{
		Use:   "salary",
		Short: "Show one employee's work days and salary for a month",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			m, y, err := period(month, year, now())
			if err != nil {
				return err
			}

			ws, err := openWorkspace(opts, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			defer ws.close()

			e, ok := ws.repo.Employee(employeeID)
			if !ok {
				return invalidInput("cli.salary", "no employee with id %q", employeeID)
			}

			days := payroll.WorkDays(ws.repo.AttendanceByEmployee(e.ID), m, y)
			total := ws.repo.CalculateSalary(e.ID, m, y)

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Employee:     %s\n", e.Name)
			fmt.Fprintf(out, "Period:       %s\n", format.Period(m, y))
			fmt.Fprintf(out, "Daily salary: %s\n", format.Money(e.DailySalary))
			fmt.Fprintf(out, "Work days:    %s\n", format.Days(days))
			fmt.Fprintf(out, "Salary:       %s\n", format.Money(total))
			return nil
		},
	}

	c.Flags().StringVarP(&employeeID, "employee", "e", "", "Employee id (required)")
	c.Flags().IntVar(&month, "month", 0, "Month 1..12 (default current)")
	c.Flags().IntVar(&year, "year", 0, "Year (default current)")
	_ = c.MarkFlagRequired("employee")
	return c
}

func reportCmd(opts *globalOpts) *cobra.Command {
	c := &cobra.Command{
		Use:     "report",
		Aliases: []string{"reports"},
		Short:   "Generate and review salary reports",
	}

	c.AddCommand(reportGenerateCmd(opts), reportListCmd(opts))
	return c
}

func reportGenerateCmd(opts *globalOpts) *cobra.Command {
	var month, year int
	var xlsxPath string

	c := &cobra.Command{
		Use:   "generate",
		Short: "Compute a salary report for every employee and add it to the report log",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			m, y, err := period(month, year, now())
			if err != nil {
				return err
			}

			ws, err := openWorkspace(opts, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			defer ws.close()
			out := cmd.OutOrStdout()
			ws.announce(out)

			sum, err := usecase.NewGenerateReport(ws.repo).Execute(m, y)
			if err != nil {
				return err
			}

			printReports(out, ws, sum.Reports)
			fmt.Fprintf(out, "Total: %s work days, %s\n", format.Days(sum.Totals.WorkDays), format.Money(sum.Totals.TotalSalary))

			if xlsxPath != "" {
				path := xlsxPath
				if !filepath.IsAbs(path) {
					path = filepath.Join(ws.exportsDir(), path)
				}
				if err := xlsxreport.Write(path, sum.Reports, ws.repo.Employees()); err != nil {
					return err
				}
				ws.log.Info("report.xlsx.written", "path", path, "reports", len(sum.Reports))
				fmt.Fprintf(out, "Spreadsheet written to %s\n", path)
			}
			return nil
		},
	}

	c.Flags().IntVar(&month, "month", 0, "Month 1..12 (default current)")
	c.Flags().IntVar(&year, "year", 0, "Year (default current)")
	c.Flags().StringVar(&xlsxPath, "xlsx", "", "Also write the batch as .xlsx (relative paths land in the exports dir)")
	return c
}

func reportListCmd(opts *globalOpts) *cobra.Command {
	var month, year int

	c := &cobra.Command{
		Use:   "list",
		Short: "List the report log, optionally for one month",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ws, err := openWorkspace(opts, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			defer ws.close()

			var reports []domain.SalaryReport
			for _, r := range ws.repo.SalaryReports() {
				if month != 0 && r.Month != month {
					continue
				}
				if year != 0 && r.Year != year {
					continue
				}
				reports = append(reports, r)
			}
			printReports(cmd.OutOrStdout(), ws, reports)
			return nil
		},
	}

	c.Flags().IntVar(&month, "month", 0, "Only this month (1..12)")
	c.Flags().IntVar(&year, "year", 0, "Only this year")
	return c
}

func printReports(w io.Writer, ws *workspaceCtx, reports []domain.SalaryReport) {
	rows := make([][]string, 0, len(reports))
	for _, r := range reports {
		rows = append(rows, []string{
			ws.employeeName(r.EmployeeID),
			format.Period(r.Month, r.Year),
			format.Days(r.WorkDays),
			format.Money(r.TotalSalary),
		})
	}
	printTable(w, []string{"Employee", "Period", "Work Days", "Total Salary"}, rows, "(no salary reports)")
}
