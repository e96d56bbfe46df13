package tui

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/aalvaropc/attendpay/internal/domain"
	"github.com/aalvaropc/attendpay/internal/ui/format"
	"github.com/aalvaropc/attendpay/internal/usecase/payroll"
)

func clampString(s string, maxLen int) string {
	if maxLen <= 0 {
		return ""
	}
	if utf8.RuneCountInString(s) <= maxLen {
		return s
	}
	var b strings.Builder
	b.Grow(len(s))

	n := 0
	for _, r := range s {
		if n >= maxLen {
			break
		}
		b.WriteRune(r)
		n++
	}
	return b.String() + "…"
}

type stats struct {
	employees   int
	present     float64
	marked      int
	monthSalary float64
	period      string
}

// overview computes the home screen figures: head count, today's attendance and
// the salary accrued so far this month.
func overview(src Source, now time.Time) stats {
	employees := src.Employees()
	today := domain.DateOf(now)
	records := src.AttendanceByDate(today)

	st := stats{
		employees: len(employees),
		marked:    len(records),
		period:    format.Period(int(now.Month()), now.Year()),
	}
	for _, r := range records {
		st.present += payroll.Weight(r.Status)
	}

	// Latest generated figure for the current month, if any.
	for _, r := range latestBatch(src.SalaryReports()) {
		if r.Month == int(now.Month()) && r.Year == now.Year() {
			st.monthSalary += r.TotalSalary
		}
	}
	return st
}

func renderStats(t Theme, st stats) string {
	cell := func(value, label string) string {
		return t.Stat.Render(value) + "\n" + t.Help.Render(label)
	}
	return lipgloss.JoinHorizontal(lipgloss.Top,
		lipgloss.NewStyle().Width(18).Render(cell(fmt.Sprint(st.employees), "employees")),
		lipgloss.NewStyle().Width(18).Render(cell(fmt.Sprintf("%s/%d", format.Days(st.present), st.marked), "present today")),
		lipgloss.NewStyle().Width(26).Render(cell(format.Money(st.monthSalary), "payroll "+st.period)),
	)
}

func newTable(headers ...string) *table.Table {
	return table.New().
		Border(lipgloss.RoundedBorder()).
		Headers(headers...).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return lipgloss.NewStyle().Bold(true).Padding(0, 1)
			}
			return lipgloss.NewStyle().Padding(0, 1)
		})
}

func renderEmployees(employees []domain.Employee) string {
	if len(employees) == 0 {
		return "No employees yet. Add one with `attendpay employee add --name ...`."
	}
	t := newTable("Name", "Position", "Daily Salary", "Joined")
	for _, e := range employees {
		t.Row(clampString(e.Name, 28), clampString(e.Position, 20), format.Money(e.DailySalary), e.JoiningDate.String())
	}
	return t.Render()
}

func renderToday(today domain.Date, employees []domain.Employee, records []domain.AttendanceRecord) string {
	byEmployee := make(map[string]domain.AttendanceRecord, len(records))
	for _, r := range records {
		byEmployee[r.EmployeeID] = r
	}

	if len(employees) == 0 {
		return fmt.Sprintf("%s: no employees.", today)
	}

	t := newTable("Name", "Status", "Notes")
	for _, e := range employees {
		status, notes := "not marked", ""
		if r, ok := byEmployee[e.ID]; ok {
			status = string(r.Status)
			if r.Notes != nil {
				notes = clampString(*r.Notes, 30)
			}
		}
		t.Row(clampString(e.Name, 28), status, notes)
	}
	return today.String() + "\n" + t.Render()
}

// latestBatch returns the reports of the most recent generation: the trailing
// entries sharing the last entry's period, at most one per employee.
func latestBatch(reports []domain.SalaryReport) []domain.SalaryReport {
	if len(reports) == 0 {
		return nil
	}
	last := reports[len(reports)-1]
	seen := map[string]bool{last.EmployeeID: true}
	i := len(reports) - 1
	for i > 0 {
		prev := reports[i-1]
		if prev.Month != last.Month || prev.Year != last.Year || seen[prev.EmployeeID] {
			break
		}
		seen[prev.EmployeeID] = true
		i--
	}
	return reports[i:]
}

func renderLatestReports(employees []domain.Employee, reports []domain.SalaryReport) string {
	batch := latestBatch(reports)
	if len(batch) == 0 {
		return "No salary reports yet. Generate one with `attendpay report generate`."
	}

	names := make(map[string]string, len(employees))
	for _, e := range employees {
		names[e.ID] = e.Name
	}

	t := newTable("Employee", "Work Days", "Total Salary")
	for _, r := range batch {
		name, ok := names[r.EmployeeID]
		if !ok {
			name = r.EmployeeID
		}
		t.Row(clampString(name, 28), format.Days(r.WorkDays), format.Money(r.TotalSalary))
	}
	totals := payroll.Totals(batch)
	t.Row("Total", format.Days(totals.WorkDays), format.Money(totals.TotalSalary))

	head := format.Period(batch[0].Month, batch[0].Year)
	return head + "\n" + t.Render()
}

func renderProfile(p domain.UserProfile) string {
	dash := func(s string) string {
		if s == "" {
			return "-"
		}
		return s
	}
	return fmt.Sprintf("Name:    %s\nEmail:   %s\nRole:    %s\nCompany: %s",
		dash(p.Name), dash(p.Email), dash(string(p.Role)), dash(p.Company))
}
