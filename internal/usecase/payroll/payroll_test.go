package payroll

import (
	"testing"
	"time"

	"github.com/aalvaropc/attendpay/internal/domain"
)

func rec(emp string, y int, m time.Month, d int, s domain.AttendanceStatus) domain.AttendanceRecord {
	return domain.AttendanceRecord{EmployeeID: emp, Date: domain.NewDate(y, m, d), Status: s}
}

func TestWeight(t *testing.T) {
	cases := []struct {
		status domain.AttendanceStatus
		want   float64
	}{
		{domain.StatusPresent, 1},
		{domain.StatusHalfDay, 0.5},
		{domain.StatusAbsent, 0},
		{domain.StatusLeave, 0},
		{"remote", 0},
		{"", 0},
		{"Present", 0},
	}
	for _, c := range cases {
		if got := Weight(c.status); got != c.want {
			t.Errorf("Weight(%q) = %v, want %v", c.status, got, c.want)
		}
	}
}

func TestCalculate_JanuaryExample(t *testing.T) {
	a := domain.Employee{ID: "A", DailySalary: 100}

	var records []domain.AttendanceRecord
	for d := 1; d <= 20; d++ {
		records = append(records, rec("A", 2024, time.January, d, domain.StatusPresent))
	}
	records = append(records,
		rec("A", 2024, time.January, 21, domain.StatusHalfDay),
		rec("A", 2024, time.January, 22, domain.StatusHalfDay),
		rec("A", 2024, time.January, 23, domain.StatusLeave),
	)

	days, salary := Calculate(a, records, 1, 2024)
	if days != 21 {
		t.Fatalf("expected 21 work days, got %v", days)
	}
	if salary != 2100 {
		t.Fatalf("expected salary 2100, got %v", salary)
	}
}

func TestCalculate_FiltersByCalendarMonthAndEmployee(t *testing.T) {
	a := domain.Employee{ID: "A", DailySalary: 50}
	records := []domain.AttendanceRecord{
		rec("A", 2024, time.January, 31, domain.StatusPresent),
		rec("A", 2024, time.February, 1, domain.StatusPresent),
		rec("A", 2023, time.February, 1, domain.StatusPresent),
		rec("B", 2024, time.February, 2, domain.StatusPresent),
		rec("A", 2024, time.February, 3, "unknown"),
		rec("A", 2024, time.February, 4, domain.StatusHalfDay),
	}

	days, salary := Calculate(a, records, 2, 2024)
	if days != 1.5 {
		t.Fatalf("expected 1.5 work days, got %v", days)
	}
	if salary != 75 {
		t.Fatalf("expected 75, got %v", salary)
	}
}

func TestCalculate_NoRounding(t *testing.T) {
	a := domain.Employee{ID: "A", DailySalary: 33.333}
	records := []domain.AttendanceRecord{rec("A", 2024, time.March, 1, domain.StatusHalfDay)}

	_, salary := Calculate(a, records, 3, 2024)
	if salary != 0.5*33.333 {
		t.Fatalf("expected unrounded %v, got %v", 0.5*33.333, salary)
	}
}

func TestGenerate_OneReportPerEmployee(t *testing.T) {
	employees := []domain.Employee{
		{ID: "A", DailySalary: 100},
		{ID: "B", DailySalary: 80},
		{ID: "C", DailySalary: 60},
	}
	records := []domain.AttendanceRecord{
		rec("A", 2024, time.May, 1, domain.StatusPresent),
		rec("A", 2024, time.May, 2, domain.StatusPresent),
		rec("B", 2024, time.May, 1, domain.StatusHalfDay),
		rec("C", 2024, time.April, 30, domain.StatusPresent),
		rec("ghost", 2024, time.May, 1, domain.StatusPresent),
	}

	got := Generate(employees, records, 5, 2024)
	if len(got) != 3 {
		t.Fatalf("expected 3 reports, got %d", len(got))
	}

	want := []domain.SalaryReport{
		{EmployeeID: "A", Month: 5, Year: 2024, WorkDays: 2, TotalSalary: 200},
		{EmployeeID: "B", Month: 5, Year: 2024, WorkDays: 0.5, TotalSalary: 40},
		{EmployeeID: "C", Month: 5, Year: 2024, WorkDays: 0, TotalSalary: 0},
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("report %d = %+v, want %+v", i, got[i], want[i])
		}
	}
}

func TestGenerate_NoEmployees(t *testing.T) {
	got := Generate(nil, []domain.AttendanceRecord{rec("A", 2024, time.May, 1, domain.StatusPresent)}, 5, 2024)
	if got == nil || len(got) != 0 {
		t.Fatalf("expected empty non-nil slice, got %#v", got)
	}
}

func TestTotals(t *testing.T) {
	s := Totals([]domain.SalaryReport{
		{WorkDays: 2, TotalSalary: 200},
		{WorkDays: 0.5, TotalSalary: 40},
	})
	if s.Employees != 2 || s.WorkDays != 2.5 || s.TotalSalary != 240 {
		t.Fatalf("unexpected totals %+v", s)
	}
}
