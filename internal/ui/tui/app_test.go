package tui

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/aalvaropc/attendpay/internal/domain"
)

type fakeSource struct {
	employees []domain.Employee
	records   []domain.AttendanceRecord
	reports   []domain.SalaryReport
	profile   domain.UserProfile
}

func (f fakeSource) Employees() []domain.Employee { return f.employees }

func (f fakeSource) AttendanceByDate(d domain.Date) []domain.AttendanceRecord {
	var out []domain.AttendanceRecord
	for _, r := range f.records {
		if r.Date == d {
			out = append(out, r)
		}
	}
	return out
}

func (f fakeSource) SalaryReports() []domain.SalaryReport { return f.reports }
func (f fakeSource) UserProfile() domain.UserProfile      { return f.profile }

var fixedNow = time.Date(2024, time.January, 15, 9, 0, 0, 0, time.UTC)

func sampleDeps() Deps {
	today := domain.DateOf(fixedNow)
	return Deps{
		WorkspaceRoot: "/ws",
		Now:           func() time.Time { return fixedNow },
		Source: fakeSource{
			employees: []domain.Employee{
				{ID: "e1", Name: "Alice", DailySalary: 100},
				{ID: "e2", Name: "Bob", DailySalary: 80},
			},
			records: []domain.AttendanceRecord{
				{ID: "r1", EmployeeID: "e1", Date: today, Status: domain.StatusPresent},
				{ID: "r2", EmployeeID: "e2", Date: today, Status: domain.StatusHalfDay},
			},
			reports: []domain.SalaryReport{
				{EmployeeID: "e1", Month: 1, Year: 2024, WorkDays: 1, TotalSalary: 100},
				{EmployeeID: "e2", Month: 1, Year: 2024, WorkDays: 1, TotalSalary: 80},
				{EmployeeID: "e1", Month: 1, Year: 2024, WorkDays: 10, TotalSalary: 1000},
				{EmployeeID: "e2", Month: 1, Year: 2024, WorkDays: 5, TotalSalary: 400},
			},
			profile: domain.UserProfile{Name: "Op", Role: domain.RoleAdmin},
		},
	}
}

func press(m model, key string) (model, tea.Cmd) {
	var msg tea.KeyMsg
	switch key {
	case "enter":
		msg = tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		msg = tea.KeyMsg{Type: tea.KeyEsc}
	case "down":
		msg = tea.KeyMsg{Type: tea.KeyDown}
	default:
		msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(key)}
	}
	next, cmd := m.Update(msg)
	return next.(model), cmd
}

func TestOverview(t *testing.T) {
	st := overview(sampleDeps().Source, fixedNow)

	if st.employees != 2 || st.marked != 2 {
		t.Fatalf("unexpected counts: %+v", st)
	}
	if st.present != 1.5 {
		t.Fatalf("expected 1.5 present, got %v", st.present)
	}
	if st.monthSalary != 1400 {
		t.Fatalf("expected latest batch total 1400, got %v", st.monthSalary)
	}
}

func TestLatestBatch_StopsAtRepeatedEmployee(t *testing.T) {
	reports := sampleDeps().Source.SalaryReports()
	got := latestBatch(reports)
	if len(got) != 2 || got[0].TotalSalary != 1000 {
		t.Fatalf("unexpected batch: %+v", got)
	}
	if latestBatch(nil) != nil {
		t.Fatalf("expected nil for empty log")
	}
}

func TestModel_OpenSectionAndBack(t *testing.T) {
	m := newModel(sampleDeps())
	m.menu.SetSize(80, 20)

	m, cmd := press(m, "enter")
	if m.scr != screenSection || !m.loading {
		t.Fatalf("expected loading section screen, got scr=%v loading=%v", m.scr, m.loading)
	}
	if cmd == nil {
		t.Fatalf("expected a load command")
	}

	next, _ := m.Update(cmd())
	m = next.(model)
	if m.loading {
		t.Fatalf("expected loading to finish")
	}
	if !strings.Contains(m.body, "Alice") || !strings.Contains(m.body, "100.00") {
		t.Fatalf("expected employee table, got:\n%s", m.body)
	}
	if !strings.Contains(m.View(), "Employees") {
		t.Fatalf("expected section title in view")
	}

	m, _ = press(m, "esc")
	if m.scr != screenHome {
		t.Fatalf("expected home after esc")
	}
}

func TestModel_NoWorkspaceShowsBanner(t *testing.T) {
	m := newModel(Deps{})
	if !strings.Contains(m.View(), "No workspace found") {
		t.Fatalf("expected banner, got:\n%s", m.View())
	}

	m.menu.SetSize(80, 20)
	m, cmd := press(m, "enter")
	if cmd != nil || m.scr != screenHome {
		t.Fatalf("expected to stay home without a workspace")
	}
	if m.toast == "" {
		t.Fatalf("expected a toast")
	}
}

func TestSectionRenderers(t *testing.T) {
	deps := sampleDeps()
	today := domain.DateOf(fixedNow)

	today1 := renderToday(today, deps.Source.Employees(), deps.Source.AttendanceByDate(today))
	if !strings.Contains(today1, "half-day") || !strings.Contains(today1, "2024-01-15") {
		t.Fatalf("unexpected today view:\n%s", today1)
	}

	reports := renderLatestReports(deps.Source.Employees(), deps.Source.SalaryReports())
	if !strings.Contains(reports, "January 2024") || !strings.Contains(reports, "1400.00") {
		t.Fatalf("unexpected reports view:\n%s", reports)
	}

	if got := renderProfile(domain.UserProfile{}); !strings.Contains(got, "Name:    -") {
		t.Fatalf("expected dashes for empty profile, got:\n%s", got)
	}
}

func TestClampString(t *testing.T) {
	if got := clampString("héllo world", 5); got != "héllo…" {
		t.Fatalf("got %q", got)
	}
	if got := clampString("short", 10); got != "short" {
		t.Fatalf("got %q", got)
	}
	if got := clampString("x", 0); got != "" {
		t.Fatalf("got %q", got)
	}
}

type panickingSource struct{ fakeSource }

func (panickingSource) Employees() []domain.Employee { panic("boom") }

func TestSafeModel_ViewPanicFallsBack(t *testing.T) {
	deps := sampleDeps()
	deps.Source = panickingSource{}

	s := wrapSafe(newModel(deps), nil)
	if out := s.View(); !strings.Contains(out, panicToast) {
		t.Fatalf("expected fallback view, got:\n%s", out)
	}
}

func TestModel_DebugShowsLogPath(t *testing.T) {
	deps := sampleDeps()
	deps.Debug = true
	deps.LogPath = "/ws/.attendpay/logs/attendpay.log"

	if !strings.Contains(newModel(deps).View(), "debug log: /ws/.attendpay/logs/attendpay.log") {
		t.Fatalf("expected log path in debug view")
	}
	deps.Debug = false
	if strings.Contains(newModel(deps).View(), "debug log:") {
		t.Fatalf("log path shown without debug")
	}
}
