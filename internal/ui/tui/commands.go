package tui

import (
	"errors"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/aalvaropc/attendpay/internal/domain"
)

func cmdLoadSection(deps Deps, s section) tea.Cmd {
	return func() tea.Msg {
		if deps.Source == nil {
			return sectionLoadedMsg{section: s, err: errors.New("no workspace loaded")}
		}

		var body string
		switch s {
		case sectionEmployees:
			body = renderEmployees(deps.Source.Employees())
		case sectionToday:
			today := domain.DateOf(deps.Now())
			body = renderToday(today, deps.Source.Employees(), deps.Source.AttendanceByDate(today))
		case sectionReports:
			body = renderLatestReports(deps.Source.Employees(), deps.Source.SalaryReports())
		case sectionProfile:
			body = renderProfile(deps.Source.UserProfile())
		}

		deps.Logger.Debug("tui.section.loaded", "section", int(s), "bytes", len(body))
		return sectionLoadedMsg{section: s, body: body}
	}
}
