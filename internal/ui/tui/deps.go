package tui

import (
	"log/slog"
	"time"

	"github.com/aalvaropc/attendpay/internal/domain"
	"github.com/aalvaropc/attendpay/internal/ports"
)

// Source is the read side of the repository the dashboard shows.
type Source interface {
	Employees() []domain.Employee
	AttendanceByDate(date domain.Date) []domain.AttendanceRecord
	SalaryReports() []domain.SalaryReport
	UserProfile() domain.UserProfile
}

type Deps struct {
	WorkspaceLocator ports.WorkspaceLocator
	// WorkspaceRoot and Source are empty when no workspace was found.
	WorkspaceRoot string
	Source        Source

	Now    func() time.Time
	Logger *slog.Logger
	Debug  bool

	// LogPath is shown on the home screen in debug mode.
	LogPath string
}
