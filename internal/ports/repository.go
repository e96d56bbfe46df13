package ports

import "github.com/aalvaropc/attendpay/internal/domain"

// ProfileStore reads and replaces the operator profile.
type ProfileStore interface {
	UserProfile() domain.UserProfile
	UpdateUserProfile(p domain.UserProfile) error
}

// AttendanceSheet is what marking a whole day needs.
type AttendanceSheet interface {
	Employees() []domain.Employee
	AddAttendanceRecord(in domain.AttendanceInput) (domain.AttendanceRecord, error)
}

// ReportGenerator appends a salary report batch to the report log.
type ReportGenerator interface {
	GenerateSalaryReport(month int, year int) ([]domain.SalaryReport, error)
}
