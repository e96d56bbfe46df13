package domain

// Store keys, one independent blob each.
const (
	KeyEmployees         = "employees"
	KeyAttendanceRecords = "attendanceRecords"
	KeySalaryReports     = "salaryReports"
	KeyUserProfile       = "userProfile"
	KeyStagedImport      = "stagedImport"
)

// Snapshot is the complete repository state. It is also the portable
// export/import document.
type Snapshot struct {
	Employees         []Employee         `json:"employees"`
	AttendanceRecords []AttendanceRecord `json:"attendanceRecords"`
	SalaryReports     []SalaryReport     `json:"salaryReports"`
	UserProfile       UserProfile        `json:"userProfile"`
}

// Normalize replaces nil slices with empty ones so the document always
// carries all four keys as arrays.
func (s Snapshot) Normalize() Snapshot {
	if s.Employees == nil {
		s.Employees = []Employee{}
	}
	if s.AttendanceRecords == nil {
		s.AttendanceRecords = []AttendanceRecord{}
	}
	if s.SalaryReports == nil {
		s.SalaryReports = []SalaryReport{}
	}
	return s
}
