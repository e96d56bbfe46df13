package domain

// SalaryReport is a point-in-time salary figure for one employee and month.
// Reports form an append-only log; regenerating a month appends new entries.
type SalaryReport struct {
	EmployeeID  string  `json:"employeeId"`
	Month       int     `json:"month"`
	Year        int     `json:"year"`
	WorkDays    float64 `json:"workDays"`
	TotalSalary float64 `json:"totalSalary"`
}
