package domain

// AttendanceStatus is the recorded state of an employee on a given day.
// Values outside the known set are kept as-is; they simply earn no work-day credit.
type AttendanceStatus string

const (
	StatusPresent AttendanceStatus = "present"
	StatusAbsent  AttendanceStatus = "absent"
	StatusHalfDay AttendanceStatus = "half-day"
	StatusLeave   AttendanceStatus = "leave"
)

// Statuses lists the recognized statuses in display order.
func Statuses() []AttendanceStatus {
	return []AttendanceStatus{StatusPresent, StatusAbsent, StatusHalfDay, StatusLeave}
}

func (s AttendanceStatus) Known() bool {
	switch s {
	case StatusPresent, StatusAbsent, StatusHalfDay, StatusLeave:
		return true
	}
	return false
}

// AttendanceRecord is one employee's status on one day. At most one record
// exists per (EmployeeID, Date).
type AttendanceRecord struct {
	ID         string           `json:"id"`
	EmployeeID string           `json:"employeeId"`
	Date       Date             `json:"date"`
	Status     AttendanceStatus `json:"status"`
	Notes      *string          `json:"notes,omitempty"`
}

// Key returns the natural key of the record.
func (r AttendanceRecord) Key() AttendanceKey {
	return AttendanceKey{EmployeeID: r.EmployeeID, Date: r.Date}
}

// AttendanceKey is the natural (business) key of an attendance record.
type AttendanceKey struct {
	EmployeeID string
	Date       Date
}

// AttendanceInput is what callers supply when marking attendance.
// A nil Notes keeps the notes of an existing record on upsert.
type AttendanceInput struct {
	EmployeeID string
	Date       Date
	Status     AttendanceStatus
	Notes      *string
}

func (in AttendanceInput) Key() AttendanceKey {
	return AttendanceKey{EmployeeID: in.EmployeeID, Date: in.Date}
}

func (in AttendanceInput) Record(id string) AttendanceRecord {
	return AttendanceRecord{
		ID:         id,
		EmployeeID: in.EmployeeID,
		Date:       in.Date,
		Status:     in.Status,
		Notes:      cloneString(in.Notes),
	}
}

// Patch converts the input into a merge patch for an existing record.
func (in AttendanceInput) Patch() AttendancePatch {
	status := in.Status
	return AttendancePatch{
		Status: &status,
		Notes:  cloneString(in.Notes),
	}
}

// AttendancePatch is a partial update. Nil fields are left untouched.
type AttendancePatch struct {
	EmployeeID *string
	Date       *Date
	Status     *AttendanceStatus
	Notes      *string
}

func (p AttendancePatch) Apply(r AttendanceRecord) AttendanceRecord {
	if p.EmployeeID != nil {
		r.EmployeeID = *p.EmployeeID
	}
	if p.Date != nil {
		r.Date = *p.Date
	}
	if p.Status != nil {
		r.Status = *p.Status
	}
	if p.Notes != nil {
		r.Notes = cloneString(p.Notes)
	}
	return r
}

func cloneString(s *string) *string {
	if s == nil {
		return nil
	}
	v := *s
	return &v
}
