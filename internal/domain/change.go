package domain

// EntityKind names the kind of entity a change refers to.
type EntityKind string

const (
	EntityEmployee     EntityKind = "employee"
	EntityAttendance   EntityKind = "attendance"
	EntitySalaryReport EntityKind = "salary_report"
	EntityUserProfile  EntityKind = "user_profile"
	EntityState        EntityKind = "state"
)

type ChangeOp string

const (
	OpCreate  ChangeOp = "create"
	OpUpdate  ChangeOp = "update"
	OpDelete  ChangeOp = "delete"
	OpReplace ChangeOp = "replace"
)

// Change describes a successful mutation. It is advisory: nothing relies on it
// for correctness.
type Change struct {
	Entity  EntityKind
	Op      ChangeOp
	ID      string
	Title   string
	Summary string
}
