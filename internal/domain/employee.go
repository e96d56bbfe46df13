package domain

// Employee is a person whose attendance is tracked.
type Employee struct {
	ID               string  `json:"id"`
	Name             string  `json:"name"`
	Position         string  `json:"position"`
	Email            string  `json:"email"`
	PhoneNumber      string  `json:"phoneNumber"`
	DailySalary      float64 `json:"dailySalary"`
	JoiningDate      Date    `json:"joiningDate"`
	EmployeeIDNumber string  `json:"employeeIdNumber,omitempty"`
}

// EmployeeInput carries the fields of a new employee; the id is assigned on creation.
type EmployeeInput struct {
	Name             string
	Position         string
	Email            string
	PhoneNumber      string
	DailySalary      float64
	JoiningDate      Date
	EmployeeIDNumber string
}

// EmployeePatch is a partial update. Nil fields are left untouched.
type EmployeePatch struct {
	Name             *string
	Position         *string
	Email            *string
	PhoneNumber      *string
	DailySalary      *float64
	JoiningDate      *Date
	EmployeeIDNumber *string
}

func (in EmployeeInput) Employee(id string) Employee {
	return Employee{
		ID:               id,
		Name:             in.Name,
		Position:         in.Position,
		Email:            in.Email,
		PhoneNumber:      in.PhoneNumber,
		DailySalary:      in.DailySalary,
		JoiningDate:      in.JoiningDate,
		EmployeeIDNumber: in.EmployeeIDNumber,
	}
}

// Apply returns e with the patch merged in. The id never changes.
func (p EmployeePatch) Apply(e Employee) Employee {
	if p.Name != nil {
		e.Name = *p.Name
	}
	if p.Position != nil {
		e.Position = *p.Position
	}
	if p.Email != nil {
		e.Email = *p.Email
	}
	if p.PhoneNumber != nil {
		e.PhoneNumber = *p.PhoneNumber
	}
	if p.DailySalary != nil {
		e.DailySalary = *p.DailySalary
	}
	if p.JoiningDate != nil {
		e.JoiningDate = *p.JoiningDate
	}
	if p.EmployeeIDNumber != nil {
		e.EmployeeIDNumber = *p.EmployeeIDNumber
	}
	return e
}

func (p EmployeePatch) IsEmpty() bool {
	return p == EmployeePatch{}
}
