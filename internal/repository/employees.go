package repository

import (
	"errors"
	"fmt"

	"github.com/aalvaropc/attendpay/internal/domain"
)

func (r *Repository) Employees() []domain.Employee {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return cloneEmployees(r.employees)
}

func (r *Repository) Employee(id string) (domain.Employee, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	i, ok := r.empIdx[id]
	if !ok {
		return domain.Employee{}, false
	}
	return r.employees[i], true
}

// AddEmployee assigns a fresh id and appends the employee. Names and emails are
// not required to be unique.
func (r *Repository) AddEmployee(in domain.EmployeeInput) (domain.Employee, error) {
	r.mu.Lock()
	e := in.Employee(r.newID())
	r.employees = append(r.employees, e)
	r.empIdx[e.ID] = len(r.employees) - 1
	err := r.persistLocked(domain.KeyEmployees)
	r.mu.Unlock()

	if err != nil {
		return e, err
	}

	r.notify(domain.Change{
		Entity:  domain.EntityEmployee,
		Op:      domain.OpCreate,
		ID:      e.ID,
		Title:   "Employee Added",
		Summary: fmt.Sprintf("%s has been added successfully.", e.Name),
	})
	return e, nil
}

// UpdateEmployee merges patch into the employee with the given id.
// It returns false when no such employee exists.
func (r *Repository) UpdateEmployee(id string, patch domain.EmployeePatch) (bool, error) {
	r.mu.Lock()
	i, ok := r.empIdx[id]
	if !ok {
		r.mu.Unlock()
		r.log.Debug("repository.employee.update.not_found", "id", id)
		return false, nil
	}
	r.employees[i] = patch.Apply(r.employees[i])
	err := r.persistLocked(domain.KeyEmployees)
	r.mu.Unlock()

	if err != nil {
		return true, err
	}

	r.notify(domain.Change{
		Entity:  domain.EntityEmployee,
		Op:      domain.OpUpdate,
		ID:      id,
		Title:   "Employee Updated",
		Summary: "Employee information has been updated successfully.",
	})
	return true, nil
}

// DeleteEmployee removes the employee and every attendance record that refers to it.
// Salary reports are history and are kept.
func (r *Repository) DeleteEmployee(id string) (bool, error) {
	r.mu.Lock()
	i, ok := r.empIdx[id]
	if !ok {
		r.mu.Unlock()
		r.log.Debug("repository.employee.delete.not_found", "id", id)
		return false, nil
	}

	removed := r.employees[i]
	r.employees = append(r.employees[:i:i], r.employees[i+1:]...)
	r.reindexEmployeesLocked()

	kept := r.records[:0:0]
	dropped := 0
	for _, rec := range r.records {
		if rec.EmployeeID == id {
			dropped++
			continue
		}
		kept = append(kept, rec)
	}
	r.records = kept
	r.reindexRecordsLocked()

	err := r.persistLocked(domain.KeyEmployees)
	if dropped > 0 {
		err = errors.Join(err, r.persistLocked(domain.KeyAttendanceRecords))
	}
	r.mu.Unlock()

	r.log.Info("repository.employee.deleted", "id", id, "attendance_removed", dropped)
	if err != nil {
		return true, err
	}

	r.notify(domain.Change{
		Entity:  domain.EntityEmployee,
		Op:      domain.OpDelete,
		ID:      id,
		Title:   "Employee Deleted",
		Summary: fmt.Sprintf("%s has been removed.", removed.Name),
	})
	return true, nil
}
