package repository

import (
	"errors"
	"fmt"

	"github.com/aalvaropc/attendpay/internal/domain"
)

// Snapshot returns a deep copy of the full state.
func (r *Repository) Snapshot() domain.Snapshot {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return domain.Snapshot{
		Employees:         cloneEmployees(r.employees),
		AttendanceRecords: cloneRecords(r.records),
		SalaryReports:     cloneReports(r.reports),
		UserProfile:       r.profile,
	}.Normalize()
}

// Replace swaps the whole state for s and writes all four keys, empty
// collections included. Duplicate (employee, date) records in s are collapsed,
// keeping the last one.
func (r *Repository) Replace(s domain.Snapshot) error {
	records := dedupeRecords(cloneRecords(s.AttendanceRecords))

	r.mu.Lock()
	r.employees = cloneEmployees(s.Employees)
	r.records = records
	r.reports = cloneReports(s.SalaryReports)
	r.profile = s.UserProfile
	r.reindexEmployeesLocked()
	r.reindexRecordsLocked()

	var errs []error
	for _, key := range []string{
		domain.KeyEmployees,
		domain.KeyAttendanceRecords,
		domain.KeySalaryReports,
		domain.KeyUserProfile,
	} {
		r.held[key] = true
		if err := r.persistLocked(key); err != nil {
			errs = append(errs, err)
		}
	}
	nEmp, nRec, nRep := len(r.employees), len(r.records), len(r.reports)
	r.mu.Unlock()

	if err := errors.Join(errs...); err != nil {
		return err
	}

	r.log.Info("repository.replaced", "employees", nEmp, "attendance_records", nRec, "salary_reports", nRep)
	r.notify(domain.Change{
		Entity: domain.EntityState,
		Op:     domain.OpReplace,
		Title:  "Data Imported",
		Summary: fmt.Sprintf("Imported %d employee(s), %d attendance record(s) and %d salary report(s).",
			nEmp, nRec, nRep),
	})
	return nil
}
