package repository

import (
	"github.com/aalvaropc/attendpay/internal/domain"
)

func (r *Repository) AttendanceRecords() []domain.AttendanceRecord {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return cloneRecords(r.records)
}

func (r *Repository) AttendanceByEmployee(employeeID string) []domain.AttendanceRecord {
	return r.filterRecords(func(rec domain.AttendanceRecord) bool {
		return rec.EmployeeID == employeeID
	})
}

func (r *Repository) AttendanceByDate(date domain.Date) []domain.AttendanceRecord {
	return r.filterRecords(func(rec domain.AttendanceRecord) bool {
		return rec.Date == date
	})
}

func (r *Repository) filterRecords(keep func(domain.AttendanceRecord) bool) []domain.AttendanceRecord {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := []domain.AttendanceRecord{}
	for _, rec := range r.records {
		if keep(rec) {
			out = append(out, cloneRecord(rec))
		}
	}
	return out
}

// AddAttendanceRecord upserts by (employee, date): when a record already exists for
// the pair, the input is merged into it (status overwritten, notes overwritten only
// when given); otherwise a new record is appended. The returned record is the
// stored result.
func (r *Repository) AddAttendanceRecord(in domain.AttendanceInput) (domain.AttendanceRecord, error) {
	r.mu.Lock()

	if id, ok := r.byKey[in.Key()]; ok {
		i := r.recIdx[id]
		r.records[i] = in.Patch().Apply(r.records[i])
		out := cloneRecord(r.records[i])
		err := r.persistLocked(domain.KeyAttendanceRecords)
		r.mu.Unlock()

		if err != nil {
			return out, err
		}
		r.notifyAttendanceUpdated(id)
		return out, nil
	}

	rec := in.Record(r.newID())
	r.records = append(r.records, rec)
	r.recIdx[rec.ID] = len(r.records) - 1
	r.byKey[rec.Key()] = rec.ID
	out := cloneRecord(rec)
	err := r.persistLocked(domain.KeyAttendanceRecords)
	r.mu.Unlock()

	if err != nil {
		return out, err
	}

	r.notify(domain.Change{
		Entity:  domain.EntityAttendance,
		Op:      domain.OpCreate,
		ID:      rec.ID,
		Title:   "Attendance Recorded",
		Summary: "Attendance has been marked successfully.",
	})
	return out, nil
}

// UpdateAttendanceRecord merges patch into the record with the given id. If the
// patch moves the record onto an (employee, date) pair held by another record,
// that other record is dropped so the pair stays unique.
func (r *Repository) UpdateAttendanceRecord(id string, patch domain.AttendancePatch) (bool, error) {
	r.mu.Lock()
	i, ok := r.recIdx[id]
	if !ok {
		r.mu.Unlock()
		r.log.Debug("repository.attendance.update.not_found", "id", id)
		return false, nil
	}

	old := r.records[i]
	updated := patch.Apply(old)
	r.records[i] = updated

	if updated.Key() != old.Key() {
		if other, clash := r.byKey[updated.Key()]; clash && other != id {
			r.removeRecordLocked(other)
			r.log.Info("repository.attendance.update.replaced", "id", id, "replaced", other)
		}
		r.reindexRecordsLocked()
	}

	err := r.persistLocked(domain.KeyAttendanceRecords)
	r.mu.Unlock()

	if err != nil {
		return true, err
	}
	r.notifyAttendanceUpdated(id)
	return true, nil
}

func (r *Repository) DeleteAttendanceRecord(id string) (bool, error) {
	r.mu.Lock()
	if _, ok := r.recIdx[id]; !ok {
		r.mu.Unlock()
		r.log.Debug("repository.attendance.delete.not_found", "id", id)
		return false, nil
	}

	r.removeRecordLocked(id)
	r.reindexRecordsLocked()
	err := r.persistLocked(domain.KeyAttendanceRecords)
	r.mu.Unlock()

	if err != nil {
		return true, err
	}

	r.notify(domain.Change{
		Entity:  domain.EntityAttendance,
		Op:      domain.OpDelete,
		ID:      id,
		Title:   "Attendance Deleted",
		Summary: "Attendance record has been deleted.",
	})
	return true, nil
}

// removeRecordLocked drops the record from the slice. Callers reindex afterwards.
func (r *Repository) removeRecordLocked(id string) {
	i, ok := r.recIdx[id]
	if !ok {
		return
	}
	r.records = append(r.records[:i:i], r.records[i+1:]...)
	delete(r.recIdx, id)
}

func (r *Repository) notifyAttendanceUpdated(id string) {
	r.notify(domain.Change{
		Entity:  domain.EntityAttendance,
		Op:      domain.OpUpdate,
		ID:      id,
		Title:   "Attendance Updated",
		Summary: "Attendance record has been updated.",
	})
}
