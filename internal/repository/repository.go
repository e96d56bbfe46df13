// Package repository owns the in-memory working set of attendpay and keeps it
// synchronized with a BlobStore.
//
// Lifecycle: New, then Load once, then any number of operations, then Flush before
// exit. Every mutating operation persists the keys it touched before returning.
// Unknown ids on update/delete are no-ops reported through a false return value,
// never as errors.
package repository

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync"

	"github.com/google/uuid"

	"github.com/aalvaropc/attendpay/internal/domain"
	"github.com/aalvaropc/attendpay/internal/ports"
)

type Repository struct {
	mu sync.RWMutex

	store    ports.BlobStore
	notifier ports.ChangeNotifier
	log      *slog.Logger
	newID    func() string

	employees []domain.Employee
	empIdx    map[string]int

	records []domain.AttendanceRecord
	recIdx  map[string]int
	byKey   map[domain.AttendanceKey]string

	reports []domain.SalaryReport
	profile domain.UserProfile

	// held marks keys that carried data in this process (loaded or written).
	// An empty collection is only written over a held key.
	held map[string]bool
	// dirty marks keys whose last write failed; Flush retries them.
	dirty map[string]bool
}

type Option func(*Repository)

func WithLogger(l *slog.Logger) Option {
	return func(r *Repository) {
		if l != nil {
			r.log = l
		}
	}
}

func WithNotifier(n ports.ChangeNotifier) Option {
	return func(r *Repository) { r.notifier = n }
}

// WithIDGenerator is useful for tests.
func WithIDGenerator(f func() string) Option {
	return func(r *Repository) {
		if f != nil {
			r.newID = f
		}
	}
}

func New(store ports.BlobStore, opts ...Option) *Repository {
	r := &Repository{
		store:   store,
		log:     slog.New(slog.NewJSONHandler(io.Discard, nil)),
		newID:   uuid.NewString,
		empIdx:  map[string]int{},
		recIdx:  map[string]int{},
		byKey:   map[domain.AttendanceKey]string{},
		profile: domain.DefaultUserProfile(),
		held:    map[string]bool{},
		dirty:   map[string]bool{},
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Load replaces the working set with what the store holds. Each key is read
// independently: a missing or unreadable key leaves that collection empty (or the
// profile at its defaults) and the others load normally. The returned error joins
// every per-key failure; the repository is usable either way.
func (r *Repository) Load() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	var errs []error

	var employees []domain.Employee
	if found, err := r.readKey(domain.KeyEmployees, &employees); err != nil {
		errs = append(errs, err)
		employees = nil
		r.held[domain.KeyEmployees] = false
	} else {
		r.held[domain.KeyEmployees] = found
	}

	var records []domain.AttendanceRecord
	if found, err := r.readKey(domain.KeyAttendanceRecords, &records); err != nil {
		errs = append(errs, err)
		records = nil
		r.held[domain.KeyAttendanceRecords] = false
	} else {
		r.held[domain.KeyAttendanceRecords] = found
	}

	var reports []domain.SalaryReport
	if found, err := r.readKey(domain.KeySalaryReports, &reports); err != nil {
		errs = append(errs, err)
		reports = nil
		r.held[domain.KeySalaryReports] = false
	} else {
		r.held[domain.KeySalaryReports] = found
	}

	profile := domain.DefaultUserProfile()
	var stored domain.UserProfile
	if found, err := r.readKey(domain.KeyUserProfile, &stored); err != nil {
		errs = append(errs, err)
	} else if found {
		profile = stored
	}

	deduped := dedupeRecords(records)
	if n := len(records) - len(deduped); n > 0 {
		r.log.Warn("repository.load.duplicates_collapsed", "count", n)
	}

	r.employees = employees
	r.records = deduped
	r.reports = reports
	r.profile = profile
	r.reindexEmployeesLocked()
	r.reindexRecordsLocked()
	r.dirty = map[string]bool{}

	r.log.Info("repository.loaded",
		"employees", len(r.employees),
		"attendance_records", len(r.records),
		"salary_reports", len(r.reports),
		"failed_keys", len(errs),
	)
	return errors.Join(errs...)
}

func (r *Repository) readKey(key string, dst any) (bool, error) {
	found, err := r.store.Read(key, dst)
	if err != nil {
		r.log.Warn("repository.load.key_failed", "key", key, "err", err)
		return false, fmt.Errorf("load %s: %w", key, err)
	}
	return found, nil
}

// Flush retries every key whose last write failed.
func (r *Repository) Flush() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	var errs []error
	for _, key := range []string{
		domain.KeyEmployees,
		domain.KeyAttendanceRecords,
		domain.KeySalaryReports,
		domain.KeyUserProfile,
	} {
		if !r.dirty[key] {
			continue
		}
		if err := r.persistLocked(key); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Pending reports the keys whose in-memory state is not yet durable.
func (r *Repository) Pending() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []string
	for _, key := range []string{
		domain.KeyEmployees,
		domain.KeyAttendanceRecords,
		domain.KeySalaryReports,
		domain.KeyUserProfile,
	} {
		if r.dirty[key] {
			out = append(out, key)
		}
	}
	return out
}

func (r *Repository) persistLocked(key string) error {
	var (
		value any
		empty bool
	)
	switch key {
	case domain.KeyEmployees:
		value, empty = cloneEmployees(r.employees), len(r.employees) == 0
	case domain.KeyAttendanceRecords:
		value, empty = cloneRecords(r.records), len(r.records) == 0
	case domain.KeySalaryReports:
		value, empty = cloneReports(r.reports), len(r.reports) == 0
	case domain.KeyUserProfile:
		value = r.profile
	default:
		return &domain.OpError{
			Op:   "repository.persist",
			Kind: domain.KindInvalidConfig,
			Path: key,
			Err:  fmt.Errorf("unknown key %q", key),
		}
	}

	if empty && !r.held[key] {
		r.log.Debug("repository.persist.skip_empty", "key", key)
		delete(r.dirty, key)
		return nil
	}

	if err := r.store.Write(key, value); err != nil {
		r.dirty[key] = true
		r.log.Error("repository.persist.failed", "key", key, "err", err)
		return err
	}

	r.held[key] = true
	delete(r.dirty, key)
	return nil
}

func (r *Repository) notify(c domain.Change) {
	if r.notifier == nil {
		return
	}
	r.notifier.Publish(c)
}

func (r *Repository) reindexEmployeesLocked() {
	r.empIdx = make(map[string]int, len(r.employees))
	for i, e := range r.employees {
		r.empIdx[e.ID] = i
	}
}

func (r *Repository) reindexRecordsLocked() {
	r.recIdx = make(map[string]int, len(r.records))
	r.byKey = make(map[domain.AttendanceKey]string, len(r.records))
	for i, rec := range r.records {
		r.recIdx[rec.ID] = i
		r.byKey[rec.Key()] = rec.ID
	}
}

// dedupeRecords keeps the last record for each natural key, preserving order.
func dedupeRecords(in []domain.AttendanceRecord) []domain.AttendanceRecord {
	seen := make(map[domain.AttendanceKey]bool, len(in))
	keep := make([]bool, len(in))
	for i := len(in) - 1; i >= 0; i-- {
		k := in[i].Key()
		if seen[k] {
			continue
		}
		seen[k] = true
		keep[i] = true
	}

	out := make([]domain.AttendanceRecord, 0, len(seen))
	for i, rec := range in {
		if keep[i] {
			out = append(out, rec)
		}
	}
	return out
}

func cloneEmployees(in []domain.Employee) []domain.Employee {
	out := make([]domain.Employee, len(in))
	copy(out, in)
	return out
}

func cloneRecords(in []domain.AttendanceRecord) []domain.AttendanceRecord {
	out := make([]domain.AttendanceRecord, len(in))
	for i, rec := range in {
		out[i] = cloneRecord(rec)
	}
	return out
}

func cloneRecord(rec domain.AttendanceRecord) domain.AttendanceRecord {
	if rec.Notes != nil {
		n := *rec.Notes
		rec.Notes = &n
	}
	return rec
}

func cloneReports(in []domain.SalaryReport) []domain.SalaryReport {
	out := make([]domain.SalaryReport, len(in))
	copy(out, in)
	return out
}
