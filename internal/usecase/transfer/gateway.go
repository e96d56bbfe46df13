// Package transfer moves the whole attendpay state in and out of a portable JSON
// document. Imports are staged first and only take effect on Activate.
package transfer

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/wI2L/jsondiff"

	"github.com/aalvaropc/attendpay/internal/domain"
	"github.com/aalvaropc/attendpay/internal/ports"
)

// State is the part of the repository the gateway needs.
type State interface {
	Snapshot() domain.Snapshot
	Replace(s domain.Snapshot) error
}

type Gateway struct {
	state State
	store ports.BlobStore
	log   *slog.Logger
	now   func() time.Time
}

type Option func(*Gateway)

func WithLogger(l *slog.Logger) Option {
	return func(g *Gateway) {
		if l != nil {
			g.log = l
		}
	}
}

// WithNow is useful for tests.
func WithNow(now func() time.Time) Option {
	return func(g *Gateway) {
		if now != nil {
			g.now = now
		}
	}
}

func New(state State, store ports.BlobStore, opts ...Option) *Gateway {
	g := &Gateway{
		state: state,
		store: store,
		log:   slog.New(slog.NewJSONHandler(io.Discard, nil)),
		now:   time.Now,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// ImportSummary describes a staged document.
type ImportSummary struct {
	Employees         int
	AttendanceRecords int
	SalaryReports     int
	// Duplicates counts attendance records sharing an (employee, date) pair.
	// Activation keeps the last of each.
	Duplicates int
}

func summarize(s domain.Snapshot) ImportSummary {
	seen := make(map[domain.AttendanceKey]bool, len(s.AttendanceRecords))
	dups := 0
	for _, rec := range s.AttendanceRecords {
		if seen[rec.Key()] {
			dups++
			continue
		}
		seen[rec.Key()] = true
	}
	return ImportSummary{
		Employees:         len(s.Employees),
		AttendanceRecords: len(s.AttendanceRecords),
		SalaryReports:     len(s.SalaryReports),
		Duplicates:        dups,
	}
}

// ExportFileName is the name of the export written on the given day.
func ExportFileName(t time.Time) string {
	return fmt.Sprintf("attendpay-export-%s.json", t.Format("2006-01-02"))
}

// Export writes the live state as one pretty-printed JSON document.
func (g *Gateway) Export(w io.Writer) error {
	b, err := marshalSnapshot(g.state.Snapshot())
	if err != nil {
		return &domain.OpError{Op: "transfer.export", Kind: domain.KindStorage, Err: err}
	}
	if _, err := w.Write(b); err != nil {
		return &domain.OpError{Op: "transfer.export", Kind: domain.KindStorage, Err: err}
	}
	return nil
}

// ExportToDir writes the export into dir and returns the file path.
func (g *Gateway) ExportToDir(dir string) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", &domain.OpError{Op: "transfer.export.mkdir", Kind: domain.KindStorage, Path: dir, Err: err}
	}

	path := filepath.Join(dir, ExportFileName(g.now()))
	var buf bytes.Buffer
	if err := g.Export(&buf); err != nil {
		return "", err
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return "", &domain.OpError{Op: "transfer.export.write", Kind: domain.KindStorage, Path: path, Err: err}
	}

	g.log.Info("transfer.export.written", "path", path, "bytes", buf.Len())
	return path, nil
}

// Import parses a document and stages it. Nothing live changes until Activate.
// A malformed document leaves both the live state and any previously staged
// document untouched.
func (g *Gateway) Import(r io.Reader) (ImportSummary, error) {
	s, err := decodeSnapshot(r)
	if err != nil {
		g.log.Warn("transfer.import.rejected", "err", err)
		return ImportSummary{}, err
	}

	if err := g.store.Write(domain.KeyStagedImport, s); err != nil {
		return ImportSummary{}, err
	}

	sum := summarize(s)
	g.log.Info("transfer.import.staged",
		"employees", sum.Employees,
		"attendance_records", sum.AttendanceRecords,
		"salary_reports", sum.SalaryReports,
		"duplicates", sum.Duplicates,
	)
	return sum, nil
}

// Staged returns the staged document, if any.
func (g *Gateway) Staged() (domain.Snapshot, bool, error) {
	var s domain.Snapshot
	found, err := g.store.Read(domain.KeyStagedImport, &s)
	if err != nil || !found {
		return domain.Snapshot{}, false, err
	}
	return s.Normalize(), true, nil
}

// Diff returns the RFC 6902 patch that turns the live state into the staged one.
func (g *Gateway) Diff() (jsondiff.Patch, error) {
	staged, ok, err := g.Staged()
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, errNothingStaged()
	}

	live, err := json.Marshal(g.state.Snapshot())
	if err != nil {
		return nil, &domain.OpError{Op: "transfer.diff", Kind: domain.KindStorage, Err: err}
	}
	next, err := json.Marshal(staged)
	if err != nil {
		return nil, &domain.OpError{Op: "transfer.diff", Kind: domain.KindStorage, Err: err}
	}

	patch, err := jsondiff.CompareJSON(live, next)
	if err != nil {
		return nil, &domain.OpError{Op: "transfer.diff", Kind: domain.KindCorrupt, Err: err}
	}
	return patch, nil
}

// Activate replaces the live state with the staged document and clears the stage.
func (g *Gateway) Activate() (ImportSummary, error) {
	staged, ok, err := g.Staged()
	if err != nil {
		return ImportSummary{}, err
	}
	if !ok {
		return ImportSummary{}, errNothingStaged()
	}

	if err := g.state.Replace(staged); err != nil {
		return ImportSummary{}, err
	}
	if err := g.store.Delete(domain.KeyStagedImport); err != nil {
		g.log.Warn("transfer.activate.clear_failed", "err", err)
	}

	sum := summarize(staged)
	g.log.Info("transfer.activated", "employees", sum.Employees, "attendance_records", sum.AttendanceRecords)
	return sum, nil
}

// Discard drops the staged document. It reports whether one existed.
func (g *Gateway) Discard() (bool, error) {
	_, ok, err := g.Staged()
	if err != nil && !domain.IsKind(err, domain.KindCorrupt) {
		return false, err
	}
	if !ok && err == nil {
		return false, nil
	}
	if err := g.store.Delete(domain.KeyStagedImport); err != nil {
		return false, err
	}
	g.log.Info("transfer.discarded")
	return true, nil
}

func errNothingStaged() error {
	return &domain.OpError{
		Op:   "transfer.staged",
		Kind: domain.KindNotFound,
		Path: domain.KeyStagedImport,
		Err:  fmt.Errorf("%w: no staged import", domain.ErrNotFound),
	}
}

func marshalSnapshot(s domain.Snapshot) ([]byte, error) {
	b, err := json.MarshalIndent(s.Normalize(), "", "  ")
	if err != nil {
		return nil, err
	}
	return append(b, '\n'), nil
}

// decodeSnapshot accepts a JSON object carrying any subset of the four keys.
// Missing keys decode as empty. Anything else is an invalid document.
func decodeSnapshot(r io.Reader) (domain.Snapshot, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return domain.Snapshot{}, invalidDocument(err)
	}

	var probe map[string]json.RawMessage
	if err := json.Unmarshal(raw, &probe); err != nil || probe == nil {
		if err == nil {
			err = errors.New("document must be a JSON object")
		}
		return domain.Snapshot{}, invalidDocument(err)
	}

	// A missing userProfile keeps the defaults of a fresh installation.
	s := domain.Snapshot{UserProfile: domain.DefaultUserProfile()}
	if err := json.Unmarshal(raw, &s); err != nil {
		return domain.Snapshot{}, invalidDocument(err)
	}
	if err := validate(s); err != nil {
		return domain.Snapshot{}, invalidDocument(err)
	}
	return s.Normalize(), nil
}

func validate(s domain.Snapshot) error {
	var errs []error
	empIDs := make(map[string]int, len(s.Employees))
	for i, e := range s.Employees {
		if e.ID == "" {
			errs = append(errs, fmt.Errorf("employees[%d]: missing id", i))
			continue
		}
		if j, dup := empIDs[e.ID]; dup {
			errs = append(errs, fmt.Errorf("employees[%d]: id %q already used by employees[%d]", i, e.ID, j))
			continue
		}
		empIDs[e.ID] = i
	}
	recIDs := make(map[string]int, len(s.AttendanceRecords))
	for i, rec := range s.AttendanceRecords {
		if rec.ID == "" {
			errs = append(errs, fmt.Errorf("attendanceRecords[%d]: missing id", i))
		} else if j, dup := recIDs[rec.ID]; dup {
			errs = append(errs, fmt.Errorf("attendanceRecords[%d]: id %q already used by attendanceRecords[%d]", i, rec.ID, j))
		} else {
			recIDs[rec.ID] = i
		}
		if rec.EmployeeID == "" {
			errs = append(errs, fmt.Errorf("attendanceRecords[%d]: missing employeeId", i))
		}
		if rec.Date.IsZero() {
			errs = append(errs, fmt.Errorf("attendanceRecords[%d]: missing date", i))
		}
	}
	return errors.Join(errs...)
}

func invalidDocument(err error) error {
	return &domain.OpError{
		Op:   "transfer.import",
		Kind: domain.KindInvalidDocument,
		Err:  fmt.Errorf("%w: %v", domain.ErrInvalidDocument, err),
	}
}
