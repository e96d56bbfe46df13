package transfer

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aalvaropc/attendpay/internal/domain"
	"github.com/aalvaropc/attendpay/internal/infra/kvstore"
	"github.com/aalvaropc/attendpay/internal/repository"
)

func seeded(t *testing.T) (*repository.Repository, *kvstore.MemStore) {
	t.Helper()
	store := kvstore.NewMemStore()
	repo := repository.New(store)
	require.NoError(t, repo.Load())

	e, err := repo.AddEmployee(domain.EmployeeInput{
		Name:        "Alice",
		Position:    "Dev",
		DailySalary: 120.5,
		JoiningDate: domain.NewDate(2023, time.March, 1),
	})
	require.NoError(t, err)

	notes := "late bus"
	_, err = repo.AddAttendanceRecord(domain.AttendanceInput{
		EmployeeID: e.ID,
		Date:       domain.NewDate(2024, time.January, 2),
		Status:     domain.StatusHalfDay,
		Notes:      &notes,
	})
	require.NoError(t, err)

	_, err = repo.GenerateSalaryReport(1, 2024)
	require.NoError(t, err)
	require.NoError(t, repo.UpdateUserProfile(domain.UserProfile{Name: "Op", Email: "op@x.io", Role: domain.RoleAdmin, Company: "ACME"}))
	return repo, store
}

func TestExport_PrettyDocumentWithAllKeys(t *testing.T) {
	store := kvstore.NewMemStore()
	repo := repository.New(store)
	require.NoError(t, repo.Load())
	g := New(repo, store)

	var buf bytes.Buffer
	require.NoError(t, g.Export(&buf))

	var doc map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(buf.Bytes(), &doc))
	for _, key := range []string{"employees", "attendanceRecords", "salaryReports", "userProfile"} {
		assert.Contains(t, doc, key)
	}
	assert.JSONEq(t, `[]`, string(doc["employees"]))
	assert.Contains(t, buf.String(), "\n  \"employees\"")
}

func TestExportImportActivate_RoundTrip(t *testing.T) {
	src, _ := seeded(t)
	var buf bytes.Buffer
	require.NoError(t, New(src, kvstore.NewMemStore()).Export(&buf))

	dstStore := kvstore.NewMemStore()
	dst := repository.New(dstStore)
	require.NoError(t, dst.Load())
	g := New(dst, dstStore)

	sum, err := g.Import(&buf)
	require.NoError(t, err)
	assert.Equal(t, ImportSummary{Employees: 1, AttendanceRecords: 1, SalaryReports: 1}, sum)
	assert.Empty(t, dst.Employees(), "import only stages")

	_, err = g.Activate()
	require.NoError(t, err)
	assert.Equal(t, src.Snapshot(), dst.Snapshot())

	_, ok, err := g.Staged()
	require.NoError(t, err)
	assert.False(t, ok, "activation clears the stage")

	// The activated state survives a reload.
	reloaded := repository.New(dstStore)
	require.NoError(t, reloaded.Load())
	assert.Equal(t, src.Snapshot(), reloaded.Snapshot())
}

func TestImport_MalformedLeavesStateUntouched(t *testing.T) {
	repo, store := seeded(t)
	g := New(repo, store)
	before := repo.Snapshot()

	_, err := g.Import(strings.NewReader(`{"employees":[{"id":"x"}]}`))
	require.NoError(t, err)
	staged, _, err := g.Staged()
	require.NoError(t, err)

	cases := map[string]string{
		"truncated":      `{"employees": [`,
		"array":          `[1,2,3]`,
		"null":           `null`,
		"wrong type":     `{"employees": "nope"}`,
		"bad date":       `{"attendanceRecords":[{"id":"r","employeeId":"e","date":"someday","status":"present"}]}`,
		"missing id":     `{"employees":[{"name":"No Id"}]}`,
		"missing date":   `{"attendanceRecords":[{"id":"r","employeeId":"e","status":"present"}]}`,
		"empty document": ``,
	}
	for name, doc := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := g.Import(strings.NewReader(doc))
			require.Error(t, err)
			assert.True(t, domain.IsKind(err, domain.KindInvalidDocument))
			assert.ErrorIs(t, err, domain.ErrInvalidDocument)

			assert.Equal(t, before, repo.Snapshot())
			still, ok, err := g.Staged()
			require.NoError(t, err)
			require.True(t, ok)
			assert.Equal(t, staged, still)
		})
	}
}

func TestImport_PartialDocumentDefaultsMissingKeys(t *testing.T) {
	store := kvstore.NewMemStore()
	repo := repository.New(store)
	require.NoError(t, repo.Load())
	g := New(repo, store)

	_, err := g.Import(strings.NewReader(`{"employees":[{"id":"e1","name":"Bo","dailySalary":80}],"extra":true}`))
	require.NoError(t, err)

	staged, ok, err := g.Staged()
	require.NoError(t, err)
	require.True(t, ok)
	assert.NotNil(t, staged.AttendanceRecords)
	assert.NotNil(t, staged.SalaryReports)
	assert.Equal(t, "Bo", staged.Employees[0].Name)
}

func TestImport_MissingProfileActivatesWithDefaults(t *testing.T) {
	repo, store := seeded(t)
	g := New(repo, store)

	_, err := g.Import(strings.NewReader(`{"employees":[]}`))
	require.NoError(t, err)
	_, err = g.Activate()
	require.NoError(t, err)

	assert.Equal(t, domain.DefaultUserProfile(), repo.UserProfile())
	assert.Equal(t, domain.RoleAdmin, repo.UserProfile().Role)
}

func TestImport_PartialProfileKeepsDefaultRole(t *testing.T) {
	store := kvstore.NewMemStore()
	repo := repository.New(store)
	require.NoError(t, repo.Load())
	g := New(repo, store)

	_, err := g.Import(strings.NewReader(`{"userProfile":{"name":"Ana","company":"ACME"}}`))
	require.NoError(t, err)
	_, err = g.Activate()
	require.NoError(t, err)

	p := repo.UserProfile()
	assert.Equal(t, "Ana", p.Name)
	assert.Equal(t, domain.RoleAdmin, p.Role)
}

func TestImport_RejectsDuplicateIDs(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{
			name: "employee id",
			doc: `{"employees":[
				{"id":"e1","name":"Alice","dailySalary":100},
				{"id":"e1","name":"Bob","dailySalary":50}
			]}`,
		},
		{
			name: "attendance record id",
			doc: `{"attendanceRecords":[
				{"id":"r1","employeeId":"e1","date":"2024-01-01","status":"present"},
				{"id":"r1","employeeId":"e2","date":"2024-01-02","status":"absent"}
			]}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, store := seeded(t)
			g := New(repo, store)
			before := repo.Snapshot()

			_, err := g.Import(strings.NewReader(tt.doc))
			require.Error(t, err)
			assert.True(t, domain.IsKind(err, domain.KindInvalidDocument))
			assert.Contains(t, err.Error(), "already used")

			_, ok, err := g.Staged()
			require.NoError(t, err)
			assert.False(t, ok, "a rejected document must not be staged")
			assert.Equal(t, before, repo.Snapshot())
		})
	}
}

func TestImport_CountsDuplicatesAndActivationCollapsesThem(t *testing.T) {
	store := kvstore.NewMemStore()
	repo := repository.New(store)
	require.NoError(t, repo.Load())
	g := New(repo, store)

	doc := `{"attendanceRecords":[
		{"id":"r1","employeeId":"e1","date":"2024-01-01","status":"absent"},
		{"id":"r2","employeeId":"e1","date":"2024-01-01","status":"present"}
	]}`
	sum, err := g.Import(strings.NewReader(doc))
	require.NoError(t, err)
	assert.Equal(t, 1, sum.Duplicates)

	_, err = g.Activate()
	require.NoError(t, err)
	recs := repo.AttendanceRecords()
	require.Len(t, recs, 1)
	assert.Equal(t, "r2", recs[0].ID)
}

func TestDiff_ShowsWhatActivationReplaces(t *testing.T) {
	repo, store := seeded(t)
	g := New(repo, store)

	_, err := g.Diff()
	require.Error(t, err)
	assert.True(t, domain.IsKind(err, domain.KindNotFound))

	snap := repo.Snapshot()
	snap.UserProfile.Company = "Globex"
	b, err := json.Marshal(snap)
	require.NoError(t, err)
	_, err = g.Import(bytes.NewReader(b))
	require.NoError(t, err)

	patch, err := g.Diff()
	require.NoError(t, err)
	require.Len(t, patch, 1)
	assert.Equal(t, "replace", patch[0].Type)
	assert.Equal(t, "/userProfile/company", patch[0].Path)
}

func TestActivate_NothingStaged(t *testing.T) {
	repo, store := seeded(t)
	g := New(repo, store)

	_, err := g.Activate()
	require.Error(t, err)
	assert.True(t, domain.IsKind(err, domain.KindNotFound))
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestDiscard(t *testing.T) {
	repo, store := seeded(t)
	g := New(repo, store)

	ok, err := g.Discard()
	require.NoError(t, err)
	assert.False(t, ok)

	_, err = g.Import(strings.NewReader(`{}`))
	require.NoError(t, err)

	ok, err = g.Discard()
	require.NoError(t, err)
	assert.True(t, ok)

	_, staged, err := g.Staged()
	require.NoError(t, err)
	assert.False(t, staged)
	assert.Len(t, repo.Employees(), 1)
}

func TestDiscard_RemovesCorruptStage(t *testing.T) {
	repo, store := seeded(t)
	store.SetRaw(domain.KeyStagedImport, []byte(`{"employees":`))
	g := New(repo, store)

	ok, err := g.Discard()
	require.NoError(t, err)
	assert.True(t, ok)
	_, present := store.Raw(domain.KeyStagedImport)
	assert.False(t, present)
}

func TestExportToDir_UsesDatedFileName(t *testing.T) {
	repo, store := seeded(t)
	fixed := time.Date(2024, time.February, 9, 15, 0, 0, 0, time.UTC)
	g := New(repo, store, WithNow(func() time.Time { return fixed }))

	dir := filepath.Join(t.TempDir(), "exports")
	path, err := g.ExportToDir(dir)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "attendpay-export-2024-02-09.json"), path)

	b, err := os.ReadFile(path)
	require.NoError(t, err)
	var s domain.Snapshot
	require.NoError(t, json.Unmarshal(b, &s))
	assert.Equal(t, repo.Snapshot(), s)
}
