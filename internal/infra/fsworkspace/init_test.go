package fsworkspace

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/aalvaropc/attendpay/internal/domain"
)

func TestInitializer_Init_CreatesWorkspaceFiles(t *testing.T) {
	tmp := t.TempDir()

	i := NewInitializer()
	if err := i.Init(domain.WorkspaceSpec{Root: tmp}, false); err != nil {
		t.Fatalf("Init error: %v", err)
	}

	assertFileExists(t, filepath.Join(tmp, "attendpay.yaml"))
	assertFileExists(t, filepath.Join(tmp, ".gitignore"))
	assertDirExists(t, filepath.Join(tmp, "data"))
	assertDirExists(t, filepath.Join(tmp, "exports"))
	assertDirExists(t, filepath.Join(tmp, ".attendpay", "logs"))
}

func TestInitializer_Init_UsesConfiguredDirs(t *testing.T) {
	tmp := t.TempDir()

	cfg := domain.DefaultConfig()
	cfg.Paths.DataDir = "store"
	if err := NewInitializer().Init(domain.WorkspaceSpec{Root: tmp, Config: cfg}, false); err != nil {
		t.Fatalf("Init error: %v", err)
	}

	assertDirExists(t, filepath.Join(tmp, "store"))
	if _, err := os.Stat(filepath.Join(tmp, "data")); err == nil {
		t.Fatalf("default data dir should not be created")
	}
}

func TestInitializer_Init_SkipsExistingFilesUnlessForce(t *testing.T) {
	tmp := t.TempDir()

	cfgPath := filepath.Join(tmp, "attendpay.yaml")
	if err := os.WriteFile(cfgPath, []byte("custom\n"), 0o644); err != nil {
		t.Fatalf("write existing attendpay.yaml: %v", err)
	}

	i := NewInitializer()

	if err := i.Init(domain.WorkspaceSpec{Root: tmp}, false); err != nil {
		t.Fatalf("Init (force=false) error: %v", err)
	}

	b, err := os.ReadFile(cfgPath)
	if err != nil {
		t.Fatalf("read attendpay.yaml: %v", err)
	}
	if string(b) != "custom\n" {
		t.Fatalf("expected attendpay.yaml preserved, got %q", string(b))
	}

	if err := i.Init(domain.WorkspaceSpec{Root: tmp}, true); err != nil {
		t.Fatalf("Init (force=true) error: %v", err)
	}

	b, err = os.ReadFile(cfgPath)
	if err != nil {
		t.Fatalf("read attendpay.yaml after force: %v", err)
	}
	if !strings.Contains(string(b), "attendpay:") {
		t.Fatalf("expected attendpay.yaml overwritten with template, got %q", string(b))
	}
}

func assertFileExists(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("expected file %s, stat err=%v", path, err)
	}
}

func assertDirExists(t *testing.T, path string) {
	t.Helper()
	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("expected dir %s, stat err=%v", path, err)
	}
	if !info.IsDir() {
		t.Fatalf("expected %s to be a directory", path)
	}
}
