package workspacefinder

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/caarlos0/env/v11"

	"github.com/aalvaropc/attendpay/internal/domain"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	root := filepath.Join(t.TempDir(), "ws")
	if err := os.MkdirAll(root, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(filepath.Join(root, ConfigFile), []byte(content), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	return root
}

func noEnv() env.Options {
	return env.Options{Environment: map[string]string{}}
}

func TestLoadConfig_AppliesDefaults(t *testing.T) {
	// Partial config (logging only)
	root := writeConfig(t, "attendpay:\n  logging:\n    debug: true\n")

	cfg, err := loadConfig(root, noEnv())
	if err != nil {
		t.Fatalf("LoadConfig error: %v", err)
	}

	if !cfg.Logging.Debug {
		t.Fatalf("expected debug=true")
	}
	if cfg.Paths.DataDir != "data" {
		t.Fatalf("expected data dir=data, got=%s", cfg.Paths.DataDir)
	}
	if cfg.Paths.ExportsDir != "exports" {
		t.Fatalf("expected exports dir=exports, got=%s", cfg.Paths.ExportsDir)
	}
	if cfg.Defaults.Role != domain.RoleAdmin {
		t.Fatalf("expected default role=admin, got=%s", cfg.Defaults.Role)
	}
}

func TestLoadConfig_ReadsAllFields(t *testing.T) {
	root := writeConfig(t, `attendpay:
  paths:
    data_dir: store
    exports_dir: out
  defaults:
    role: manager
  logging:
    debug: false
`)

	cfg, err := loadConfig(root, noEnv())
	if err != nil {
		t.Fatalf("LoadConfig error: %v", err)
	}
	if cfg.Paths.DataDir != "store" || cfg.Paths.ExportsDir != "out" {
		t.Fatalf("unexpected paths: %+v", cfg.Paths)
	}
	if cfg.Defaults.Role != domain.RoleManager {
		t.Fatalf("expected role=manager, got=%s", cfg.Defaults.Role)
	}
	if got := DataDir(root, cfg); got != filepath.Join(root, "store") {
		t.Fatalf("unexpected data dir %s", got)
	}
}

func TestLoadConfig_EnvOverridesFile(t *testing.T) {
	root := writeConfig(t, "attendpay:\n  paths:\n    data_dir: store\n")

	abs := filepath.Join(t.TempDir(), "elsewhere")
	cfg, err := loadConfig(root, env.Options{Environment: map[string]string{
		"ATTENDPAY_DATA_DIR": abs,
		"ATTENDPAY_DEBUG":    "true",
	}})
	if err != nil {
		t.Fatalf("LoadConfig error: %v", err)
	}
	if cfg.Paths.DataDir != abs {
		t.Fatalf("expected env data dir, got=%s", cfg.Paths.DataDir)
	}
	if cfg.Paths.ExportsDir != "exports" {
		t.Fatalf("expected exports dir untouched, got=%s", cfg.Paths.ExportsDir)
	}
	if !cfg.Logging.Debug {
		t.Fatalf("expected debug from env")
	}
	if got := DataDir(root, cfg); got != abs {
		t.Fatalf("absolute data dir must not be joined to root, got %s", got)
	}
}

func TestLoadConfig_Errors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		env     map[string]string
	}{
		{name: "bad yaml", content: "attendpay: [\n"},
		{name: "unknown role", content: "attendpay:\n  defaults:\n    role: owner\n"},
		{name: "same dirs", content: "attendpay:\n  paths:\n    data_dir: x\n    exports_dir: x\n"},
		{name: "same dirs after cleaning", content: "attendpay:\n  paths:\n    data_dir: data\n    exports_dir: ./data/\n"},
		{name: "bad env bool", content: "attendpay: {}\n", env: map[string]string{"ATTENDPAY_DEBUG": "maybe"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			root := writeConfig(t, tt.content)
			opts := noEnv()
			for k, v := range tt.env {
				opts.Environment[k] = v
			}
			_, err := loadConfig(root, opts)
			if err == nil {
				t.Fatalf("expected error")
			}
			if !domain.IsKind(err, domain.KindInvalidConfig) {
				t.Fatalf("expected KindInvalidConfig, got: %v", err)
			}
		})
	}
}

func TestLoadConfig_MissingFile(t *testing.T) {
	_, err := loadConfig(t.TempDir(), noEnv())
	if !domain.IsKind(err, domain.KindNotFound) {
		t.Fatalf("expected KindNotFound, got: %v", err)
	}
}
