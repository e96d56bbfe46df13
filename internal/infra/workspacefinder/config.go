package workspacefinder

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"

	"github.com/aalvaropc/attendpay/internal/domain"
)

// ConfigFile is the file that marks a workspace root.
const ConfigFile = "attendpay.yaml"

// LoadConfig loads attendpay.yaml from the workspace root, applies defaults and
// then ATTENDPAY_* environment overrides.
func LoadConfig(root string) (domain.Config, error) {
	return loadConfig(root, env.Options{})
}

func loadConfig(root string, envOpts env.Options) (domain.Config, error) {
	cfg := domain.DefaultConfig()

	path := filepath.Join(root, ConfigFile)
	b, err := os.ReadFile(path)
	if err != nil {
		return cfg, &domain.OpError{
			Op:   "workspacefinder.loadconfig",
			Kind: domain.KindNotFound,
			Path: path,
			Err:  err,
		}
	}

	var y yamlConfig
	if err := yaml.Unmarshal(b, &y); err != nil {
		return cfg, &domain.OpError{
			Op:   "workspacefinder.loadconfig",
			Kind: domain.KindInvalidConfig,
			Path: path,
			Err:  err,
		}
	}

	if y.Attendpay.Paths.DataDir != "" {
		cfg.Paths.DataDir = y.Attendpay.Paths.DataDir
	}
	if y.Attendpay.Paths.ExportsDir != "" {
		cfg.Paths.ExportsDir = y.Attendpay.Paths.ExportsDir
	}
	if y.Attendpay.Defaults.Role != "" {
		cfg.Defaults.Role = domain.Role(y.Attendpay.Defaults.Role)
	}
	if y.Attendpay.Logging.Debug != nil {
		cfg.Logging.Debug = *y.Attendpay.Logging.Debug
	}

	var o envOverrides
	if err := env.ParseWithOptions(&o, envOpts); err != nil {
		return cfg, &domain.OpError{
			Op:   "workspacefinder.loadconfig.env",
			Kind: domain.KindInvalidConfig,
			Err:  err,
		}
	}
	o.apply(&cfg)

	if err := validateConfig(cfg); err != nil {
		return cfg, &domain.OpError{
			Op:   "workspacefinder.loadconfig",
			Kind: domain.KindInvalidConfig,
			Path: path,
			Err:  fmt.Errorf("%w: %v", domain.ErrInvalidConfig, err),
		}
	}
	return cfg, nil
}

func validateConfig(cfg domain.Config) error {
	switch cfg.Defaults.Role {
	case domain.RoleAdmin, domain.RoleManager, domain.RoleUser:
	default:
		return fmt.Errorf("defaults.role must be admin, manager or user, got %q", cfg.Defaults.Role)
	}
	if filepath.Clean(cfg.Paths.DataDir) == filepath.Clean(cfg.Paths.ExportsDir) {
		return fmt.Errorf("paths.data_dir and paths.exports_dir must differ, both are %q", cfg.Paths.DataDir)
	}
	return nil
}

// DataDir resolves the data directory of the workspace at root.
func DataDir(root string, cfg domain.Config) string {
	return resolve(root, cfg.Paths.DataDir)
}

// ExportsDir resolves the exports directory of the workspace at root.
func ExportsDir(root string, cfg domain.Config) string {
	return resolve(root, cfg.Paths.ExportsDir)
}

func resolve(root, p string) string {
	if filepath.IsAbs(p) {
		return filepath.Clean(p)
	}
	return filepath.Join(root, p)
}

type yamlConfig struct {
	Attendpay struct {
		Paths struct {
			DataDir    string `yaml:"data_dir"`
			ExportsDir string `yaml:"exports_dir"`
		} `yaml:"paths"`

		Defaults struct {
			Role string `yaml:"role"`
		} `yaml:"defaults"`

		Logging struct {
			Debug *bool `yaml:"debug"`
		} `yaml:"logging"`
	} `yaml:"attendpay"`
}

// envOverrides holds optional overrides; nil means unset.
type envOverrides struct {
	DataDir    *string `env:"ATTENDPAY_DATA_DIR"`
	ExportsDir *string `env:"ATTENDPAY_EXPORTS_DIR"`
	Debug      *bool   `env:"ATTENDPAY_DEBUG"`
}

func (o envOverrides) apply(cfg *domain.Config) {
	if o.DataDir != nil && *o.DataDir != "" {
		cfg.Paths.DataDir = *o.DataDir
	}
	if o.ExportsDir != nil && *o.ExportsDir != "" {
		cfg.Paths.ExportsDir = *o.ExportsDir
	}
	if o.Debug != nil {
		cfg.Logging.Debug = *o.Debug
	}
}
