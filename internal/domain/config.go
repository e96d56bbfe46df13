package domain

// Config represents the attendpay workspace configuration loaded from attendpay.yaml.
type Config struct {
	Paths    PathsConfig
	Defaults DefaultsConfig
	Logging  LoggingConfig
}

type PathsConfig struct {
	DataDir    string
	ExportsDir string
}

type DefaultsConfig struct {
	Role Role
}

type LoggingConfig struct {
	Debug bool
}

// DefaultConfig provides sane defaults if attendpay.yaml is partially missing.
func DefaultConfig() Config {
	return Config{
		Paths: PathsConfig{
			DataDir:    "data",
			ExportsDir: "exports",
		},
		Defaults: DefaultsConfig{Role: RoleAdmin},
	}
}

// WorkspaceSpec describes a workspace to initialize.
type WorkspaceSpec struct {
	Root   string
	Config Config
}
