// Package fsworkspace lays out an attendpay workspace on disk.
package fsworkspace

import (
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/aalvaropc/attendpay/internal/domain"
	"github.com/aalvaropc/attendpay/internal/infra/logger"
	"github.com/aalvaropc/attendpay/internal/ports"
)

type Initializer struct{}

func NewInitializer() *Initializer {
	return &Initializer{}
}

var _ ports.WorkspaceInitializer = (*Initializer)(nil)

// Init creates the data, exports and log directories, the .gitignore entries and
// attendpay.yaml. Existing files are kept unless force is set.
func (i *Initializer) Init(spec domain.WorkspaceSpec, force bool) error {
	root := filepath.Clean(spec.Root)

	cfg := spec.Config
	def := domain.DefaultConfig()
	if cfg.Paths.DataDir == "" {
		cfg.Paths.DataDir = def.Paths.DataDir
	}
	if cfg.Paths.ExportsDir == "" {
		cfg.Paths.ExportsDir = def.Paths.ExportsDir
	}

	dirs := []string{
		under(root, cfg.Paths.DataDir),
		under(root, cfg.Paths.ExportsDir),
		filepath.Join(root, logger.DirName, "logs"),
	}

	for _, d := range dirs {
		if err := os.MkdirAll(d, 0o755); err != nil {
			return &domain.OpError{Op: "fsworkspace.init.mkdir", Kind: domain.KindStorage, Path: d, Err: err}
		}
	}

	if err := ensureGitignore(root, gitignoreEntries(cfg)); err != nil {
		return &domain.OpError{Op: "fsworkspace.init.gitignore", Kind: domain.KindStorage, Path: root, Err: err}
	}

	return fs.WalkDir(templatesFS, "templates", func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}

		rel := strings.TrimPrefix(p, "templates/")
		dst := filepath.Join(root, rel)

		if !force {
			if _, statErr := os.Stat(dst); statErr == nil {
				return nil
			}
		}

		b, err := fs.ReadFile(templatesFS, p)
		if err != nil {
			return err
		}

		if err := os.WriteFile(dst, b, 0o644); err != nil {
			return &domain.OpError{Op: "fsworkspace.init.template", Kind: domain.KindStorage, Path: dst, Err: err}
		}
		return nil
	})
}

func under(root, p string) string {
	if filepath.IsAbs(p) {
		return filepath.Clean(p)
	}
	return filepath.Join(root, p)
}

// gitignoreEntries keeps personal data and exports out of version control.
// Absolute directories live outside the workspace and need no entry.
func gitignoreEntries(cfg domain.Config) []string {
	entries := []string{logger.DirName + "/"}
	for _, p := range []string{cfg.Paths.DataDir, cfg.Paths.ExportsDir} {
		if filepath.IsAbs(p) {
			continue
		}
		entries = append(entries, filepath.ToSlash(filepath.Clean(p))+"/")
	}
	return entries
}

func ensureGitignore(root string, entries []string) error {
	const header = "# attendpay"

	path := filepath.Join(root, ".gitignore")
	b, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			lines := append([]string{header}, entries...)
			lines = append(lines, "")
			return os.WriteFile(path, []byte(strings.Join(lines, "\n")), 0o644)
		}
		return err
	}

	existing := string(b)
	present := map[string]bool{}
	for _, line := range strings.Split(existing, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}
		present[trimmed] = true
	}

	var missing []string
	for _, e := range entries {
		if !present[e] {
			missing = append(missing, e)
		}
	}
	if len(missing) == 0 {
		return nil
	}

	var out strings.Builder
	out.Grow(len(existing) + 64)

	out.WriteString(existing)
	if existing != "" && !strings.HasSuffix(existing, "\n") {
		out.WriteByte('\n')
	}
	out.WriteByte('\n')
	if !present[header] {
		out.WriteString(header)
		out.WriteByte('\n')
	}
	for _, e := range missing {
		out.WriteString(e)
		out.WriteByte('\n')
	}

	return os.WriteFile(path, []byte(out.String()), 0o644)
}
