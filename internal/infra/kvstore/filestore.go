package kvstore

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/aalvaropc/attendpay/internal/domain"
	"github.com/aalvaropc/attendpay/internal/ports"
)

const fileExt = ".json"

// FileStore keeps one JSON file per key under a directory.
type FileStore struct {
	dir string
	log *slog.Logger
}

type Option func(*FileStore)

func WithLogger(l *slog.Logger) Option {
	return func(s *FileStore) {
		if l != nil {
			s.log = l
		}
	}
}

func NewFileStore(dir string, opts ...Option) *FileStore {
	s := &FileStore{
		dir: filepath.Clean(dir),
		log: slog.New(slog.NewJSONHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

var _ ports.BlobStore = (*FileStore)(nil)

func (s *FileStore) Dir() string { return s.dir }

func (s *FileStore) Write(key string, value any) error {
	path, err := s.pathFor(key)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return &domain.OpError{
			Op:   "kvstore.mkdir",
			Kind: domain.KindStorage,
			Path: s.dir,
			Err:  err,
		}
	}

	b, err := json.MarshalIndent(value, "", "  ")
	if err != nil {
		return &domain.OpError{
			Op:   "kvstore.marshal",
			Kind: domain.KindStorage,
			Path: path,
			Err:  err,
		}
	}

	// Write to a temp file then rename, so readers see either the old or the new value.
	tmp := path + ".tmp"
	if err := writeFileSync(tmp, b, 0o600); err != nil {
		_ = os.Remove(tmp)
		return &domain.OpError{
			Op:   "kvstore.write",
			Kind: domain.KindStorage,
			Path: tmp,
			Err:  err,
		}
	}
	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return &domain.OpError{
			Op:   "kvstore.rename",
			Kind: domain.KindStorage,
			Path: path,
			Err:  err,
		}
	}

	s.log.Debug("kvstore.write", "key", key, "bytes", len(b))
	return nil
}

func (s *FileStore) Read(key string, dst any) (bool, error) {
	path, err := s.pathFor(key)
	if err != nil {
		return false, err
	}

	b, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return false, nil
		}
		return false, &domain.OpError{
			Op:   "kvstore.read",
			Kind: domain.KindStorage,
			Path: path,
			Err:  err,
		}
	}

	if err := json.Unmarshal(b, dst); err != nil {
		s.log.Warn("kvstore.read.corrupt", "key", key, "path", path, "err", err)
		return false, &domain.OpError{
			Op:   "kvstore.read",
			Kind: domain.KindCorrupt,
			Path: path,
			Err:  fmt.Errorf("%w: %v", domain.ErrCorrupt, err),
		}
	}
	return true, nil
}

func (s *FileStore) Delete(key string) error {
	path, err := s.pathFor(key)
	if err != nil {
		return err
	}
	if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return &domain.OpError{
			Op:   "kvstore.delete",
			Kind: domain.KindStorage,
			Path: path,
			Err:  err,
		}
	}
	return nil
}

// pathFor maps a key to its file, rejecting keys that would escape the directory.
func (s *FileStore) pathFor(key string) (string, error) {
	k := strings.TrimSpace(key)
	if k == "" || k != filepath.Base(k) || strings.HasPrefix(k, ".") {
		return "", &domain.OpError{
			Op:   "kvstore.key",
			Kind: domain.KindInvalidConfig,
			Path: key,
			Err:  fmt.Errorf("invalid key %q", key),
		}
	}
	return filepath.Join(s.dir, k+fileExt), nil
}

func writeFileSync(path string, b []byte, perm os.FileMode) error {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, perm)
	if err != nil {
		return err
	}
	if _, err := f.Write(b); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Sync(); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}
