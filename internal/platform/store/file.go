package store

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"
)

// FileStore keeps a collection in a single JSON file.
type FileStore struct {
	path   string
	logger zerolog.Logger
	now    func() time.Time
	// pinned is set when a malformed file could not be moved aside.
	pinned bool
}

// NewFileStore returns a store for path. The parent directory is created on
// the first Save.
func NewFileStore(path string, logger zerolog.Logger) *FileStore {
	return &FileStore{
		path:   path,
		logger: logger.With().Str("path", path).Logger(),
		now:    time.Now,
	}
}

// Path returns the backing file path.
func (s *FileStore) Path() string {
	return s.path
}

// Load reads the collection. A file that cannot be parsed is renamed aside
// as <path>.corrupt-<timestamp> before ErrMalformed is returned, so the
// next Save never overwrites it.
func (s *FileStore) Load(_ context.Context) ([]Document, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, ErrNoDocument
	}
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", s.path, err)
	}

	docs, err := Decode(data)
	if err != nil {
		backup := fmt.Sprintf("%s.corrupt-%s", s.path, s.now().Format("20060102150405"))
		malformed := fmt.Errorf("%w: %s: %v", ErrMalformed, s.path, err)
		if rerr := os.Rename(s.path, backup); rerr != nil {
			s.pinned = true
			return nil, errors.Join(malformed, fmt.Errorf("%w: %v", ErrBackupFailed, rerr))
		}
		s.logger.Warn().Str("backup", backup).Msg("malformed document moved aside")
		return nil, malformed
	}
	return docs, nil
}

// Save writes the collection to a temporary file next to the target and
// renames it into place.
func (s *FileStore) Save(_ context.Context, docs []Document) error {
	if s.pinned {
		return fmt.Errorf("save %s: %w", s.path, ErrBackupFailed)
	}
	data, err := Encode(docs)
	if err != nil {
		return err
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create directory %s: %w", dir, err)
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(s.path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpName := tmp.Name()
	cleanup := func() { _ = os.Remove(tmpName) }

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		cleanup()
		return fmt.Errorf("write %s: %w", tmpName, err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		cleanup()
		return fmt.Errorf("sync %s: %w", tmpName, err)
	}
	if err := tmp.Close(); err != nil {
		cleanup()
		return fmt.Errorf("close %s: %w", tmpName, err)
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		cleanup()
		return fmt.Errorf("replace %s: %w", s.path, err)
	}
	return nil
}
