package session

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/systmms/cry/internal/logging"
)

const (
	// DirName is the directory under $HOME holding cry state.
	DirName  = ".ccli"
	fileName = "session"
)

// DefaultPath returns ~/.ccli/session, or $CRY_SESSION_FILE when set.
func DefaultPath() (string, error) {
	if p := os.Getenv("CRY_SESSION_FILE"); p != "" {
		return p, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("cannot determine home directory: %w", err)
	}
	return filepath.Join(home, DirName, fileName), nil
}

// FileStore keeps the session in a YAML file.
type FileStore struct {
	path   string
	logger *logging.Logger
}

// NewFileStore returns a store backed by path. logger may be nil.
func NewFileStore(path string, logger *logging.Logger) *FileStore {
	return &FileStore{path: path, logger: logger}
}

// Path returns the backing file.
func (f *FileStore) Path() string {
	return f.path
}

// Load reads the session file.
func (f *FileStore) Load() Session {
	data, err := os.ReadFile(f.path)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			f.logger.Debug("Ignoring unreadable session file %s: %v", f.path, err)
		}
		return Session{}
	}
	s, err := decode(data)
	if err != nil {
		f.logger.Debug("Ignoring corrupt session file %s: %v", f.path, err)
		return Session{}
	}
	return s
}

// Update merges u into the file contents.
func (f *FileStore) Update(u Update) error {
	return f.write(u.Apply(f.Load()))
}

// Clear deletes the session file.
func (f *FileStore) Clear() error {
	if err := os.Remove(f.path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("cannot remove session file %s: %w", f.path, err)
	}
	return nil
}

// write replaces the file through a rename so readers never see a partial
// session.
func (f *FileStore) write(s Session) error {
	data, err := encode(s)
	if err != nil {
		return fmt.Errorf("cannot marshal session: %w", err)
	}

	dir := filepath.Dir(f.path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("cannot create session directory %s: %w", dir, err)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(f.path)+".*")
	if err != nil {
		return fmt.Errorf("cannot create temporary session file: %w", err)
	}
	tmpName := tmp.Name()
	defer func() { _ = os.Remove(tmpName) }()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("cannot write session file: %w", err)
	}
	if err := tmp.Chmod(0600); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("cannot set session file permissions: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("cannot write session file: %w", err)
	}
	if err := os.Rename(tmpName, f.path); err != nil {
		return fmt.Errorf("cannot write session file %s: %w", f.path, err)
	}

	f.logger.Debug("Session written to %s", f.path)
	return nil
}

var _ Store = (*FileStore)(nil)
