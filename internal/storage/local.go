package storage

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// LocalStore keeps attachments as files under a single directory.
type LocalStore struct {
	dir string
}

// NewLocalStore returns a LocalStore rooted at dir, creating it if needed.
func NewLocalStore(dir string) (*LocalStore, error) {
	if dir == "" {
		return nil, errors.New("storage: upload directory not configured")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: create upload dir: %w", err)
	}
	return &LocalStore{dir: dir}, nil
}

// Save writes the upload under a derived unique name and returns that name.
func (s *LocalStore) Save(_ context.Context, up *Upload) (string, error) {
	if up == nil || len(up.Data) == 0 {
		return "", errors.New("storage: empty upload")
	}
	ref := newRef(up.Filename)
	path := filepath.Join(s.dir, ref)
	// O_EXCL: a name collision (never expected with UUID refs) fails rather
	// than overwriting.
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return "", fmt.Errorf("storage: save %s: %w", ref, err)
	}
	if _, err := f.Write(up.Data); err != nil {
		f.Close()
		os.Remove(path)
		return "", fmt.Errorf("storage: write %s: %w", ref, err)
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("storage: close %s: %w", ref, err)
	}
	return ref, nil
}

// Delete removes the file behind ref. A missing file, an empty ref, or a
// ref that escapes the store directory all succeed silently.
func (s *LocalStore) Delete(_ context.Context, ref string) error {
	if ref == "" {
		return nil
	}
	// Refs are bare filenames; reject anything path-like instead of
	// letting a crafted ref reach the filesystem.
	if ref != filepath.Base(ref) || strings.HasPrefix(ref, ".") {
		return nil
	}
	err := os.Remove(filepath.Join(s.dir, ref))
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("storage: delete %s: %w", ref, err)
	}
	return nil
}

// Path returns the absolute location of a stored ref, for serving files.
func (s *LocalStore) Path(ref string) string {
	return filepath.Join(s.dir, filepath.Base(ref))
}
