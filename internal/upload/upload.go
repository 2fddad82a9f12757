// Package upload stores contract files and expense receipts on disk.
package upload

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

var (
	ErrEmpty    = errors.New("file is empty")
	ErrTooLarge = errors.New("file is too large")
	ErrBadName  = errors.New("invalid file name")
)

type Store struct {
	dir      string
	maxBytes int64
}

func New(dir string, maxBytes int64) *Store {
	return &Store{dir: dir, maxBytes: maxBytes}
}

func (s *Store) MaxBytes() int64 {
	return s.maxBytes
}

// Save writes r under a fresh uuid name that keeps the extension of
// original, and returns the stored name.
func (s *Store) Save(original string, r io.Reader, size int64) (string, error) {
	if size == 0 {
		return "", ErrEmpty
	}
	if size > s.maxBytes {
		return "", ErrTooLarge
	}
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return "", fmt.Errorf("create upload dir: %w", err)
	}

	name := uuid.NewString() + strings.ToLower(filepath.Ext(original))
	path := filepath.Join(s.dir, name)
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return "", fmt.Errorf("create %s: %w", name, err)
	}

	// the declared size may lie, cap what is actually read
	n, err := io.Copy(f, io.LimitReader(r, s.maxBytes+1))
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	switch {
	case err != nil:
		_ = os.Remove(path)
		return "", fmt.Errorf("write %s: %w", name, err)
	case n == 0:
		_ = os.Remove(path)
		return "", ErrEmpty
	case n > s.maxBytes:
		_ = os.Remove(path)
		return "", ErrTooLarge
	}
	return name, nil
}

// Path resolves a stored name. Names that could leave the upload directory
// are rejected.
func (s *Store) Path(name string) (string, error) {
	if name == "" || name != filepath.Base(name) || strings.HasPrefix(name, ".") {
		return "", ErrBadName
	}
	return filepath.Join(s.dir, name), nil
}

// Remove deletes a stored file, ignoring files that are already gone.
func (s *Store) Remove(name string) error {
	path, err := s.Path(name)
	if err != nil {
		return err
	}
	if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return nil
}
