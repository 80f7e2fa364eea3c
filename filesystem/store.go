// Package filesystem provides the operating system backend for stacks.
// It implements stacks.FileSystem on top of the os package, resolves owner
// and group names with os/user, and looks up content types by extension.
package filesystem

import (
	"fmt"
	"os"

	"github.com/sagarc03/stacks"
)

// Store implements stacks.FileSystem with direct system calls.
// Paths are used as given; the resolver rejects unsafe URIs before mapping
// them under its root.
type Store struct{}

// New creates a new Store.
func New() *Store {
	return &Store{}
}

// Stat returns raw stat fields for path, following symlinks.
func (s *Store) Stat(path string) (stacks.Stat, error) {
	fi, err := os.Stat(path)
	if err != nil {
		return stacks.Stat{}, err
	}
	return statFromInfo(fi), nil
}

// Lstat returns raw stat fields for path without following a final symlink.
func (s *Store) Lstat(path string) (stacks.Stat, error) {
	fi, err := os.Lstat(path)
	if err != nil {
		return stacks.Stat{}, err
	}
	return statFromInfo(fi), nil
}

// ReadDir returns the names in the directory at path.
func (s *Store) ReadDir(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() { _ = f.Close() }()

	names, err := f.Readdirnames(-1)
	if err != nil {
		return nil, fmt.Errorf("read dir %s: %w", path, err)
	}
	return names, nil
}

// Readlink returns the destination of the symlink at path.
func (s *Store) Readlink(path string) (string, error) {
	return os.Readlink(path)
}

// ReadFile reads the whole file at path.
func (s *Store) ReadFile(path string) ([]byte, error) {
	return os.ReadFile(path)
}
