package store

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// SolutionStore manages per-problem markdown side files, one file per
// problem ID under a flat directory. Absence of a file means the
// problem has no solution; there is no empty-file state because blank
// writes delete instead.
type SolutionStore struct {
	dir string
}

// NewSolutionStore returns a store rooted at dir. The directory is
// created lazily on first write.
func NewSolutionStore(dir string) *SolutionStore {
	return &SolutionStore{dir: dir}
}

// path maps a problem ID to its side file, rejecting IDs that could
// escape the solutions directory.
func (s *SolutionStore) path(id string) (string, bool) {
	if id == "" || strings.ContainsAny(id, `/\`) || strings.Contains(id, "..") {
		return "", false
	}
	return filepath.Join(s.dir, id+".md"), true
}

// Exists reports whether a solution file is present for id.
func (s *SolutionStore) Exists(id string) bool {
	path, ok := s.path(id)
	if !ok {
		return false
	}
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

// Read returns the solution markdown for id, or "" when none exists.
func (s *SolutionStore) Read(id string) (string, error) {
	path, ok := s.path(id)
	if !ok {
		return "", nil
	}
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to read solution %s: %w", id, err)
	}
	return string(data), nil
}

// Put writes the solution markdown for id. Blank markdown (after
// trimming) deletes the file instead, so empty solutions never linger
// on disk.
func (s *SolutionStore) Put(id, markdown string) error {
	if strings.TrimSpace(markdown) == "" {
		return s.Delete(id)
	}
	path, ok := s.path(id)
	if !ok {
		return fmt.Errorf("invalid solution id %q", id)
	}
	if err := os.MkdirAll(s.dir, 0755); err != nil {
		return fmt.Errorf("failed to create solutions directory: %w", err)
	}
	if err := os.WriteFile(path, []byte(markdown), 0644); err != nil {
		return fmt.Errorf("failed to write solution %s: %w", id, err)
	}
	return nil
}

// Delete removes the solution file for id. Deleting a missing solution
// is not an error.
func (s *SolutionStore) Delete(id string) error {
	path, ok := s.path(id)
	if !ok {
		return nil
	}
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to delete solution %s: %w", id, err)
	}
	return nil
}
