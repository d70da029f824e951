package store

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

const emptyContainer = "[]"

// readContainer reads the container file, creating it with an empty
// collection the first time.
func readContainer(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err == nil {
		return data, nil
	}
	if !os.IsNotExist(err) {
		return nil, fmt.Errorf("failed to read container %s: %w", path, err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}
	if err := os.WriteFile(path, []byte(emptyContainer), 0644); err != nil {
		return nil, fmt.Errorf("failed to create container %s: %w", path, err)
	}
	return []byte(emptyContainer), nil
}

// writeContainer atomically replaces the container file via a temp file
// in the same directory, so a crash mid-write leaves the old container
// intact.
func writeContainer(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create data directory: %w", err)
	}
	tmpPath := path + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0644); err != nil {
		return fmt.Errorf("failed to write temp file: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("failed to rename temp file: %w", err)
	}
	return nil
}

// siblingPath swaps the container's extension for the given suffix,
// e.g. problems.json -> problems.backup.json.
func siblingPath(path, suffix string) string {
	return strings.TrimSuffix(path, filepath.Ext(path)) + suffix
}

// backupCorrupt preserves unparsable container bytes under a sibling
// backup name so nothing is silently discarded.
func backupCorrupt(path string, data []byte) (string, error) {
	backupPath := siblingPath(path, ".backup.json")
	if err := os.WriteFile(backupPath, data, 0644); err != nil {
		return "", fmt.Errorf("failed to back up corrupt container: %w", err)
	}
	return backupPath, nil
}
