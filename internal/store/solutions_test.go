package store

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSolutionStore_RoundTrip(t *testing.T) {
	s := NewSolutionStore(filepath.Join(t.TempDir(), "solutions"))

	assert.False(t, s.Exists("p1"))

	markdown, err := s.Read("p1")
	require.NoError(t, err)
	assert.Empty(t, markdown)

	require.NoError(t, s.Put("p1", "# Two Sum\n\nUse a hash map."))
	assert.True(t, s.Exists("p1"))

	markdown, err = s.Read("p1")
	require.NoError(t, err)
	assert.Equal(t, "# Two Sum\n\nUse a hash map.", markdown)

	require.NoError(t, s.Delete("p1"))
	assert.False(t, s.Exists("p1"))
}

func TestSolutionStore_BlankPutDeletes(t *testing.T) {
	s := NewSolutionStore(filepath.Join(t.TempDir(), "solutions"))

	require.NoError(t, s.Put("p1", "# sol"))
	require.True(t, s.Exists("p1"))

	require.NoError(t, s.Put("p1", "   \n\t  "))
	assert.False(t, s.Exists("p1"))
}

func TestSolutionStore_DeleteMissing(t *testing.T) {
	s := NewSolutionStore(filepath.Join(t.TempDir(), "solutions"))
	assert.NoError(t, s.Delete("never-existed"))
}

func TestSolutionStore_RejectsUnsafeIDs(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "solutions")
	s := NewSolutionStore(dir)

	for _, id := range []string{"", "a/b", `a\b`, "..", "../secret"} {
		assert.Error(t, s.Put(id, "# sol"), "id %q", id)
		assert.False(t, s.Exists(id), "id %q", id)

		markdown, err := s.Read(id)
		assert.NoError(t, err, "id %q", id)
		assert.Empty(t, markdown, "id %q", id)
	}

	// nothing escaped outside the solutions dir
	entries, err := os.ReadDir(filepath.Dir(dir))
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestSolutionStore_FileLayout(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "solutions")
	s := NewSolutionStore(dir)

	require.NoError(t, s.Put("abc-123", "body"))

	data, err := os.ReadFile(filepath.Join(dir, "abc-123.md"))
	require.NoError(t, err)
	assert.Equal(t, "body", string(data))
}
