package gitsync

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/acmcompass/compass/internal/track"
)

func TestLoadConfig_Defaults(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{name: "missing file"},
		{name: "corrupt json", data: "{not json"},
		{name: "empty object", data: "{}"},
		{name: "blank fields", data: `{"remote": "  ", "branch": "  "}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "config.json")
			if tt.data != "" {
				require.NoError(t, os.WriteFile(path, []byte(tt.data), 0644))
			}

			cfg := LoadConfig(path)
			assert.Empty(t, cfg.Remote)
			assert.Equal(t, DefaultBranch, cfg.Branch)
		})
	}
}

func TestConfig_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.json")

	saved, err := SaveConfig(path, Config{
		Remote: " git@example.com:team/data.git ",
		Branch: "",
	})
	require.NoError(t, err)
	assert.Equal(t, "git@example.com:team/data.git", saved.Remote)
	assert.Equal(t, DefaultBranch, saved.Branch)

	stamp, err := time.Parse(track.StampLayout, saved.LastUpdated)
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().UTC(), stamp, time.Minute)

	loaded := LoadConfig(path)
	assert.Equal(t, saved, loaded)
}

func TestLoadConfig_UnknownKeysIgnored(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	data := `{"remote": "url", "branch": "work", "repo_url": "stale"}`
	require.NoError(t, os.WriteFile(path, []byte(data), 0644))

	cfg := LoadConfig(path)
	assert.Equal(t, "url", cfg.Remote)
	assert.Equal(t, "work", cfg.Branch)
}
