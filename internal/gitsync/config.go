package gitsync

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/acmcompass/compass/internal/track"
)

// DefaultBranch is the branch used when none has been configured.
const DefaultBranch = "main"

// Config is the persisted sync configuration. It lives outside the
// synced data directory so it is never itself pushed.
type Config struct {
	// Remote is the origin URL, empty when not configured.
	Remote string `json:"remote"`

	// Branch is the branch pushed to and pulled from.
	Branch string `json:"branch"`

	// LastUpdated records the last successful save, for display only.
	LastUpdated string `json:"last_updated,omitempty"`
}

// LoadConfig reads the config cache at path. It never fails: a
// missing, unreadable, or corrupt cache yields defaults, since sync
// must keep working after the cache is lost.
func LoadConfig(path string) Config {
	defaults := Config{Branch: DefaultBranch}

	data, err := os.ReadFile(path)
	if err != nil {
		return defaults
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return defaults
	}

	cfg.Remote = strings.TrimSpace(cfg.Remote)
	cfg.Branch = strings.TrimSpace(cfg.Branch)
	if cfg.Branch == "" {
		cfg.Branch = DefaultBranch
	}
	return cfg
}

// SaveConfig normalizes and writes the config cache, stamping
// LastUpdated. It returns the config as written.
func SaveConfig(path string, cfg Config) (Config, error) {
	cfg.Remote = strings.TrimSpace(cfg.Remote)
	cfg.Branch = strings.TrimSpace(cfg.Branch)
	if cfg.Branch == "" {
		cfg.Branch = DefaultBranch
	}
	cfg.LastUpdated = track.NowStamp()

	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return cfg, fmt.Errorf("failed to encode sync config: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return cfg, fmt.Errorf("failed to create config directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return cfg, fmt.Errorf("failed to write sync config: %w", err)
	}
	return cfg, nil
}
