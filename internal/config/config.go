// Package config loads application configuration.
//
// Sources are layered: built-in defaults, then an optional YAML file
// (compass.yaml in the working directory, or the file given
// explicitly), then COMPASS_* environment variables. A .env file in
// the working directory is loaded into the environment first, so it
// participates through the environment layer.
package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config is the resolved application configuration.
type Config struct {
	// BaseDir anchors all data paths. The data directory, solutions,
	// and the sync config cache all live under it.
	BaseDir string `mapstructure:"base_dir"`

	// ListenAddr is the HTTP listen address for compass serve.
	ListenAddr string `mapstructure:"listen_addr"`

	// FrontendDir holds static frontend assets, served when present.
	FrontendDir string `mapstructure:"frontend_dir"`

	Log Log `mapstructure:"log"`
}

// Log configures the logger.
type Log struct {
	Level string `mapstructure:"level"`

	// File switches to JSON output in a rotated file. Empty logs to
	// stderr.
	File       string `mapstructure:"file"`
	MaxSizeMB  int    `mapstructure:"max_size_mb"`
	MaxBackups int    `mapstructure:"max_backups"`
	MaxAgeDays int    `mapstructure:"max_age_days"`
}

// Load resolves the configuration. A non-empty file must exist and
// parse; with an empty file, a missing compass.yaml is fine.
func Load(file string) (*Config, error) {
	// .env is optional; absence is the normal case
	_ = godotenv.Load()

	v := viper.New()
	v.SetDefault("base_dir", ".")
	v.SetDefault("listen_addr", ":8000")
	v.SetDefault("frontend_dir", "frontend")
	v.SetDefault("log.level", "info")
	// every key needs a default or AutomaticEnv cannot see it
	v.SetDefault("log.file", "")
	v.SetDefault("log.max_size_mb", 0)
	v.SetDefault("log.max_backups", 0)
	v.SetDefault("log.max_age_days", 0)

	v.SetEnvPrefix("COMPASS")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if file != "" {
		v.SetConfigFile(file)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", file, err)
		}
	} else {
		v.SetConfigName("compass")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("failed to read config file: %w", err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	return &cfg, nil
}

// DataDir is the synced data directory.
func (c *Config) DataDir() string {
	return filepath.Join(c.BaseDir, "data")
}

// ProblemsFile is the problems container path.
func (c *Config) ProblemsFile() string {
	return filepath.Join(c.DataDir(), "problems.json")
}

// ContestsFile is the contests container path.
func (c *Config) ContestsFile() string {
	return filepath.Join(c.DataDir(), "contests.json")
}

// SolutionsDir holds the per-problem solution side files.
func (c *Config) SolutionsDir() string {
	return filepath.Join(c.DataDir(), "solutions")
}

// SyncConfigFile is the sync config cache. It sits outside DataDir so
// a push never commits it.
func (c *Config) SyncConfigFile() string {
	return filepath.Join(c.BaseDir, ".git_config.json")
}
