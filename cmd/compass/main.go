package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/acmcompass/compass/internal/config"
	"github.com/acmcompass/compass/internal/logging"
)

var (
	flagBaseDir    string
	flagConfigFile string
)

var rootCmd = &cobra.Command{
	Use:   "compass",
	Short: "Practice tracker for competitive programming teams",
	Long: `compass keeps a team's practice log: problems with markdown
solution write-ups, contest results, and git-backed sharing of the
data directory.

All state lives in plain JSON containers under <base-dir>/data, so
the dataset can be inspected, diffed, and pushed like any other
repository.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagBaseDir, "base-dir", "",
		"base directory for data and config (default \".\")")
	rootCmd.PersistentFlags().StringVar(&flagConfigFile, "config", "",
		"config file (default compass.yaml in the working directory, if present)")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// loadConfig builds the effective configuration from file, environment,
// and flags. The --base-dir flag wins over both.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(flagConfigFile)
	if err != nil {
		return nil, err
	}
	if flagBaseDir != "" {
		cfg.BaseDir = flagBaseDir
	}
	return cfg, nil
}

func newLogger(cfg *config.Config) (*zap.Logger, error) {
	return logging.New(logging.Options{
		Level:      cfg.Log.Level,
		File:       cfg.Log.File,
		MaxSizeMB:  cfg.Log.MaxSizeMB,
		MaxBackups: cfg.Log.MaxBackups,
		MaxAgeDays: cfg.Log.MaxAgeDays,
	})
}
