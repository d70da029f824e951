package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/acmcompass/compass/internal/gitsync"
)

var (
	flagSyncRemote  string
	flagSyncBranch  string
	flagSyncMessage string
)

var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Share the data directory through a git remote",
	Long: `Manage the git repository that backs the data directory.

The data directory is its own git repository, separate from any
repository the tracker itself lives in. Configuration (remote URL,
branch, last sync time) is cached in .git_config.json next to the
data directory and survives re-clones.`,
}

var syncInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Create the data repository and set its remote",
	Long: `Initialize the data directory as a git repository.

Creates the repository if it does not exist, points origin at the
given remote, and saves both to the sync config. Without --remote
the previously configured remote is kept.`,
	Run: func(cmd *cobra.Command, args []string) {
		syncer, err := newSyncer()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}

		report, err := syncer.Init(cmd.Context(), flagSyncRemote, flagSyncBranch)
		if report.Transcript != "" {
			fmt.Print(report.Transcript)
		}
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	},
}

var syncPushCmd = &cobra.Command{
	Use:   "push",
	Short: "Commit and push the data directory",
	Long: `Stage everything in the data directory, commit, and push to
origin. Without -m the commit message is a timestamp. When nothing
changed since the last push, no commit is created.`,
	Run: func(cmd *cobra.Command, args []string) {
		syncer, err := newSyncer()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}

		report, err := syncer.Push(cmd.Context(), flagSyncMessage)
		if report.Transcript != "" {
			fmt.Print(report.Transcript)
		}
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	},
}

var syncPullCmd = &cobra.Command{
	Use:   "pull",
	Short: "Pull the data directory from origin",
	Run: func(cmd *cobra.Command, args []string) {
		syncer, err := newSyncer()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}

		report, err := syncer.Pull(cmd.Context())
		if report.Transcript != "" {
			fmt.Print(report.Transcript)
		}
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	},
}

var syncStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show branch, remote, and working tree state",
	Run: func(cmd *cobra.Command, args []string) {
		syncer, err := newSyncer()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}

		report, err := syncer.Status(cmd.Context())
		if report.Transcript != "" {
			fmt.Print(report.Transcript)
		}
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	},
}

// newSyncer builds a Syncer over the configured data directory. CLI
// sync runs are one-shot, so no logger is attached; the transcript
// carries everything worth showing.
func newSyncer() (*gitsync.Syncer, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	return gitsync.New(cfg.DataDir(), cfg.SyncConfigFile(), nil, nil), nil
}

func init() {
	syncInitCmd.Flags().StringVar(&flagSyncRemote, "remote", "", "remote URL for origin")
	syncInitCmd.Flags().StringVar(&flagSyncBranch, "branch", "", "branch name (default \"main\")")
	syncPushCmd.Flags().StringVarP(&flagSyncMessage, "message", "m", "", "commit message")

	syncCmd.AddCommand(syncInitCmd)
	syncCmd.AddCommand(syncPushCmd)
	syncCmd.AddCommand(syncPullCmd)
	syncCmd.AddCommand(syncStatusCmd)
	rootCmd.AddCommand(syncCmd)
}
