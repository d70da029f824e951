// Package gitsync backs up and restores the data directory through a
// git remote by driving the system git binary.
//
// Git is always invoked as an argument vector with the working
// directory pinned to the data directory; no shell is involved, so
// commit messages and URLs need no quoting or escaping.
//
// # Operations
//
// The Syncer exposes four operations, each a fixed subcommand sequence
// with fallback variants for older git versions and first-time pushes:
//
//   - Init: create the repository and configure the origin remote
//   - Push: stage everything, commit, push (with -u fallback)
//   - Pull: pull from origin (with --allow-unrelated-histories fallback)
//   - Status: branch, remote, and working tree summary
//
// Every operation returns a Report whose transcript accumulates the
// output of each git command in order, so callers can show the user
// exactly what happened:
//
//	report, err := syncer.Push(ctx, "")
//	if errors.Is(err, gitsync.ErrRemoteNotConfigured) {
//	    // prompt for a remote URL
//	}
//	fmt.Println(report.Transcript)
//
// # Configuration
//
// Remote URL and branch persist in a small JSON cache next to the data
// directory, deliberately outside it so the cache itself is never
// committed. Loading the cache never fails: a missing or unreadable
// file yields defaults.
package gitsync
