package gitsync

import (
	"errors"
	"fmt"
)

// Errors returned by sync operations.
//
// These can be checked with errors.Is():
//
//	if errors.Is(err, gitsync.ErrRemoteNotConfigured) {
//	    // ask the user for a remote URL
//	}
var (
	// ErrRemoteNotConfigured is returned when a push or pull requires an
	// origin remote but none has been configured.
	ErrRemoteNotConfigured = errors.New("remote repository not configured")
)

// ToolError is returned when a git command that the operation depends
// on fails, either by exiting non-zero or by failing to start at all.
// The transcript in the accompanying Report carries the full output;
// ToolError keeps enough to log and classify.
type ToolError struct {
	// Step names the operation stage that failed, e.g. "commit".
	Step string

	// Cmd is the rendered command line.
	Cmd string

	// ExitCode is the git exit status, or -1 when git never ran.
	ExitCode int

	// Output is the combined stdout and stderr, or the spawn error.
	Output string
}

func (e *ToolError) Error() string {
	msg := fmt.Sprintf("%s failed: %s exited with status %d", e.Step, e.Cmd, e.ExitCode)
	if e.Output != "" {
		msg += ": " + e.Output
	}
	return msg
}

// toolErr builds a ToolError from a failed command result.
func toolErr(step string, res Result) *ToolError {
	output := res.CombinedOutput()
	if res.Err != nil {
		output = res.Err.Error()
	}
	return &ToolError{Step: step, Cmd: res.Cmd, ExitCode: res.ExitCode, Output: output}
}
