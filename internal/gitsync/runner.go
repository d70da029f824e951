package gitsync

import (
	"bytes"
	"context"
	"os/exec"
	"strconv"
	"strings"
	"time"
)

// DefaultTimeout bounds a single git command. Network operations
// (push, pull) dominate; anything slower than this is stuck.
const DefaultTimeout = 60 * time.Second

// Result captures one git command execution.
type Result struct {
	// Cmd is the rendered command line, for transcripts and errors.
	Cmd string

	// ExitCode is the process exit status, or -1 when the process
	// could not be started.
	ExitCode int

	// Stdout and Stderr are captured separately so callers can parse
	// stdout while still surfacing diagnostics.
	Stdout string
	Stderr string

	// Err is set only when the command never ran (binary missing,
	// context canceled). A non-zero exit is not an Err.
	Err error
}

// OK reports whether the command ran and exited zero.
func (r Result) OK() bool {
	return r.Err == nil && r.ExitCode == 0
}

// CombinedOutput joins the trimmed stdout and stderr.
func (r Result) CombinedOutput() string {
	stdout := strings.TrimSpace(r.Stdout)
	stderr := strings.TrimSpace(r.Stderr)
	switch {
	case stdout == "":
		return stderr
	case stderr == "":
		return stdout
	}
	return stdout + "\n" + stderr
}

// Runner executes git commands. The production implementation shells
// out to the git binary; tests substitute a scripted fake.
type Runner interface {
	// Run executes git with the given argument vector, with the
	// working directory set to dir. It never returns an error for a
	// non-zero exit; inspect the Result.
	Run(ctx context.Context, dir string, args ...string) Result
}

// ExecRunner runs git commands via os/exec.
type ExecRunner struct {
	// Bin is the git binary to invoke. Empty means "git" from PATH.
	Bin string

	// Timeout bounds each command. Zero means DefaultTimeout.
	Timeout time.Duration
}

func (e *ExecRunner) bin() string {
	if e.Bin != "" {
		return e.Bin
	}
	return "git"
}

// Run executes one git command, capturing stdout and stderr
// separately.
func (e *ExecRunner) Run(ctx context.Context, dir string, args ...string) Result {
	timeout := e.Timeout
	if timeout == 0 {
		timeout = DefaultTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, e.bin(), args...)
	cmd.Dir = dir

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	res := Result{Cmd: commandLine(e.bin(), args)}
	err := cmd.Run()
	res.Stdout = stdout.String()
	res.Stderr = stderr.String()

	if err != nil {
		if exitErr, ok := err.(*exec.ExitError); ok {
			res.ExitCode = exitErr.ExitCode()
		} else {
			res.ExitCode = -1
			res.Err = err
		}
	}
	return res
}

// commandLine renders an argument vector for display. Arguments with
// whitespace are quoted so transcripts stay unambiguous; the actual
// invocation never passes through a shell.
func commandLine(bin string, args []string) string {
	var b strings.Builder
	b.WriteString(bin)
	for _, arg := range args {
		b.WriteByte(' ')
		if arg == "" || strings.ContainsAny(arg, " \t\n\"") {
			b.WriteString(strconv.Quote(arg))
		} else {
			b.WriteString(arg)
		}
	}
	return b.String()
}
