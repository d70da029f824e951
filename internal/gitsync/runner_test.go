package gitsync

import (
	"context"
	"os/exec"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func requireGit(t *testing.T) {
	t.Helper()
	if _, err := exec.LookPath("git"); err != nil {
		t.Skip("git not installed, skipping")
	}
}

func TestExecRunner_Success(t *testing.T) {
	requireGit(t)

	r := &ExecRunner{}
	res := r.Run(context.Background(), t.TempDir(), "version")

	assert.True(t, res.OK())
	assert.Equal(t, 0, res.ExitCode)
	assert.Contains(t, res.Stdout, "git version")
	assert.NoError(t, res.Err)
	assert.Equal(t, "git version", res.Cmd)
}

func TestExecRunner_NonZeroExit(t *testing.T) {
	requireGit(t)

	// rev-parse outside any repository exits non-zero
	r := &ExecRunner{}
	res := r.Run(context.Background(), t.TempDir(), "rev-parse", "--is-inside-work-tree")

	assert.False(t, res.OK())
	assert.NotEqual(t, 0, res.ExitCode)
	assert.NoError(t, res.Err, "a non-zero exit is a result, not an error")
	assert.NotEmpty(t, res.Stderr)
}

func TestExecRunner_MissingBinary(t *testing.T) {
	r := &ExecRunner{Bin: "definitely-not-a-real-git-binary"}
	res := r.Run(context.Background(), t.TempDir(), "version")

	assert.False(t, res.OK())
	assert.Equal(t, -1, res.ExitCode)
	require.Error(t, res.Err)
}

func TestCommandLine(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{
			name: "plain args",
			args: []string{"push", "origin", "main"},
			want: "git push origin main",
		},
		{
			name: "message with spaces quoted",
			args: []string{"commit", "-m", "update data (2024-01-01 09:00:00)"},
			want: `git commit -m "update data (2024-01-01 09:00:00)"`,
		},
		{
			name: "empty arg quoted",
			args: []string{"commit", "-m", ""},
			want: `git commit -m ""`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, commandLine("git", tt.args))
		})
	}
}

func TestResult_CombinedOutput(t *testing.T) {
	tests := []struct {
		name string
		res  Result
		want string
	}{
		{name: "both", res: Result{Stdout: "out\n", Stderr: "err\n"}, want: "out\nerr"},
		{name: "stdout only", res: Result{Stdout: "out\n"}, want: "out"},
		{name: "stderr only", res: Result{Stderr: "err\n"}, want: "err"},
		{name: "neither", res: Result{}, want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.res.CombinedOutput())
		})
	}
}
