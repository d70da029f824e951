package gitsync

import (
	"fmt"
	"strings"
)

// transcript accumulates the output of a sync operation, one section
// per git command plus verdict lines, in execution order.
type transcript struct {
	b strings.Builder
}

// line appends one formatted line.
func (t *transcript) line(format string, args ...any) {
	fmt.Fprintf(&t.b, format+"\n", args...)
}

// raw appends command output verbatim, ensuring it ends with a
// newline.
func (t *transcript) raw(s string) {
	if s == "" {
		return
	}
	t.b.WriteString(s)
	if !strings.HasSuffix(s, "\n") {
		t.b.WriteByte('\n')
	}
}

// result appends a section for one command: header, exit status, then
// raw stdout and stderr.
func (t *transcript) result(res Result) {
	t.line("=== %s ===", res.Cmd)
	if res.Err != nil {
		t.line("error: %v", res.Err)
	} else {
		t.line("exit status %d", res.ExitCode)
	}
	t.raw(res.Stdout)
	if res.Stderr != "" {
		t.line("stderr:")
		t.raw(res.Stderr)
	}
}

func (t *transcript) String() string {
	return t.b.String()
}
