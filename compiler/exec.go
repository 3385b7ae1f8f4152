package compiler

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"
)

// DefaultPath is the executable ExecCompiler runs when no path is set; it
// is resolved against $PATH.
const DefaultPath = "luau-compile"

// ExecCompiler drives an external luau-compile binary. Source is passed on
// stdin and bytecode is read from stdout, so no temporary files are created
// and the subprocess never sees the output key or container.
type ExecCompiler struct {
	// Path is the executable to run. Empty means DefaultPath.
	Path string
}

// CompileError reports a failed compiler invocation, carrying whatever the
// compiler wrote to stderr.
type CompileError struct {
	Stderr string
	Err    error
}

func (e *CompileError) Error() string {
	if msg := strings.TrimSpace(e.Stderr); msg != "" {
		return fmt.Sprintf("compile failed: %s", msg)
	}
	return fmt.Sprintf("compile failed: %v", e.Err)
}

// Unwrap returns the process-level error.
func (e *CompileError) Unwrap() error {
	return e.Err
}

// Compile runs the external compiler on source. Cancelling ctx kills the
// subprocess. A non-zero exit yields a *CompileError with the compiler's
// stderr output.
func (c *ExecCompiler) Compile(ctx context.Context, source []byte, opts Options) ([]byte, error) {
	if err := opts.validate(); err != nil {
		return nil, err
	}

	path := c.Path
	if path == "" {
		path = DefaultPath
	}

	cmd := exec.CommandContext(ctx, path, opts.args()...)
	cmd.Stdin = bytes.NewReader(source)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return nil, &CompileError{Stderr: stderr.String(), Err: err}
	}
	return stdout.Bytes(), nil
}
