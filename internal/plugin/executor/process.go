package executor

import (
	"bytes"
	"context"
	"io"
	"os/exec"
)

// ProcessRunner defines an interface for running external processes.
type ProcessRunner interface {
	// Run executes a command with the given context, arguments, stdin, and returns stdout/stderr.
	Run(ctx context.Context, path string, args []string, stdin io.Reader) (stdout, stderr []byte, err error)
}

// RealProcessRunner implements ProcessRunner using actual os/exec commands.
type RealProcessRunner struct{}

// Run executes a real external process. When ctx ends first the context
// error is returned.
func (r *RealProcessRunner) Run(ctx context.Context, path string, args []string, stdin io.Reader) ([]byte, []byte, error) {
	cmd := exec.CommandContext(ctx, path, args...)
	cmd.Stdin = stdin

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return stdout.Bytes(), stderr.Bytes(), ctxErr
		}
		return stdout.Bytes(), stderr.Bytes(), err
	}
	return stdout.Bytes(), stderr.Bytes(), nil
}

// NewRealProcessRunner creates a new real process runner.
func NewRealProcessRunner() *RealProcessRunner {
	return &RealProcessRunner{}
}
