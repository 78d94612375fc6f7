// Package executor runs shell commands on a target host for the session layer.
package executor

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"

	"github.com/renato0307/remux/internal/logging"
	"github.com/renato0307/remux/internal/ports"
)

// Local runs commands on this machine through bash
type Local struct {
	// Shell is the interpreter invoked with -c
	Shell string
}

var _ ports.Executor = (*Local)(nil)

// NewLocal creates a Local executor using shell, or bash when empty
func NewLocal(shell string) *Local {
	if shell == "" {
		shell = "bash"
	}
	return &Local{Shell: shell}
}

// Exec runs command and reports its exit status. A process killed by a signal has
// no status. Failing to start the shell is a transport error.
func (l *Local) Exec(ctx context.Context, command string) (ports.ExecResult, error) {
	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, l.Shell, "-c", command)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	result := ports.ExecResult{Stderr: stderr.String(), Stdout: stdout.String()}

	var exitErr *exec.ExitError
	switch {
	case err == nil:
		code := 0
		result.StatusCode = &code
	case errors.As(err, &exitErr):
		if code := exitErr.ExitCode(); code >= 0 {
			result.StatusCode = &code
		}
	default:
		logging.Logger.Warn("Failed to run local command", "shell", l.Shell, "error", err)
		return ports.ExecResult{}, fmt.Errorf("%w: %w", ports.ErrTransport, err)
	}
	return result, nil
}
