package ports

import (
	"context"
	"errors"
	"io"

	"github.com/renato0307/remux/internal/domain"
)

// ErrTransport reports that a command could not be delivered to the remote host at all
var ErrTransport = errors.New("remote exec transport failed")

// ExecResult is the outcome of one remote command. StatusCode is nil when the
// transport could not report a status (for example the command was killed by a signal).
type ExecResult struct {
	Stderr     string
	Stdout     string
	StatusCode *int
}

// OK reports whether the command completed with status zero or an unknown status
func (r ExecResult) OK() bool {
	return r.StatusCode == nil || *r.StatusCode == 0
}

// Status returns the status code, or -1 when unknown
func (r ExecResult) Status() int {
	if r.StatusCode == nil {
		return -1
	}
	return *r.StatusCode
}

// Executor runs one shell command on the remote host and returns once it has finished.
// A non-zero exit status is not an error; error is reserved for transport failures.
type Executor interface {
	Exec(ctx context.Context, command string) (ExecResult, error)
}

// InteractiveExecutor can also run a command attached to the caller's terminal.
//
// Interactive returns when the command ends. If stdin supports read deadlines
// (pipes, network connections) the copy from it has stopped by then and stdin is
// left usable; otherwise the copy ends at stdin's next Read.
type InteractiveExecutor interface {
	Executor
	Interactive(ctx context.Context, command string, stdin io.Reader, stdout io.Writer, size domain.Size) error
}
