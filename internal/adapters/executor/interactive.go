package executor

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os/exec"
	"time"

	"github.com/creack/pty"
	"golang.org/x/crypto/ssh"

	"github.com/renato0307/remux/internal/domain"
	"github.com/renato0307/remux/internal/logging"
	"github.com/renato0307/remux/internal/ports"
)

var (
	_ ports.InteractiveExecutor = (*Local)(nil)
	_ ports.InteractiveExecutor = (*SSH)(nil)
)

// Interactive runs command on a new pseudo-terminal wired to stdin and stdout
func (l *Local) Interactive(ctx context.Context, command string, stdin io.Reader, stdout io.Writer, size domain.Size) error {
	cmd := exec.CommandContext(ctx, l.Shell, "-c", command)

	ptmx, err := pty.StartWithSize(cmd, &pty.Winsize{Cols: uint16(size.Cols), Rows: uint16(size.Rows)})
	if err != nil {
		return fmt.Errorf("failed to start pty: %w", err)
	}
	defer ptmx.Close()

	logging.Logger.Debug("Interactive local command started", "size", size.String())
	stop := pumpInput(ptmx, stdin)
	// Reading the pty fails with EIO once the command exits
	_, _ = io.Copy(stdout, ptmx)
	stop()

	return exitError(cmd.Wait())
}

// deadlineReader is an input whose blocked Read can be interrupted
type deadlineReader interface {
	io.Reader
	SetReadDeadline(t time.Time) error
}

// pumpInput copies src to dst in the background. The returned stop interrupts
// and waits for the copy when src supports read deadlines, then clears the
// deadline; for other readers the copy ends at src's next Read.
func pumpInput(dst io.Writer, src io.Reader) (stop func()) {
	done := make(chan struct{})
	go func() {
		defer close(done)
		_, _ = io.Copy(dst, src)
	}()

	return func() {
		dr, ok := src.(deadlineReader)
		if !ok || dr.SetReadDeadline(time.Now()) != nil {
			logging.Logger.Debug("Input copy left to finish on next read")
			return
		}
		<-done
		_ = dr.SetReadDeadline(time.Time{})
	}
}

func exitError(err error) error {
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return fmt.Errorf("command exited with status %d", exitErr.ExitCode())
	}
	return err
}

// Interactive runs command in an SSH session with a remote pseudo-terminal
func (s *SSH) Interactive(ctx context.Context, command string, stdin io.Reader, stdout io.Writer, size domain.Size) error {
	client, err := s.connect()
	if err != nil {
		return err
	}

	session, err := client.NewSession()
	if err != nil {
		s.drop(client)
		return fmt.Errorf("%w: open session: %w", ports.ErrTransport, err)
	}
	defer session.Close()

	modes := ssh.TerminalModes{
		ssh.ECHO:          1,
		ssh.TTY_OP_ISPEED: 14400,
		ssh.TTY_OP_OSPEED: 14400,
	}
	if err := session.RequestPty("xterm-256color", size.Rows, size.Cols, modes); err != nil {
		return fmt.Errorf("failed to request pty: %w", err)
	}

	input, err := session.StdinPipe()
	if err != nil {
		return fmt.Errorf("failed to open remote stdin: %w", err)
	}
	session.Stdout = stdout
	session.Stderr = stdout

	stop := pumpInput(input, stdin)
	defer stop()

	done := make(chan error, 1)
	go func() { done <- session.Run(command) }()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case err := <-done:
		var exitErr *ssh.ExitError
		if errors.As(err, &exitErr) {
			return fmt.Errorf("command exited with status %d", exitErr.ExitStatus())
		}
		return err
	}
}
