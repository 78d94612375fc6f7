// Package devserver reads and restarts a long-running dev server supervised by
// systemd, optionally running inside a tmux session.
package devserver

import (
	"context"
	"iter"
	"strings"
	"time"

	"github.com/renato0307/remux/internal/domain"
	"github.com/renato0307/remux/internal/logging"
	"github.com/renato0307/remux/internal/poll"
	"github.com/renato0307/remux/internal/ports"
	"github.com/renato0307/remux/internal/session"
	"github.com/renato0307/remux/internal/shell"
	"github.com/renato0307/remux/internal/tail"
)

const (
	// DefaultLogLines bounds log reads and the first read of a stream
	DefaultLogLines = 200
	// DefaultPollInterval is the pause between log stream polls
	DefaultPollInterval = time.Second
)

// Config describes the dev server
type Config struct {
	PollInterval time.Duration
	// Pty is the session the dev command runs in, nil when it writes straight to the journal
	Pty *session.Binding
	// Unit is the systemd unit that supervises the dev command
	Unit string
}

// LogOptions selects which logs to read
type LogOptions struct {
	Lines int
	// Since bounds journal reads; ignored for pty captures
	Since string
	// Unit overrides the dev server unit; any other unit always reads the journal
	Unit string
}

// StreamOptions selects which logs to follow
type StreamOptions struct {
	LogOptions
	PollInterval time.Duration
}

// Server reads the dev server's logs from its pty session or the journal
type Server struct {
	cfg      Config
	executor ports.Executor
	registry *session.Registry
}

var _ ports.Terminal = (*Server)(nil)

// New creates a Server; registry is used for pty sessions
func New(executor ports.Executor, registry *session.Registry, cfg Config) *Server {
	if cfg.Unit == "" {
		cfg.Unit = shell.DefaultUnit
	}
	if cfg.PollInterval <= 0 {
		cfg.PollInterval = DefaultPollInterval
	}
	return &Server{cfg: cfg, executor: executor, registry: registry}
}

// Unit returns the dev server's systemd unit
func (s *Server) Unit() string {
	return s.cfg.Unit
}

func (s *Server) usePty(unit string) bool {
	return s.cfg.Pty != nil && (unit == "" || unit == s.cfg.Unit)
}

func (s *Server) unit(unit string) string {
	if unit == "" {
		return s.cfg.Unit
	}
	return unit
}

func lines(n int) int {
	if n <= 0 {
		return DefaultLogLines
	}
	return n
}

// Logs returns the raw result of one log read. Failures on the remote side are
// reported through the result's status, not as an error.
func (s *Server) Logs(ctx context.Context, opts LogOptions) (ports.ExecResult, error) {
	var command string
	if s.usePty(opts.Unit) {
		var err error
		command, err = s.cfg.Pty.CaptureOutputCommand(domain.ReadOptions{IncludeEscape: true, Lines: lines(opts.Lines)})
		if err != nil {
			return ports.ExecResult{}, err
		}
	} else {
		unit := s.unit(opts.Unit)
		if err := shell.ValidateUnit(unit); err != nil {
			return ports.ExecResult{}, err
		}
		command = shell.BuildTail(shell.TailOptions{Lines: lines(opts.Lines), Since: opts.Since, Unit: unit})
	}

	logging.Logger.Debug("Reading dev server logs", "unit", s.unit(opts.Unit), "pty", s.usePty(opts.Unit))
	return s.executor.Exec(ctx, command)
}

// StreamLogs follows the logs as a lazy sequence of lines. Pty output ends with
// the session; journal output runs until ctx is cancelled or a read fails.
func (s *Server) StreamLogs(ctx context.Context, opts StreamOptions) iter.Seq2[string, error] {
	interval := opts.PollInterval
	if interval <= 0 {
		interval = s.cfg.PollInterval
	}

	if s.usePty(opts.Unit) {
		return s.registry.StreamOutput(ctx, s.cfg.Pty.ID, session.StreamOptions{
			Lines:        lines(opts.Lines),
			PollInterval: interval,
		})
	}
	return s.streamJournal(ctx, s.unit(opts.Unit), lines(opts.Lines), opts.Since, interval)
}

func (s *Server) streamJournal(ctx context.Context, unit string, n int, since string, interval time.Duration) iter.Seq2[string, error] {
	return func(yield func(string, error) bool) {
		if err := shell.ValidateUnit(unit); err != nil {
			yield("", err)
			return
		}

		tailer := tail.NewCursorTailer(unit, n, since)
		backoff := poll.NewBackoff(interval)
		remote := context.WithoutCancel(ctx)

		for {
			if ctx.Err() != nil {
				return
			}

			result, err := s.executor.Exec(remote, tailer.Command())
			if err != nil {
				pause, retry := backoff.Failed()
				if !retry {
					yield("", err)
					return
				}
				logging.Logger.Warn("Journal read failed, backing off", "unit", unit, "error", err, "pause", pause)
				if !poll.Sleep(ctx, pause) {
					return
				}
				continue
			}
			backoff.Succeeded()

			if !result.OK() {
				yield("", &domain.CommandError{
					Op:         "read journal " + unit,
					StatusCode: result.Status(),
					Stderr:     strings.TrimSpace(result.Stderr),
				})
				return
			}

			for _, line := range tailer.Consume(result.Stdout) {
				if !yield(line, nil) {
					return
				}
			}

			if !poll.Sleep(ctx, interval) {
				return
			}
		}
	}
}

// Restart restarts the dev server unit
func (s *Server) Restart(ctx context.Context) (ports.ExecResult, error) {
	command, err := shell.BuildRestartUnit(s.cfg.Unit)
	if err != nil {
		return ports.ExecResult{}, err
	}
	logging.Logger.Info("Restarting dev server", "unit", s.cfg.Unit)
	return s.executor.Exec(ctx, command)
}

// AttachCommand attaches to the pty session, or follows the journal without one
func (s *Server) AttachCommand(readOnly bool) string {
	if s.cfg.Pty != nil {
		return s.cfg.Pty.AttachCommand(readOnly)
	}
	return "journalctl -f -u " + shell.Quote(s.cfg.Unit)
}

// WrapCommand returns the service command for the dev server: inside the pty
// session when one is configured, otherwise command itself.
func (s *Server) WrapCommand(command, workdir string) (string, error) {
	if s.cfg.Pty != nil {
		return s.cfg.Pty.WrapServiceCommand(command, workdir)
	}
	return command, nil
}

// CaptureOutputCommand returns the command Logs runs for the dev server unit
func (s *Server) CaptureOutputCommand(opts domain.ReadOptions) (string, error) {
	if s.cfg.Pty != nil {
		return s.cfg.Pty.CaptureOutputCommand(opts)
	}
	return shell.BuildTail(shell.TailOptions{Lines: lines(opts.Lines), Unit: s.cfg.Unit}), nil
}
