// Package session manages remote tmux sessions through a single exec primitive.
//
// The remote session table and the exit sentinel directory are the only source of
// truth: nothing is cached locally and every existence check is a round trip.
package session

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/renato0307/remux/internal/domain"
	"github.com/renato0307/remux/internal/logging"
	"github.com/renato0307/remux/internal/ports"
	"github.com/renato0307/remux/internal/shell"
)

const (
	// DefaultReadLines is the capture window for reads and streams
	DefaultReadLines = 200
	// DefaultWaitLines is the capture window used while waiting
	DefaultWaitLines = 300
)

// Config holds remote host layout defaults
type Config struct {
	DefaultCwd string
	StateDir   string
}

// Registry creates, inspects, resizes and destroys remote sessions
type Registry struct {
	cfg      Config
	executor ports.Executor
}

// NewRegistry creates a Registry issuing commands through executor
func NewRegistry(executor ports.Executor, cfg Config) *Registry {
	if cfg.StateDir == "" {
		cfg.StateDir = domain.DefaultStateDir
	}
	if cfg.DefaultCwd == "" {
		cfg.DefaultCwd = domain.DefaultWorkdir
	}
	return &Registry{cfg: cfg, executor: executor}
}

// exec runs one command and wraps transport failures with the operation name
func (r *Registry) exec(ctx context.Context, op, id, command string) (ports.ExecResult, error) {
	logging.Logger.Debug("Running remote command", "op", op, "session", id)
	start := time.Now()

	result, err := r.executor.Exec(ctx, command)
	if err != nil {
		logging.Logger.Warn("Remote command transport failure", "op", op, "session", id, "error", err)
		return ports.ExecResult{}, fmt.Errorf("%s: %w", op, err)
	}

	logging.Logger.Debug("Remote command finished",
		"op", op,
		"session", id,
		"status", result.Status(),
		"duration", time.Since(start))
	return result, nil
}

func commandError(kind error, op, id string, result ports.ExecResult) error {
	return &domain.CommandError{
		Kind:       kind,
		Op:         op,
		SessionID:  id,
		StatusCode: result.Status(),
		Stderr:     strings.TrimSpace(result.Stderr),
	}
}

// Create starts a new session and returns a handle bound to it
func (r *Registry) Create(ctx context.Context, opts domain.CreateOptions) (*Handle, error) {
	command, err := shell.BuildCreate(shell.CreateSpec{
		DefaultCwd: r.cfg.DefaultCwd,
		Options:    opts,
		StateDir:   r.cfg.StateDir,
	})
	if err != nil {
		return nil, err
	}

	logging.Logger.Info("Creating session", "session", opts.ID, "reset", opts.Reset, "cwd", opts.Cwd)
	result, err := r.exec(ctx, "create session", opts.ID, command)
	if err != nil {
		return nil, err
	}
	if !result.OK() {
		logging.Logger.Error("Failed to create session", "session", opts.ID, "status", result.Status(), "stderr", result.Stderr)
		return nil, commandError(domain.ErrSessionCreationFailed, "create session", opts.ID, result)
	}

	logging.Logger.Info("Session created", "session", opts.ID)
	return newHandle(r, opts.ID), nil
}

// Connect returns a handle for an existing session
func (r *Registry) Connect(ctx context.Context, id string) (*Handle, error) {
	if err := domain.ValidateSessionID(id); err != nil {
		return nil, err
	}
	alive, err := r.HasSession(ctx, id)
	if err != nil {
		return nil, err
	}
	if !alive {
		return nil, domain.NotFoundError(id)
	}
	return newHandle(r, id), nil
}

// HasSession reports whether the session is in the remote session table
func (r *Registry) HasSession(ctx context.Context, id string) (bool, error) {
	command, err := shell.BuildHasSession(id)
	if err != nil {
		return false, err
	}
	result, err := r.exec(ctx, "check session", id, command)
	if err != nil {
		return false, err
	}
	return result.StatusCode != nil && *result.StatusCode == 0, nil
}

// List returns every live session. Each session costs one more round trip, and
// sessions that vanish or carry foreign names between the two steps are skipped.
func (r *Registry) List(ctx context.Context) ([]domain.SessionInfo, error) {
	result, err := r.exec(ctx, "list sessions", "", shell.BuildList())
	if err != nil {
		return nil, err
	}
	if !result.OK() {
		return nil, commandError(nil, "list sessions", "", result)
	}

	infos := []domain.SessionInfo{}
	for _, line := range strings.Split(result.Stdout, "\n") {
		id := shell.IDFromSessionName(strings.TrimSpace(line))
		if id == "" {
			continue
		}
		info, err := r.Info(ctx, id)
		if err != nil {
			if errors.Is(err, domain.ErrSessionNotFound) || errors.Is(err, domain.ErrValidation) {
				logging.Logger.Debug("Skipping session in listing", "session", id, "error", err)
				continue
			}
			return nil, err
		}
		infos = append(infos, info)
	}
	return infos, nil
}

// Info queries the working directory, size and creation time of a live session
func (r *Registry) Info(ctx context.Context, id string) (domain.SessionInfo, error) {
	command, err := shell.BuildInfo(id)
	if err != nil {
		return domain.SessionInfo{}, err
	}
	alive, err := r.HasSession(ctx, id)
	if err != nil {
		return domain.SessionInfo{}, err
	}
	if !alive {
		return domain.SessionInfo{}, domain.NotFoundError(id)
	}

	result, err := r.exec(ctx, "session info", id, command)
	if err != nil {
		return domain.SessionInfo{}, err
	}
	if !result.OK() {
		// The session disappeared between the liveness check and the query
		return domain.SessionInfo{}, domain.NotFoundError(id)
	}
	return parseInfo(id, result.Stdout), nil
}

// parseInfo reads display-message output, falling back to defaults on bad fields
func parseInfo(id, raw string) domain.SessionInfo {
	fields := strings.Split(strings.TrimSpace(raw), "\t")
	field := func(i int) string {
		if i < len(fields) {
			return strings.TrimSpace(fields[i])
		}
		return ""
	}

	info := domain.SessionInfo{
		Active: true,
		Cwd:    field(0),
		ID:     id,
		Size:   domain.Size{Cols: domain.DefaultCols, Rows: domain.DefaultRows},
	}
	if cols, err := strconv.Atoi(field(1)); err == nil && cols > 0 {
		info.Size.Cols = cols
	} else {
		logging.Logger.Warn("Could not parse session width", "session", id, "value", field(1))
	}
	if rows, err := strconv.Atoi(field(2)); err == nil && rows > 0 {
		info.Size.Rows = rows
	} else {
		logging.Logger.Warn("Could not parse session height", "session", id, "value", field(2))
	}
	if created, err := strconv.ParseInt(field(3), 10, 64); err == nil && created > 0 {
		info.CreatedAt = time.Unix(created, 0).UTC()
	} else {
		logging.Logger.Warn("Could not parse session creation time", "session", id, "value", field(3))
	}
	return info
}

// Resize changes the session's window size and returns the refreshed info
func (r *Registry) Resize(ctx context.Context, id string, size domain.Size) (domain.SessionInfo, error) {
	command, err := shell.BuildResize(id, size)
	if err != nil {
		return domain.SessionInfo{}, err
	}
	result, err := r.exec(ctx, "resize session", id, command)
	if err != nil {
		return domain.SessionInfo{}, err
	}
	if !result.OK() {
		return domain.SessionInfo{}, commandError(nil, "resize session", id, result)
	}
	return r.Info(ctx, id)
}

// Kill destroys the session. Killing a session that does not exist is not an error.
func (r *Registry) Kill(ctx context.Context, id string) error {
	command, err := shell.BuildKill(id)
	if err != nil {
		return err
	}
	logging.Logger.Info("Killing session", "session", id)
	result, err := r.exec(ctx, "kill session", id, command)
	if err != nil {
		return err
	}
	if !result.OK() {
		return commandError(nil, "kill session", id, result)
	}
	return nil
}

// SendInput pastes data into the session as keystrokes.
// Concurrent senders to one session race on the remote paste buffer.
func (r *Registry) SendInput(ctx context.Context, id, data string) error {
	command, err := shell.BuildSendInput(id, data)
	if err != nil {
		return err
	}
	result, err := r.exec(ctx, "send input", id, command)
	if err != nil {
		return err
	}
	if !result.OK() {
		return commandError(nil, "send input", id, result)
	}
	return nil
}

// ReadOutput captures the last lines of the session's visible buffer
func (r *Registry) ReadOutput(ctx context.Context, id string, opts domain.ReadOptions) (string, error) {
	if opts.Lines <= 0 {
		opts.Lines = DefaultReadLines
	}
	command, err := shell.BuildCapture(id, opts.Lines, opts.IncludeEscape)
	if err != nil {
		return "", err
	}
	result, err := r.exec(ctx, "capture output", id, command)
	if err != nil {
		return "", err
	}
	if !result.OK() {
		return "", commandError(nil, "capture output", id, result)
	}
	return result.Stdout, nil
}

// ReadExitCode returns the status recorded by the session's command, or nil when
// no sentinel exists. A missing sentinel is never an error.
func (r *Registry) ReadExitCode(ctx context.Context, id string) (*int, error) {
	command, err := shell.BuildReadExitCode(r.cfg.StateDir, id)
	if err != nil {
		return nil, err
	}
	result, err := r.exec(ctx, "read exit code", id, command)
	if err != nil {
		return nil, err
	}

	raw := strings.TrimSpace(result.Stdout)
	if raw == "" {
		return nil, nil
	}
	code, err := strconv.Atoi(raw)
	if err != nil {
		logging.Logger.Warn("Unparseable exit sentinel", "session", id, "value", raw)
		return nil, nil
	}
	return &code, nil
}

// AttachCommand returns the command to run on the host to attach to the session
func (r *Registry) AttachCommand(id string, readOnly bool) (string, error) {
	return shell.BuildAttach(id, readOnly)
}
