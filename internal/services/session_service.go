package services

import (
	"context"
	"errors"
	"iter"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/renato0307/remux/internal/domain"
	"github.com/renato0307/remux/internal/logging"
	"github.com/renato0307/remux/internal/ports"
	"github.com/renato0307/remux/internal/session"
)

// SessionService runs session operations against one target and keeps the local
// run history in step. History writes never fail an operation.
type SessionService struct {
	registry *session.Registry
	runs     ports.RunRepository
	target   string
}

// NewSessionService creates a new SessionService. runs may be nil to disable history.
func NewSessionService(registry *session.Registry, runs ports.RunRepository, target string) *SessionService {
	return &SessionService{
		registry: registry,
		runs:     runs,
		target:   target,
	}
}

// Registry returns the underlying session registry
func (s *SessionService) Registry() *session.Registry {
	return s.registry
}

// CreateSession starts a session and records the run
func (s *SessionService) CreateSession(ctx context.Context, opts domain.CreateOptions) (*session.Handle, error) {
	handle, err := s.registry.Create(ctx, opts)
	if err != nil {
		return nil, err
	}

	command := opts.Command
	if command == "" {
		command = domain.DefaultCommand
	}
	s.recordCreated(ctx, ports.Run{
		Command:   command,
		CreatedAt: time.Now().UTC(),
		Cwd:       opts.Cwd,
		SessionID: opts.ID,
		State:     ports.RunCreated,
		Target:    s.target,
	})
	return handle, nil
}

// Connect returns a handle for an existing session
func (s *SessionService) Connect(ctx context.Context, id string) (*session.Handle, error) {
	return s.registry.Connect(ctx, id)
}

// ListSessions returns every live session on the target
func (s *SessionService) ListSessions(ctx context.Context) ([]domain.SessionInfo, error) {
	return s.registry.List(ctx)
}

// SessionInfo returns the details of one live session
func (s *SessionService) SessionInfo(ctx context.Context, id string) (domain.SessionInfo, error) {
	return s.registry.Info(ctx, id)
}

// ResizeSession resizes a session's window
func (s *SessionService) ResizeSession(ctx context.Context, id string, size domain.Size) (domain.SessionInfo, error) {
	return s.registry.Resize(ctx, id, size)
}

// SendInput pastes data into a session
func (s *SessionService) SendInput(ctx context.Context, id, data string) error {
	return s.registry.SendInput(ctx, id, data)
}

// ReadOutput captures a session's buffer
func (s *SessionService) ReadOutput(ctx context.Context, id string, opts domain.ReadOptions) (string, error) {
	return s.registry.ReadOutput(ctx, id, opts)
}

// ExitCode returns the recorded exit status of a finished session, nil when unknown
func (s *SessionService) ExitCode(ctx context.Context, id string) (*int, error) {
	return s.registry.ReadExitCode(ctx, id)
}

// StreamOutput follows a session's output line by line
func (s *SessionService) StreamOutput(ctx context.Context, id string, opts session.StreamOptions) iter.Seq2[string, error] {
	return s.registry.StreamOutput(ctx, id, opts)
}

// KillSession destroys a session and closes its run
func (s *SessionService) KillSession(ctx context.Context, id string) error {
	if err := s.registry.Kill(ctx, id); err != nil {
		return err
	}
	s.recordOutcome(ctx, id, ports.RunOutcome{State: ports.RunKilled})
	return nil
}

// WaitSession waits on one session and records what the wait learned
func (s *SessionService) WaitSession(ctx context.Context, id string, opts session.WaitOptions) (domain.WaitResult, error) {
	handle, err := s.registry.Connect(ctx, id)
	if err != nil {
		if !errors.Is(err, domain.ErrSessionNotFound) {
			return domain.WaitResult{}, err
		}
		// Already gone: the sentinel is all that is left
		code, codeErr := s.registry.ReadExitCode(ctx, id)
		if codeErr != nil {
			return domain.WaitResult{}, codeErr
		}
		result := domain.WaitResult{ExitCode: code, State: domain.WaitExited}
		s.recordWait(ctx, id, result)
		return result, nil
	}

	result, err := handle.Wait(ctx, opts)
	if err != nil {
		return result, err
	}
	s.recordWait(ctx, id, result)
	return result, nil
}

// WaitSessions waits on several sessions at once. Results are in ids order.
// onData, when set, is called from several goroutines.
func (s *SessionService) WaitSessions(
	ctx context.Context,
	ids []string,
	opts session.WaitOptions,
	onData func(id, delta string),
) ([]domain.WaitResult, error) {
	results := make([]domain.WaitResult, len(ids))

	g, gctx := errgroup.WithContext(ctx)
	for i, id := range ids {
		sessionOpts := opts
		if onData != nil {
			sessionOpts.OnData = func(delta string) { onData(id, delta) }
		}
		g.Go(func() error {
			result, err := s.WaitSession(gctx, id, sessionOpts)
			if err != nil {
				return err
			}
			results[i] = result
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// History lists recorded runs, newest first
func (s *SessionService) History(ctx context.Context, id string, limit int) ([]ports.Run, error) {
	if s.runs == nil {
		return nil, nil
	}
	return s.runs.List(ctx, id, limit)
}

func (s *SessionService) recordCreated(ctx context.Context, run ports.Run) {
	if s.runs == nil {
		return
	}
	if _, err := s.runs.RecordCreated(ctx, run); err != nil {
		logging.Logger.Warn("Failed to record run", "session", run.SessionID, "error", err)
	}
}

func (s *SessionService) recordOutcome(ctx context.Context, id string, outcome ports.RunOutcome) {
	if s.runs == nil {
		return
	}
	if err := s.runs.RecordOutcome(context.WithoutCancel(ctx), id, outcome); err != nil {
		logging.Logger.Warn("Failed to record run outcome", "session", id, "state", outcome.State, "error", err)
	}
}

func (s *SessionService) recordWait(ctx context.Context, id string, result domain.WaitResult) {
	var state ports.RunState
	switch result.State {
	case domain.WaitExited:
		state = ports.RunExited
	case domain.WaitTimedOut:
		state = ports.RunTimedOut
	case domain.WaitCancelled:
		state = ports.RunCancelled
	default:
		return
	}
	s.recordOutcome(ctx, id, ports.RunOutcome{
		Error:    result.Error,
		ExitCode: result.ExitCode,
		State:    state,
	})
}
