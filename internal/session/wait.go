package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/renato0307/remux/internal/domain"
	"github.com/renato0307/remux/internal/logging"
	"github.com/renato0307/remux/internal/poll"
	"github.com/renato0307/remux/internal/ports"
	"github.com/renato0307/remux/internal/tail"
)

// WaitOptions controls a wait on a session
type WaitOptions struct {
	// Lines is the capture window; output beyond it between ticks is re-emitted
	Lines int
	// OnData receives each non-empty output delta, in order
	OnData func(delta string)
	// PollInterval is the pause between ticks, poll.DefaultInterval when zero
	PollInterval time.Duration
	// Timeout stops waiting on a live session; zero waits indefinitely
	Timeout time.Duration
}

// Wait polls the session until it exits, the timeout passes or ctx is cancelled.
//
// Cancellation is only observed between ticks: an in-flight remote call always
// completes. A timed out wait leaves the session running and the handle usable.
func (h *Handle) Wait(ctx context.Context, opts WaitOptions) (domain.WaitResult, error) {
	if err := h.ensureConnected(); err != nil {
		return domain.WaitResult{}, err
	}
	if opts.Lines <= 0 {
		opts.Lines = DefaultWaitLines
	}
	if opts.PollInterval <= 0 {
		opts.PollInterval = poll.DefaultInterval
	}

	w := &waiter{
		backoff: poll.NewBackoff(opts.PollInterval),
		handle:  h,
		opts:    opts,
		remote:  context.WithoutCancel(ctx),
		start:   time.Now(),
		state:   domain.WaitConnected,
	}
	return w.run(ctx)
}

type waiter struct {
	backoff *poll.Backoff
	handle  *Handle
	opts    WaitOptions
	remote  context.Context
	start   time.Time
	state   domain.WaitState
	tracker tail.DeltaTracker
}

func (w *waiter) transition(next domain.WaitState) {
	logging.Logger.Debug("Wait state change", "session", w.handle.id, "from", w.state, "to", next)
	w.state = next
}

func (w *waiter) result(exitCode *int) domain.WaitResult {
	return domain.WaitResult{
		Error:    w.handle.Err(),
		ExitCode: exitCode,
		Output:   w.tracker.Previous(),
		State:    w.state,
	}
}

func (w *waiter) cancelled() (domain.WaitResult, error) {
	w.transition(domain.WaitCancelled)
	return w.result(nil), nil
}

func (w *waiter) run(ctx context.Context) (domain.WaitResult, error) {
	for {
		if ctx.Err() != nil {
			return w.cancelled()
		}
		w.transition(domain.WaitPolling)

		alive, err := w.tick()
		if err != nil {
			pause, retry := w.backoff.Failed()
			if !retry || !isTransient(err) {
				return w.result(nil), fmt.Errorf("wait on session %s: %w", w.handle.id, err)
			}
			logging.Logger.Warn("Poll tick failed, backing off", "session", w.handle.id, "error", err, "pause", pause)
			if !poll.Sleep(ctx, pause) {
				return w.cancelled()
			}
			continue
		}
		w.backoff.Succeeded()

		if !alive {
			exitCode, err := w.handle.registry.ReadExitCode(w.remote, w.handle.id)
			if err != nil {
				return w.result(nil), fmt.Errorf("wait on session %s: %w", w.handle.id, err)
			}
			w.handle.markExited(exitCode)
			w.transition(domain.WaitExited)
			logging.Logger.Info("Session exited", "session", w.handle.id, "exit_code", exitCode)
			return w.result(exitCode), nil
		}

		if ctx.Err() != nil {
			return w.cancelled()
		}

		pause := w.opts.PollInterval
		if w.opts.Timeout > 0 {
			remaining := w.opts.Timeout - time.Since(w.start)
			if remaining <= 0 {
				w.handle.setError(domain.TimeoutMessage)
				w.transition(domain.WaitTimedOut)
				return w.result(nil), nil
			}
			pause = min(pause, remaining)
		}

		w.transition(domain.WaitContinuing)
		if !poll.Sleep(ctx, pause) {
			return w.cancelled()
		}
	}
}

// tick captures output, reports the delta, then checks liveness
func (w *waiter) tick() (bool, error) {
	snapshot, err := w.handle.registry.ReadOutput(w.remote, w.handle.id, domain.ReadOptions{
		IncludeEscape: true,
		Lines:         w.opts.Lines,
	})
	if err != nil {
		var cmdErr *domain.CommandError
		if !errors.As(err, &cmdErr) {
			return false, err
		}
		// Capture fails once the session is gone; the liveness check decides
		snapshot = w.tracker.Previous()
	}

	delta := w.tracker.Next(snapshot)
	if delta != "" && w.opts.OnData != nil {
		w.opts.OnData(delta)
	}

	return w.handle.registry.HasSession(w.remote, w.handle.id)
}

// isTransient reports whether err came from the transport rather than from input
func isTransient(err error) bool {
	return errors.Is(err, ports.ErrTransport)
}
