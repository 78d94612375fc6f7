package session

import (
	"context"
	"errors"
	"iter"
	"time"

	"github.com/renato0307/remux/internal/domain"
	"github.com/renato0307/remux/internal/logging"
	"github.com/renato0307/remux/internal/poll"
	"github.com/renato0307/remux/internal/tail"
)

// StreamOptions controls an output stream
type StreamOptions struct {
	// ExcludeEscape strips terminal control sequences from the capture
	ExcludeEscape bool
	Lines         int
	PollInterval  time.Duration
}

// StreamOutput returns a lazy, infinite sequence of new output lines. It ends when
// ctx is cancelled, when the session disappears, or after yielding an error.
// Lines are delivered at least once: a capture window overrun repeats the window.
func (r *Registry) StreamOutput(ctx context.Context, id string, opts StreamOptions) iter.Seq2[string, error] {
	if opts.Lines <= 0 {
		opts.Lines = DefaultReadLines
	}
	if opts.PollInterval <= 0 {
		opts.PollInterval = poll.DefaultInterval
	}

	return func(yield func(string, error) bool) {
		if err := domain.ValidateSessionID(id); err != nil {
			yield("", err)
			return
		}

		var tracker tail.DeltaTracker
		backoff := poll.NewBackoff(opts.PollInterval)
		remote := context.WithoutCancel(ctx)

		for {
			if ctx.Err() != nil {
				return
			}

			snapshot, err := r.ReadOutput(remote, id, domain.ReadOptions{
				IncludeEscape: !opts.ExcludeEscape,
				Lines:         opts.Lines,
			})
			if err != nil {
				var cmdErr *domain.CommandError
				if errors.As(err, &cmdErr) {
					alive, aliveErr := r.HasSession(remote, id)
					if aliveErr == nil && !alive {
						logging.Logger.Info("Output stream ended, session gone", "session", id)
						return
					}
					yield("", err)
					return
				}

				pause, retry := backoff.Failed()
				if !retry || !isTransient(err) {
					yield("", err)
					return
				}
				if !poll.Sleep(ctx, pause) {
					return
				}
				continue
			}
			backoff.Succeeded()

			for _, line := range tracker.NextLines(snapshot) {
				if !yield(line, nil) {
					return
				}
			}

			if !poll.Sleep(ctx, opts.PollInterval) {
				return
			}
		}
	}
}

// StreamOutput streams the handle's session output
func (h *Handle) StreamOutput(ctx context.Context, opts StreamOptions) iter.Seq2[string, error] {
	if err := h.ensureConnected(); err != nil {
		return func(yield func(string, error) bool) {
			yield("", err)
		}
	}
	return h.registry.StreamOutput(ctx, h.id, opts)
}
