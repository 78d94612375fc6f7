package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/renato0307/remux/internal/session"
)

// SessionsStreamCmd follows a session's output until it exits or Ctrl-C
type SessionsStreamCmd struct {
	ID           string        `arg:"" help:"Session id"`
	Lines        int           `help:"Capture window per poll (default: config capture_lines)" short:"n"`
	PollInterval time.Duration `help:"Pause between polls (default: config poll_interval)"`
	Strip        bool          `help:"Strip terminal control sequences"`
}

// Run executes the stream command
func (s *SessionsStreamCmd) Run(ctx context.Context, cli *CLI) error {
	opts := session.StreamOptions{
		ExcludeEscape: s.Strip,
		Lines:         s.Lines,
		PollInterval:  s.PollInterval,
	}
	if opts.Lines <= 0 {
		opts.Lines = cli.config.Defaults.CaptureLines
	}
	if opts.PollInterval <= 0 {
		opts.PollInterval = cli.config.Defaults.PollInterval
	}

	for line, err := range cli.Container.SessionService.StreamOutput(ctx, s.ID, opts) {
		if err != nil {
			return err
		}
		fmt.Println(line)
	}
	return nil
}
