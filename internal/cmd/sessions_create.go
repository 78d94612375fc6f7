package cmd

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/renato0307/remux/internal/domain"
	"github.com/renato0307/remux/internal/logging"
	"github.com/renato0307/remux/internal/session"
)

// SessionsCreateCmd starts a command in a new detached session
type SessionsCreateCmd struct {
	ID      string            `arg:"" help:"Session id ([A-Za-z0-9._-]+)"`
	Command []string          `arg:"" optional:"" passthrough:"" help:"Command to run (default: bash -l)"`

	Cwd     string            `help:"Working directory on the target (default: config workdir)" short:"C"`
	Env     map[string]string `help:"Environment variable to export (KEY=VALUE, repeatable)" short:"e"`
	Reset   bool              `help:"Replace a running session with the same id" default:"true" negatable:""`
	Size    string            `help:"Window size as COLSxROWS"`
	Timeout time.Duration     `help:"With --wait, stop waiting after this long (0 = forever)"`
	Wait    bool              `help:"Wait for the command to exit, streaming its output" short:"w"`
}

// Run executes the create command
func (s *SessionsCreateCmd) Run(ctx context.Context, cli *CLI) error {
	size, err := parseSize(s.Size)
	if err != nil {
		return err
	}

	opts := domain.CreateOptions{
		Command: strings.Join(s.Command, " "),
		Cwd:     s.Cwd,
		Env:     s.Env,
		ID:      s.ID,
		Reset:   s.Reset,
		Size:    size,
	}
	logging.Logger.Info("Executing sessions create command", "session", s.ID, "reset", s.Reset, "wait", s.Wait)

	svc := cli.Container.SessionService
	handle, err := svc.CreateSession(ctx, opts)
	if err != nil {
		return fmt.Errorf("failed to create session: %w", err)
	}

	if !s.Wait {
		fmt.Printf("Session '%s' created on %s\n", handle.ID(), cli.Container.TargetName)
		return nil
	}

	result, err := svc.WaitSession(ctx, handle.ID(), session.WaitOptions{
		Lines:        cli.config.Defaults.WaitLines,
		OnData:       func(delta string) { fmt.Print(delta) },
		PollInterval: cli.config.Defaults.PollInterval,
		Timeout:      s.Timeout,
	})
	if err != nil {
		return err
	}
	return waitOutcome(handle.ID(), result)
}
