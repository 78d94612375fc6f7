package cmd

import (
	"context"
	"fmt"

	"github.com/renato0307/remux/internal/domain"
)

// SessionsReadCmd prints a session's visible output
type SessionsReadCmd struct {
	Escape bool   `help:"Keep terminal control sequences" short:"e"`
	ID     string `arg:"" help:"Session id"`
	Lines  int    `help:"Lines of scrollback (default: config capture_lines)" short:"n"`
}

// Run executes the read command
func (s *SessionsReadCmd) Run(ctx context.Context, cli *CLI) error {
	lines := s.Lines
	if lines <= 0 {
		lines = cli.config.Defaults.CaptureLines
	}
	out, err := cli.Container.SessionService.ReadOutput(ctx, s.ID, domain.ReadOptions{
		IncludeEscape: s.Escape,
		Lines:         lines,
	})
	if err != nil {
		return fmt.Errorf("failed to read session output: %w", err)
	}
	fmt.Print(out)
	return nil
}
