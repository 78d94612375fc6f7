package cmd

import (
	"context"
	"fmt"

	"github.com/renato0307/remux/internal/logging"
)

// SessionsKillCmd kills sessions
type SessionsKillCmd struct {
	IDs []string `arg:"" name:"id" help:"Session ids to kill"`
}

// Run executes the kill command
func (s *SessionsKillCmd) Run(ctx context.Context, cli *CLI) error {
	for _, id := range s.IDs {
		logging.Logger.Info("Executing sessions kill command", "session", id)
		if err := cli.Container.SessionService.KillSession(ctx, id); err != nil {
			return fmt.Errorf("failed to kill session %s: %w", id, err)
		}
		fmt.Printf("Session '%s' killed\n", id)
	}
	return nil
}
