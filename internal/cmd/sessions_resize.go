package cmd

import (
	"context"
	"fmt"
)

// SessionsResizeCmd resizes a session's window
type SessionsResizeCmd struct {
	ID   string `arg:"" help:"Session id"`
	Size string `arg:"" help:"New size as COLSxROWS"`
}

// Run executes the resize command
func (s *SessionsResizeCmd) Run(ctx context.Context, cli *CLI) error {
	size, err := parseSize(s.Size)
	if err != nil {
		return err
	}
	info, err := cli.Container.SessionService.ResizeSession(ctx, s.ID, *size)
	if err != nil {
		return fmt.Errorf("failed to resize session: %w", err)
	}
	fmt.Printf("Session '%s' is now %s\n", info.ID, info.Size)
	return nil
}
