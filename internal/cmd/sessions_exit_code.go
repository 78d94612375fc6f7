package cmd

import (
	"context"
	"fmt"
)

// SessionsExitCodeCmd prints the recorded exit status of a session
type SessionsExitCodeCmd struct {
	ID string `arg:"" help:"Session id"`
}

// Run executes the exit-code command. An unknown status prints "-".
func (s *SessionsExitCodeCmd) Run(ctx context.Context, cli *CLI) error {
	code, err := cli.Container.SessionService.ExitCode(ctx, s.ID)
	if err != nil {
		return err
	}
	fmt.Println(formatExitCode(code))
	return nil
}
