package cmd

import (
	"context"

	"github.com/renato0307/remux/internal/domain"
)

// SessionsInfoCmd shows one session
type SessionsInfoCmd struct {
	Format string `help:"Output format: table or json" enum:"table,json" default:"table"`
	ID     string `arg:"" help:"Session id"`
}

// Run executes the info command
func (s *SessionsInfoCmd) Run(ctx context.Context, cli *CLI) error {
	info, err := cli.Container.SessionService.SessionInfo(ctx, s.ID)
	if err != nil {
		return err
	}
	if s.Format == "json" {
		return printJSON(info)
	}
	return printSessionTable([]domain.SessionInfo{info})
}
