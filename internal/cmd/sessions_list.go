package cmd

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/renato0307/remux/internal/domain"
)

// SessionsListCmd lists live sessions on the target
type SessionsListCmd struct {
	Format string `help:"Output format: table or json" enum:"table,json" default:"table"`
}

// Run executes the list command
func (s *SessionsListCmd) Run(ctx context.Context, cli *CLI) error {
	sessions, err := cli.Container.SessionService.ListSessions(ctx)
	if err != nil {
		return fmt.Errorf("failed to list sessions: %w", err)
	}

	if s.Format == "json" {
		return printJSON(sessions)
	}
	return printSessionTable(sessions)
}

func printSessionTable(sessions []domain.SessionInfo) error {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tSIZE\tCWD\tCREATED")
	for _, sess := range sessions {
		created := "-"
		if !sess.CreatedAt.IsZero() {
			created = sess.CreatedAt.Local().Format("2006-01-02 15:04:05")
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", sess.ID, sess.Size, sess.Cwd, created)
	}
	if err := w.Flush(); err != nil {
		return err
	}

	fmt.Printf("\nTotal: %d sessions\n", len(sessions))
	return nil
}
