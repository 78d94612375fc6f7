package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/charmbracelet/x/term"

	"github.com/renato0307/remux/internal/domain"
	"github.com/renato0307/remux/internal/logging"
)

// SessionsAttachCmd attaches the current terminal to a session
type SessionsAttachCmd struct {
	ID       string `arg:"" help:"Session id"`
	Print    bool   `help:"Only print the attach command to run on the target"`
	ReadOnly bool   `help:"Attach without sending input" short:"r"`
}

// Run executes the attach command
func (s *SessionsAttachCmd) Run(ctx context.Context, cli *CLI) error {
	svc := cli.Container.SessionService
	command, err := svc.Registry().AttachCommand(s.ID, s.ReadOnly)
	if err != nil {
		return err
	}
	if s.Print {
		fmt.Println(command)
		return nil
	}

	if _, err := svc.Connect(ctx, s.ID); err != nil {
		return err
	}

	fd := os.Stdin.Fd()
	if !term.IsTerminal(fd) {
		return fmt.Errorf("attach needs a terminal; run '%s' on the target instead", command)
	}

	size := domain.Size{Cols: domain.DefaultCols, Rows: domain.DefaultRows}
	if cols, rows, err := term.GetSize(os.Stdout.Fd()); err == nil && cols > 0 && rows > 0 {
		size = domain.Size{Cols: cols, Rows: rows}
	}

	state, err := term.MakeRaw(fd)
	if err != nil {
		return fmt.Errorf("failed to set raw mode: %w", err)
	}
	defer func() { _ = term.Restore(fd, state) }()

	logging.Logger.Info("Attaching to session", "session", s.ID, "target", cli.Container.TargetName, "size", size.String())
	return cli.Container.Executor.Interactive(ctx, command, os.Stdin, os.Stdout, size)
}
