package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
)

// SessionsSendCmd pastes input into a session
type SessionsSendCmd struct {
	ID   string   `arg:"" help:"Session id"`
	Data []string `arg:"" optional:"" help:"Text to send; read from stdin when omitted"`

	NoEnter bool `help:"Do not append a newline" short:"n"`
}

// Run executes the send command
func (s *SessionsSendCmd) Run(ctx context.Context, cli *CLI) error {
	data := strings.Join(s.Data, " ")
	if len(s.Data) == 0 {
		raw, err := io.ReadAll(os.Stdin)
		if err != nil {
			return fmt.Errorf("failed to read stdin: %w", err)
		}
		data = string(raw)
	} else if !s.NoEnter {
		data += "\n"
	}
	return cli.Container.SessionService.SendInput(ctx, s.ID, data)
}
