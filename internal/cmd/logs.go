package cmd

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/renato0307/remux/internal/devserver"
	"github.com/renato0307/remux/internal/logging"
)

// LogsCmd reads the dev server's logs
type LogsCmd struct {
	Restart LogsRestartCmd `cmd:"restart" help:"Restart the dev server unit"`
	Show    LogsShowCmd    `cmd:"show" help:"Print or follow logs" default:"withargs"`
}

// LogsShowCmd prints or follows a unit's logs
type LogsShowCmd struct {
	Unit string `arg:"" optional:"" help:"Systemd unit (default: config journal_unit)"`

	Follow       bool          `help:"Keep printing new lines until Ctrl-C" short:"f"`
	Lines        int           `help:"Number of lines to read first" default:"200" short:"n"`
	PollInterval time.Duration `help:"Pause between polls when following (default: config log_poll_interval)"`
	PtySession   string        `help:"Session the dev command runs in; its output replaces the journal for the dev unit"`
	Since        string        `help:"Only journal entries since this time (journalctl --since syntax)"`
}

// Run executes the logs command
func (l *LogsShowCmd) Run(ctx context.Context, cli *CLI) error {
	server, err := cli.Container.DevServer("", l.PtySession)
	if err != nil {
		return err
	}
	logging.Logger.Debug("Executing logs command", "unit", l.Unit, "follow", l.Follow, "pty_session", l.PtySession)

	opts := devserver.LogOptions{Lines: l.Lines, Since: l.Since, Unit: l.Unit}
	if !l.Follow {
		result, err := server.Logs(ctx, opts)
		if err != nil {
			return err
		}
		if !result.OK() {
			return fmt.Errorf("failed to read logs (status %d): %s", result.Status(), strings.TrimSpace(result.Stderr))
		}
		fmt.Print(result.Stdout)
		return nil
	}

	for line, err := range server.StreamLogs(ctx, devserver.StreamOptions{LogOptions: opts, PollInterval: l.PollInterval}) {
		if err != nil {
			return err
		}
		fmt.Println(line)
	}
	return nil
}

// LogsRestartCmd restarts the dev server unit
type LogsRestartCmd struct {
	Unit string `arg:"" optional:"" help:"Systemd unit (default: config journal_unit)"`
}

// Run executes the restart command
func (l *LogsRestartCmd) Run(ctx context.Context, cli *CLI) error {
	server, err := cli.Container.DevServer(l.Unit, "")
	if err != nil {
		return err
	}
	logging.Logger.Info("Executing logs restart command", "unit", server.Unit())

	result, err := server.Restart(ctx)
	if err != nil {
		return err
	}
	if !result.OK() {
		return fmt.Errorf("failed to restart %s (status %d): %s", server.Unit(), result.Status(), strings.TrimSpace(result.Stderr))
	}
	fmt.Printf("Unit '%s' restarted\n", server.Unit())
	return nil
}
