package cmd

import (
	"context"
	"fmt"
	"os"
	"sync"
	"text/tabwriter"
	"time"

	"github.com/renato0307/remux/internal/domain"
	"github.com/renato0307/remux/internal/logging"
	"github.com/renato0307/remux/internal/session"
	"github.com/renato0307/remux/internal/tail"
	"github.com/renato0307/remux/internal/theme"
)

// SessionsWaitCmd waits for one or more sessions to exit
type SessionsWaitCmd struct {
	Format       string        `help:"Output format: table or json" enum:"table,json" default:"table"`
	IDs          []string      `arg:"" name:"id" help:"Session ids to wait on"`
	Lines        int           `help:"Capture window per poll (default: config wait_lines)"`
	PollInterval time.Duration `help:"Pause between polls (default: config poll_interval)"`
	Quiet        bool          `help:"Do not print session output while waiting" short:"q"`
	Timeout      time.Duration `help:"Stop waiting after this long (0 = forever); sessions keep running"`
}

// waitResultView is the JSON shape of one wait result
type waitResultView struct {
	Error    string           `json:"error,omitempty"`
	ExitCode *int             `json:"exit_code"`
	ID       string           `json:"id"`
	State    domain.WaitState `json:"state"`
}

// Run executes the wait command
func (s *SessionsWaitCmd) Run(ctx context.Context, cli *CLI) error {
	logging.Logger.Info("Executing sessions wait command", "sessions", s.IDs, "timeout", s.Timeout)

	opts := session.WaitOptions{
		Lines:        s.Lines,
		PollInterval: s.PollInterval,
		Timeout:      s.Timeout,
	}
	if opts.Lines <= 0 {
		opts.Lines = cli.config.Defaults.WaitLines
	}
	if opts.PollInterval <= 0 {
		opts.PollInterval = cli.config.Defaults.PollInterval
	}

	var onData func(id, delta string)
	if !s.Quiet && s.Format == "table" {
		var mu sync.Mutex
		multi := len(s.IDs) > 1
		onData = func(id, delta string) {
			mu.Lock()
			defer mu.Unlock()
			if !multi {
				fmt.Print(delta)
				return
			}
			for _, line := range tail.SplitLines(delta) {
				fmt.Printf("%s %s\n", theme.MutedStyle.Render("["+id+"]"), line)
			}
		}
	}

	results, err := cli.Container.SessionService.WaitSessions(ctx, s.IDs, opts, onData)
	if err != nil {
		return err
	}

	if s.Format == "json" {
		views := make([]waitResultView, len(results))
		for i, r := range results {
			views[i] = waitResultView{Error: r.Error, ExitCode: r.ExitCode, ID: s.IDs[i], State: r.State}
		}
		return printJSON(views)
	}

	if len(results) == 1 {
		return waitOutcome(s.IDs[0], results[0])
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tSTATE\tEXIT CODE\tERROR")
	for i, r := range results {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", s.IDs[i], theme.RenderState(string(r.State), r.ExitCode), formatExitCode(r.ExitCode), r.Error)
	}
	w.Flush()

	for i, r := range results {
		if r.ExitCode != nil && *r.ExitCode != 0 {
			return fmt.Errorf("session %s exited with status %d", s.IDs[i], *r.ExitCode)
		}
	}
	return nil
}

// waitOutcome reports a single wait result and turns failures into errors
func waitOutcome(id string, result domain.WaitResult) error {
	switch result.State {
	case domain.WaitExited:
		if result.ExitCode != nil && *result.ExitCode != 0 {
			return fmt.Errorf("session %s exited with status %d", id, *result.ExitCode)
		}
		fmt.Fprintf(os.Stderr, "Session '%s' exited (%s)\n", id, formatExitCode(result.ExitCode))
	case domain.WaitTimedOut:
		return fmt.Errorf("session %s: %s", id, result.Error)
	case domain.WaitCancelled:
		fmt.Fprintf(os.Stderr, "Stopped waiting for session '%s'; it is still running\n", id)
	}
	return nil
}
