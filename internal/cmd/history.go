package cmd

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/renato0307/remux/internal/theme"
)

// HistoryCmd lists locally recorded session runs
type HistoryCmd struct {
	ID string `arg:"" optional:"" help:"Only runs of this session"`

	Format string `help:"Output format: table or json" enum:"table,json" default:"table"`
	Limit  int    `help:"Maximum number of runs to show" default:"50" short:"n"`
}

// Run executes the history command
func (h *HistoryCmd) Run(ctx context.Context, cli *CLI) error {
	runs, err := cli.Container.SessionService.History(ctx, h.ID, h.Limit)
	if err != nil {
		return fmt.Errorf("failed to read history: %w", err)
	}

	if h.Format == "json" {
		return printJSON(runs)
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "SESSION\tTARGET\tSTATE\tEXIT CODE\tCREATED\tCOMMAND")
	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n",
			run.SessionID,
			run.Target,
			theme.RenderState(string(run.State), run.ExitCode),
			formatExitCode(run.ExitCode),
			run.CreatedAt.Local().Format("2006-01-02 15:04:05"),
			run.Command)
	}
	if err := w.Flush(); err != nil {
		return err
	}

	fmt.Println(theme.MutedStyle.Render("History is local; live state comes from the target."))
	return nil
}
