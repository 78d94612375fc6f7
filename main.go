package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/alecthomas/kong"

	"github.com/renato0307/remux/internal/cmd"
	"github.com/renato0307/remux/internal/theme"
	"github.com/renato0307/remux/internal/version"
)

func main() {
	// Ctrl-C cancels between poll ticks; in-flight remote commands finish first
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Container is created in CLI.AfterApply() after logging is initialized
	var cli cmd.CLI
	kctx := kong.Parse(&cli,
		kong.Name("remux"),
		kong.Description(version.Tagline),
		kong.Vars{
			"version": version.Info(),
		},
		kong.UsageOnError(),
		kong.Bind(&cli),
		kong.BindTo(ctx, (*context.Context)(nil)),
	)

	err := kctx.Run()
	if closeErr := cli.Close(); closeErr != nil && err == nil {
		err = closeErr
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, theme.ErrorStyle.Render("Error:"), err)
		os.Exit(1)
	}
}
