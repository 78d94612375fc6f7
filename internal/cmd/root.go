package cmd

import (
	"fmt"
	"os"
	"strconv"

	"github.com/alecthomas/kong"

	"github.com/renato0307/remux/internal/config"
	"github.com/renato0307/remux/internal/logging"
)

// CLI represents the command-line interface structure
type CLI struct {
	Version     kong.VersionFlag `help:"Show version information"`
	Config      string           `help:"Path to config.yaml (default $REMUX_HOME/config.yaml)" type:"path"`
	Debug       bool             `help:"Enable debug logging to file" short:"d"`
	DebugFile   string           `help:"Custom path for debug log file (disables automatic cleanup)"`
	MaxLogFiles int              `help:"Maximum number of log files to keep (0 = unlimited)" default:"1000"`
	Target      string           `help:"Target to run on (overrides $REMUX_TARGET and default_target)" short:"t"`

	ConfigCmd ConfigCmd   `cmd:"config" name:"config" help:"Show the effective configuration"`
	History   HistoryCmd  `cmd:"history" help:"Show locally recorded session runs"`
	Logs      LogsCmd     `cmd:"logs" help:"Read, follow, or restart the dev server"`
	Sessions  SessionsCmd `cmd:"sessions" aliases:"s" help:"Manage remote terminal sessions"`

	// Internal fields (not flags)
	Container *Container     `kong:"-"`
	config    *config.Config `kong:"-"`
}

// AfterApply loads config, initializes logging and wires the container.
// Precedence is CLI flags > env vars > config.yaml > defaults.
func (c *CLI) AfterApply() error {
	cfg, err := config.Load(c.Config)
	if err != nil {
		return err
	}
	c.config = cfg

	if c.MaxLogFiles == logging.DefaultMaxLogFiles {
		if value, hasEnv := os.LookupEnv("REMUX_MAX_LOG_FILES"); hasEnv {
			if n, err := strconv.Atoi(value); err == nil {
				c.MaxLogFiles = n
			}
		} else if cfg.Defaults.MaxLogFiles != nil {
			c.MaxLogFiles = *cfg.Defaults.MaxLogFiles
		}
	}
	if !c.Debug && os.Getenv("REMUX_DEBUG") == "1" {
		c.Debug = true
	}
	if c.DebugFile == "" {
		c.DebugFile = os.Getenv("REMUX_DEBUG_FILE")
	}

	logFilePath, err := logging.Initialize(c.Debug, c.DebugFile, c.MaxLogFiles)
	if err != nil {
		return err
	}

	// Child processes (attach) inherit the same log file
	if c.Debug || c.DebugFile != "" {
		os.Setenv("REMUX_DEBUG", "1")
		if logFilePath != "" {
			os.Setenv("REMUX_DEBUG_FILE", logFilePath)
		}
	}

	// The container logs while wiring, so it comes after logging
	container, err := NewContainer(cfg, c.Target)
	if err != nil {
		return fmt.Errorf("failed to initialize container: %w", err)
	}
	c.Container = container

	logging.Logger.Debug("CLI initialized", "target", container.TargetName, "kind", container.Target.Kind)
	return nil
}

// Close closes all resources held by the CLI
func (c *CLI) Close() error {
	if c.Container != nil {
		return c.Container.Close()
	}
	return nil
}
