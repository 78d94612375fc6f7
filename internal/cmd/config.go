package cmd

import (
	"fmt"

	"github.com/renato0307/remux/internal/config"
	"github.com/renato0307/remux/internal/paths"
	"github.com/renato0307/remux/internal/theme"
)

// ConfigCmd prints the effective configuration
type ConfigCmd struct {
	Example bool `help:"Print an example config.yaml instead"`
}

// Run executes the config command
func (c *ConfigCmd) Run(cli *CLI) error {
	cfg := cli.config
	if c.Example {
		cfg = config.Example()
	} else {
		path := cli.Config
		if path == "" {
			path = paths.GetConfigPath()
		}
		fmt.Println(theme.MutedStyle.Render("# " + path))
		fmt.Println(theme.MutedStyle.Render("# active target: " + cli.Container.TargetName))
	}

	data, err := cfg.Marshal()
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	fmt.Print(string(data))
	return nil
}
