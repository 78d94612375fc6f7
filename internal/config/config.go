// Package config loads $REMUX_HOME/config.yaml: named targets and operational defaults.
package config

import (
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/renato0307/remux/internal/domain"
	"github.com/renato0307/remux/internal/paths"
	"github.com/renato0307/remux/internal/shell"
)

// Target kinds
const (
	KindLocal = "local"
	KindSSH   = "ssh"
)

// LocalTargetName names the implicit target used when no target is configured
const LocalTargetName = "local"

// Target is a host sessions run on
type Target struct {
	Host                  string        `yaml:"host,omitempty"`
	IdentityFile          string        `yaml:"identity_file,omitempty"`
	InsecureIgnoreHostKey bool          `yaml:"insecure_ignore_host_key,omitempty"`
	KnownHostsFile        string        `yaml:"known_hosts_file,omitempty"`
	Kind                  string        `yaml:"kind"`
	Port                  int           `yaml:"port,omitempty"`
	Shell                 string        `yaml:"shell,omitempty"`
	Timeout               time.Duration `yaml:"timeout,omitempty"`
	User                  string        `yaml:"user,omitempty"`
}

// Defaults are operational settings shared by every target
type Defaults struct {
	CaptureLines    int           `yaml:"capture_lines"`
	JournalUnit     string        `yaml:"journal_unit"`
	LogPollInterval time.Duration `yaml:"log_poll_interval"`
	MaxLogFiles     *int          `yaml:"max_log_files,omitempty"`
	PollInterval    time.Duration `yaml:"poll_interval"`
	StateDir        string        `yaml:"state_dir"`
	WaitLines       int           `yaml:"wait_lines"`
	Workdir         string        `yaml:"workdir"`
}

// Config represents the structure of $REMUX_HOME/config.yaml
type Config struct {
	DefaultTarget string            `yaml:"default_target,omitempty"`
	Defaults      Defaults          `yaml:"defaults"`
	Targets       map[string]Target `yaml:"targets,omitempty"`
}

// DefaultDefaults returns the built-in operational defaults
func DefaultDefaults() Defaults {
	return Defaults{
		CaptureLines:    200,
		JournalUnit:     shell.DefaultUnit,
		LogPollInterval: time.Second,
		PollInterval:    500 * time.Millisecond,
		StateDir:        domain.DefaultStateDir,
		WaitLines:       300,
		Workdir:         domain.DefaultWorkdir,
	}
}

// Load reads the config file at path, or GetConfigPath when path is empty.
// A missing file is not an error; built-in defaults are returned.
func Load(path string) (*Config, error) {
	if path == "" {
		path = paths.GetConfigPath()
	}

	cfg := &Config{Defaults: DefaultDefaults()}
	data, err := os.ReadFile(paths.ExpandPath(path))
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("invalid config.yaml: %w", err)
	}
	cfg.fillDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// fillDefaults replaces zero values left by a partial defaults block
func (c *Config) fillDefaults() {
	d := DefaultDefaults()
	if c.Defaults.CaptureLines <= 0 {
		c.Defaults.CaptureLines = d.CaptureLines
	}
	if c.Defaults.JournalUnit == "" {
		c.Defaults.JournalUnit = d.JournalUnit
	}
	if c.Defaults.LogPollInterval <= 0 {
		c.Defaults.LogPollInterval = d.LogPollInterval
	}
	if c.Defaults.PollInterval <= 0 {
		c.Defaults.PollInterval = d.PollInterval
	}
	if c.Defaults.StateDir == "" {
		c.Defaults.StateDir = d.StateDir
	}
	if c.Defaults.WaitLines <= 0 {
		c.Defaults.WaitLines = d.WaitLines
	}
	if c.Defaults.Workdir == "" {
		c.Defaults.Workdir = d.Workdir
	}
}

// Validate checks targets and the default target reference
func (c *Config) Validate() error {
	for name, t := range c.Targets {
		if strings.TrimSpace(name) == "" {
			return errors.New("target name is required")
		}
		switch t.Kind {
		case KindLocal:
		case KindSSH:
			if t.Host == "" {
				return fmt.Errorf("target %q: host is required", name)
			}
			if t.User == "" {
				return fmt.Errorf("target %q: user is required", name)
			}
			if t.Port < 0 || t.Port > 65535 {
				return fmt.Errorf("target %q: invalid port %d", name, t.Port)
			}
		default:
			return fmt.Errorf("target %q: unknown kind %q (want %s or %s)", name, t.Kind, KindSSH, KindLocal)
		}
	}

	if c.DefaultTarget != "" {
		if _, ok := c.Targets[c.DefaultTarget]; !ok {
			return fmt.Errorf("default_target %q is not defined in targets", c.DefaultTarget)
		}
	}

	if err := shell.ValidateUnit(c.Defaults.JournalUnit); err != nil {
		return err
	}
	if c.Defaults.MaxLogFiles != nil && *c.Defaults.MaxLogFiles < 0 {
		return errors.New("max_log_files must not be negative")
	}
	return nil
}

// ResolveTarget picks the target named by name, then REMUX_TARGET, then
// default_target. With none of those set, the implicit local target is used.
func (c *Config) ResolveTarget(name string) (string, Target, error) {
	if name == "" {
		name = os.Getenv("REMUX_TARGET")
	}
	if name == "" {
		name = c.DefaultTarget
	}
	if name == "" || (name == LocalTargetName && !c.hasTarget(name)) {
		return LocalTargetName, Target{Kind: KindLocal}, nil
	}

	t, ok := c.Targets[name]
	if !ok {
		return "", Target{}, fmt.Errorf("unknown target %q (configured: %s)", name, strings.Join(c.TargetNames(), ", "))
	}
	return name, t, nil
}

func (c *Config) hasTarget(name string) bool {
	_, ok := c.Targets[name]
	return ok
}

// TargetNames returns configured target names in order
func (c *Config) TargetNames() []string {
	names := make([]string, 0, len(c.Targets))
	for name := range c.Targets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Marshal renders the configuration as YAML
func (c *Config) Marshal() ([]byte, error) {
	return yaml.Marshal(c)
}
