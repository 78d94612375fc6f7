package harness

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"
)

// TestEnvironment provides an isolated test environment with its own REMUX_HOME,
// its own tmux server and a local target whose state and work dirs live in temp.
type TestEnvironment struct {
	RemuxHome string
	StateDir  string
	TmuxDir   string
	Workdir   string
	extraEnv  map[string]string
	tb        testing.TB
}

// NewTestEnvironment creates an isolated test environment with a temp REMUX_HOME
// and a config.yaml pointing the local target at temp directories.
// Everything, including the private tmux server, is cleaned up when the test completes.
func NewTestEnvironment(tb testing.TB) *TestEnvironment {
	tb.Helper()

	root := tb.TempDir()
	env := &TestEnvironment{
		RemuxHome: filepath.Join(root, "home"),
		StateDir:  filepath.Join(root, "state"),
		Workdir:   filepath.Join(root, "work"),
		extraEnv:  make(map[string]string),
		tb:        tb,
	}

	for _, dir := range []string{env.RemuxHome, env.StateDir, env.Workdir} {
		if err := os.MkdirAll(dir, 0755); err != nil {
			tb.Fatalf("Failed to create %s: %v", dir, err)
		}
	}

	// tmux sockets have a short path limit, so they do not live under TempDir
	tmuxDir, err := os.MkdirTemp("", "remux-tmux-")
	if err != nil {
		tb.Fatalf("Failed to create tmux socket directory: %v", err)
	}
	env.TmuxDir = tmuxDir

	config := fmt.Sprintf(`defaults:
  poll_interval: 100ms
  log_poll_interval: 100ms
  state_dir: %s
  workdir: %s
`, env.StateDir, env.Workdir)
	if err := os.WriteFile(env.ConfigPath(), []byte(config), 0644); err != nil {
		tb.Fatalf("Failed to write config: %v", err)
	}

	tb.Cleanup(func() {
		kill := exec.Command("tmux", "kill-server")
		kill.Env = env.Environ()
		_ = kill.Run()
		_ = os.RemoveAll(tmuxDir)
	})

	return env
}

// Environ returns environment variables configured for test isolation.
// It filters out REMUX_* and TMUX variables and sets:
//   - REMUX_HOME to the temp directory
//   - REMUX_DEBUG to empty string (disables debug logging)
//   - TMUX_TMPDIR to a private socket directory
func (e *TestEnvironment) Environ() []string {
	env := make([]string, 0, len(os.Environ())+3+len(e.extraEnv))

	overrideKeys := map[string]bool{
		"REMUX_HOME":  true,
		"REMUX_DEBUG": true,
		"TMUX":        true,
		"TMUX_TMPDIR": true,
	}
	for k := range e.extraEnv {
		overrideKeys[k] = true
	}

	for _, kv := range os.Environ() {
		key, _, _ := strings.Cut(kv, "=")
		if strings.HasPrefix(key, "REMUX_") || overrideKeys[key] {
			continue
		}
		env = append(env, kv)
	}

	env = append(env,
		"REMUX_HOME="+e.RemuxHome,
		"REMUX_DEBUG=",
		"TMUX_TMPDIR="+e.TmuxDir,
	)

	for k, v := range e.extraEnv {
		env = append(env, k+"="+v)
	}

	return env
}

// ConfigPath returns the path to the test config.yaml
func (e *TestEnvironment) ConfigPath() string {
	return filepath.Join(e.RemuxHome, "config.yaml")
}

// DBPath returns the path to the test history database
func (e *TestEnvironment) DBPath() string {
	return filepath.Join(e.RemuxHome, "history.db")
}

// ExitSentinelPath returns where a session's exit status is written
func (e *TestEnvironment) ExitSentinelPath(id string) string {
	return filepath.Join(e.StateDir, id+".exit")
}

// SetEnv sets an additional environment variable for this test environment.
func (e *TestEnvironment) SetEnv(key, value string) {
	if e.extraEnv == nil {
		e.extraEnv = make(map[string]string)
	}
	e.extraEnv[key] = value
}

// RequireTmux skips the test when tmux is not installed
func RequireTmux(tb testing.TB) {
	tb.Helper()
	if _, err := exec.LookPath("tmux"); err != nil {
		tb.Skip("tmux not installed")
	}
}
