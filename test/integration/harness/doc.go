// Package harness provides utilities for integration testing the remux CLI.
// It handles binary compilation, environment isolation, and command execution.
//
// Environment variables managed:
//   - REMUX_HOME: Isolated per test (temp directory with a local-target config.yaml)
//   - REMUX_DEBUG: Disabled to reduce noise
//   - TMUX_TMPDIR: Private tmux server per test
package harness
