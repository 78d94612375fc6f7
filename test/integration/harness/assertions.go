package harness

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// AssertSuccess verifies the command exited 0
func AssertSuccess(tb testing.TB, result CommandResult) {
	tb.Helper()
	AssertExitCode(tb, result, 0)
}

// AssertFailure verifies the command exited non-zero
func AssertFailure(tb testing.TB, result CommandResult) {
	tb.Helper()
	assert.NotEqual(tb, 0, result.ExitCode, "expected failure.\nstdout: %s", result.Stdout)
}

// AssertExitCode verifies the command exited with want
func AssertExitCode(tb testing.TB, result CommandResult, want int) {
	tb.Helper()
	assert.Equal(tb, want, result.ExitCode, "exit code.\nstdout: %s\nstderr: %s", result.Stdout, result.Stderr)
}

// AssertStdoutContains verifies stdout contains want
func AssertStdoutContains(tb testing.TB, result CommandResult, want string) {
	tb.Helper()
	assert.Contains(tb, result.Stdout, want)
}

// AssertStdoutNotContains verifies stdout does not contain unwanted
func AssertStdoutNotContains(tb testing.TB, result CommandResult, unwanted string) {
	tb.Helper()
	assert.NotContains(tb, result.Stdout, unwanted)
}

// AssertStderrContains verifies stderr contains want
func AssertStderrContains(tb testing.TB, result CommandResult, want string) {
	tb.Helper()
	assert.Contains(tb, result.Stderr, want)
}

// DecodeJSON requires a successful command with JSON on stdout and decodes it
func DecodeJSON[T any](tb testing.TB, result CommandResult) T {
	tb.Helper()
	AssertSuccess(tb, result)

	var v T
	require.NoError(tb, json.Unmarshal([]byte(result.Stdout), &v), "stdout is not JSON: %s", result.Stdout)
	return v
}

// Outcome is the state and exit code remux reports for a session, from
// `sessions wait --format json` or `history --format json`
type Outcome struct {
	ExitCode *int   `json:"exit_code"`
	State    string `json:"state"`
}

// AssertOutcome verifies a reported state and exit code; a nil exitCode means unknown
func AssertOutcome(tb testing.TB, got Outcome, state string, exitCode *int) {
	tb.Helper()
	assert.Equal(tb, state, got.State)
	if exitCode == nil {
		assert.Nil(tb, got.ExitCode)
		return
	}
	if assert.NotNil(tb, got.ExitCode, "exit code missing") {
		assert.Equal(tb, *exitCode, *got.ExitCode)
	}
}

// WaitOutcome waits on one session and returns its reported outcome
func WaitOutcome(tb testing.TB, env *TestEnvironment, id string) Outcome {
	tb.Helper()
	outcomes := DecodeJSON[[]Outcome](tb, RunWait(tb, env, "sessions", "wait", "--format", "json", id))
	require.Len(tb, outcomes, 1)
	return outcomes[0]
}

// LatestRun returns the newest history entry of a session
func LatestRun(tb testing.TB, env *TestEnvironment, id string) Outcome {
	tb.Helper()
	runs := DecodeJSON[[]Outcome](tb, RunCommand(tb, env, "history", id, "--format", "json"))
	require.NotEmpty(tb, runs, "no history for %s", id)
	return runs[0]
}

// SessionIDs lists the ids of live sessions
func SessionIDs(tb testing.TB, env *TestEnvironment) []string {
	tb.Helper()
	sessions := DecodeJSON[[]struct {
		ID string `json:"id"`
	}](tb, RunCommand(tb, env, "sessions", "list", "--format", "json"))

	ids := make([]string, 0, len(sessions))
	for _, s := range sessions {
		ids = append(ids, s.ID)
	}
	return ids
}

// Code returns a pointer to an expected exit code
func Code(code int) *int {
	return &code
}
