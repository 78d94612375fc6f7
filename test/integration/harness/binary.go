package harness

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"
)

const (
	// commandTimeout bounds one-shot commands
	commandTimeout = 30 * time.Second
	// waitTimeout bounds commands that block until a session exits
	waitTimeout = 60 * time.Second
)

var (
	binaryPath string
	buildOnce  sync.Once
	buildErr   error
)

// CommandResult holds the result of running a CLI command.
// ExitCode is -1 when the binary could not run or timed out.
type CommandResult struct {
	ExitCode int
	Stderr   string
	Stdout   string
}

// BuildBinary compiles the remux binary once per test run.
// Call this from TestMain before running tests.
func BuildBinary() (string, error) {
	buildOnce.Do(func() {
		root, err := moduleRoot()
		if err != nil {
			buildErr = fmt.Errorf("locate module root: %w", err)
			return
		}

		dir, err := os.MkdirTemp("", "remux-integration-test-*")
		if err != nil {
			buildErr = err
			return
		}
		binaryPath = filepath.Join(dir, "remux")

		build := exec.Command("go", "build", "-o", binaryPath, ".")
		build.Dir = root
		build.Stdout = os.Stdout
		build.Stderr = os.Stderr
		if err := build.Run(); err != nil {
			buildErr = fmt.Errorf("go build: %w", err)
		}
	})

	return binaryPath, buildErr
}

// CleanupBinary removes the compiled binary and its temp directory.
// Call this from TestMain after tests complete.
func CleanupBinary() {
	if binaryPath != "" {
		_ = os.RemoveAll(filepath.Dir(binaryPath))
	}
}

// RunCommand runs remux with args in env
func RunCommand(tb testing.TB, env *TestEnvironment, args ...string) CommandResult {
	tb.Helper()
	return run(tb, env, commandTimeout, nil, args)
}

// RunWait runs a remux command that blocks on a session, with a longer timeout
func RunWait(tb testing.TB, env *TestEnvironment, args ...string) CommandResult {
	tb.Helper()
	return run(tb, env, waitTimeout, nil, args)
}

// RunWithStdin runs remux with stdin connected to input
func RunWithStdin(tb testing.TB, env *TestEnvironment, input string, args ...string) CommandResult {
	tb.Helper()
	return run(tb, env, commandTimeout, strings.NewReader(input), args)
}

func run(tb testing.TB, env *TestEnvironment, timeout time.Duration, stdin io.Reader, args []string) CommandResult {
	tb.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, binaryPath, args...)
	cmd.Env = env.Environ()
	cmd.Stdin = stdin
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	result := CommandResult{}
	err := cmd.Run()

	var exitErr *exec.ExitError
	switch {
	case ctx.Err() != nil:
		tb.Logf("remux %s timed out after %v", strings.Join(args, " "), timeout)
		result.ExitCode = -1
	case errors.As(err, &exitErr):
		result.ExitCode = exitErr.ExitCode()
	case err != nil:
		tb.Logf("remux %s did not run: %v", strings.Join(args, " "), err)
		result.ExitCode = -1
	}

	result.Stdout = stdout.String()
	result.Stderr = stderr.String()
	return result
}

// moduleRoot is the directory holding go.mod
func moduleRoot() (string, error) {
	out, err := exec.Command("go", "env", "GOMOD").Output()
	if err != nil {
		return "", err
	}
	gomod := strings.TrimSpace(string(out))
	if gomod == "" || gomod == os.DevNull {
		return "", errors.New("not inside a module")
	}
	return filepath.Dir(gomod), nil
}
