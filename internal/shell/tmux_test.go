package shell

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/renato0307/remux/internal/domain"
)

func TestBuildCreate(t *testing.T) {
	cmd, err := BuildCreate(CreateSpec{
		Options: domain.CreateOptions{
			ID:      "dev",
			Command: "npm run dev",
			Cwd:     "/repo",
			Env:     map[string]string{"PORT": "3000", "NODE_ENV": "development"},
			Size:    &domain.Size{Cols: 120, Rows: 40},
		},
		StateDir: "/tmp/remux-pty",
	})
	require.NoError(t, err)

	wrapped := "export NODE_ENV='development'; export PORT='3000'; (\nnpm run dev\n)" +
		`; __remux_status=$?; printf '%s' "$__remux_status" > '/tmp/remux-pty/dev.exit'; exit "$__remux_status"`
	expected := "mkdir -p '/tmp/remux-pty' && rm -f '/tmp/remux-pty/dev.exit' && " +
		"tmux new-session -d -s 'dev' -c '/repo' -x 120 -y 40 " + Quote("bash -lc "+Quote(wrapped))
	assert.Equal(t, expected, cmd)
}

func TestBuildCreate_ResetKillsExistingSession(t *testing.T) {
	cmd, err := BuildCreate(CreateSpec{
		Options: domain.CreateOptions{ID: "dev", Reset: true},
	})
	require.NoError(t, err)

	assert.Contains(t, cmd, "rm -f '/tmp/remux-pty/dev.exit' && (tmux has-session -t '=dev' >/dev/null 2>&1 && tmux kill-session -t '=dev' || true) && tmux new-session")
	assert.Contains(t, cmd, "-c '/root'")
	assert.Contains(t, cmd, "bash -l\n)")
}

func TestBuildCreate_UsesDefaultCwd(t *testing.T) {
	cmd, err := BuildCreate(CreateSpec{
		Options:    domain.CreateOptions{ID: "dev", Command: "true"},
		DefaultCwd: "/workspace",
	})
	require.NoError(t, err)
	assert.Contains(t, cmd, "-c '/workspace'")
	assert.NotContains(t, cmd, "kill-session")
}

func TestBuildCreate_RejectsInvalidInput(t *testing.T) {
	_, err := BuildCreate(CreateSpec{Options: domain.CreateOptions{ID: "rm -rf /; echo"}})
	assert.ErrorIs(t, err, domain.ErrValidation)

	_, err = BuildCreate(CreateSpec{Options: domain.CreateOptions{
		ID:  "dev",
		Env: map[string]string{"A;B": "x"},
	}})
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestBuildCapture(t *testing.T) {
	cmd, err := BuildCapture("dev", 50, true)
	require.NoError(t, err)
	assert.Equal(t, "tmux capture-pane -e -p -t '=dev:' -S -50", cmd)

	cmd, err = BuildCapture("dev", 0, false)
	require.NoError(t, err)
	assert.Equal(t, "tmux capture-pane -p -t '=dev:' -S -200", cmd)

	_, err = BuildCapture("../etc", 10, true)
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestBuildSendInput(t *testing.T) {
	cmd, err := BuildSendInput("dev", "echo 'hi'\n")
	require.NoError(t, err)
	assert.Equal(t,
		"tmux set-buffer -b 'remux-input-dev' -- 'echo '\\''hi'\\''\n' && tmux paste-buffer -d -b 'remux-input-dev' -t '=dev:'",
		cmd)
}

func TestBuildKillAndHasSession(t *testing.T) {
	cmd, err := BuildKill("dev")
	require.NoError(t, err)
	assert.Equal(t, "(tmux has-session -t '=dev' >/dev/null 2>&1 && tmux kill-session -t '=dev' || true)", cmd)

	cmd, err = BuildHasSession("dev")
	require.NoError(t, err)
	assert.Equal(t, "tmux has-session -t '=dev'", cmd)

	_, err = BuildKill("")
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestBuildInfoResizeExitCode(t *testing.T) {
	cmd, err := BuildInfo("dev")
	require.NoError(t, err)
	assert.Equal(t, "tmux display-message -p -t '=dev:' '#{pane_current_path}\t#{window_width}\t#{window_height}\t#{session_created}'", cmd)

	cmd, err = BuildResize("dev", domain.Size{Cols: 100, Rows: 30})
	require.NoError(t, err)
	assert.Equal(t, "tmux resize-window -t '=dev:' -x 100 -y 30", cmd)

	_, err = BuildResize("dev", domain.Size{Cols: -1, Rows: 30})
	assert.ErrorIs(t, err, domain.ErrValidation)

	cmd, err = BuildReadExitCode("/tmp/remux-pty", "dev")
	require.NoError(t, err)
	assert.Equal(t, "if [ -f '/tmp/remux-pty/dev.exit' ]; then cat '/tmp/remux-pty/dev.exit'; fi", cmd)
}

func TestBuildAttach(t *testing.T) {
	cmd, err := BuildAttach("dev", false)
	require.NoError(t, err)
	assert.Equal(t, "tmux attach -t '=dev'", cmd)

	cmd, err = BuildAttach("dev", true)
	require.NoError(t, err)
	assert.Equal(t, "tmux attach -r -t '=dev'", cmd)
}

func TestBuildDetached(t *testing.T) {
	cmd, err := BuildDetached("web", "npm run dev", "/repo", map[string]string{"PORT": "3000"}, nil)
	require.NoError(t, err)
	assert.Equal(t, "tmux new-session -d -s 'web' -c '/repo' "+Quote("bash -lc "+Quote("PORT='3000' npm run dev")), cmd)
}

func TestBuildList(t *testing.T) {
	assert.Equal(t, "tmux list-sessions -F '#{session_name}' 2>/dev/null || true", BuildList())
}

func TestBuildCreate_CommandExitStillWritesSentinel(t *testing.T) {
	cmd, err := BuildCreate(CreateSpec{
		Options: domain.CreateOptions{ID: "job", Command: "echo done; exit 42"},
	})
	require.NoError(t, err)

	wrapped := "(\necho done; exit 42\n)" +
		`; __remux_status=$?; printf '%s' "$__remux_status" > '/tmp/remux-pty/job.exit'; exit "$__remux_status"`
	assert.Contains(t, cmd, Quote("bash -lc "+Quote(wrapped)))
}

func TestSessionName(t *testing.T) {
	tests := []struct {
		id   string
		name string
	}{
		{id: "dev", name: "dev"},
		{id: "web-terminal_1.main", name: "web-terminal_1~main"},
		{id: "a.b.c", name: "a~b~c"},
	}

	for _, tt := range tests {
		t.Run(tt.id, func(t *testing.T) {
			assert.Equal(t, tt.name, SessionName(tt.id))
			assert.Equal(t, tt.id, IDFromSessionName(tt.name))
		})
	}

	assert.NotEqual(t, SessionName("a.b"), SessionName("a_b"))
}

func TestBuildCommands_DottedIDUsesSessionName(t *testing.T) {
	id := "web-terminal_1.main"

	create, err := BuildCreate(CreateSpec{Options: domain.CreateOptions{ID: id, Command: "sleep 3", Reset: true}})
	require.NoError(t, err)
	assert.Contains(t, create, "tmux new-session -d -s 'web-terminal_1~main'")
	assert.Contains(t, create, "tmux kill-session -t '=web-terminal_1~main'")
	assert.Contains(t, create, "'/tmp/remux-pty/web-terminal_1.main.exit'")

	has, err := BuildHasSession(id)
	require.NoError(t, err)
	assert.Equal(t, "tmux has-session -t '=web-terminal_1~main'", has)

	capture, err := BuildCapture(id, 10, false)
	require.NoError(t, err)
	assert.Equal(t, "tmux capture-pane -p -t '=web-terminal_1~main:' -S -10", capture)

	wait, err := BuildWaitWhileAlive(id)
	require.NoError(t, err)
	assert.Contains(t, wait, "tmux has-session -t '=web-terminal_1~main'")
}
