package shell

import (
	"fmt"
	"path"
	"strings"

	"github.com/renato0307/remux/internal/domain"
)

// DefaultCaptureLines is the scrollback captured when no line count is given
const DefaultCaptureLines = 200

// InfoFormat is the display-message format parsed by session info queries
const InfoFormat = "#{pane_current_path}\t#{window_width}\t#{window_height}\t#{session_created}"

// tmux rewrites '.' in session names, so ids map to names with '~', which ids never contain
const (
	idDot   = "."
	nameDot = "~"
)

// SessionName returns the tmux session name for id
func SessionName(id string) string {
	return strings.ReplaceAll(id, idDot, nameDot)
}

// IDFromSessionName reverses SessionName
func IDFromSessionName(name string) string {
	return strings.ReplaceAll(name, nameDot, idDot)
}

// sessionTarget matches the session exactly, never by prefix or pattern
func sessionTarget(id string) string {
	return Quote("=" + SessionName(id))
}

// paneTarget is the current pane of the session's current window
func paneTarget(id string) string {
	return Quote("=" + SessionName(id) + ":")
}

// ExitSentinelPath returns the file the wrapped command writes its exit status to
func ExitSentinelPath(stateDir, id string) string {
	return path.Join(stateDir, id+".exit")
}

// BuildHasSession exits zero only when the session exists
func BuildHasSession(id string) (string, error) {
	if err := domain.ValidateSessionID(id); err != nil {
		return "", err
	}
	return "tmux has-session -t " + sessionTarget(id), nil
}

// BuildKill kills the session if it exists and always exits zero
func BuildKill(id string) (string, error) {
	if err := domain.ValidateSessionID(id); err != nil {
		return "", err
	}
	return killIfExists(id), nil
}

func killIfExists(id string) string {
	t := sessionTarget(id)
	return fmt.Sprintf("(tmux has-session -t %s >/dev/null 2>&1 && tmux kill-session -t %s || true)", t, t)
}

// BuildList prints one live session name per line, or nothing when no server runs.
// Names are mapped back to ids with IDFromSessionName.
func BuildList() string {
	return "tmux list-sessions -F " + Quote("#{session_name}") + " 2>/dev/null || true"
}

// BuildInfo prints cwd, width, height and creation time separated by tabs
func BuildInfo(id string) (string, error) {
	if err := domain.ValidateSessionID(id); err != nil {
		return "", err
	}
	return fmt.Sprintf("tmux display-message -p -t %s %s", paneTarget(id), Quote(InfoFormat)), nil
}

// BuildResize resizes the session's window
func BuildResize(id string, size domain.Size) (string, error) {
	if err := domain.ValidateSessionID(id); err != nil {
		return "", err
	}
	if err := size.Validate(); err != nil {
		return "", err
	}
	return fmt.Sprintf("tmux resize-window -t %s -x %d -y %d", paneTarget(id), size.Cols, size.Rows), nil
}

// BuildCapture dumps the last lines of the session's buffer,
// with terminal control sequences when includeEscape is set
func BuildCapture(id string, lines int, includeEscape bool) (string, error) {
	if err := domain.ValidateSessionID(id); err != nil {
		return "", err
	}
	if lines <= 0 {
		lines = DefaultCaptureLines
	}
	escape := ""
	if includeEscape {
		escape = "-e"
	}
	return join("tmux capture-pane", escape, "-p", "-t "+paneTarget(id), fmt.Sprintf("-S -%d", lines)), nil
}

// InputBufferName is the paste buffer used for input to one session
func InputBufferName(id string) string {
	return "remux-input-" + id
}

// BuildSendInput stages data in a session-scoped paste buffer and pastes it as
// keystrokes. The buffer is deleted by the paste.
func BuildSendInput(id, data string) (string, error) {
	if err := domain.ValidateSessionID(id); err != nil {
		return "", err
	}
	buffer := Quote(InputBufferName(id))
	return fmt.Sprintf("tmux set-buffer -b %s -- %s && tmux paste-buffer -d -b %s -t %s",
		buffer, Quote(data), buffer, paneTarget(id)), nil
}

// BuildReadExitCode prints the exit sentinel when present and nothing otherwise
func BuildReadExitCode(stateDir, id string) (string, error) {
	if err := domain.ValidateSessionID(id); err != nil {
		return "", err
	}
	p := Quote(ExitSentinelPath(stateDir, id))
	return fmt.Sprintf("if [ -f %s ]; then cat %s; fi", p, p), nil
}

// BuildAttach returns the command a user runs on the host to attach to the session
func BuildAttach(id string, readOnly bool) (string, error) {
	if err := domain.ValidateSessionID(id); err != nil {
		return "", err
	}
	flag := ""
	if readOnly {
		flag = "-r"
	}
	return join("tmux attach", flag, "-t", sessionTarget(id)), nil
}

// CreateSpec is everything BuildCreate needs beyond the caller's options
type CreateSpec struct {
	DefaultCwd string
	Options    domain.CreateOptions
	StateDir   string
}

// BuildCreate returns one command that prepares the state directory, clears the
// stale exit sentinel, optionally kills a session with the same id, and starts the
// user command detached. The command runs in a subshell so that its own exit
// still reaches the sentinel write, and the session exits with the same status.
func BuildCreate(spec CreateSpec) (string, error) {
	opts := spec.Options
	if err := opts.Validate(); err != nil {
		return "", err
	}

	exports, err := envAssignments(opts.Env)
	if err != nil {
		return "", err
	}

	command := opts.Command
	if strings.TrimSpace(command) == "" {
		command = domain.DefaultCommand
	}
	cwd := opts.Cwd
	if cwd == "" {
		cwd = spec.DefaultCwd
	}
	if cwd == "" {
		cwd = domain.DefaultWorkdir
	}
	stateDir := spec.StateDir
	if stateDir == "" {
		stateDir = domain.DefaultStateDir
	}
	exitPath := Quote(ExitSentinelPath(stateDir, opts.ID))

	var wrapped strings.Builder
	for _, assignment := range exports {
		wrapped.WriteString("export " + assignment + "; ")
	}
	wrapped.WriteString("(\n" + command + "\n)")
	wrapped.WriteString(`; __remux_status=$?; printf '%s' "$__remux_status" > ` + exitPath + `; exit "$__remux_status"`)

	parts := []string{
		"mkdir -p " + Quote(stateDir),
		"rm -f " + exitPath,
	}
	if opts.Reset {
		parts = append(parts, killIfExists(opts.ID))
	}
	parts = append(parts, newSession(opts.ID, cwd, opts.Size, "bash -lc "+Quote(wrapped.String())))

	return strings.Join(parts, " && "), nil
}

// BuildDetached starts command in a new detached session without an exit sentinel.
// Env values are passed as KEY='value' prefixes.
func BuildDetached(id, command, cwd string, env map[string]string, size *domain.Size) (string, error) {
	if err := domain.ValidateSessionID(id); err != nil {
		return "", err
	}
	assignments, err := envAssignments(env)
	if err != nil {
		return "", err
	}
	if cwd == "" {
		cwd = domain.DefaultWorkdir
	}
	run := join(strings.Join(assignments, " "), command)
	return newSession(id, cwd, size, "bash -lc "+Quote(run)), nil
}

func newSession(id, cwd string, size *domain.Size, shellCommand string) string {
	var cols, rows string
	if size != nil {
		cols = fmt.Sprintf("-x %d", size.Cols)
		rows = fmt.Sprintf("-y %d", size.Rows)
	}
	return join("tmux new-session -d", "-s "+Quote(SessionName(id)), "-c "+Quote(cwd), cols, rows, Quote(shellCommand))
}

// BuildWaitWhileAlive blocks in the foreground until the session is gone
func BuildWaitWhileAlive(id string) (string, error) {
	if err := domain.ValidateSessionID(id); err != nil {
		return "", err
	}
	return fmt.Sprintf("while tmux has-session -t %s >/dev/null 2>&1; do\n  sleep 1\ndone", sessionTarget(id)), nil
}
