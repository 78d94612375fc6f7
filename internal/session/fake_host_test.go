package session

import (
	"context"
	"regexp"
	"strings"
	"sync"

	"github.com/renato0307/remux/internal/ports"
	"github.com/renato0307/remux/internal/shell"
)

var targetPattern = regexp.MustCompile(`-[ts] '=?([^':]+):?'`)

// fakeSession is one entry in fakeHost's session table
type fakeSession struct {
	info   string
	output string
	// captures counts capture-pane calls; the session dies with exitCode after dieAfter of them
	captures int
	dieAfter int
	exitCode string
}

// fakeHost answers the tmux commands the registry issues from an in-memory table
type fakeHost struct {
	mu        sync.Mutex
	calls     []string
	exitFiles map[string]string
	sessions  map[string]*fakeSession
	// onCapture may change a session's output before it is captured
	onCapture func(id string, s *fakeSession)
	// transportFailures makes the next n calls fail at the transport
	transportFailures int
}

func newFakeHost() *fakeHost {
	return &fakeHost{
		exitFiles: map[string]string{},
		sessions:  map[string]*fakeSession{},
	}
}

func status(code int) *int {
	return &code
}

func ok(stdout string) ports.ExecResult {
	return ports.ExecResult{StatusCode: status(0), Stdout: stdout}
}

func failed(code int, stderr string) ports.ExecResult {
	return ports.ExecResult{StatusCode: status(code), Stderr: stderr}
}

func (f *fakeHost) add(id string, s *fakeSession) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sessions[id] = s
}

func (f *fakeHost) commands() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.calls...)
}

func (f *fakeHost) Exec(_ context.Context, command string) (ports.ExecResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, command)

	if f.transportFailures > 0 {
		f.transportFailures--
		return ports.ExecResult{}, ports.ErrTransport
	}

	id := ""
	if m := targetPattern.FindStringSubmatch(command); m != nil {
		id = shell.IDFromSessionName(m[1])
	}
	s, alive := f.sessions[id]

	switch {
	case strings.HasPrefix(command, "mkdir -p"):
		if alive && !strings.Contains(command, "kill-session") {
			return failed(1, "duplicate session: "+id), nil
		}
		f.sessions[id] = &fakeSession{dieAfter: -1}
		return ok(""), nil
	case strings.HasPrefix(command, "(tmux has-session"):
		delete(f.sessions, id)
		return ok(""), nil
	case strings.HasPrefix(command, "tmux has-session"):
		if !alive {
			return failed(1, "can't find session: "+id), nil
		}
		return ok(""), nil
	case strings.HasPrefix(command, "tmux list-sessions"):
		var names []string
		for id := range f.sessions {
			names = append(names, shell.SessionName(id))
		}
		return ok(strings.Join(names, "\n")), nil
	case strings.HasPrefix(command, "tmux display-message"):
		if !alive {
			return failed(1, "can't find session: "+id), nil
		}
		return ok(s.info), nil
	case strings.HasPrefix(command, "tmux capture-pane"):
		if !alive {
			return failed(1, "can't find session: "+id), nil
		}
		s.captures++
		if f.onCapture != nil {
			f.onCapture(id, s)
		}
		out := s.output
		if s.dieAfter >= 0 && s.captures >= s.dieAfter {
			delete(f.sessions, id)
			if s.exitCode != "" {
				f.exitFiles[id] = s.exitCode
			}
		}
		return ok(out), nil
	case strings.HasPrefix(command, "tmux set-buffer"):
		if !alive {
			return failed(1, "can't find session: "+id), nil
		}
		s.output += "input\n"
		return ok(""), nil
	case strings.HasPrefix(command, "tmux resize-window"):
		if !alive {
			return failed(1, "can't find session: "+id), nil
		}
		return ok(""), nil
	case strings.HasPrefix(command, "if [ -f"):
		for name, code := range f.exitFiles {
			if strings.Contains(command, "/"+name+".exit") {
				return ok(code), nil
			}
		}
		return ok(""), nil
	}
	return failed(127, "unexpected command: "+command), nil
}
