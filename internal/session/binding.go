package session

import (
	"strings"

	"github.com/renato0307/remux/internal/domain"
	"github.com/renato0307/remux/internal/ports"
	"github.com/renato0307/remux/internal/shell"
)

// Binding describes a session declaratively so that other commands, such as a
// service unit's ExecStart, can start it and capture it.
type Binding struct {
	Env map[string]string
	ID  string
	// KeepExisting leaves a running session with the same id alone instead of replacing it
	KeepExisting bool
	Size         *domain.Size
	Workdir      string
}

var _ ports.Terminal = Binding{}

// NewBinding validates the binding's identifiers
func NewBinding(b Binding) (Binding, error) {
	if err := domain.ValidateSessionID(b.ID); err != nil {
		return Binding{}, err
	}
	for key := range b.Env {
		if err := domain.ValidateEnvKey(key); err != nil {
			return Binding{}, err
		}
	}
	if b.Workdir == "" {
		b.Workdir = domain.DefaultWorkdir
	}
	return b, nil
}

// AttachCommand returns the command to run on the host to attach to the session
func (b Binding) AttachCommand(readOnly bool) string {
	// The id was validated by NewBinding
	command, _ := shell.BuildAttach(b.ID, readOnly)
	return command
}

// WrapCommand returns a command that starts command in the bound session and returns
func (b Binding) WrapCommand(command, workdir string) (string, error) {
	script, err := b.script(command, workdir)
	if err != nil {
		return "", err
	}
	return "bash -lc " + shell.Quote(strings.Join(script, "\n")), nil
}

// WrapServiceCommand is WrapCommand followed by a foreground wait for the session
// to end, so a service supervisor observes the session's lifetime.
func (b Binding) WrapServiceCommand(command, workdir string) (string, error) {
	script, err := b.script(command, workdir)
	if err != nil {
		return "", err
	}
	wait, err := shell.BuildWaitWhileAlive(b.ID)
	if err != nil {
		return "", err
	}
	script = append(script, wait)
	return "bash -lc " + shell.Quote(strings.Join(script, "\n")), nil
}

// CaptureOutputCommand returns the capture command for the bound session
func (b Binding) CaptureOutputCommand(opts domain.ReadOptions) (string, error) {
	return shell.BuildCapture(b.ID, opts.Lines, opts.IncludeEscape)
}

func (b Binding) script(command, workdir string) ([]string, error) {
	if workdir == "" {
		workdir = b.Workdir
	}
	detached, err := shell.BuildDetached(b.ID, command, workdir, b.Env, b.Size)
	if err != nil {
		return nil, err
	}

	reset := "true"
	if !b.KeepExisting {
		if reset, err = shell.BuildKill(b.ID); err != nil {
			return nil, err
		}
	}
	return []string{"set -e", reset, detached}, nil
}
