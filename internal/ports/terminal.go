package ports

import "github.com/renato0307/remux/internal/domain"

// Terminal is anything with a tmux-like attach, wrap and capture surface.
// Session bindings, live handles and dev-server wrappers all provide it.
type Terminal interface {
	AttachCommand(readOnly bool) string
	CaptureOutputCommand(opts domain.ReadOptions) (string, error)
	WrapCommand(command, workdir string) (string, error)
}
