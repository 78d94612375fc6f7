package session

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/renato0307/remux/internal/domain"
	"github.com/renato0307/remux/internal/poll"
	"github.com/renato0307/remux/internal/ports"
	"github.com/renato0307/remux/internal/shell"
)

const (
	// DefaultConnectTimeout bounds WaitForConnection
	DefaultConnectTimeout = 10 * time.Second
	connectPollInterval   = 250 * time.Millisecond
)

// Handle is a client-side proxy for one session. It owns no remote state.
// Once disconnected it never reconnects; connect again for a fresh handle.
type Handle struct {
	registry *Registry
	id       string

	mu           sync.Mutex
	disconnected bool
	errMsg       string
	exitCode     *int
}

var _ ports.Terminal = (*Handle)(nil)

func newHandle(registry *Registry, id string) *Handle {
	return &Handle{registry: registry, id: id}
}

// ID returns the session id
func (h *Handle) ID() string {
	return h.id
}

// ExitCode returns the exit status learned by the last completed wait
func (h *Handle) ExitCode() *int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.exitCode
}

// Err returns the last error message recorded on the handle
func (h *Handle) Err() string {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.errMsg
}

// Disconnected reports whether the handle has been closed
func (h *Handle) Disconnected() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.disconnected
}

// Disconnect closes the handle without touching the remote session
func (h *Handle) Disconnect() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.disconnected = true
}

func (h *Handle) ensureConnected() error {
	if h.Disconnected() {
		return fmt.Errorf("%w: %s", domain.ErrHandleDisconnected, h.id)
	}
	return nil
}

func (h *Handle) markExited(code *int) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.disconnected = true
	h.exitCode = code
}

func (h *Handle) setError(msg string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.errMsg = msg
}

// SendInput pastes data into the session
func (h *Handle) SendInput(ctx context.Context, data string) error {
	if err := h.ensureConnected(); err != nil {
		return err
	}
	return h.registry.SendInput(ctx, h.id, data)
}

// Read captures the session's visible buffer
func (h *Handle) Read(ctx context.Context, opts domain.ReadOptions) (string, error) {
	if err := h.ensureConnected(); err != nil {
		return "", err
	}
	return h.registry.ReadOutput(ctx, h.id, opts)
}

// Resize changes the session's window size
func (h *Handle) Resize(ctx context.Context, size domain.Size) (domain.SessionInfo, error) {
	if err := h.ensureConnected(); err != nil {
		return domain.SessionInfo{}, err
	}
	return h.registry.Resize(ctx, h.id, size)
}

// Kill destroys the remote session and closes the handle
func (h *Handle) Kill(ctx context.Context) error {
	if err := h.registry.Kill(ctx, h.id); err != nil {
		return err
	}
	h.Disconnect()
	return nil
}

// IsConnected is false once the handle is closed, otherwise it asks the remote side
func (h *Handle) IsConnected(ctx context.Context) (bool, error) {
	if h.Disconnected() {
		return false, nil
	}
	return h.registry.HasSession(ctx, h.id)
}

// WaitForConnection polls until the session exists or timeout passes.
// A zero timeout means DefaultConnectTimeout.
func (h *Handle) WaitForConnection(ctx context.Context, timeout time.Duration) error {
	if err := h.ensureConnected(); err != nil {
		return err
	}
	if timeout <= 0 {
		timeout = DefaultConnectTimeout
	}

	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		alive, err := h.registry.HasSession(ctx, h.id)
		if err != nil {
			return err
		}
		if alive {
			return nil
		}
		if !poll.Sleep(ctx, connectPollInterval) {
			return ctx.Err()
		}
	}
	return fmt.Errorf("timed out waiting for session %s connection", h.id)
}

// AttachCommand returns the command to run on the host to attach to the session
func (h *Handle) AttachCommand(readOnly bool) string {
	// The id was validated when the handle was created
	command, _ := shell.BuildAttach(h.id, readOnly)
	return command
}

// CaptureOutputCommand returns the command Read would run
func (h *Handle) CaptureOutputCommand(opts domain.ReadOptions) (string, error) {
	return shell.BuildCapture(h.id, opts.Lines, opts.IncludeEscape)
}

// WrapCommand returns a command that replaces the session with one running command
func (h *Handle) WrapCommand(command, workdir string) (string, error) {
	return Binding{ID: h.id, Workdir: workdir}.WrapCommand(command, workdir)
}
