package session

import (
	"testing"

	"github.com/renato0307/remux/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewBindingValidates(t *testing.T) {
	_, err := NewBinding(Binding{ID: "bad id"})
	assert.ErrorIs(t, err, domain.ErrValidation)

	_, err = NewBinding(Binding{ID: "dev", Env: map[string]string{"A-B": "1"}})
	assert.ErrorIs(t, err, domain.ErrValidation)

	b, err := NewBinding(Binding{ID: "dev"})
	require.NoError(t, err)
	assert.Equal(t, domain.DefaultWorkdir, b.Workdir)
}

func TestBindingWrapCommand(t *testing.T) {
	b, err := NewBinding(Binding{ID: "dev", Env: map[string]string{"PORT": "3000"}})
	require.NoError(t, err)

	command, err := b.WrapCommand("npm run dev", "/srv/app")
	require.NoError(t, err)

	assert.True(t, len(command) > len("bash -lc "))
	assert.Contains(t, command, "bash -lc ")
	assert.Contains(t, command, "set -e")
	assert.Contains(t, command, "kill-session")
	assert.Contains(t, command, "new-session -d")
	assert.Contains(t, command, "PORT=")
	assert.NotContains(t, command, "sleep 1")
}

func TestBindingKeepExisting(t *testing.T) {
	b, err := NewBinding(Binding{ID: "dev", KeepExisting: true})
	require.NoError(t, err)

	command, err := b.WrapCommand("npm run dev", "")
	require.NoError(t, err)
	assert.NotContains(t, command, "kill-session")
}

func TestBindingWrapServiceCommandWaits(t *testing.T) {
	b, err := NewBinding(Binding{ID: "dev"})
	require.NoError(t, err)

	command, err := b.WrapServiceCommand("npm run dev", "")
	require.NoError(t, err)
	assert.Contains(t, command, "sleep 1")
	assert.Contains(t, command, "has-session")
}

func TestBindingCommands(t *testing.T) {
	b, err := NewBinding(Binding{ID: "dev"})
	require.NoError(t, err)

	assert.Equal(t, "tmux attach -r -t '=dev'", b.AttachCommand(true))
	assert.Equal(t, "tmux attach -t '=dev'", b.AttachCommand(false))

	capture, err := b.CaptureOutputCommand(domain.ReadOptions{Lines: 50})
	require.NoError(t, err)
	assert.Equal(t, "tmux capture-pane -p -t '=dev:' -S -50", capture)
}
