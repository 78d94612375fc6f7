package paths

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetRemuxHome_UsesEnv(t *testing.T) {
	t.Setenv("REMUX_HOME", "/tmp/remux-home")

	assert.Equal(t, "/tmp/remux-home", GetRemuxHome())
	assert.Equal(t, "/tmp/remux-home/history.db", GetDBPath())
	assert.Equal(t, "/tmp/remux-home/config.yaml", GetConfigPath())
}

func TestExpandPath(t *testing.T) {
	homeDir, err := os.UserHomeDir()
	require.NoError(t, err)

	assert.Equal(t, homeDir, ExpandPath("~"))
	assert.Equal(t, filepath.Join(homeDir, ".ssh/id_ed25519"), ExpandPath("~/.ssh/id_ed25519"))
	assert.Equal(t, "/etc/hosts", ExpandPath("/etc/hosts"))
	assert.Equal(t, "", ExpandPath(""))
}
