package shell

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/renato0307/remux/internal/domain"
)

func TestBuildTail_InitialRead(t *testing.T) {
	cmd := BuildTail(TailOptions{
		Unit:       "web",
		Lines:      200,
		Since:      "10 min ago",
		ShowCursor: true,
		Output:     "cat",
	})
	assert.Equal(t, "journalctl -u 'web' --no-pager -o 'cat' -n 200 --since '10 min ago' --show-cursor", cmd)
}

func TestBuildTail_CursorTakesPrecedence(t *testing.T) {
	cmd := BuildTail(TailOptions{
		AfterCursor: "s=abc;i=1f",
		Lines:       200,
		Since:       "yesterday",
		ShowCursor:  true,
	})
	assert.Equal(t, "journalctl -u 'npm-dev' --no-pager --after-cursor 's=abc;i=1f' --show-cursor", cmd)
}

func TestBuildRestartUnit(t *testing.T) {
	cmd, err := BuildRestartUnit("")
	require.NoError(t, err)
	assert.Equal(t, "systemctl restart 'npm-dev'", cmd)

	_, err = BuildRestartUnit("web; reboot")
	assert.ErrorIs(t, err, domain.ErrValidation)
}
