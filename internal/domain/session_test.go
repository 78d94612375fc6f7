package domain

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateSessionID_Accepts(t *testing.T) {
	tests := []string{
		"web-terminal_1.main",
		"dev",
		"A.B-C_D",
		"123",
	}

	for _, id := range tests {
		t.Run(id, func(t *testing.T) {
			assert.NoError(t, ValidateSessionID(id))
		})
	}
}

func TestValidateSessionID_Rejects(t *testing.T) {
	tests := []struct {
		name string
		id   string
	}{
		{"command injection", "rm -rf /; echo"},
		{"path traversal", "../etc"},
		{"empty", ""},
		{"quote", "it's"},
		{"newline", "a\nb"},
		{"colon target syntax", "sess:0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateSessionID(tt.id)
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrValidation)

			var vErr *ValidationError
			require.True(t, errors.As(err, &vErr))
			assert.Equal(t, tt.id, vErr.Value)
		})
	}
}

func TestValidateEnvKey(t *testing.T) {
	assert.NoError(t, ValidateEnvKey("PORT"))
	assert.NoError(t, ValidateEnvKey("_private1"))
	assert.ErrorIs(t, ValidateEnvKey("1PORT"), ErrValidation)
	assert.ErrorIs(t, ValidateEnvKey("A-B"), ErrValidation)
	assert.ErrorIs(t, ValidateEnvKey("X=$(id)"), ErrValidation)
	assert.ErrorIs(t, ValidateEnvKey(""), ErrValidation)
}

func TestCreateOptionsValidate(t *testing.T) {
	valid := CreateOptions{
		ID:   "dev",
		Env:  map[string]string{"NODE_ENV": "development"},
		Size: &Size{Cols: 120, Rows: 40},
	}
	assert.NoError(t, valid.Validate())

	badEnv := valid
	badEnv.Env = map[string]string{"BAD KEY": "x"}
	assert.ErrorIs(t, badEnv.Validate(), ErrValidation)

	badSize := valid
	badSize.Size = &Size{Cols: 0, Rows: 40}
	assert.ErrorIs(t, badSize.Validate(), ErrValidation)

	badID := valid
	badID.ID = "dev;reboot"
	assert.ErrorIs(t, badID.Validate(), ErrValidation)
}

func TestCommandError(t *testing.T) {
	err := &CommandError{Op: "send input", SessionID: "dev", StatusCode: 1, Stderr: "no server running"}
	assert.ErrorIs(t, err, ErrCommandFailed)
	assert.Equal(t, "send input for session dev failed with status 1: no server running", err.Error())

	createErr := &CommandError{Kind: ErrSessionCreationFailed, Op: "create session", SessionID: "dev", StatusCode: 2}
	assert.ErrorIs(t, createErr, ErrSessionCreationFailed)
	assert.NotErrorIs(t, createErr, ErrCommandFailed)
}

func TestNotFoundError(t *testing.T) {
	err := NotFoundError("dev")
	assert.ErrorIs(t, err, ErrSessionNotFound)
	assert.Contains(t, err.Error(), "dev")
}

func TestWaitStateTerminal(t *testing.T) {
	assert.True(t, WaitExited.Terminal())
	assert.True(t, WaitTimedOut.Terminal())
	assert.True(t, WaitCancelled.Terminal())
	assert.False(t, WaitPolling.Terminal())
	assert.False(t, WaitConnected.Terminal())
	assert.False(t, WaitContinuing.Terminal())
}
