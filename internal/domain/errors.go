package domain

import (
	"errors"
	"fmt"
)

// Error sentinels for consistent error handling
var (
	ErrCommandFailed         = errors.New("remote command failed")
	ErrHandleDisconnected    = errors.New("session handle is disconnected")
	ErrSessionCreationFailed = errors.New("session creation failed")
	ErrSessionNotFound       = errors.New("session not found")
	ErrValidation            = errors.New("validation failed")
)

// ValidationError reports an identifier rejected before any remote call was made
type ValidationError struct {
	Field  string
	Reason string
	Value  string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s %q: %s", e.Field, e.Value, e.Reason)
}

func (e *ValidationError) Unwrap() error {
	return ErrValidation
}

// CommandError reports a remote command that completed with a non-zero status.
// Kind is the sentinel callers match with errors.Is; it defaults to ErrCommandFailed.
type CommandError struct {
	Kind       error
	Op         string
	SessionID  string
	StatusCode int
	Stderr     string
}

func (e *CommandError) Error() string {
	msg := fmt.Sprintf("%s failed with status %d", e.Op, e.StatusCode)
	if e.SessionID != "" {
		msg = fmt.Sprintf("%s for session %s failed with status %d", e.Op, e.SessionID, e.StatusCode)
	}
	if e.Stderr != "" {
		msg += ": " + e.Stderr
	}
	return msg
}

func (e *CommandError) Unwrap() error {
	if e.Kind == nil {
		return ErrCommandFailed
	}
	return e.Kind
}

// NotFoundError returns an error wrapping ErrSessionNotFound for the given id
func NotFoundError(id string) error {
	return fmt.Errorf("%w: %s", ErrSessionNotFound, id)
}
