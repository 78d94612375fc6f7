package domain

import (
	"fmt"
	"regexp"
	"time"
)

const (
	// DefaultCommand is the command a session runs when none is given
	DefaultCommand = "bash -l"
	// DefaultWorkdir is the working directory used when none is configured
	DefaultWorkdir = "/root"
	// DefaultStateDir holds exit sentinels on the remote host
	DefaultStateDir = "/tmp/remux-pty"
	// DefaultCols and DefaultRows are reported when the remote size cannot be parsed
	DefaultCols = 80
	DefaultRows = 24
)

var (
	sessionIDPattern = regexp.MustCompile(`^[A-Za-z0-9._-]+$`)
	envKeyPattern    = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)
)

// Size is a terminal size in character cells
type Size struct {
	Cols int `json:"cols"`
	Rows int `json:"rows"`
}

// CreateOptions describes a session to start on the remote host
type CreateOptions struct {
	Command string
	Cwd     string
	Env     map[string]string
	ID      string
	Reset   bool
	Size    *Size
}

// SessionInfo is the live state of a remote session
type SessionInfo struct {
	Active    bool      `json:"active"`
	CreatedAt time.Time `json:"created_at"`
	Cwd       string    `json:"cwd"`
	ID        string    `json:"id"`
	Size      Size      `json:"size"`
}

// ReadOptions controls a capture of the session's visible buffer
type ReadOptions struct {
	IncludeEscape bool
	Lines         int
}

// ValidateSessionID rejects ids that are not safe to interpolate into shell commands
func ValidateSessionID(id string) error {
	if !sessionIDPattern.MatchString(id) {
		return &ValidationError{
			Field:  "session id",
			Reason: "use only letters, numbers, dot, underscore, and hyphen",
			Value:  id,
		}
	}
	return nil
}

// ValidateEnvKey rejects environment variable names that are not shell identifiers
func ValidateEnvKey(key string) error {
	if !envKeyPattern.MatchString(key) {
		return &ValidationError{
			Field:  "env var name",
			Reason: "must match [A-Za-z_][A-Za-z0-9_]*",
			Value:  key,
		}
	}
	return nil
}

// Validate checks the id, env names and size before any remote call
func (o CreateOptions) Validate() error {
	if err := ValidateSessionID(o.ID); err != nil {
		return err
	}
	for key := range o.Env {
		if err := ValidateEnvKey(key); err != nil {
			return err
		}
	}
	if o.Size != nil {
		if err := o.Size.Validate(); err != nil {
			return err
		}
	}
	return nil
}

// Validate requires both dimensions to be positive
func (s Size) Validate() error {
	if s.Cols <= 0 || s.Rows <= 0 {
		return &ValidationError{
			Field:  "size",
			Reason: "cols and rows must be positive",
			Value:  s.String(),
		}
	}
	return nil
}

func (s Size) String() string {
	return fmt.Sprintf("%dx%d", s.Cols, s.Rows)
}
