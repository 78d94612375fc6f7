package ports

import (
	"context"
	"time"
)

// RunState is the last known outcome of a recorded session run
type RunState string

const (
	RunCreated   RunState = "created"
	RunExited    RunState = "exited"
	RunTimedOut  RunState = "timed_out"
	RunCancelled RunState = "cancelled"
	RunKilled    RunState = "killed"
)

// Run is one locally recorded session creation
type Run struct {
	Command    string     `json:"command"`
	CreatedAt  time.Time  `json:"created_at"`
	Cwd        string     `json:"cwd"`
	Error      string     `json:"error,omitempty"`
	ExitCode   *int       `json:"exit_code"`
	FinishedAt *time.Time `json:"finished_at"`
	ID         string     `json:"id"`
	SessionID  string     `json:"session_id"`
	State      RunState   `json:"state"`
	Target     string     `json:"target"`
}

// RunOutcome is what a wait or kill learned about a run
type RunOutcome struct {
	Error    string
	ExitCode *int
	State    RunState
}

// RunWriter records session runs
type RunWriter interface {
	RecordCreated(ctx context.Context, run Run) (string, error)
	RecordOutcome(ctx context.Context, sessionID string, outcome RunOutcome) error
}

// RunReader reads recorded session runs, newest first
type RunReader interface {
	List(ctx context.Context, sessionID string, limit int) ([]Run, error)
}

// RunRepository is the composite interface.
// It is an audit log only and is never consulted for session liveness.
type RunRepository interface {
	RunReader
	RunWriter
	Close() error
}
