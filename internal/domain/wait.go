package domain

// WaitState is the state of one wait invocation on a session
type WaitState string

const (
	WaitConnected  WaitState = "connected"
	WaitPolling    WaitState = "polling"
	WaitContinuing WaitState = "continuing"
	WaitExited     WaitState = "exited"
	WaitTimedOut   WaitState = "timed_out"
	WaitCancelled  WaitState = "cancelled"
)

// Terminal reports whether the wait invocation is finished in this state
func (s WaitState) Terminal() bool {
	switch s {
	case WaitExited, WaitTimedOut, WaitCancelled:
		return true
	}
	return false
}

// TimeoutMessage is recorded on the handle when a wait deadline passes
const TimeoutMessage = "Timed out waiting for session completion"

// WaitResult is the outcome of waiting on a session.
// ExitCode is nil when the session is still alive or its status was never captured.
type WaitResult struct {
	Error    string    `json:"error,omitempty"`
	ExitCode *int      `json:"exit_code"`
	Output   string    `json:"output,omitempty"`
	State    WaitState `json:"state"`
}
