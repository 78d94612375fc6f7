package cmd

// SessionsCmd manages remote terminal sessions
type SessionsCmd struct {
	Attach   SessionsAttachCmd   `cmd:"attach" help:"Attach to a session interactively"`
	Create   SessionsCreateCmd   `cmd:"create" aliases:"new" help:"Start a command in a new detached session"`
	ExitCode SessionsExitCodeCmd `cmd:"exit-code" help:"Print the exit status recorded by a finished session"`
	Info     SessionsInfoCmd     `cmd:"info" help:"Show a session's working directory, size and creation time"`
	Kill     SessionsKillCmd     `cmd:"kill" help:"Kill a session (no error if it does not exist)"`
	List     SessionsListCmd     `cmd:"list" aliases:"ls" help:"List live sessions" default:"1"`
	Read     SessionsReadCmd     `cmd:"read" help:"Print a session's visible output"`
	Resize   SessionsResizeCmd   `cmd:"resize" help:"Resize a session's window"`
	Send     SessionsSendCmd     `cmd:"send" help:"Send input to a session"`
	Stream   SessionsStreamCmd   `cmd:"stream" help:"Follow a session's output line by line"`
	Wait     SessionsWaitCmd     `cmd:"wait" help:"Wait for sessions to exit"`
}
