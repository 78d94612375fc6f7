package tail

import (
	"strings"

	"github.com/renato0307/remux/internal/shell"
)

const (
	cursorPrefix    = "-- cursor: "
	noEntriesPrefix = "-- No entries"
)

// Phase is the tailer's position in its stream
type Phase int

const (
	// PhaseInitial bounds the first read by line count and since
	PhaseInitial Phase = iota
	// PhaseResuming bounds every later read by the held cursor only
	PhaseResuming
)

func (p Phase) String() string {
	if p == PhaseResuming {
		return "resuming"
	}
	return "initial"
}

// CursorTailer follows a journal stream by replaying the cursor journalctl prints
// after each read. A tailer is not restartable; start a new one to read from scratch.
type CursorTailer struct {
	cursor string
	lines  int
	phase  Phase
	since  string
	unit   string
}

// NewCursorTailer returns a tailer whose first read is bounded by lines and since
func NewCursorTailer(unit string, lines int, since string) *CursorTailer {
	return &CursorTailer{
		lines: lines,
		phase: PhaseInitial,
		since: since,
		unit:  unit,
	}
}

// Command returns the journalctl command for the next poll
func (c *CursorTailer) Command() string {
	opts := shell.TailOptions{
		Output:     "cat",
		ShowCursor: true,
		Unit:       c.unit,
	}
	if c.phase == PhaseInitial {
		opts.Lines = c.lines
		opts.Since = c.since
	} else if c.cursor != "" {
		opts.AfterCursor = c.cursor
	} else {
		// The first read found no entries, so without a since bound everything the
		// journal now holds arrived after it and is new
		opts.Since = c.since
	}
	return shell.BuildTail(opts)
}

// Consume parses one poll's output and returns the log lines to emit, in order.
// Cursor and "No entries" marker lines are swallowed. After Consume the tailer is
// resuming, whether or not any lines arrived.
func (c *CursorTailer) Consume(output string) []string {
	var lines []string
	for _, line := range SplitLines(output) {
		if token, ok := strings.CutPrefix(line, cursorPrefix); ok {
			if token = strings.TrimSpace(token); token != "" {
				c.cursor = token
			}
			continue
		}
		if strings.HasPrefix(line, noEntriesPrefix) {
			continue
		}
		lines = append(lines, line)
	}
	c.phase = PhaseResuming
	return lines
}

// Cursor returns the held resumption token, empty before the first cursor line
func (c *CursorTailer) Cursor() string {
	return c.cursor
}

// Phase returns the tailer's current phase
func (c *CursorTailer) Phase() Phase {
	return c.phase
}
