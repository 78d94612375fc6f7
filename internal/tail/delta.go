// Package tail turns repeated full reads of a remote buffer into ordered increments.
package tail

import "strings"

// DeltaTracker computes what is new in a snapshot of a fixed-size capture window.
//
// When the window scrolled further than one poll could observe, the previous
// snapshot is no longer a prefix and the whole snapshot is reported again, so
// consumers see output at least once, not exactly once.
type DeltaTracker struct {
	previous string
}

// Next returns the part of snapshot not seen in the previous one and remembers
// snapshot for the next call.
func (d *DeltaTracker) Next(snapshot string) string {
	delta := snapshot
	if strings.HasPrefix(snapshot, d.previous) {
		delta = snapshot[len(d.previous):]
	}
	d.previous = snapshot
	return delta
}

// NextLines is Next split into non-empty lines
func (d *DeltaTracker) NextLines(snapshot string) []string {
	return SplitLines(d.Next(snapshot))
}

// Previous returns the last snapshot seen
func (d *DeltaTracker) Previous() string {
	return d.previous
}

// SplitLines splits on \n or \r\n and drops empty lines
func SplitLines(s string) []string {
	var lines []string
	for _, line := range strings.Split(s, "\n") {
		line = strings.TrimSuffix(line, "\r")
		if line == "" {
			continue
		}
		lines = append(lines, line)
	}
	return lines
}
