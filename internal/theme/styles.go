// Package theme holds the lipgloss styles used by CLI output.
package theme

import (
	"github.com/charmbracelet/lipgloss"
)

// Text styles
var (
	AppNameStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorPrimary)

	ErrorStyle = lipgloss.NewStyle().
			Foreground(ColorError).
			Bold(true)

	HeaderStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorHighlight)

	MutedStyle = lipgloss.NewStyle().
			Foreground(ColorMuted)

	SubtitleStyle = lipgloss.NewStyle().
			Foreground(ColorSecondary)

	VersionStyle = lipgloss.NewStyle().
			Foreground(ColorVersion)
)

// State styles
var (
	CancelledStyle = lipgloss.NewStyle().Foreground(ColorCancelled)
	CreatedStyle   = lipgloss.NewStyle().Foreground(ColorCreated)
	ExitedStyle    = lipgloss.NewStyle().Foreground(ColorExited)
	FailedStyle    = lipgloss.NewStyle().Foreground(ColorFailed)
	KilledStyle    = lipgloss.NewStyle().Foreground(ColorKilled)
	TimedOutStyle  = lipgloss.NewStyle().Foreground(ColorTimedOut)
)

// RenderState colors a wait or run state. Exited states with a non-zero exit
// code render as failures.
func RenderState(state string, exitCode *int) string {
	style := MutedStyle
	switch state {
	case "cancelled":
		style = CancelledStyle
	case "created", "connected", "polling", "continuing":
		style = CreatedStyle
	case "exited":
		style = ExitedStyle
		if exitCode != nil && *exitCode != 0 {
			style = FailedStyle
		}
	case "killed":
		style = KilledStyle
	case "timed_out":
		style = TimedOutStyle
	}
	return style.Render(state)
}
