package theme

import "github.com/charmbracelet/lipgloss"

// Color is an alias for lipgloss.Color for convenience
type Color = lipgloss.Color

// Brand colors
const (
	ColorPrimary   Color = "99" // Purple - app name, titles
	ColorSecondary Color = "86" // Cyan - subtitles
)

// Run state colors
const (
	ColorCancelled Color = "3"   // Yellow - cancelled wait
	ColorCreated   Color = "33"  // Blue - running, no outcome yet
	ColorExited    Color = "2"   // Green - exited zero
	ColorFailed    Color = "1"   // Red - exited non-zero
	ColorKilled    Color = "8"   // Gray - killed
	ColorTimedOut  Color = "214" // Orange - still running after timeout
)

// UI semantic colors
const (
	ColorError     Color = "196" // Bright red
	ColorHighlight Color = "255" // White - emphasis
	ColorMuted     Color = "241" // Gray - secondary text
	ColorVersion   Color = "240" // Dark gray
)
