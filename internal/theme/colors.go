package theme

import "github.com/charmbracelet/lipgloss"

// Color is an alias for lipgloss.Color for convenience
type Color = lipgloss.Color

// Brand colors
const (
	ColorPrimary   Color = "99" // Purple - titles, repository ids
	ColorSecondary Color = "86" // Cyan - section headers
)

// Step status colors
const (
	ColorFailed  Color = "1" // Red
	ColorOK      Color = "2" // Green
	ColorSkipped Color = "8" // Gray
	ColorWarning Color = "3" // Yellow
)

// UI semantic colors
const (
	ColorError     Color = "196" // Bright red
	ColorHighlight Color = "255" // White - emphasis
	ColorMuted     Color = "241" // Gray - secondary text
	ColorNormal    Color = "250" // Default text
	ColorSubtle    Color = "245" // Light gray - labels
)

// Git colors
const (
	ColorClean Color = "2" // Green
	ColorDirty Color = "1" // Red
)
