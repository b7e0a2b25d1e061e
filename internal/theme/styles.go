package theme

import "github.com/charmbracelet/lipgloss"

// Headings
var (
	HeaderStyle  = lipgloss.NewStyle().Bold(true).Foreground(ColorSecondary)
	RepoStyle    = lipgloss.NewStyle().Bold(true).Foreground(ColorPrimary)
	TitleStyle   = lipgloss.NewStyle().Bold(true).Foreground(ColorPrimary).Padding(1, 0, 0, 0)
	WarpingStyle = lipgloss.NewStyle().Bold(true).Foreground(ColorPrimary).Padding(1, 0)
)

// Text styles
var (
	LabelStyle  = lipgloss.NewStyle().Foreground(ColorSubtle)
	MutedStyle  = lipgloss.NewStyle().Foreground(ColorMuted)
	NormalStyle = lipgloss.NewStyle().Foreground(ColorNormal)
	StrongStyle = lipgloss.NewStyle().Foreground(ColorHighlight).Bold(true)
)

// Step status styles
var (
	FailedStyle  = lipgloss.NewStyle().Foreground(ColorFailed).Bold(true)
	OKStyle      = lipgloss.NewStyle().Foreground(ColorOK)
	SkippedStyle = lipgloss.NewStyle().Foreground(ColorSkipped)
	WarningStyle = lipgloss.NewStyle().Foreground(ColorWarning)
)

// Git styles
var (
	CleanStyle = lipgloss.NewStyle().Foreground(ColorClean)
	DirtyStyle = lipgloss.NewStyle().Foreground(ColorDirty).Bold(true)
)

// Table styles
var (
	TableBorderStyle = lipgloss.NewStyle().Foreground(ColorMuted)
	TableCellStyle   = lipgloss.NewStyle().Padding(0, 1)
	TableHeaderStyle = lipgloss.NewStyle().Bold(true).Foreground(ColorSecondary).Padding(0, 1)
)

// Error style
var ErrorStyle = lipgloss.NewStyle().
	Foreground(ColorError).
	Bold(true)
