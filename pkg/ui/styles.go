// Package ui provides the Bubble Tea dashboard for import estimates and trends.
package ui

import "github.com/charmbracelet/lipgloss"

// Colors
var (
	ColorPrimary   = lipgloss.Color("#0D47A1") // Navy
	ColorSecondary = lipgloss.Color("#10B981") // Green
	ColorDanger    = lipgloss.Color("#EF4444") // Red
	ColorWarning   = lipgloss.Color("#F59E0B") // Amber
	ColorMuted     = lipgloss.Color("#6B7280") // Gray
	ColorBorder    = lipgloss.Color("#374151") // Dark gray
)

// Styles
var (
	BoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorBorder).
			Padding(0, 1)

	PositiveValue = lipgloss.NewStyle().
			Foreground(ColorSecondary)

	NegativeValue = lipgloss.NewStyle().
			Foreground(ColorDanger)

	WarningValue = lipgloss.NewStyle().
			Foreground(ColorWarning).
			Bold(true)

	MutedValue = lipgloss.NewStyle().
			Foreground(ColorMuted)

	HelpStyle = lipgloss.NewStyle().
			Foreground(ColorMuted).
			Padding(0, 1)
)

// Theme holds the accent-dependent styles of a variant.
type Theme struct {
	Accent lipgloss.Color
	Title  lipgloss.Style
	Header lipgloss.Style
	Tab    lipgloss.Style
	TabOn  lipgloss.Style
}

// NewTheme builds the styles for accent. An empty accent uses ColorPrimary.
func NewTheme(accent string) Theme {
	c := ColorPrimary
	if accent != "" {
		c = lipgloss.Color(accent)
	}
	return Theme{
		Accent: c,
		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FFFFFF")).
			Background(c).
			Padding(0, 2),
		Header: lipgloss.NewStyle().
			Bold(true).
			Foreground(c),
		Tab: lipgloss.NewStyle().
			Foreground(ColorMuted).
			Padding(0, 1),
		TabOn: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FFFFFF")).
			Background(c).
			Padding(0, 1),
	}
}
