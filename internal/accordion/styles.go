package accordion

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/muurk/accordion/internal/version"
)

// AppName is shown in the container header.
const AppName = "ACCORDION"

// Layout constants for responsive terminal width
const (
	MinTerminalWidth = 40
	DefaultWidth     = 80
	DefaultHeight    = 24

	// Outer border, header with rule, footer with rule, help line.
	chromeHeight = 7
	// Outer border plus panel border and padding.
	chromeWidth = 8
)

// Color palette
var (
	PrimaryColor   = lipgloss.Color("#7D56F4") // Purple
	SecondaryColor = lipgloss.Color("#43BF6D") // Green
	WarningColor   = lipgloss.Color("#FFA500") // Orange
	ErrorColor     = lipgloss.Color("#FF5555") // Red

	TextColor   = lipgloss.Color("#FFFFFF") // White
	SubtleColor = lipgloss.Color("#626262") // Gray
	BorderColor = lipgloss.Color("#7D56F4") // Purple (same as primary)
)

var (
	panelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(SubtleColor).
			Padding(0, 1)

	focusedPanelStyle = panelStyle.
				BorderForeground(PrimaryColor)

	headerStyle = lipgloss.NewStyle().
			Foreground(TextColor).
			Bold(true)

	focusedHeaderStyle = headerStyle.
				Foreground(PrimaryColor)

	pinnedMarkerStyle = lipgloss.NewStyle().
				Foreground(SecondaryColor).
				Bold(true)

	unpinnedMarkerStyle = lipgloss.NewStyle().
				Foreground(SubtleColor)

	summaryStyle = lipgloss.NewStyle().
			Foreground(SubtleColor).
			Italic(true)

	placeholderStyle = lipgloss.NewStyle().
				Foreground(ErrorColor).
				Bold(true)

	clippedStyle = lipgloss.NewStyle().
			Foreground(SubtleColor).
			Italic(true)

	statusStyle = lipgloss.NewStyle().
			Foreground(SecondaryColor)

	statusErrorStyle = lipgloss.NewStyle().
				Foreground(ErrorColor).
				Bold(true)
)

// Pin and chevron glyphs.
const (
	pinnedMarker   = "●"
	unpinnedMarker = "○"
	chevronOpen    = "▾"
	chevronClosed  = "▸"
)

// buildHeaderContent creates header content with app name and config source
func buildHeaderContent(source string) string {
	left := lipgloss.NewStyle().
		Foreground(TextColor).
		Bold(true).
		Render(AppName + " v" + version.Version)

	right := lipgloss.NewStyle().
		Foreground(SubtleColor).
		Render(source)

	return lipgloss.JoinHorizontal(lipgloss.Top, left, "  ", right)
}

// renderApplicationContainer wraps content with the header, footer and outer
// border, filling the terminal.
func renderApplicationContainer(content, source, footer string, width, height int) string {
	header := lipgloss.NewStyle().
		BorderStyle(lipgloss.Border{Bottom: "─"}).
		BorderForeground(BorderColor).
		Width(width-4).
		Padding(0, 1).
		Render(buildHeaderContent(source))

	foot := lipgloss.NewStyle().
		BorderStyle(lipgloss.Border{Top: "─"}).
		BorderForeground(BorderColor).
		Width(width-4).
		Padding(0, 1).
		Render(footer)

	body := lipgloss.NewStyle().
		Width(width - 4).
		Render(content)

	inner := lipgloss.JoinVertical(lipgloss.Left, header, body, foot)

	bordered := lipgloss.NewStyle().
		Border(lipgloss.NormalBorder()).
		BorderForeground(BorderColor).
		Width(width - 2).
		Height(height - 2).
		AlignVertical(lipgloss.Top).
		Render(inner)

	return lipgloss.Place(width, height, lipgloss.Left, lipgloss.Top, bordered)
}
