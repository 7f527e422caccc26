package ui

import (
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"
)

// Palette shared by every CLI box
var (
	PrimaryColor = lipgloss.Color("#7D56F4") // borders, titles, column headers
	SuccessColor = lipgloss.Color("#43BF6D")
	ErrorColor   = lipgloss.Color("#FF5555")
	WarningColor = lipgloss.Color("#FFA500")
	MutedColor   = lipgloss.Color("#626262") // keys, notes, hints
	TextColor    = lipgloss.Color("#FFFFFF")
)

// Output width bounds
const (
	MinTerminalWidth = 60
	MaxContentWidth  = 100
)

func fg(c lipgloss.Color) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(c)
}

var (
	titleStyle   = fg(TextColor).Bold(true).PaddingLeft(2)
	commandStyle = fg(MutedColor).PaddingLeft(2)
	paramKey     = fg(MutedColor).PaddingLeft(2)
	valueStyle   = fg(TextColor)
	detailKey    = fg(MutedColor).Width(15)
	noteStyle    = fg(MutedColor)
	tipsTitle    = fg(MutedColor).Bold(true)
	columnStyle  = fg(PrimaryColor).Bold(true)
)

// Status markers
const (
	SuccessMarker = "✓"
	FailureMarker = "✗"
	WarningMarker = "⚠"
)

// GetTerminalWidth returns the stdout width clamped to the supported range.
// Non-terminals get MinTerminalWidth.
func GetTerminalWidth() int {
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil {
		return MinTerminalWidth
	}
	return clampWidth(width)
}

func clampWidth(width int) int {
	return max(MinTerminalWidth, min(width, MaxContentWidth))
}

// RenderHorizontalDivider draws width copies of char in the primary color.
func RenderHorizontalDivider(width int, char string) string {
	return fg(PrimaryColor).Render(strings.Repeat(char, max(width, 0)))
}
