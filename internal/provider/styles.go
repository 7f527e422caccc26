package provider

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	accentColor  = lipgloss.Color("#7D56F4")
	successColor = lipgloss.Color("#43BF6D")
	warningColor = lipgloss.Color("#FFA500")
	errorColor   = lipgloss.Color("#FF5555")
	mutedColor   = lipgloss.Color("#626262")
)

var (
	titleStyle = lipgloss.NewStyle().Bold(true)

	bigValueStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(accentColor)

	mutedStyle = lipgloss.NewStyle().Foreground(mutedColor)

	keyHintStyle = lipgloss.NewStyle().
			Foreground(mutedColor).
			Italic(true)
)

// center centers each line of s within width.
func center(width int, s string) string {
	if width <= 0 {
		return s
	}
	return lipgloss.PlaceHorizontal(width, lipgloss.Center, s)
}

// hints renders a key hint line such as "+ increment  - decrement".
func hints(pairs ...string) string {
	var parts []string
	for i := 0; i+1 < len(pairs); i += 2 {
		parts = append(parts, pairs[i]+" "+pairs[i+1])
	}
	return keyHintStyle.Render(strings.Join(parts, "   "))
}
