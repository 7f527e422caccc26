package provider

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/muurk/accordion/internal/props"
)

// AnimationDuration is how long isAnimating stays set after a toggle.
const AnimationDuration = time.Second

// ThemeToggle switches between light and dark.
// Props: isDark, setIsDark, isAnimating, setIsAnimating.
type ThemeToggle struct {
	bag props.Bag
}

// NewThemeToggle is the ThemeToggleComponent factory.
func NewThemeToggle(bag props.Bag) ContentProvider { return &ThemeToggle{bag: bag} }

func (t *ThemeToggle) Render(width int) string {
	dark := t.bag.Bool("isDark", false)
	animating := t.bag.Bool("isAnimating", false)

	icon, theme, other := "☀", "Light", "Dark"
	if dark {
		icon, theme, other = "☾", "Dark", "Light"
	}
	action := fmt.Sprintf("t  switch to %s mode", other)
	status := "Ready"
	if animating {
		action = "Switching..."
		status = "Animating"
	}

	return lipgloss.JoinVertical(lipgloss.Center,
		center(width, titleStyle.Render("Theme Toggle")),
		"",
		center(width, bigValueStyle.Render(icon)),
		center(width, mutedStyle.Render("Current theme: "+theme)),
		"",
		center(width, keyHintStyle.Render(action)),
		center(width, mutedStyle.Render("Status: "+status)),
	)
}

func (t *ThemeToggle) Summarize() Summary {
	theme := "Light"
	if t.bag.Bool("isDark", false) {
		theme = "Dark"
	}
	status := "Ready"
	if t.bag.Bool("isAnimating", false) {
		status = "Animating"
	}
	return Summary{
		{Label: "Theme", Value: theme},
		{Label: "Status", Value: status},
	}
}

// HandleKey toggles the theme. Both setters must be bound, and the toggle is
// ignored while a previous one is still animating.
func (t *ThemeToggle) HandleKey(key string) (bool, tea.Cmd) {
	if key != "t" {
		return false, nil
	}
	setDark := t.bag.Setter("setIsDark")
	setAnimating := t.bag.Setter("setIsAnimating")
	if setDark == nil || setAnimating == nil || t.bag.Bool("isAnimating", false) {
		return false, nil
	}

	setAnimating(true)
	setDark(!t.bag.Bool("isDark", false))
	return true, tea.Tick(AnimationDuration, func(time.Time) tea.Msg {
		return SetMsg{Setter: setAnimating, Value: false}
	})
}

func (t *ThemeToggle) Keys() []string { return []string{"t"} }
