package provider

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/muurk/accordion/internal/props"
)

// DefaultColor is the picker's reset value.
const DefaultColor = "#3b82f6"

// Swatch is a named palette color.
type Swatch struct {
	Hex  string
	Name string
}

// Palette lists the predefined colors in display order.
var Palette = []Swatch{
	{"#3b82f6", "Blue"},
	{"#ef4444", "Red"},
	{"#10b981", "Green"},
	{"#f59e0b", "Yellow"},
	{"#8b5cf6", "Purple"},
	{"#f97316", "Orange"},
	{"#06b6d4", "Cyan"},
	{"#ec4899", "Pink"},
	{"#84cc16", "Lime"},
	{"#6b7280", "Gray"},
}

// ColorName returns the palette name for hex, or "Custom".
func ColorName(hex string) string {
	if i := paletteIndex(hex); i >= 0 {
		return Palette[i].Name
	}
	return "Custom"
}

func paletteIndex(hex string) int {
	for i, s := range Palette {
		if s.Hex == hex {
			return i
		}
	}
	return -1
}

// ColorPicker selects a color from the palette or at random.
// Props: selectedColor, setSelectedColor.
type ColorPicker struct {
	bag props.Bag
}

// NewColorPicker is the ColorPickerComponent factory.
func NewColorPicker(bag props.Bag) ContentProvider { return &ColorPicker{bag: bag} }

func (c *ColorPicker) selected() string { return c.bag.String("selectedColor", DefaultColor) }

func (c *ColorPicker) Render(width int) string {
	sel := c.selected()

	preview := lipgloss.NewStyle().
		Background(lipgloss.Color(sel)).
		Width(10).
		Height(3).
		Render("")

	var swatches, markers []string
	for _, s := range Palette {
		swatches = append(swatches, lipgloss.NewStyle().Background(lipgloss.Color(s.Hex)).Render("   "))
		if s.Hex == sel {
			markers = append(markers, " ^ ")
		} else {
			markers = append(markers, "   ")
		}
	}

	return lipgloss.JoinVertical(lipgloss.Center,
		center(width, titleStyle.Render("Color Picker")),
		"",
		center(width, preview),
		center(width, bigValueStyle.Render(ColorName(sel))),
		center(width, mutedStyle.Render(sel)),
		"",
		center(width, strings.Join(swatches, " ")),
		center(width, mutedStyle.Render(strings.Join(markers, " "))),
		"",
		center(width, hints("←/→", "palette", "r", "random", "0", "reset to blue")),
	)
}

func (c *ColorPicker) Summarize() Summary {
	sel := c.selected()
	return Summary{
		{Label: "Color", Value: ColorName(sel)},
		{Label: "Hex", Value: sel},
	}
}

func (c *ColorPicker) HandleKey(key string) (bool, tea.Cmd) {
	i := paletteIndex(c.selected())
	switch key {
	case "right", "l":
		return c.bag.Call("setSelectedColor", Palette[(i+1)%len(Palette)].Hex), nil
	case "left", "h":
		if i < 0 {
			i = 0
		}
		return c.bag.Call("setSelectedColor", Palette[(i-1+len(Palette))%len(Palette)].Hex), nil
	case "r":
		return c.bag.Call("setSelectedColor", fmt.Sprintf("#%06x", randIntN(0x1000000))), nil
	case "0":
		return c.bag.Call("setSelectedColor", DefaultColor), nil
	}
	return false, nil
}

func (c *ColorPicker) Keys() []string { return []string{"←", "→", "r", "0"} }
