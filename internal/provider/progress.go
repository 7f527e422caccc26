package provider

import (
	"fmt"
	"math"
	"math/rand/v2"
	"strconv"

	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/muurk/accordion/internal/props"
)

// randIntN is swapped in tests.
var randIntN = rand.IntN

// Progress shows a percentage bar with step and random controls.
// Props: progress, setProgress.
type Progress struct {
	bag props.Bag
}

// NewProgress is the ProgressComponent factory.
func NewProgress(bag props.Bag) ContentProvider { return &Progress{bag: bag} }

// value is the stored progress clamped to 0..100. Fractions are kept.
func (p *Progress) value() float64 {
	return math.Max(0, math.Min(100, p.bag.Float("progress", 0)))
}

func formatPercent(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64) + "%"
}

// stepValue keeps whole percentages as int so stored values match YAML seeds.
func stepValue(v float64) any {
	v = math.Max(0, math.Min(100, v))
	if v == math.Trunc(v) {
		return int(v)
	}
	return v
}

func progressLevel(v float64) (string, lipgloss.Color) {
	switch {
	case v < 30:
		return "Low", errorColor
	case v < 70:
		return "Medium", warningColor
	default:
		return "High", successColor
	}
}

func (p *Progress) Render(width int) string {
	v := p.value()
	level, color := progressLevel(v)

	barWidth := clampInt(width-10, 10, 60)
	bar := progress.New(
		progress.WithSolidFill(string(color)),
		progress.WithWidth(barWidth),
		progress.WithoutPercentage(),
	)
	scale := fmt.Sprintf("%-*s%s%*s", barWidth/2-1, "0%", "50%", barWidth-barWidth/2-2, "100%")

	return lipgloss.JoinVertical(lipgloss.Center,
		center(width, titleStyle.Render("Progress Tracker")),
		"",
		center(width, bigValueStyle.Render(formatPercent(v))),
		center(width, mutedStyle.Render(level+" Progress")),
		"",
		center(width, bar.ViewAs(v/100)),
		center(width, mutedStyle.Render(scale)),
		"",
		center(width, hints("-", "-10%", "+", "+10%", "0", "reset", "r", "random")),
	)
}

func (p *Progress) Summarize() Summary {
	v := p.value()
	level, _ := progressLevel(v)
	return Summary{
		{Label: "Progress", Value: formatPercent(v)},
		{Label: "Status", Value: level},
	}
}

func (p *Progress) HandleKey(key string) (bool, tea.Cmd) {
	v := p.value()
	switch key {
	case "+", "=":
		if v >= 100 {
			return false, nil
		}
		return p.bag.Call("setProgress", stepValue(v+10)), nil
	case "-", "_":
		if v <= 0 {
			return false, nil
		}
		return p.bag.Call("setProgress", stepValue(v-10)), nil
	case "0":
		return p.bag.Call("setProgress", 0), nil
	case "r":
		return p.bag.Call("setProgress", randIntN(101)), nil
	}
	return false, nil
}

func (p *Progress) Keys() []string { return []string{"+", "-", "0", "r"} }

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
