package provider

import (
	"fmt"
	"math"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/muurk/accordion/internal/props"
)

// Graph limits and types.
const (
	MinDataPoints = 5
	MaxDataPoints = 50
	dataPointStep = 5

	graphYMin = -40.0
	graphYMax = 60.0
)

// GraphTypes lists the plot styles in cycling order.
var GraphTypes = []string{"line", "scatter", "bar"}

// GraphData returns n samples of a sine wave offset by 10.
func GraphData(n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = math.Sin(float64(i)*0.5)*50 + 10
	}
	return out
}

// Graph plots a sine series as line, scatter or bar.
// Props: dataPoints, setDataPoints, graphType, setGraphType, height.
type Graph struct {
	bag props.Bag
}

// NewGraph is the GraphComponent factory.
func NewGraph(bag props.Bag) ContentProvider { return &Graph{bag: bag} }

func (g *Graph) points() int { return g.bag.Int("dataPoints", 20) }
func (g *Graph) kind() string { return g.bag.String("graphType", "line") }

func (g *Graph) Render(width int) string {
	n := clampInt(g.points(), MinDataPoints, MaxDataPoints)
	height := clampInt(g.bag.Int("height", 8), 3, 40)
	plotWidth := width - 4
	if plotWidth < n {
		plotWidth = n
	}

	plot := plotSeries(GraphData(n), g.kind(), plotWidth, height)
	plotStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(DefaultColor))

	return lipgloss.JoinVertical(lipgloss.Left,
		center(width, titleStyle.Render("Interactive Graph")),
		center(width, mutedStyle.Render(fmt.Sprintf("Data Points: %d   Graph Type: %s", n, g.kind()))),
		"",
		plotStyle.Render(plot),
		"",
		center(width, hints("-/+", "points", "g", "graph type")),
	)
}

func plotSeries(data []float64, kind string, width, height int) string {
	step := width / len(data)
	if step < 1 {
		step = 1
	}
	cols := step * len(data)

	grid := make([][]rune, height)
	for r := range grid {
		grid[r] = []rune(strings.Repeat(" ", cols))
	}
	rowOf := func(y float64) int {
		r := int(math.Round((graphYMax - y) / (graphYMax - graphYMin) * float64(height-1)))
		return clampInt(r, 0, height-1)
	}
	zero := rowOf(0)

	prevRow, prevCol := -1, -1
	for i, y := range data {
		col := i * step
		row := rowOf(y)
		switch kind {
		case "bar":
			lo, hi := min(row, zero), max(row, zero)
			for r := lo; r <= hi; r++ {
				for c := col; c < col+step-boolInt(step > 1); c++ {
					grid[r][c] = '█'
				}
			}
		case "scatter":
			grid[row][col] = '•'
		default:
			if prevRow >= 0 {
				for c := prevCol + 1; c < col; c++ {
					grid[prevRow][c] = '─'
				}
				lo, hi := min(row, prevRow), max(row, prevRow)
				for r := lo + 1; r < hi; r++ {
					grid[r][col] = '│'
				}
			}
			grid[row][col] = '•'
		}
		prevRow, prevCol = row, col
	}

	lines := make([]string, 0, height+1)
	for _, r := range grid {
		lines = append(lines, "│"+string(r))
	}
	lines = append(lines, "└"+strings.Repeat("─", cols))
	return strings.Join(lines, "\n")
}

func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

func (g *Graph) Summarize() Summary {
	return Summary{
		{Label: "Data Points", Value: g.points()},
		{Label: "Graph Type", Value: g.kind()},
		{Label: "Status", Value: "Rendered"},
	}
}

func (g *Graph) HandleKey(key string) (bool, tea.Cmd) {
	n := g.points()
	switch key {
	case "+", "=":
		return g.bag.Call("setDataPoints", clampInt(n+dataPointStep, MinDataPoints, MaxDataPoints)), nil
	case "-", "_":
		return g.bag.Call("setDataPoints", clampInt(n-dataPointStep, MinDataPoints, MaxDataPoints)), nil
	case "g":
		next := GraphTypes[0]
		for i, t := range GraphTypes {
			if t == g.kind() {
				next = GraphTypes[(i+1)%len(GraphTypes)]
				break
			}
		}
		return g.bag.Call("setGraphType", next), nil
	}
	return false, nil
}

func (g *Graph) Keys() []string { return []string{"+", "-", "g"} }
