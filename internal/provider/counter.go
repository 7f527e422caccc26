package provider

import (
	"strconv"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/muurk/accordion/internal/props"
)

// Counter shows an integer with increment, decrement and reset.
// Props: count, setCount.
type Counter struct {
	bag props.Bag
}

// NewCounter is the CounterComponent factory.
func NewCounter(bag props.Bag) ContentProvider { return &Counter{bag: bag} }

func (c *Counter) count() int { return c.bag.Int("count", 0) }

func (c *Counter) Render(width int) string {
	count := c.count()
	return lipgloss.JoinVertical(lipgloss.Center,
		center(width, titleStyle.Render("Counter")),
		"",
		center(width, bigValueStyle.Render(strconv.Itoa(count))),
		center(width, mutedStyle.Render("Current count value")),
		"",
		center(width, hints("-", "decrement", "+", "increment", "0", "reset")),
	)
}

func (c *Counter) Summarize() Summary {
	count := c.count()
	status := "Reset"
	if count > 0 {
		status = "Active"
	}
	return Summary{
		{Label: "Count", Value: count},
		{Label: "Status", Value: status},
	}
}

func (c *Counter) HandleKey(key string) (bool, tea.Cmd) {
	count := c.count()
	switch key {
	case "+", "=":
		return c.bag.Call("setCount", count+1), nil
	case "-", "_":
		return c.bag.Call("setCount", count-1), nil
	case "0":
		return c.bag.Call("setCount", 0), nil
	}
	return false, nil
}

func (c *Counter) Keys() []string { return []string{"+", "-", "0"} }
