// Package provider defines the content provider contract, the built-in
// providers and the registry that maps component names to them.
//
// A provider is built from a resolved property bag and is discarded after
// use. It holds no state of its own: anything that must survive a redraw is
// threaded through the bag as a state value and written back through a
// setter.
package provider

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/muurk/accordion/internal/props"
)

// ContentProvider renders a panel body and its collapsed summary.
type ContentProvider interface {
	// Render returns the expanded body for the given content width.
	Render(width int) string
	// Summarize returns the collapsed summary. It must be pure and must not
	// depend on Render having been called.
	Summarize() Summary
}

// Interactive is implemented by providers that react to keys while their
// panel is open and focused. HandleKey reports whether the key was consumed
// and may return a command for deferred writes.
type Interactive interface {
	HandleKey(key string) (bool, tea.Cmd)
}

// KeyHelp is implemented by providers that advertise their keys.
type KeyHelp interface {
	Keys() []string
}

// Factory builds a provider from a resolved bag.
type Factory func(bag props.Bag) ContentProvider

// Entry is one label/value pair of a summary.
type Entry struct {
	Label string
	Value any
}

// Summary is an ordered list of entries shown for a collapsed panel.
type Summary []Entry

// String renders the summary as "Label: Value" pairs.
func (s Summary) String() string {
	parts := make([]string, 0, len(s))
	for _, e := range s {
		parts = append(parts, fmt.Sprintf("%s: %v", e.Label, e.Value))
	}
	return strings.Join(parts, " · ")
}

// Get returns the value for label.
func (s Summary) Get(label string) (any, bool) {
	for _, e := range s {
		if e.Label == label {
			return e.Value, true
		}
	}
	return nil, false
}

// SetMsg asks the update loop to invoke a setter. Providers return it from
// commands so that delayed writes still happen on the update goroutine.
type SetMsg struct {
	Setter props.Setter
	Value  any
}

// Apply invokes the setter if one is bound.
func (m SetMsg) Apply() {
	if m.Setter != nil {
		m.Setter(m.Value)
	}
}
