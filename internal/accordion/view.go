package accordion

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/muurk/accordion/internal/config"
	"github.com/muurk/accordion/internal/layout"
	"github.com/muurk/accordion/internal/logging"
	"github.com/muurk/accordion/internal/props"
	"github.com/muurk/accordion/internal/provider"
)

// PanelView is one panel as produced by a render pass.
type PanelView struct {
	ID        string
	Name      string
	Component string
	Open      bool
	Pinned    bool
	Focused   bool
	Layout    layout.Attributes

	Body    string           // Render output for open panels, clipped to the row cap
	Clipped int              // Body lines hidden by the row cap
	Summary provider.Summary // Summarize output for closed panels
	Err     error            // Lookup failure; Body and Summary are empty
}

// Panels runs one render pass over every configured panel, in order. width
// is the terminal width; 0 uses the model's current width.
func (m Model) Panels(width int) []PanelView {
	if width <= 0 {
		width = m.width
	}
	state := m.store.StateMap()
	setters := m.store.SetterMap()

	views := make([]PanelView, 0, len(m.cfg.Layers))
	for i, l := range m.cfg.Layers {
		v := PanelView{
			ID:        l.ID,
			Name:      l.Name,
			Component: l.ComponentName,
			Open:      m.machine.IsOpen(l.ID),
			Pinned:    m.machine.IsPinned(l.ID),
			Focused:   i == m.focus,
			Layout:    layout.Merge(l, *m.cfg.DefaultLayer),
		}

		bag := props.Resolve(l.ComponentProps, state, setters)
		p, err := m.registry.Create(l.ComponentName, bag)
		if err != nil {
			v.Err = err
			m.reportLookup(l, err)
			views = append(views, v)
			continue
		}

		if v.Open {
			v.Body, v.Clipped = clip(p.Render(contentWidth(width, v.Layout)), v.Layout.Rows())
		} else {
			v.Summary = p.Summarize()
		}
		views = append(views, v)
	}
	return views
}

func (m Model) providerFor(l config.LayerConfig) (provider.ContentProvider, error) {
	bag := props.Resolve(l.ComponentProps, m.store.StateMap(), m.store.SetterMap())
	return m.registry.Create(l.ComponentName, bag)
}

func (m Model) reportLookup(l config.LayerConfig, err error) {
	if m.reported[l.ID] {
		return
	}
	m.reported[l.ID] = true
	var nf *provider.NotFoundError
	if errors.As(err, &nf) {
		logging.LogLookupFailure(l.ID, nf.Name, nf.Suggestion)
	}
}

// contentWidth is the width handed to a provider.
func contentWidth(width int, a layout.Attributes) int {
	w := width - chromeWidth - a.MarginLeft - a.MarginRight
	if w < 10 {
		w = 10
	}
	return w
}

// clip truncates body to rows lines. rows <= 0 means no cap. It returns the
// kept text and the number of hidden lines.
func clip(body string, rows int) (string, int) {
	if rows <= 0 {
		return body, 0
	}
	lines := strings.Split(body, "\n")
	if len(lines) <= rows {
		return body, 0
	}
	return strings.Join(lines[:rows], "\n"), len(lines) - rows
}

// refresh re-renders the panel stack into the viewport and keeps the focused
// header visible.
func (m *Model) refresh() {
	var blocks []string
	focusTop := 0
	offset := 0
	for _, v := range m.Panels(m.width) {
		block := renderPanel(v, m.width)
		if v.Focused {
			focusTop = offset
		}
		offset += lipgloss.Height(block)
		blocks = append(blocks, block)
	}
	m.viewport.SetContent(strings.Join(blocks, "\n"))

	// Header sits one line below the top border.
	header := focusTop + 1
	switch {
	case header < m.viewport.YOffset:
		m.viewport.SetYOffset(focusTop)
	case header >= m.viewport.YOffset+m.viewport.Height:
		m.viewport.SetYOffset(header - m.viewport.Height + 2)
	}
}

func renderPanel(v PanelView, width int) string {
	a := v.Layout
	boxWidth := width - 4 - a.MarginLeft - a.MarginRight
	if boxWidth < MinTerminalWidth/2 {
		boxWidth = MinTerminalWidth / 2
	}
	inner := boxWidth - 4

	style := panelStyle
	if v.Focused {
		style = focusedPanelStyle
	}
	style = style.
		Width(boxWidth - 2).
		MarginLeft(a.MarginLeft).
		MarginRight(a.MarginRight).
		MarginBottom(a.BottomMargin)

	parts := []string{renderHeader(v, inner)}
	if content := renderContent(v); content != "" {
		body := lipgloss.NewStyle().
			PaddingTop(a.LayerVerticalPadding).
			PaddingBottom(a.LayerVerticalPadding).
			Render(content)
		parts = append(parts, body)
	}
	return style.Render(lipgloss.JoinVertical(lipgloss.Left, parts...))
}

func renderHeader(v PanelView, width int) string {
	marker := unpinnedMarkerStyle.Render(unpinnedMarker)
	if v.Pinned {
		marker = pinnedMarkerStyle.Render(pinnedMarker)
	}
	chevron := chevronClosed
	if v.Open {
		chevron = chevronOpen
	}

	nameStyle := headerStyle
	if v.Focused {
		nameStyle = focusedHeaderStyle
	}
	left := marker + " " + nameStyle.Render(v.Name)
	gap := width - lipgloss.Width(left) - lipgloss.Width(chevron)
	if gap < 1 {
		gap = 1
	}
	return left + strings.Repeat(" ", gap) + chevron
}

func renderContent(v PanelView) string {
	if v.Err != nil {
		return renderPlaceholder(v)
	}
	if v.Open {
		if v.Clipped > 0 {
			return v.Body + "\n" + clippedStyle.Render(fmt.Sprintf("… %d more lines", v.Clipped))
		}
		return v.Body
	}
	if len(v.Summary) == 0 {
		return ""
	}
	return summaryStyle.Render(v.Summary.String())
}

func renderPlaceholder(v PanelView) string {
	text := "Component not found: " + v.Component
	var nf *provider.NotFoundError
	if errors.As(v.Err, &nf) && nf.Suggestion != "" {
		text += fmt.Sprintf(" (did you mean %s?)", nf.Suggestion)
	}
	return placeholderStyle.Render(text)
}

// View implements tea.Model
func (m Model) View() string {
	return renderApplicationContainer(m.viewport.View(), m.source, m.footer(), m.width, m.height)
}

func (m Model) footer() string {
	var status string
	switch {
	case m.status != "" && m.statusIsError:
		status = statusErrorStyle.Render(m.status)
	case m.status != "":
		status = statusStyle.Render(m.status)
	default:
		status = summaryStyle.Render(fmt.Sprintf("%d open · %d pinned", len(m.machine.Open()), len(m.machine.Pinned())))
	}

	if hint := m.focusedKeys(); hint != "" {
		status += summaryStyle.Render("   panel keys: " + hint)
	}
	return status + "\n" + m.help.View(m.keys)
}

// focusedKeys lists the focused provider's keys when its panel is open.
func (m Model) focusedKeys() string {
	id := m.FocusedID()
	if id == "" || !m.machine.IsOpen(id) {
		return ""
	}
	l, _ := m.cfg.Layer(id)
	p, err := m.providerFor(l)
	if err != nil {
		return ""
	}
	if kh, ok := p.(provider.KeyHelp); ok {
		return strings.Join(kh.Keys(), " ")
	}
	return ""
}
