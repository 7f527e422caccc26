// Package layout merges per-panel layout overrides with the accordion
// defaults.
package layout

import (
	"strconv"
	"strings"

	"github.com/muurk/accordion/internal/config"
)

// PixelsPerRow converts pixel heights from configuration into terminal rows.
const PixelsPerRow = 20

// Attributes are the effective layout values for one panel.
type Attributes struct {
	MaxHeight            string
	MarginLeft           int
	MarginRight          int
	BottomMargin         int
	LayerVerticalPadding int
}

// Merge returns the panel's override for each field if present, otherwise the
// default. A panel override of zero is an override.
func Merge(panel config.LayerConfig, defaults config.DefaultLayer) Attributes {
	a := Attributes{
		MaxHeight:            defaults.MaxHeight,
		MarginLeft:           defaults.MarginLeft,
		MarginRight:          defaults.MarginRight,
		BottomMargin:         defaults.BottomMargin,
		LayerVerticalPadding: defaults.LayerVerticalPadding,
	}
	if panel.MaxHeight != nil {
		a.MaxHeight = *panel.MaxHeight
	}
	if panel.MarginLeft != nil {
		a.MarginLeft = *panel.MarginLeft
	}
	if panel.MarginRight != nil {
		a.MarginRight = *panel.MarginRight
	}
	if panel.BottomMargin != nil {
		a.BottomMargin = *panel.BottomMargin
	}
	if panel.LayerVerticalPadding != nil {
		a.LayerVerticalPadding = *panel.LayerVerticalPadding
	}
	return a
}

// Rows returns MaxHeight as a terminal row cap. Plain numbers and "rows"
// suffixes are rows, "px" values are divided by PixelsPerRow (at least one
// row). It returns 0, meaning no cap, when MaxHeight is empty or unparseable.
func (a Attributes) Rows() int {
	s := strings.TrimSpace(strings.ToLower(a.MaxHeight))
	if s == "" {
		return 0
	}

	if px, ok := strings.CutSuffix(s, "px"); ok {
		n, err := strconv.ParseFloat(strings.TrimSpace(px), 64)
		if err != nil || n <= 0 {
			return 0
		}
		rows := int(n) / PixelsPerRow
		if rows < 1 {
			rows = 1
		}
		return rows
	}

	s = strings.TrimSpace(strings.TrimSuffix(s, "rows"))
	n, err := strconv.Atoi(s)
	if err != nil || n <= 0 {
		return 0
	}
	return n
}
