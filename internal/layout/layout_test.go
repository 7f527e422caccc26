package layout

import (
	"testing"

	"github.com/muurk/accordion/internal/config"
)

func ptr[T any](v T) *T { return &v }

var defaults = config.DefaultLayer{
	MaxHeight:    "12",
	MarginLeft:   2,
	MarginRight:  3,
	BottomMargin: 1,
}

func TestMerge(t *testing.T) {
	tests := []struct {
		name  string
		panel config.LayerConfig
		want  Attributes
	}{
		{
			name:  "all defaults",
			panel: config.LayerConfig{ID: "a"},
			want:  Attributes{MaxHeight: "12", MarginLeft: 2, MarginRight: 3, BottomMargin: 1},
		},
		{
			name:  "max height override",
			panel: config.LayerConfig{ID: "a", MaxHeight: ptr("300px")},
			want:  Attributes{MaxHeight: "300px", MarginLeft: 2, MarginRight: 3, BottomMargin: 1},
		},
		{
			name:  "explicit zero overrides",
			panel: config.LayerConfig{ID: "a", BottomMargin: ptr(0), MarginLeft: ptr(0)},
			want:  Attributes{MaxHeight: "12", MarginLeft: 0, MarginRight: 3, BottomMargin: 0},
		},
		{
			name:  "padding override",
			panel: config.LayerConfig{ID: "a", LayerVerticalPadding: ptr(2)},
			want:  Attributes{MaxHeight: "12", MarginLeft: 2, MarginRight: 3, BottomMargin: 1, LayerVerticalPadding: 2},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Merge(tt.panel, defaults); got != tt.want {
				t.Errorf("Merge() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestMergeIsPure(t *testing.T) {
	d := defaults
	p := config.LayerConfig{ID: "a", MarginRight: ptr(9)}
	first := Merge(p, d)
	second := Merge(p, d)
	if first != second {
		t.Errorf("Merge not deterministic: %+v vs %+v", first, second)
	}
	if d != defaults {
		t.Errorf("defaults mutated: %+v", d)
	}
}

func TestRows(t *testing.T) {
	tests := []struct {
		in   string
		want int
	}{
		{"12", 12},
		{" 8 ", 8},
		{"12rows", 12},
		{"12 rows", 12},
		{"600px", 30},
		{"300PX", 15},
		{"10px", 1},
		{"", 0},
		{"auto", 0},
		{"-3", 0},
		{"0", 0},
		{"50%", 0},
	}
	for _, tt := range tests {
		if got := (Attributes{MaxHeight: tt.in}).Rows(); got != tt.want {
			t.Errorf("Rows(%q) = %d, want %d", tt.in, got, tt.want)
		}
	}
}
