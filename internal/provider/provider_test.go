package provider

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/muurk/accordion/internal/props"
)

// recorder captures setter writes.
type recorder map[string]any

func (r recorder) setter(name string) props.Setter {
	return func(v any) { r[name] = v }
}

func TestRegistryCreate(t *testing.T) {
	r := DefaultRegistry()
	assert.Equal(t, []string{
		"ColorPickerComponent",
		"CounterComponent",
		"GraphComponent",
		"ProgressComponent",
		"ThemeToggleComponent",
	}, r.Names())

	for _, name := range r.Names() {
		p, err := r.Create(name, props.NewBag())
		require.NoError(t, err, name)
		require.NotNil(t, p, name)
		assert.NotEmpty(t, p.Render(60), name)
		assert.NotEmpty(t, p.Summarize(), name)
	}
}

func TestRegistryReturnsFreshInstances(t *testing.T) {
	r := DefaultRegistry()
	a, err := r.Create("CounterComponent", props.NewBag("count", 1))
	require.NoError(t, err)
	b, err := r.Create("CounterComponent", props.NewBag("count", 1))
	require.NoError(t, err)
	assert.NotSame(t, a, b)
}

func TestRegistryNotFound(t *testing.T) {
	r := DefaultRegistry()

	_, err := r.Create("Bogus", props.NewBag())
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrNotFound))
	var nf *NotFoundError
	require.ErrorAs(t, err, &nf)
	assert.Equal(t, "Bogus", nf.Name)
	assert.Empty(t, nf.Suggestion)

	_, err = r.Create("CountrComponent", props.NewBag())
	require.ErrorAs(t, err, &nf)
	assert.Equal(t, "CounterComponent", nf.Suggestion)
	assert.Contains(t, err.Error(), "did you mean CounterComponent")

	// exact match only
	assert.False(t, r.Has("countercomponent"))
}

func TestNewRegistrySkipsNil(t *testing.T) {
	r := NewRegistry(map[string]Factory{"A": NewCounter, "B": nil})
	assert.Equal(t, []string{"A"}, r.Names())
	assert.True(t, r.Has("A"))
	assert.False(t, r.Has("B"))
}

func TestSummaryString(t *testing.T) {
	s := Summary{{"Progress", "45%"}, {"Status", "Medium"}}
	assert.Equal(t, "Progress: 45% · Status: Medium", s.String())
	v, ok := s.Get("Status")
	assert.True(t, ok)
	assert.Equal(t, "Medium", v)
}

func TestCounter(t *testing.T) {
	rec := recorder{}
	c := NewCounter(props.NewBag("count", 3, "setCount", rec.setter("count"))).(*Counter)

	assert.Equal(t, Summary{{"Count", 3}, {"Status", "Active"}}, c.Summarize())
	assert.Contains(t, c.Render(40), "3")

	handled, _ := c.HandleKey("+")
	assert.True(t, handled)
	assert.Equal(t, 4, rec["count"])
	c.HandleKey("-")
	assert.Equal(t, 2, rec["count"])
	c.HandleKey("0")
	assert.Equal(t, 0, rec["count"])

	handled, _ = c.HandleKey("x")
	assert.False(t, handled)

	zero := NewCounter(props.NewBag()).(*Counter)
	assert.Equal(t, Summary{{"Count", 0}, {"Status", "Reset"}}, zero.Summarize())
	handled, _ = zero.HandleKey("+")
	assert.False(t, handled, "no setter bound")
}

func TestThemeToggle(t *testing.T) {
	rec := recorder{}
	bag := props.NewBag(
		"isDark", false,
		"setIsDark", rec.setter("isDark"),
		"isAnimating", false,
		"setIsAnimating", rec.setter("isAnimating"),
	)
	p := NewThemeToggle(bag).(*ThemeToggle)
	assert.Equal(t, Summary{{"Theme", "Light"}, {"Status", "Ready"}}, p.Summarize())

	handled, cmd := p.HandleKey("t")
	require.True(t, handled)
	require.NotNil(t, cmd)
	assert.Equal(t, true, rec["isDark"])
	assert.Equal(t, true, rec["isAnimating"])

	busy := NewThemeToggle(props.NewBag(
		"isDark", true,
		"isAnimating", true,
		"setIsDark", rec.setter("isDark"),
		"setIsAnimating", rec.setter("isAnimating"),
	)).(*ThemeToggle)
	assert.Equal(t, Summary{{"Theme", "Dark"}, {"Status", "Animating"}}, busy.Summarize())
	handled, _ = busy.HandleKey("t")
	assert.False(t, handled, "toggle ignored while animating")
}

func TestSetMsgApply(t *testing.T) {
	rec := recorder{}
	SetMsg{Setter: rec.setter("x"), Value: 5}.Apply()
	assert.Equal(t, 5, rec["x"])
	SetMsg{}.Apply()
}

func TestProgress(t *testing.T) {
	tests := []struct {
		value  int
		status string
	}{
		{0, "Low"},
		{29, "Low"},
		{30, "Medium"},
		{45, "Medium"},
		{70, "High"},
		{100, "High"},
	}
	for _, tt := range tests {
		p := NewProgress(props.NewBag("progress", tt.value))
		s := p.Summarize()
		v, _ := s.Get("Status")
		assert.Equal(t, tt.status, v, "progress %d", tt.value)
	}

	p := NewProgress(props.NewBag("progress", 45)).(*Progress)
	assert.Equal(t, "Progress: 45% · Status: Medium", p.Summarize().String())
	assert.Contains(t, p.Render(60), "45%")
}

func TestProgressSummaryMatchesRender(t *testing.T) {
	tests := []struct {
		value   any
		percent string
		status  string
	}{
		{29.9, "29.9%", "Low"},
		{70.5, "70.5%", "High"},
		{150, "100%", "High"},
		{-5, "0%", "Low"},
	}
	for _, tt := range tests {
		p := NewProgress(props.NewBag("progress", tt.value))
		s := p.Summarize()
		got, _ := s.Get("Progress")
		assert.Equal(t, tt.percent, got, "progress %v", tt.value)
		status, _ := s.Get("Status")
		assert.Equal(t, tt.status, status, "progress %v", tt.value)
		assert.Contains(t, p.Render(60), tt.percent, "render of %v", tt.value)
	}
}

func TestProgressKeys(t *testing.T) {
	old := randIntN
	randIntN = func(int) int { return 77 }
	t.Cleanup(func() { randIntN = old })

	rec := recorder{}
	mk := func(v int) *Progress {
		return NewProgress(props.NewBag("progress", v, "setProgress", rec.setter("progress"))).(*Progress)
	}

	mk(95).HandleKey("+")
	assert.Equal(t, 100, rec["progress"])
	mk(5).HandleKey("-")
	assert.Equal(t, 0, rec["progress"])

	handled, _ := mk(100).HandleKey("+")
	assert.False(t, handled, "already full")

	mk(50).HandleKey("0")
	assert.Equal(t, 0, rec["progress"])
	mk(50).HandleKey("r")
	assert.Equal(t, 77, rec["progress"])

	frac := NewProgress(props.NewBag("progress", 29.5, "setProgress", rec.setter("progress")))
	frac.(*Progress).HandleKey("+")
	assert.Equal(t, 39.5, rec["progress"])
}

func TestColorPicker(t *testing.T) {
	assert.Equal(t, "Blue", ColorName("#3b82f6"))
	assert.Equal(t, "Gray", ColorName("#6b7280"))
	assert.Equal(t, "Custom", ColorName("#123456"))

	rec := recorder{}
	mk := func(hex string) *ColorPicker {
		return NewColorPicker(props.NewBag("selectedColor", hex, "setSelectedColor", rec.setter("c"))).(*ColorPicker)
	}

	assert.Equal(t, Summary{{"Color", "Custom"}, {"Hex", "#123456"}}, mk("#123456").Summarize())

	mk("#3b82f6").HandleKey("right")
	assert.Equal(t, "#ef4444", rec["c"])
	mk("#3b82f6").HandleKey("left")
	assert.Equal(t, "#6b7280", rec["c"])
	mk("#123456").HandleKey("right")
	assert.Equal(t, "#3b82f6", rec["c"])
	mk("#ef4444").HandleKey("0")
	assert.Equal(t, DefaultColor, rec["c"])

	old := randIntN
	randIntN = func(int) int { return 0xabc }
	t.Cleanup(func() { randIntN = old })
	mk("#ef4444").HandleKey("r")
	assert.Equal(t, "#000abc", rec["c"])

	// default when the bag is empty
	assert.Equal(t, Summary{{"Color", "Blue"}, {"Hex", DefaultColor}}, NewColorPicker(props.NewBag()).Summarize())
}

func TestGraph(t *testing.T) {
	rec := recorder{}
	mk := func(n int, kind string) *Graph {
		return NewGraph(props.NewBag(
			"dataPoints", n,
			"setDataPoints", rec.setter("n"),
			"graphType", kind,
			"setGraphType", rec.setter("kind"),
			"height", 6,
		)).(*Graph)
	}

	g := mk(20, "line")
	assert.Equal(t, Summary{{"Data Points", 20}, {"Graph Type", "line"}, {"Status", "Rendered"}}, g.Summarize())

	g.HandleKey("+")
	assert.Equal(t, 25, rec["n"])
	mk(50, "line").HandleKey("+")
	assert.Equal(t, 50, rec["n"])
	mk(5, "line").HandleKey("-")
	assert.Equal(t, 5, rec["n"])

	mk(20, "line").HandleKey("g")
	assert.Equal(t, "scatter", rec["kind"])
	mk(20, "bar").HandleKey("g")
	assert.Equal(t, "line", rec["kind"])
	mk(20, "pie").HandleKey("g")
	assert.Equal(t, "line", rec["kind"])
}

func TestGraphRenderDeterministic(t *testing.T) {
	for _, kind := range GraphTypes {
		g := NewGraph(props.NewBag("dataPoints", 10, "graphType", kind, "height", 5))
		first := g.Render(40)
		assert.Equal(t, first, g.Render(40), kind)
		// height rows plus the axis, plus title, info, blanks and hints
		assert.GreaterOrEqual(t, strings.Count(first, "\n"), 6, kind)
	}
	assert.Len(t, GraphData(7), 7)
	assert.InDelta(t, 10.0, GraphData(1)[0], 1e-9)
}

func TestSummarizeDoesNotNeedRender(t *testing.T) {
	bag := props.NewBag("count", 2)
	before := bag.Keys()
	_ = NewCounter(bag).Summarize()
	assert.Equal(t, before, bag.Keys())
}
