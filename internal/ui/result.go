package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// ResultType selects the color, marker and label of a result box.
type ResultType int

const (
	ResultSuccess ResultType = iota
	ResultFailure
	ResultWarning
)

type resultKind struct {
	color  lipgloss.Color
	marker string
	label  string
}

var resultKinds = map[ResultType]resultKind{
	ResultSuccess: {SuccessColor, SuccessMarker, "SUCCESS"},
	ResultFailure: {ErrorColor, FailureMarker, "FAILED"},
	ResultWarning: {WarningColor, WarningMarker, "WARNING"},
}

// Result is the closing box of a one-shot command.
type Result struct {
	Type  ResultType
	Title string // e.g., "Configuration valid"

	Details []Param  // Rendered in order
	Error   error    // Each line of the message is prefixed with "Error:"
	Tips    []string // Troubleshooting bullets
	Width   int
}

// NewSuccessResult creates a success result box
func NewSuccessResult(title string, details []Param) *Result {
	return &Result{Type: ResultSuccess, Title: title, Details: details, Width: GetTerminalWidth()}
}

// NewFailureResult creates a failure result box
func NewFailureResult(title string, err error, tips []string) *Result {
	return &Result{Type: ResultFailure, Title: title, Error: err, Tips: tips, Width: GetTerminalWidth()}
}

// NewWarningResult creates a warning result box
func NewWarningResult(title string, details []Param) *Result {
	return &Result{Type: ResultWarning, Title: title, Details: details, Width: GetTerminalWidth()}
}

// SetWidth sets the terminal width for responsive rendering
func (r *Result) SetWidth(width int) *Result {
	r.Width = width
	return r
}

// AddDetail appends a detail line
func (r *Result) AddDetail(key, value string) *Result {
	r.Details = append(r.Details, Param{Key: key, Value: value})
	return r
}

// Render returns the styled box
func (r *Result) Render() string {
	kind, ok := resultKinds[r.Type]
	if !ok {
		kind = resultKinds[ResultSuccess]
	}
	width := max(r.Width, MinTerminalWidth)

	title := fmt.Sprintf("   %s  %s  ─  %s", kind.marker, kind.label, r.Title)
	sections := [][]string{{fg(kind.color).Bold(true).Render(title)}}

	if r.Error != nil {
		var lines []string
		for _, msg := range strings.Split(r.Error.Error(), "\n") {
			lines = append(lines, fg(ErrorColor).Render("   Error: "+msg))
		}
		sections = append(sections, lines)
	}
	if len(r.Details) > 0 {
		lines := make([]string, 0, len(r.Details))
		for _, d := range r.Details {
			lines = append(lines, detailKey.Render("   "+d.Key+":")+" "+valueStyle.Render(d.Value))
		}
		sections = append(sections, lines)
	}
	if len(r.Tips) > 0 {
		sections = append(sections, []string{renderTips(r.Tips, width)})
	}

	var b strings.Builder
	b.WriteString("\n")
	for _, s := range sections {
		b.WriteString(strings.Join(s, "\n"))
		b.WriteString("\n\n")
	}

	return lipgloss.NewStyle().
		Border(lipgloss.DoubleBorder()).
		BorderForeground(kind.color).
		Width(width - 2).
		Padding(0, 2).
		Render(strings.TrimSuffix(b.String(), "\n"))
}

// renderTips draws the troubleshooting bullets in an inset box.
func renderTips(tips []string, width int) string {
	lines := []string{tipsTitle.Render("Troubleshooting:"), ""}
	for _, tip := range tips {
		lines = append(lines, noteStyle.Render("  • "+tip))
	}
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(MutedColor).
		Width(max(width-12, 40)).
		Padding(0, 1).
		MarginLeft(3).
		Render(strings.Join(lines, "\n"))
}

// String implements fmt.Stringer
func (r *Result) String() string {
	return r.Render()
}

// RenderSuccess renders a success box with the given title and details
func RenderSuccess(title string, details []Param) string {
	return NewSuccessResult(title, details).Render()
}

// RenderFailure renders a failure box with the given title, error, and tips
func RenderFailure(title string, err error, tips []string) string {
	return NewFailureResult(title, err, tips).Render()
}

// RenderWarning renders a warning box with the given title and details
func RenderWarning(title string, details []Param) string {
	return NewWarningResult(title, details).Render()
}
