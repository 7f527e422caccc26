// Package ui renders the one-shot terminal output of the accordion CLI
// subcommands (validate, summary, discover, init).
//
// The interactive accordion lives in internal/accordion. The components here
// follow a "render once and exit" pattern: they print styled output with
// Lipgloss but do not take input.
//
//   - Header: command banner showing the operation and its parameters
//   - Result: success, failure or warning box with ordered details
//   - Table: aligned rows for panel and session listings
//
// Example:
//
//	fmt.Println(ui.NewHeader("Validate", "accordion validate", []ui.Param{
//	    {Key: "Config", Value: path},
//	}).Render())
//
//	if err != nil {
//	    fmt.Println(ui.RenderFailure("Configuration invalid", err, tips))
//	}
//
// Logging is controlled by ACCORDION_LOG_LEVEL. When it is unset zap is
// silent so the curated output prints cleanly.
package ui
