// Package config loads and validates accordion configuration documents.
//
// A document describes the panel stack: a default layer with layout fallbacks,
// the ordered list of layers (panels), the panels that start open or pinned,
// and an optional host state seed. Documents are YAML (.yaml, .yml) or TOML
// (.toml); the format is chosen by file extension.
//
// # Component Properties
//
// Each layer declares componentProps. A value is one of:
//
//	count: 3                  # literal, passed through verbatim
//	label: count              # reference token: setter, then state, then literal
//	value: {state: count}     # explicit state reference
//	onChange: {setter: setCount}
//	title: {literal: count}   # a string that is never looked up
//
// Bare strings are reference tokens for compatibility with existing documents.
// The tagged forms resolve unambiguously and are preferred.
//
// # Configuration File Location
//
// Without an explicit path the document is read from:
//   - Linux: $XDG_CONFIG_HOME/accordion/accordion.yaml or $HOME/.config/accordion/accordion.yaml
//   - macOS: $HOME/.config/accordion/accordion.yaml
//   - Windows: %LOCALAPPDATA%\accordion\accordion.yaml
//
// # Validation
//
// Load never returns a partially valid document. Every problem found
// (empty layer list, duplicate ids, open/pinned items naming unknown ids,
// missing required fields) is collected into a single *ValidationError.
package config
