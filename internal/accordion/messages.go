package accordion

import "github.com/muurk/accordion/internal/config"

// StateSetMsg writes a host state value from outside the update loop, such
// as a state sync client.
type StateSetMsg struct {
	Name   string
	Value  any
	Source string
}

// ReloadMsg remounts the accordion with a new configuration. Host state is
// kept; open and pinned panels are re-seeded from the new document.
type ReloadMsg struct {
	Config *config.AccordionConfig
	Path   string
}

// ErrorMsg surfaces a background error in the status line.
type ErrorMsg struct {
	Err error
}
