package panel

import (
	"errors"
	"fmt"
)

// Sentinel errors. Typed errors below match them via errors.Is.
var (
	ErrUnknownPanel   = errors.New("unknown panel id")
	ErrDuplicatePanel = errors.New("duplicate panel id")
)

// UnknownPanelError reports an event or seed naming an id that is not
// configured. It is a programming-contract violation, not a user error.
type UnknownPanelError struct {
	Op string // "open", "pin" or "seed"
	ID string
}

// Error implements the error interface
func (e *UnknownPanelError) Error() string {
	return fmt.Sprintf("%s: %s %q", e.Op, ErrUnknownPanel, e.ID)
}

// Is lets errors.Is(err, ErrUnknownPanel) match.
func (e *UnknownPanelError) Is(target error) bool {
	return target == ErrUnknownPanel
}
