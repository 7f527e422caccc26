package config

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for configuration problems. A *ValidationError matches every
// sentinel that applies to it via errors.Is.
var (
	ErrEmptyLayers      = errors.New("layers must not be empty")
	ErrDuplicateID      = errors.New("duplicate layer id")
	ErrUnknownReference = errors.New("reference to unknown layer id")
	ErrMissingField     = errors.New("missing required field")
)

// ValidationError collects every problem found in a document.
type ValidationError struct {
	Problems []error
}

// Error implements the error interface
func (e *ValidationError) Error() string {
	if len(e.Problems) == 1 {
		return "invalid accordion config: " + e.Problems[0].Error()
	}
	msgs := make([]string, 0, len(e.Problems))
	for _, p := range e.Problems {
		msgs = append(msgs, p.Error())
	}
	return fmt.Sprintf("invalid accordion config (%d problems): %s", len(e.Problems), strings.Join(msgs, "; "))
}

// Unwrap exposes the individual problems to errors.Is and errors.As.
func (e *ValidationError) Unwrap() []error {
	return e.Problems
}

// Validate checks a document against the load-time rules. It returns nil or a
// *ValidationError listing all problems, never stopping at the first one.
func Validate(cfg *AccordionConfig) error {
	if cfg == nil {
		return &ValidationError{Problems: []error{fmt.Errorf("%w: document is empty", ErrMissingField)}}
	}

	var problems []error

	if cfg.DefaultLayer == nil {
		problems = append(problems, fmt.Errorf("%w: defaultLayer", ErrMissingField))
	} else if strings.TrimSpace(cfg.DefaultLayer.MaxHeight) == "" {
		problems = append(problems, fmt.Errorf("%w: defaultLayer.maxHeight", ErrMissingField))
	}

	if len(cfg.Layers) == 0 {
		problems = append(problems, ErrEmptyLayers)
	}

	seen := make(map[string]int, len(cfg.Layers))
	for i, layer := range cfg.Layers {
		if layer.ID == "" {
			problems = append(problems, fmt.Errorf("%w: layers[%d].id", ErrMissingField, i))
		}
		if layer.Name == "" {
			problems = append(problems, fmt.Errorf("%w: layers[%d].name (id %q)", ErrMissingField, i, layer.ID))
		}
		if layer.ComponentName == "" {
			problems = append(problems, fmt.Errorf("%w: layers[%d].componentName (id %q)", ErrMissingField, i, layer.ID))
		}
		if layer.ID == "" {
			continue
		}
		if first, dup := seen[layer.ID]; dup {
			problems = append(problems, fmt.Errorf("%w: %q at layers[%d] and layers[%d]", ErrDuplicateID, layer.ID, first, i))
			continue
		}
		seen[layer.ID] = i
	}

	problems = append(problems, checkRefs("defaultOpenItems", cfg.DefaultOpenItems, seen)...)
	problems = append(problems, checkRefs("pinnedItems", cfg.PinnedItems, seen)...)

	if len(problems) > 0 {
		return &ValidationError{Problems: problems}
	}
	return nil
}

func checkRefs(field string, ids []string, known map[string]int) []error {
	var problems []error
	for _, id := range ids {
		if _, ok := known[id]; !ok {
			problems = append(problems, fmt.Errorf("%w: %s names %q", ErrUnknownReference, field, id))
		}
	}
	return problems
}
