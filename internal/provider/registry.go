package provider

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/agnivade/levenshtein"

	"github.com/muurk/accordion/internal/props"
)

// ErrNotFound is matched by *NotFoundError.
var ErrNotFound = errors.New("component not found")

// NotFoundError reports a component name with no registered factory.
type NotFoundError struct {
	Name       string
	Suggestion string // Closest registered name, may be empty
}

// Error implements the error interface
func (e *NotFoundError) Error() string {
	if e.Suggestion != "" {
		return fmt.Sprintf("%s: %s (did you mean %s?)", ErrNotFound, e.Name, e.Suggestion)
	}
	return fmt.Sprintf("%s: %s", ErrNotFound, e.Name)
}

// Is lets errors.Is(err, ErrNotFound) match.
func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

// Registry maps component names to factories. The set is fixed when the
// registry is built.
type Registry struct {
	factories map[string]Factory
	names     []string
}

// NewRegistry creates a registry from a name to factory map. Nil factories
// are ignored.
func NewRegistry(factories map[string]Factory) *Registry {
	r := &Registry{factories: make(map[string]Factory, len(factories))}
	for name, f := range factories {
		if f == nil {
			continue
		}
		r.factories[name] = f
		r.names = append(r.names, name)
	}
	sort.Strings(r.names)
	return r
}

// DefaultRegistry returns a registry holding the built-in providers.
func DefaultRegistry() *Registry {
	return NewRegistry(map[string]Factory{
		"CounterComponent":     NewCounter,
		"ThemeToggleComponent": NewThemeToggle,
		"ProgressComponent":    NewProgress,
		"ColorPickerComponent": NewColorPicker,
		"GraphComponent":       NewGraph,
	})
}

// Create returns a fresh provider for name. Lookup is exact.
func (r *Registry) Create(name string, bag props.Bag) (ContentProvider, error) {
	f, ok := r.factories[name]
	if !ok {
		return nil, &NotFoundError{Name: name, Suggestion: r.Suggest(name)}
	}
	return f(bag), nil
}

// Has reports whether name is registered.
func (r *Registry) Has(name string) bool {
	_, ok := r.factories[name]
	return ok
}

// Names returns the registered names, sorted.
func (r *Registry) Names() []string {
	out := make([]string, len(r.names))
	copy(out, r.names)
	return out
}

// Suggest returns the registered name closest to name, or "" when nothing
// is reasonably close.
func (r *Registry) Suggest(name string) string {
	if name == "" {
		return ""
	}
	want := strings.ToLower(name)
	best, bestDist := "", -1
	for _, candidate := range r.names {
		d := levenshtein.ComputeDistance(want, strings.ToLower(candidate))
		if bestDist < 0 || d < bestDist {
			best, bestDist = candidate, d
		}
	}
	limit := len(want) / 3
	if limit < 2 {
		limit = 2
	}
	if bestDist < 0 || bestDist > limit {
		return ""
	}
	return best
}
