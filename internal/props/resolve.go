// Package props resolves declared component properties into the concrete
// property bag handed to a content provider.
package props

import (
	"github.com/muurk/accordion/internal/config"
)

// Setter writes a new value for one host state entry.
type Setter func(value any)

// StateMap maps state names to their current values.
type StateMap map[string]any

// SetterMap maps setter names to setter callbacks.
type SetterMap map[string]Setter

// Resolve binds every declared property against the host maps.
//
// Literals are copied verbatim. A reference token binds to the setter of the
// same name, else to the state value of the same name, else stays a literal
// string; a key present in both maps therefore resolves to the setter.
// Explicit state and setter references bind to nil when the name is absent.
// Resolution is total and never mutates the maps.
func Resolve(decl config.Props, state StateMap, setters SetterMap) Bag {
	bag := Bag{values: make(map[string]any, len(decl)), order: make([]string, 0, len(decl))}
	for _, p := range decl {
		bag.set(p.Name, resolveOne(p.Value, state, setters))
	}
	return bag
}

func resolveOne(v config.PropValue, state StateMap, setters SetterMap) any {
	switch v.Kind {
	case config.KindToken:
		if fn, ok := setters[v.Name]; ok {
			return fn
		}
		if val, ok := state[v.Name]; ok {
			return val
		}
		return v.Name
	case config.KindState:
		if val, ok := state[v.Name]; ok {
			return val
		}
		return nil
	case config.KindSetter:
		if fn, ok := setters[v.Name]; ok {
			return fn
		}
		return nil
	default:
		return v.Value
	}
}
