// Package store holds the host-side state that panel properties bind to.
//
// The store plays the role of the page that owns the widgets' state: it
// exposes the current values as a state map and one setter per value as a
// setter map. Setter names follow the "set" + capitalised name convention,
// so the value "count" is written through "setCount". The convention is a
// property of this host only; the property resolver matches setter names
// exactly and never infers them.
//
// Writes are expected from a single goroutine (the UI update loop). Reads
// from other goroutines, such as the state sync server, are safe.
package store

import (
	"sort"
	"sync"
	"unicode"
	"unicode/utf8"

	"github.com/muurk/accordion/internal/props"
)

// ChangeFunc observes a state write.
type ChangeFunc func(name string, value any)

// Store is the host state container.
type Store struct {
	mu        sync.RWMutex
	values    map[string]any
	listeners []ChangeFunc
}

// New creates a store seeded with initial values.
func New(seed map[string]any) *Store {
	values := make(map[string]any, len(seed))
	for k, v := range seed {
		values[k] = v
	}
	return &Store{values: values}
}

// SetterName returns the setter name for a state name ("count" -> "setCount").
func SetterName(name string) string {
	if name == "" {
		return "set"
	}
	r, size := utf8.DecodeRuneInString(name)
	return "set" + string(unicode.ToUpper(r)) + name[size:]
}

// Get returns the current value of name.
func (s *Store) Get(name string) (any, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.values[name]
	return v, ok
}

// Set writes a value and notifies listeners. Unknown names are added.
func (s *Store) Set(name string, value any) {
	s.mu.Lock()
	s.values[name] = value
	listeners := make([]ChangeFunc, len(s.listeners))
	copy(listeners, s.listeners)
	s.mu.Unlock()

	for _, fn := range listeners {
		fn(name, value)
	}
}

// Merge adds seed values for names the store does not hold yet. Existing
// values are kept, so a remount does not reset live state.
func (s *Store) Merge(seed map[string]any) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for k, v := range seed {
		if _, ok := s.values[k]; !ok {
			s.values[k] = v
		}
	}
}

// OnChange registers a listener for writes.
func (s *Store) OnChange(fn ChangeFunc) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listeners = append(s.listeners, fn)
}

// Names returns the state names, sorted.
func (s *Store) Names() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	names := make([]string, 0, len(s.values))
	for k := range s.values {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}

// Snapshot returns a copy of all values.
func (s *Store) Snapshot() map[string]any {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make(map[string]any, len(s.values))
	for k, v := range s.values {
		out[k] = v
	}
	return out
}

// StateMap returns the current values as a resolver state map.
func (s *Store) StateMap() props.StateMap {
	return props.StateMap(s.Snapshot())
}

// SetterMap returns one setter per known state name.
func (s *Store) SetterMap() props.SetterMap {
	names := s.Names()
	out := make(props.SetterMap, len(names))
	for _, name := range names {
		name := name
		out[SetterName(name)] = func(v any) { s.Set(name, v) }
	}
	return out
}
