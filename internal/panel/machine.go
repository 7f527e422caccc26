package panel

import "fmt"

// Kind classifies a settled transition.
type Kind int

const (
	KindNoop Kind = iota
	KindOpen
	KindClose
	KindPin
	KindUnpin
)

func (k Kind) String() string {
	switch k {
	case KindNoop:
		return "noop"
	case KindOpen:
		return "open"
	case KindClose:
		return "close"
	case KindPin:
		return "pin"
	case KindUnpin:
		return "unpin"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Transition describes what an event did.
type Transition struct {
	Kind     Kind
	ID       string   // Subject panel; empty for a noop
	Unpinned []string // Pinned ids dropped by a close action
	Open     []string // Open set after the transition
	Pinned   []string // Pinned set after the transition
}

// Machine holds the open and pinned sets for one mount.
// Both sets are kept as ordered slices; order carries no meaning beyond
// stable rendering and logging.
type Machine struct {
	ids    []string
	known  map[string]struct{}
	open   []string
	pinned []string
}

// New creates a machine for the configured ids, seeded with the initially
// open and pinned ids. Pinned seeds are opened as well.
func New(ids, defaultOpen, pinned []string) (*Machine, error) {
	m := &Machine{
		ids:   make([]string, 0, len(ids)),
		known: make(map[string]struct{}, len(ids)),
	}
	for _, id := range ids {
		if _, dup := m.known[id]; dup {
			return nil, fmt.Errorf("%w: %q", ErrDuplicatePanel, id)
		}
		m.known[id] = struct{}{}
		m.ids = append(m.ids, id)
	}

	if err := m.checkKnown("seed", defaultOpen); err != nil {
		return nil, err
	}
	if err := m.checkKnown("seed", pinned); err != nil {
		return nil, err
	}

	m.open = dedupe(defaultOpen)
	m.pinned = dedupe(pinned)
	for _, id := range m.pinned {
		if !contains(m.open, id) {
			m.open = append(m.open, id)
		}
	}
	return m, nil
}

// ToggleOpen applies the primitive's proposed open membership.
func (m *Machine) ToggleOpen(proposed []string) (Transition, error) {
	if err := m.checkKnown("open", proposed); err != nil {
		return Transition{}, err
	}
	proposed = dedupe(proposed)

	for _, id := range proposed {
		if contains(m.open, id) {
			continue
		}
		// Open action. Only the first newly opened id is honoured.
		next := make([]string, 0, len(m.pinned)+1)
		next = append(next, id)
		for _, p := range m.pinned {
			if p != id {
				next = append(next, p)
			}
		}
		m.open = next
		return m.settled(KindOpen, id, nil), nil
	}

	// Close action: nothing new was proposed.
	var removed []string
	for _, id := range m.open {
		if !contains(proposed, id) {
			removed = append(removed, id)
		}
	}
	if len(removed) == 0 {
		return m.settled(KindNoop, "", nil), nil
	}

	var unpinned []string
	for _, id := range removed {
		if contains(m.pinned, id) {
			m.pinned = remove(m.pinned, id)
			unpinned = append(unpinned, id)
		}
	}
	m.open = proposed
	return m.settled(KindClose, removed[0], unpinned), nil
}

// TogglePin pins or unpins id.
func (m *Machine) TogglePin(id string) (Transition, error) {
	if _, ok := m.known[id]; !ok {
		return Transition{}, &UnknownPanelError{Op: "pin", ID: id}
	}

	if contains(m.pinned, id) {
		m.pinned = remove(m.pinned, id)
		return m.settled(KindUnpin, id, nil), nil
	}

	m.pinned = append(m.pinned, id)
	if !contains(m.open, id) {
		m.open = append(m.open, id)
	}
	return m.settled(KindPin, id, nil), nil
}

// IDs returns the configured ids in order.
func (m *Machine) IDs() []string { return clone(m.ids) }

// Open returns the open ids.
func (m *Machine) Open() []string { return clone(m.open) }

// Pinned returns the pinned ids in the order they were pinned.
func (m *Machine) Pinned() []string { return clone(m.pinned) }

// IsOpen reports whether id is open.
func (m *Machine) IsOpen(id string) bool { return contains(m.open, id) }

// IsPinned reports whether id is pinned.
func (m *Machine) IsPinned(id string) bool { return contains(m.pinned, id) }

// Has reports whether id is configured.
func (m *Machine) Has(id string) bool {
	_, ok := m.known[id]
	return ok
}

func (m *Machine) settled(kind Kind, id string, unpinned []string) Transition {
	return Transition{
		Kind:     kind,
		ID:       id,
		Unpinned: unpinned,
		Open:     m.Open(),
		Pinned:   m.Pinned(),
	}
}

func (m *Machine) checkKnown(op string, ids []string) error {
	for _, id := range ids {
		if _, ok := m.known[id]; !ok {
			return &UnknownPanelError{Op: op, ID: id}
		}
	}
	return nil
}

func contains(ids []string, id string) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}

func remove(ids []string, id string) []string {
	out := make([]string, 0, len(ids))
	for _, v := range ids {
		if v != id {
			out = append(out, v)
		}
	}
	return out
}

func dedupe(ids []string) []string {
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if !contains(out, id) {
			out = append(out, id)
		}
	}
	return out
}

func clone(ids []string) []string {
	out := make([]string, len(ids))
	copy(out, ids)
	return out
}
