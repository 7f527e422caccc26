package panel

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var abc = []string{"a", "b", "c"}

func mustNew(t *testing.T, open, pinned []string) *Machine {
	t.Helper()
	m, err := New(abc, open, pinned)
	require.NoError(t, err)
	return m
}

// proposal mimics the collapsible primitive: flip one id's membership.
func proposal(m *Machine, id string) []string {
	if m.IsOpen(id) {
		return remove(m.Open(), id)
	}
	return append(m.Open(), id)
}

func checkInvariants(t *testing.T, m *Machine) {
	t.Helper()
	extra := 0
	for _, id := range m.Open() {
		if !m.IsPinned(id) {
			extra++
		}
	}
	for _, id := range m.Pinned() {
		assert.True(t, m.IsOpen(id), "pinned %q must be open", id)
	}
	assert.LessOrEqual(t, extra, 1, "at most one unpinned open panel, open=%v pinned=%v", m.Open(), m.Pinned())
}

func TestNewSeeds(t *testing.T) {
	m := mustNew(t, []string{"a"}, []string{"c"})
	assert.ElementsMatch(t, []string{"a", "c"}, m.Open())
	assert.Equal(t, []string{"c"}, m.Pinned())
	assert.Equal(t, abc, m.IDs())
}

func TestNewRejectsUnknownSeed(t *testing.T) {
	_, err := New(abc, []string{"z"}, nil)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnknownPanel))

	var upe *UnknownPanelError
	require.ErrorAs(t, err, &upe)
	assert.Equal(t, "z", upe.ID)
	assert.Equal(t, "seed", upe.Op)

	_, err = New(abc, nil, []string{"q"})
	assert.ErrorIs(t, err, ErrUnknownPanel)
}

func TestNewRejectsDuplicateIDs(t *testing.T) {
	_, err := New([]string{"a", "a"}, nil, nil)
	assert.ErrorIs(t, err, ErrDuplicatePanel)
}

func TestOpenIsExclusiveAmongUnpinned(t *testing.T) {
	m := mustNew(t, []string{"a"}, nil)

	tr, err := m.ToggleOpen(proposal(m, "b"))
	require.NoError(t, err)
	assert.Equal(t, KindOpen, tr.Kind)
	assert.Equal(t, "b", tr.ID)
	assert.Equal(t, []string{"b"}, m.Open())
	checkInvariants(t, m)
}

func TestOpenKeepsPinned(t *testing.T) {
	m := mustNew(t, nil, []string{"a"})

	_, err := m.ToggleOpen(proposal(m, "b"))
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"a", "b"}, m.Open())

	_, err = m.ToggleOpen(proposal(m, "c"))
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"a", "c"}, m.Open())
	checkInvariants(t, m)
}

func TestOpenHonoursFirstNewID(t *testing.T) {
	m := mustNew(t, nil, nil)
	tr, err := m.ToggleOpen([]string{"b", "c"})
	require.NoError(t, err)
	assert.Equal(t, "b", tr.ID)
	assert.Equal(t, []string{"b"}, m.Open())
}

func TestCloseUnpinnedPanel(t *testing.T) {
	m := mustNew(t, []string{"a"}, nil)
	tr, err := m.ToggleOpen(proposal(m, "a"))
	require.NoError(t, err)
	assert.Equal(t, KindClose, tr.Kind)
	assert.Empty(t, tr.Unpinned)
	assert.Empty(t, m.Open())
}

func TestCloseOfPinnedPanelUnpins(t *testing.T) {
	m := mustNew(t, nil, []string{"a"})

	tr, err := m.ToggleOpen(proposal(m, "a"))
	require.NoError(t, err)
	assert.Equal(t, KindClose, tr.Kind)
	assert.Equal(t, "a", tr.ID)
	assert.Equal(t, []string{"a"}, tr.Unpinned)
	assert.False(t, m.IsOpen("a"))
	assert.False(t, m.IsPinned("a"))
	checkInvariants(t, m)
}

func TestCloseDroppingSeveralPinned(t *testing.T) {
	m := mustNew(t, nil, []string{"a", "b"})
	tr, err := m.ToggleOpen(nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, tr.Unpinned)
	assert.Empty(t, m.Pinned())
	checkInvariants(t, m)
}

func TestUnpinDoesNotClose(t *testing.T) {
	m := mustNew(t, nil, []string{"a"})

	tr, err := m.TogglePin("a")
	require.NoError(t, err)
	assert.Equal(t, KindUnpin, tr.Kind)
	assert.True(t, m.IsOpen("a"))
	assert.False(t, m.IsPinned("a"))
}

func TestPinOfClosedPanelOpensIt(t *testing.T) {
	m := mustNew(t, []string{"a"}, nil)

	tr, err := m.TogglePin("b")
	require.NoError(t, err)
	assert.Equal(t, KindPin, tr.Kind)
	assert.ElementsMatch(t, []string{"a", "b"}, m.Open())
	assert.Equal(t, []string{"b"}, m.Pinned())
	checkInvariants(t, m)
}

func TestPinOfOpenPanelKeepsOpenSet(t *testing.T) {
	m := mustNew(t, []string{"a"}, nil)
	_, err := m.TogglePin("a")
	require.NoError(t, err)
	assert.Equal(t, []string{"a"}, m.Open())
	assert.Equal(t, []string{"a"}, m.Pinned())
}

func TestPinTwiceRestoresPinnedSet(t *testing.T) {
	m := mustNew(t, []string{"b"}, []string{"a"})
	before := m.Pinned()

	_, err := m.TogglePin("c")
	require.NoError(t, err)
	_, err = m.TogglePin("c")
	require.NoError(t, err)

	assert.Equal(t, before, m.Pinned())
	assert.True(t, m.IsOpen("c"), "unpin never closes")
}

func TestUnknownIDLeavesStateUnchanged(t *testing.T) {
	m := mustNew(t, []string{"a"}, []string{"b"})
	open, pinned := m.Open(), m.Pinned()

	_, err := m.ToggleOpen([]string{"a", "b", "zz"})
	assert.ErrorIs(t, err, ErrUnknownPanel)
	_, err = m.TogglePin("zz")
	assert.ErrorIs(t, err, ErrUnknownPanel)

	assert.Equal(t, open, m.Open())
	assert.Equal(t, pinned, m.Pinned())
}

func TestProposalEqualToOpenIsNoop(t *testing.T) {
	m := mustNew(t, []string{"a"}, []string{"b"})
	tr, err := m.ToggleOpen(m.Open())
	require.NoError(t, err)
	assert.Equal(t, KindNoop, tr.Kind)
	assert.ElementsMatch(t, []string{"a", "b"}, m.Open())
}

func TestScenario(t *testing.T) {
	m := mustNew(t, []string{"a"}, nil)

	steps := []struct {
		name   string
		apply  func() (Transition, error)
		open   []string
		pinned []string
	}{
		{"pin a", func() (Transition, error) { return m.TogglePin("a") }, []string{"a"}, []string{"a"}},
		{"open b", func() (Transition, error) { return m.ToggleOpen(proposal(m, "b")) }, []string{"a", "b"}, []string{"a"}},
		{"open c", func() (Transition, error) { return m.ToggleOpen(proposal(m, "c")) }, []string{"a", "c"}, []string{"a"}},
		{"close a", func() (Transition, error) { return m.ToggleOpen(proposal(m, "a")) }, []string{"c"}, []string{}},
		{"pin b", func() (Transition, error) { return m.TogglePin("b") }, []string{"b", "c"}, []string{"b"}},
		{"unpin b", func() (Transition, error) { return m.TogglePin("b") }, []string{"b", "c"}, []string{}},
	}

	for _, step := range steps {
		_, err := step.apply()
		require.NoError(t, err, step.name)
		assert.ElementsMatch(t, step.open, m.Open(), step.name)
		assert.ElementsMatch(t, step.pinned, m.Pinned(), step.name)
	}
}

func TestInvariantsHoldOverEventSequences(t *testing.T) {
	// Deterministic walk over every event on every id.
	m := mustNew(t, nil, nil)
	events := []func(string) error{
		func(id string) error { _, err := m.ToggleOpen(proposal(m, id)); return err },
		func(id string) error { _, err := m.TogglePin(id); return err },
	}
	for round := 0; round < 4; round++ {
		for i, id := range abc {
			ev := events[(i+round)%len(events)]
			require.NoError(t, ev(id))
			checkInvariants(t, m)
		}
	}
}

func TestKindString(t *testing.T) {
	assert.Equal(t, "open", KindOpen.String())
	assert.Equal(t, "unpin", KindUnpin.String())
	assert.Equal(t, "Kind(42)", Kind(42).String())
}
