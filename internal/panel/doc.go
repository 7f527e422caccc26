// Package panel implements the open/pinned state machine behind the accordion.
//
// The machine owns two sets of panel ids: the open set and the pinned set.
// It accepts exactly two events.
//
// ToggleOpen receives the entire proposed open membership from the
// collapsible primitive, not a delta:
//
//   - If the proposal contains an id that is not open (an open action), the
//     first such id becomes the only open unpinned panel: open = {id} ∪ pinned.
//   - Otherwise (a close action) the proposal is adopted as the open set, and
//     any pinned id it drops is unpinned.
//
// TogglePin receives a single id:
//
//   - A pinned id is unpinned and stays open.
//   - An unpinned id is pinned and, if closed, opened without closing anything
//     else.
//
// Closing a pinned panel unpins it, while unpinning never closes. The
// asymmetry is intentional and the tests pin it down.
//
// Every settled transition leaves pinned ⊆ open with at most one further open
// id. An event that names an id outside the configured set is rejected with
// an *UnknownPanelError and leaves the state untouched.
//
// A Machine is not safe for concurrent use; the UI update loop is its only
// caller.
package panel
